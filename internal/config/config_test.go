package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogsmod/modtool/internal/config"
	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/pkg/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modtool.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestReadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	conf, errRead := config.Read("")
	require.NoError(t, errRead)
	require.Equal(t, "https://online-go.com/api/v1/", conf.API.BaseURL)
	require.Equal(t, time.Second*10, conf.API.Timeout)
	require.Equal(t, 5, conf.API.RateLimit)
	require.Equal(t, language.English, conf.General.Language)
	require.Equal(t, time.Second*2, conf.General.ToastDuration)
	require.Equal(t, log.Info, conf.Log.Level)
	require.Equal(t, moderation.PowerNone, conf.Moderator.Powers)
	require.False(t, conf.Discord.Enabled)
	require.Equal(t, "127.0.0.1:8080", conf.Sandbox.ListenAddr)
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:8080/api/v1/
  timeout: 3s
moderator:
  name: mod_alice
  powers:
    - stalling
    - escaping
general:
  language: de-AT
  toast_duration: 1500ms
log:
  level: debug
discord:
  enabled: true
  token: abc
  log_channel_id: "1234"
`)

	conf, errRead := config.Read(path)
	require.NoError(t, errRead)
	require.Equal(t, "http://localhost:8080/api/v1/", conf.API.BaseURL)
	require.Equal(t, time.Second*3, conf.API.Timeout)
	require.Equal(t, "mod_alice", conf.Moderator.Name)
	require.Equal(t, moderation.PowerHandleStalling|moderation.PowerHandleEscaping, conf.Moderator.Powers)
	require.Equal(t, language.MustParse("de-AT"), conf.General.Language)
	require.Equal(t, time.Millisecond*1500, conf.General.ToastDuration)
	require.Equal(t, log.Debug, conf.Log.Level)
	require.True(t, conf.Discord.Enabled)
	require.Equal(t, "1234", conf.Discord.LogChannelID)
}

func TestReadEnv(t *testing.T) {
	path := writeConfig(t, "moderator:\n  powers: [score_cheating]\n")

	t.Setenv("MODTOOL_API_TOKEN", "secret")
	t.Setenv("MODTOOL_MODERATOR_POWERS", "stalling, escaping")
	t.Setenv("MODTOOL_GENERAL_LANGUAGE", "fr")
	t.Setenv("MODTOOL_SANDBOX_CORS_ORIGINS", "http://localhost:5173,https://mods.example.com")

	conf, errRead := config.Read(path)
	require.NoError(t, errRead)
	require.Equal(t, "secret", conf.API.Token)
	require.Equal(t, moderation.PowerHandleStalling|moderation.PowerHandleEscaping, conf.Moderator.Powers)
	require.Equal(t, language.French, conf.General.Language)
	require.Equal(t, []string{"http://localhost:5173", "https://mods.example.com"}, conf.Sandbox.CORSOrigins)
}

func TestReadErrors(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected error
	}{
		{name: "base url scheme", body: "api:\n  base_url: ftp://example.com/\n", expected: config.ErrInvalidBaseURL},
		{name: "base url relative", body: "api:\n  base_url: /api/v1/\n", expected: config.ErrInvalidBaseURL},
		{name: "duration", body: "api:\n  timeout: soon\n", expected: config.ErrFormatConfig},
		{name: "language", body: "general:\n  language: \"!!\"\n", expected: config.ErrFormatConfig},
		{name: "power", body: "moderator:\n  powers: [harassment]\n", expected: config.ErrFormatConfig},
		{name: "log level", body: "log:\n  level: verbose\n", expected: config.ErrInvalidLogLevel},
		{name: "discord", body: "discord:\n  enabled: true\n", expected: config.ErrDiscordConfig},
		{name: "yaml", body: "api: [\n", expected: config.ErrReadConfig},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, errRead := config.Read(writeConfig(t, testCase.body))
			require.ErrorIs(t, errRead, testCase.expected)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, errRead := config.Read(filepath.Join(t.TempDir(), "missing.yml"))
		require.ErrorIs(t, errRead, config.ErrReadConfig)
	})
}

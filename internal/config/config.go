// Package config loads the static modtool configuration from modtool.yml and MODTOOL_ prefixed environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/pkg/log"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

var (
	ErrReadConfig      = errors.New("failed to read config file")
	ErrFormatConfig    = errors.New("config file format invalid")
	ErrInvalidBaseURL  = errors.New("api.base_url must be an absolute http(s) url")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrDiscordConfig   = errors.New("discord.token and discord.log_channel_id are required when discord is enabled")
)

type Config struct {
	API       API       `mapstructure:"api"`
	Moderator Moderator `mapstructure:"moderator"`
	General   General   `mapstructure:"general"`
	Log       Log       `mapstructure:"log"`
	Sentry    Sentry    `mapstructure:"sentry"`
	Discord   Discord   `mapstructure:"discord"`
	Sandbox   Sandbox   `mapstructure:"sandbox"`
}

type API struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	RateLimit int           `mapstructure:"rate_limit"`
}

type Moderator struct {
	Name   string                    `mapstructure:"name"`
	Powers moderation.ModeratorPower `mapstructure:"powers"`
}

type General struct {
	Language      language.Tag  `mapstructure:"language"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

type Log struct {
	Level log.Level `mapstructure:"level"`
	File  string    `mapstructure:"file"`
	// HTTPEnabled logs every request served by the sandbox.
	HTTPEnabled bool `mapstructure:"http_enabled"`
}

type Sentry struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type Discord struct {
	Enabled      bool   `mapstructure:"enabled"`
	Token        string `mapstructure:"token"`
	LogChannelID string `mapstructure:"log_channel_id"`
}

type Sandbox struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	Token          string   `mapstructure:"token"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	MetricsEnabled bool     `mapstructure:"metrics_enabled"`
}

func defaultValues() map[string]any {
	return map[string]any{
		"api.base_url":            "https://online-go.com/api/v1/",
		"api.token":               "",
		"api.timeout":             "10s",
		"api.user_agent":          "modtool",
		"api.rate_limit":          5,
		"moderator.name":          "",
		"moderator.powers":        []string{},
		"general.language":        "en",
		"general.toast_duration":  "2s",
		"log.level":               string(log.Info),
		"log.file":                "",
		"log.http_enabled":        false,
		"sentry.dsn":              "",
		"sentry.environment":      "",
		"discord.enabled":         false,
		"discord.token":           "",
		"discord.log_channel_id":  "",
		"sandbox.listen_addr":     "127.0.0.1:8080",
		"sandbox.token":           "",
		"sandbox.cors_origins":    []string{},
		"sandbox.metrics_enabled": false,
	}
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, errHomeDir := homedir.Dir(); errHomeDir == nil {
			v.AddConfigPath(home)
		}

		v.AddConfigPath(".")
		v.SetConfigName("modtool")
		v.SetConfigType("yml")
	}

	v.SetEnvPrefix("modtool")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for configKey, value := range defaultValues() {
		v.SetDefault(configKey, value)
	}

	return v
}

// Read loads the configuration. An explicit configFile must exist, otherwise a missing modtool.yml is
// not an error and defaults plus environment values are used.
func Read(configFile string) (Config, error) {
	v := newViper(configFile)

	if errReadConfig := v.ReadInConfig(); errReadConfig != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(errReadConfig, &notFound) {
			return Config{}, errors.Join(errReadConfig, ErrReadConfig)
		}
	}

	var conf Config

	hooks := mapstructure.ComposeDecodeHookFunc(
		decodeDuration(),
		decodeLanguage(),
		decodePowers(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if errUnmarshal := v.Unmarshal(&conf, viper.DecodeHook(hooks)); errUnmarshal != nil {
		return Config{}, errors.Join(errUnmarshal, ErrFormatConfig)
	}

	if errValidate := conf.Validate(); errValidate != nil {
		return Config{}, errValidate
	}

	return conf, nil
}

// Validate checks the values that would otherwise only fail once a command runs.
func (c Config) Validate() error {
	baseURL, errURL := url.Parse(c.API.BaseURL)
	if errURL != nil || (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}

	switch c.Log.Level {
	case log.Debug, log.Info, log.Warn, log.Error:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	if c.Discord.Enabled && (c.Discord.Token == "" || c.Discord.LogChannelID == "") {
		return ErrDiscordConfig
	}

	return nil
}

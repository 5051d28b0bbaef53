package cmd

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/config"
	"github.com/ogsmod/modtool/internal/notification"
	"github.com/ogsmod/modtool/internal/translate"
	"github.com/ogsmod/modtool/pkg/log"
)

var (
	BuildVersion = "master" //nolint:gochecknoglobals
	BuildCommit  = ""       //nolint:gochecknoglobals
	BuildDate    = ""       //nolint:gochecknoglobals
)

type BuildInfo struct {
	BuildVersion string
	Commit       string
	Date         string
}

func Version() BuildInfo {
	return BuildInfo{
		BuildVersion: BuildVersion,
		Commit:       BuildCommit,
		Date:         BuildDate,
	}
}

// App holds the services shared by the commands.
type App struct {
	conf      config.Config
	sentry    *sentry.Client
	logCloser func()
}

func NewApp(ctx context.Context) (*App, error) {
	conf, errConfig := config.Read(cfgFile)
	if errConfig != nil {
		slog.Error("Failed to read config", log.ErrAttr(errConfig))

		return nil, errConfig
	}

	app := &App{conf: conf}
	app.setupSentry()
	app.logCloser = log.MustCreateLogger(ctx, conf.Log.File, conf.Log.Level, app.sentry != nil, BuildVersion)

	matched := translate.SetLanguage(conf.General.Language)

	slog.Debug("Starting modtool",
		slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit),
		slog.String("date", BuildDate),
		slog.String("language", matched.String()))

	return app, nil
}

func (a *App) setupSentry() {
	if a.conf.Sentry.DSN == "" {
		return
	}

	sentryClient, err := log.NewSentryClient(a.conf.Sentry.DSN, BuildVersion, a.conf.Sentry.Environment)
	if err != nil {
		slog.Error("Failed to setup sentry client", log.ErrAttr(err))

		return
	}

	a.sentry = sentryClient
}

func (a *App) Client() (*api.Client, error) {
	return api.New(api.Opts{
		BaseURL:   a.conf.API.BaseURL,
		Token:     a.conf.API.Token,
		UserAgent: a.conf.API.UserAgent + "/" + BuildVersion,
		Timeout:   a.conf.API.Timeout,
		RateLimit: a.conf.API.RateLimit,
	})
}

// Notifier returns the discord moderation log when enabled, otherwise a notifier that drops every event.
func (a *App) Notifier() notification.Notifier {
	if !a.conf.Discord.Enabled {
		return notification.NewNull()
	}

	discord, errDiscord := notification.NewDiscord(a.conf.Discord.Token, a.conf.Discord.LogChannelID)
	if errDiscord != nil {
		slog.Error("Failed to setup discord, moderation log disabled", log.ErrAttr(errDiscord))

		return notification.NewNull()
	}

	return discord
}

func (a *App) Close() {
	log.FlushSentry(a.sentry)

	if a.logCloser != nil {
		a.logCloser()
	}
}

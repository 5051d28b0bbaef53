package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dotse/slug"
	sentryslog "github.com/getsentry/sentry-go/slog"
	slogmulti "github.com/samber/slog-multi"
)

type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

// ToSlogLevel maps our levels to the equivalent slog level.
func ToSlogLevel(level Level) slog.Level {
	switch level {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// MustCreateLogger creates and configures the default global log handler. Depending on configuration
// a local log file and an external sentry handler may also be created.
//
// Console output goes to stderr so it never interleaves with prompts and tables written to stdout.
//
// Returns a cleanup function which should be called on program shutdown.
//
// Panics on failure to open log file for writing.
func MustCreateLogger(ctx context.Context, debugLogPath string, level Level, useSentry bool, version string) func() {
	closer := func() {}

	opts := slug.HandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			Level: ToSlogLevel(level),
		},
	}

	var handlers []slog.Handler
	if useSentry {
		handlers = append(handlers, sentryslog.Option{
			Level:     slog.LevelWarn,
			AddSource: true,
		}.NewSentryHandler(ctx))
	}

	if debugLogPath != "" {
		logFile, errLogFile := os.Create(debugLogPath)
		if errLogFile != nil {
			panic(fmt.Sprintf("Failed to open logfile: %v", errLogFile))
		}

		closer = func() {
			if errClose := logFile.Close(); errClose != nil {
				panic(fmt.Sprintf("Failed to close log file: %v", errClose))
			}
		}

		handlers = append(handlers, slug.NewHandler(opts, logFile))
	} else {
		handlers = append(handlers, slug.NewHandler(opts, os.Stderr))
	}

	defaultLogger := slog.New(slogmulti.Fanout(handlers...))

	if version != "" {
		defaultLogger = defaultLogger.With(slog.String("release", version))
	}

	slog.SetDefault(defaultLogger)

	return closer
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("reason", err)
}

func Closer(closer io.Closer) {
	if errClose := closer.Close(); errClose != nil {
		slog.Error("Failed to close", ErrAttr(errClose))
	}
}

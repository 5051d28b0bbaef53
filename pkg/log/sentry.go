package log

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
)

var ErrClientInit = errors.New("failed to initialize sentry client")

// NewSentryClient binds a new sentry client to the current hub. Events logged at warn level and above through
// the default logger are forwarded once MustCreateLogger has been called with useSentry enabled.
func NewSentryClient(dsn string, buildVersion string, environment string) (*sentry.Client, error) {
	// Map to the same environment values used by the web frontend to stay consistent.
	env := "production"
	if environment != "" && environment != "release" {
		env = "development"
	}

	hub := sentry.CurrentHub()
	client, errClient := sentry.NewClient(sentry.ClientOptions{
		Dsn:            dsn,
		SendDefaultPII: false,
		SampleRate:     1.0,
		Release:        buildVersion,
		Environment:    env,
	})

	if errClient != nil {
		return nil, errors.Join(errClient, ErrClientInit)
	}

	hub.BindClient(client)

	return client, nil
}

// FlushSentry waits for buffered events to be delivered. The CLI exits right after a single action so
// without this most events would be dropped.
func FlushSentry(client *sentry.Client) {
	if client == nil {
		return
	}

	client.Flush(time.Second * 2)
}

package cmd

import (
	"fmt"

	"github.com/ogsmod/modtool/internal/sandbox"
	"github.com/spf13/cobra"
)

func sandboxCmd() *cobra.Command {
	var (
		listenAddr string
		empty      bool
	)

	command := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve an in-memory copy of the moderation api for testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, errApp := NewApp(ctx)
			if errApp != nil {
				return errApp
			}

			defer app.Close()

			if listenAddr == "" {
				listenAddr = app.conf.Sandbox.ListenAddr
			}

			store := sandbox.NewStore()
			if !empty {
				sandbox.Seed(store)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Sandbox api: http://%s%s/\n", listenAddr, sandbox.BasePath); err != nil {
				return err
			}

			return sandbox.Serve(ctx, store, sandbox.Opts{
				ListenAddr:        listenAddr,
				Token:             app.conf.Sandbox.Token,
				HTTPLogEnabled:    app.conf.Log.HTTPEnabled,
				LogLevel:          app.conf.Log.Level,
				SentryDSN:         app.conf.Sentry.DSN,
				Version:           BuildVersion,
				CORSOrigins:       app.conf.Sandbox.CORSOrigins,
				PrometheusEnabled: app.conf.Sandbox.MetricsEnabled,
			})
		},
	}

	command.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address, defaults to sandbox.listen_addr")
	command.Flags().BoolVar(&empty, "empty", false, "start without the demo games and incidents")

	return command
}

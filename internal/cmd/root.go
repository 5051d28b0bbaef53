// Package cmd implements the CLI (Command Line Interface) of the application.
//
// annul - Annul a game after prompting for a moderator note
// restore - Restore the ranking impact of an annulled game
// incidents - List incident reports
// powers - Show which report types the configured powers can handle
// powers verify - Compare the local power table against one exported by the server
// sandbox - Serve an in-memory copy of the moderation api
// version - Show build information
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cfgFile string //nolint:gochecknoglobals

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:           "modtool",
	Short:         "Moderator tooling for the game server",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	setupCLI()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	errExecute := rootCmd.ExecuteContext(ctx)

	stop()

	if errExecute != nil {
		os.Exit(1)
	}
}

func setupCLI() {
	if BuildVersion == "" {
		BuildVersion = "master"
	}

	rootCmd.Version = BuildVersion

	pc := powersCmd()
	pc.AddCommand(powersVerifyCmd())

	rootCmd.AddCommand(annulCmd(true))
	rootCmd.AddCommand(annulCmd(false))
	rootCmd.AddCommand(incidentsCmd())
	rootCmd.AddCommand(pc)
	rootCmd.AddCommand(sandboxCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/modtool.yml or ./modtool.yml)")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Version()

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "modtool %s (commit: %s, date: %s)\n",
				info.BuildVersion, valueOr(info.Commit, "unknown"), valueOr(info.Date, "unknown"))

			return err
		},
	}
}

func valueOr(value string, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/internal/terminal"
	"github.com/ogsmod/modtool/pkg/json"
	"github.com/ogsmod/modtool/pkg/log"
	"github.com/spf13/cobra"
)

var ErrPowerMismatch = errors.New("power table does not match")

func powersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "powers",
		Short: "Show which report types the configured moderator powers can handle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, errApp := NewApp(cmd.Context())
			if errApp != nil {
				return errApp
			}

			defer app.Close()

			powers := app.conf.Moderator.Powers
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Powers: %s\n", powers); err != nil {
				return err
			}

			return terminal.RenderPowers(cmd.OutOrStdout(), powers)
		},
	}
}

func powersVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Compare the local power table with a JSON export of the server's report type to power map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mismatches, errVerify := verifyPowers(args[0])
			if errVerify != nil {
				return errVerify
			}

			if len(mismatches) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Power table matches")

				return err
			}

			if errRender := terminal.RenderMismatches(cmd.OutOrStdout(), mismatches); errRender != nil {
				return errRender
			}

			return fmt.Errorf("%w: %d differences", ErrPowerMismatch, len(mismatches))
		},
	}
}

func verifyPowers(path string) ([]moderation.PowerMismatch, error) {
	input, errOpen := os.Open(path)
	if errOpen != nil {
		return nil, errOpen
	}

	defer log.Closer(input)

	remote, errDecode := json.Decode[map[string]uint8](input)
	if errDecode != nil {
		return nil, errDecode
	}

	return moderation.PowerMismatches(remote), nil
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/internal/notification"
	"github.com/ogsmod/modtool/internal/terminal"
	"github.com/ogsmod/modtool/pkg/log"
	"github.com/spf13/cobra"
)

var ErrNoAction = errors.New("no action taken")

// notePrompter remembers the last answer so the accepted note can be sent to the moderation log.
type notePrompter struct {
	moderation.Prompter
	last      string
	cancelled bool
}

func (p *notePrompter) Prompt(text string, initial string) (string, bool) {
	value, ok := p.Prompter.Prompt(text, initial)
	p.last = value
	p.cancelled = !ok

	return value, ok
}

func annulCmd(annul bool) *cobra.Command {
	var note string

	use, short := "annul <game_id>", "Annul a game, removing its ranking impact"
	if !annul {
		use, short = "restore <game_id>", "Restore the ranking impact of an annulled game"
	}

	command := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			gameID, errGameID := strconv.ParseInt(args[0], 10, 64)
			if errGameID != nil || gameID <= 0 {
				return fmt.Errorf("%w: %s", moderation.ErrInvalidGame, args[0])
			}

			app, errApp := NewApp(ctx)
			if errApp != nil {
				return errApp
			}

			defer app.Close()

			client, errClient := app.Client()
			if errClient != nil {
				return errClient
			}

			alerter := terminal.NewErrorAlerter(cmd.ErrOrStderr())

			game, errGame := client.Game(ctx, gameID)
			if errGame != nil {
				alerter.Alert(errGame)

				return ErrNoAction
			}

			if game.Annulled == annul {
				slog.Warn("Game already in requested state", slog.Int64("game_id", gameID), slog.Bool("annulled", game.Annulled))
			}

			engine := game.EngineConfig()
			prompter := &notePrompter{Prompter: terminal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())}
			requester := moderation.NewRequester(prompter, client, terminal.NewNotifier(cmd.OutOrStdout()), alerter,
				moderation.WithToastDuration(app.conf.General.ToastDuration))
			notifier := app.Notifier()

			var completed bool

			requester.Annul(ctx, engine, annul, func(annulled bool) {
				completed = true

				event := notification.AnnulEvent{
					Engine:    engine,
					Annul:     annulled,
					Note:      moderation.SanitizeNote(prompter.last, engine),
					Moderator: app.conf.Moderator.Name,
					Powers:    app.conf.Moderator.Powers,
				}

				if errSend := notifier.SendAnnul(ctx, event); errSend != nil {
					slog.Error("Failed to send moderation log", log.ErrAttr(errSend))
				}
			}, note)

			requester.Wait()

			if !completed && !prompter.cancelled {
				return ErrNoAction
			}

			return nil
		},
	}

	command.Flags().StringVarP(&note, "note", "n", "", "initial moderator note, edited at the prompt")

	return command
}

package moderation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ogsmod/modtool/internal/translate"
	"github.com/sourcegraph/conc"
)

var ErrInvalidGame = errors.New("invalid game id")

const defaultToastDuration = 2 * time.Second

// AnnulRequest is the body sent to the moderation/annul endpoint. Annul false restores the ranking impact of
// previously annulled games.
type AnnulRequest struct {
	Games          []int64 `json:"games"`
	Annul          bool    `json:"annul"`
	ModerationNote string  `json:"moderation_note"`
}

// AnnulResult lists the games the server could not update. An empty list means the whole batch succeeded.
type AnnulResult struct {
	Failed []int64 `json:"failed"`
}

// Prompter asks the operator for a line of text, blocking until they answer. ok is false when the operator
// cancelled the prompt.
type Prompter interface {
	Prompt(text string, initial string) (value string, ok bool)
}

// Notifier shows short lived success messages and blocking alerts.
type Notifier interface {
	Toast(message string, duration time.Duration)
	Alert(text string)
}

// ErrorAlerter reports failed requests to the operator.
type ErrorAlerter interface {
	Alert(err error)
}

// Annuller submits annulment requests to the server.
type Annuller interface {
	Annul(ctx context.Context, request AnnulRequest) (AnnulResult, error)
}

type RequesterOpt func(*Requester)

// WithToastDuration overrides how long success toasts stay visible.
func WithToastDuration(duration time.Duration) RequesterOpt {
	return func(r *Requester) {
		if duration > 0 {
			r.toastDuration = duration
		}
	}
}

// Requester runs the annul / restore workflow: prompt for a moderator note, submit it in the background
// and report the outcome through the notifier.
type Requester struct {
	prompter      Prompter
	annuller      Annuller
	notifier      Notifier
	alerter       ErrorAlerter
	toastDuration time.Duration
	inFlight      conc.WaitGroup
}

func NewRequester(prompter Prompter, annuller Annuller, notifier Notifier, alerter ErrorAlerter, opts ...RequesterOpt) *Requester {
	requester := &Requester{
		prompter:      prompter,
		annuller:      annuller,
		notifier:      notifier,
		alerter:       alerter,
		toastDuration: defaultToastDuration,
	}

	for _, opt := range opts {
		opt(requester)
	}

	return requester
}

// Annul prompts for a moderator note and submits a request to annul (annul true) or restore the ranking impact
// of the game. It blocks only while prompting; the request is sent in the background and Annul returns once it
// has been started. Cancelling the prompt aborts silently.
//
// On success a toast is shown and onAnnulled, if set, is called with annul. Partial failures and request errors
// are reported through the notifier and error alerter and onAnnulled is not called. Nothing is returned to the
// caller, use Wait to block until the outcome has been reported.
func (r *Requester) Annul(ctx context.Context, engine EngineConfig, annul bool, onAnnulled func(bool), initPrompt string) {
	if engine.GameID <= 0 {
		r.alerter.Alert(ErrInvalidGame)

		return
	}

	note, ok := r.promptNote(annul, initPrompt)
	if !ok {
		slog.Debug("Annulment prompt cancelled", slog.Int64("game_id", engine.GameID))

		return
	}

	request := AnnulRequest{
		Games:          []int64{engine.GameID},
		Annul:          annul,
		ModerationNote: SanitizeNote(note, engine),
	}

	// Once submitted the request is not cancellable.
	submitCtx := context.WithoutCancel(ctx)

	r.inFlight.Go(func() {
		r.submit(submitCtx, request, onAnnulled)
	})
}

// Wait blocks until all submitted requests have reported their outcome.
func (r *Requester) Wait() {
	r.inFlight.Wait()
}

func (r *Requester) promptNote(annul bool, initPrompt string) (string, bool) {
	text := translate.T("ANNULMENT - Moderator note:")
	if !annul {
		text = translate.T("Un-annulment - Moderator note:")
	}

	for {
		note, ok := r.prompter.Prompt(text, initPrompt)
		if !ok {
			return "", false
		}

		if note = strings.TrimSpace(note); note != "" {
			return note, true
		}
	}
}

func (r *Requester) submit(ctx context.Context, request AnnulRequest, onAnnulled func(bool)) {
	result, errAnnul := r.annuller.Annul(ctx, request)
	if errAnnul != nil {
		r.alerter.Alert(errAnnul)

		return
	}

	slog.Info("Annul result",
		slog.Any("games", request.Games),
		slog.Bool("annul", request.Annul),
		slog.Any("failed", result.Failed))

	if len(result.Failed) > 0 {
		r.notifier.Alert(translate.T("Something went wrong, no action taken!"))

		return
	}

	if request.Annul {
		r.notifier.Toast(translate.T("Game has been annulled"), r.toastDuration)
	} else {
		r.notifier.Toast(translate.T("Game ranking has been restored"), r.toastDuration)
	}

	if onAnnulled != nil {
		onAnnulled(request.Annul)
	}
}

package moderation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/stretchr/testify/require"
)

type answer struct {
	value string
	ok    bool
}

type scriptedPrompter struct {
	answers  []answer
	texts    []string
	initials []string
}

func (p *scriptedPrompter) Prompt(text string, initial string) (string, bool) {
	p.texts = append(p.texts, text)
	p.initials = append(p.initials, initial)

	if len(p.answers) == 0 {
		return "", false
	}

	next := p.answers[0]
	p.answers = p.answers[1:]

	return next.value, next.ok
}

type fakeAnnuller struct {
	mu       sync.Mutex
	requests []moderation.AnnulRequest
	result   moderation.AnnulResult
	err      error
	release  chan struct{}
}

func (a *fakeAnnuller) Annul(_ context.Context, request moderation.AnnulRequest) (moderation.AnnulResult, error) {
	if a.release != nil {
		<-a.release
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, request)

	return a.result, a.err
}

type toast struct {
	message  string
	duration time.Duration
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
	alerts []string
}

func (n *recordingNotifier) Toast(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.toasts = append(n.toasts, toast{message: message, duration: duration})
}

func (n *recordingNotifier) Alert(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.alerts = append(n.alerts, text)
}

type recordingAlerter struct {
	mu   sync.Mutex
	errs []error
}

func (a *recordingAlerter) Alert(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.errs = append(a.errs, err)
}

type callbackRecorder struct {
	mu    sync.Mutex
	calls []bool
}

func (c *callbackRecorder) onAnnulled(annul bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, annul)
}

type harness struct {
	prompter  *scriptedPrompter
	annuller  *fakeAnnuller
	notifier  *recordingNotifier
	alerter   *recordingAlerter
	callback  *callbackRecorder
	requester *moderation.Requester
}

func newHarness(answers ...answer) *harness {
	h := &harness{
		prompter: &scriptedPrompter{answers: answers},
		annuller: &fakeAnnuller{},
		notifier: &recordingNotifier{},
		alerter:  &recordingAlerter{},
		callback: &callbackRecorder{},
	}
	h.requester = moderation.NewRequester(h.prompter, h.annuller, h.notifier, h.alerter)

	return h
}

func testEngine() moderation.EngineConfig {
	return moderation.EngineConfig{
		GameID: 5150,
		Players: moderation.Players{
			Black: moderation.Player{ID: 123, Username: "kuro"},
			White: moderation.Player{ID: 456, Username: "shiro"},
		},
	}
}

func TestAnnulCancelled(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{ok: false})
	h.requester.Annul(t.Context(), testEngine(), true, h.callback.onAnnulled, "seed")
	h.requester.Wait()

	require.Len(t, h.prompter.texts, 1)
	require.Empty(t, h.annuller.requests)
	require.Empty(t, h.callback.calls)
	require.Empty(t, h.notifier.toasts)
	require.Empty(t, h.notifier.alerts)
	require.Empty(t, h.alerter.errs)
}

func TestAnnulRepromptsOnBlankInput(t *testing.T) {
	t.Parallel()

	h := newHarness(
		answer{value: "", ok: true},
		answer{value: "   \t ", ok: true},
		answer{value: " black stalled ", ok: true},
	)
	h.requester.Annul(t.Context(), testEngine(), true, h.callback.onAnnulled, "seed text")
	h.requester.Wait()

	require.Equal(t, []string{"seed text", "seed text", "seed text"}, h.prompter.initials)
	require.Equal(t, []string{
		"ANNULMENT - Moderator note:",
		"ANNULMENT - Moderator note:",
		"ANNULMENT - Moderator note:",
	}, h.prompter.texts)
	require.Equal(t, []moderation.AnnulRequest{{
		Games:          []int64{5150},
		Annul:          true,
		ModerationNote: "player 123 stalled",
	}}, h.annuller.requests)
}

func TestAnnulCancelAfterBlankInput(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{value: " ", ok: true}, answer{ok: false})
	h.requester.Annul(t.Context(), testEngine(), false, h.callback.onAnnulled, "")
	h.requester.Wait()

	require.Len(t, h.prompter.texts, 2)
	require.Equal(t, "Un-annulment - Moderator note:", h.prompter.texts[0])
	require.Empty(t, h.annuller.requests)
	require.Empty(t, h.callback.calls)
}

func TestAnnulSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		annul bool
		toast string
	}{
		{name: "annul", annul: true, toast: "Game has been annulled"},
		{name: "restore", annul: false, toast: "Game ranking has been restored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(answer{value: "White escaped", ok: true})
			h.requester.Annul(t.Context(), testEngine(), tt.annul, h.callback.onAnnulled, "")
			h.requester.Wait()

			require.Equal(t, []moderation.AnnulRequest{{
				Games:          []int64{5150},
				Annul:          tt.annul,
				ModerationNote: "player 456 escaped",
			}}, h.annuller.requests)
			require.Equal(t, []toast{{message: tt.toast, duration: 2 * time.Second}}, h.notifier.toasts)
			require.Empty(t, h.notifier.alerts)
			require.Equal(t, []bool{tt.annul}, h.callback.calls)
		})
	}
}

func TestAnnulSuccessWithoutCallback(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{value: "sandbagging", ok: true})
	h.requester.Annul(t.Context(), testEngine(), true, nil, "")
	h.requester.Wait()

	require.Len(t, h.notifier.toasts, 1)
}

func TestAnnulPartialFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{value: "troll game", ok: true})
	h.annuller.result = moderation.AnnulResult{Failed: []int64{5150}}
	h.requester.Annul(t.Context(), testEngine(), true, h.callback.onAnnulled, "")
	h.requester.Wait()

	require.Equal(t, []string{"Something went wrong, no action taken!"}, h.notifier.alerts)
	require.Empty(t, h.notifier.toasts)
	require.Empty(t, h.callback.calls)
	require.Empty(t, h.alerter.errs)
}

func TestAnnulTransportError(t *testing.T) {
	t.Parallel()

	errTransport := errors.New("connection refused")

	h := newHarness(answer{value: "troll game", ok: true})
	h.annuller.err = errTransport
	h.requester.Annul(t.Context(), testEngine(), true, h.callback.onAnnulled, "")
	h.requester.Wait()

	require.Len(t, h.alerter.errs, 1)
	require.ErrorIs(t, h.alerter.errs[0], errTransport)
	require.Empty(t, h.notifier.toasts)
	require.Empty(t, h.notifier.alerts)
	require.Empty(t, h.callback.calls)
}

func TestAnnulInvalidGame(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{value: "note", ok: true})
	h.requester.Annul(t.Context(), moderation.EngineConfig{}, true, h.callback.onAnnulled, "")
	h.requester.Wait()

	require.Empty(t, h.prompter.texts)
	require.Empty(t, h.annuller.requests)
	require.Len(t, h.alerter.errs, 1)
	require.ErrorIs(t, h.alerter.errs[0], moderation.ErrInvalidGame)
}

func TestAnnulReturnsBeforeResponse(t *testing.T) {
	t.Parallel()

	h := newHarness(answer{value: "escaping", ok: true})
	h.annuller.release = make(chan struct{})

	ctx, cancel := context.WithCancel(t.Context())
	h.requester.Annul(ctx, testEngine(), true, h.callback.onAnnulled, "")

	// Cancelling the caller context must not abort the submitted request.
	cancel()

	h.callback.mu.Lock()
	require.Empty(t, h.callback.calls)
	h.callback.mu.Unlock()

	close(h.annuller.release)
	h.requester.Wait()

	require.Equal(t, []bool{true}, h.callback.calls)
	require.Len(t, h.notifier.toasts, 1)
}

func TestAnnulToastDuration(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{answers: []answer{{value: "note", ok: true}}}
	notifier := &recordingNotifier{}
	requester := moderation.NewRequester(prompter, &fakeAnnuller{}, notifier, &recordingAlerter{},
		moderation.WithToastDuration(5*time.Second))

	requester.Annul(t.Context(), testEngine(), true, nil, "")
	requester.Wait()

	require.Equal(t, []toast{{message: "Game has been annulled", duration: 5 * time.Second}}, notifier.toasts)
}

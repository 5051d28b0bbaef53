package terminal

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/internal/translate"
	"github.com/ogsmod/modtool/pkg/log"
)

var (
	toastColour = color.New(color.FgGreen)           //nolint:gochecknoglobals
	alertColour = color.New(color.FgRed, color.Bold) //nolint:gochecknoglobals
)

// Notifier prints toasts and alerts. A terminal has no transient surface so toasts are printed once and the
// duration is only logged.
type Notifier struct {
	out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Toast(message string, duration time.Duration) {
	slog.Debug("Toast", slog.String("message", message), slog.Duration("duration", duration))

	_, _ = toastColour.Fprintln(n.out, message)
}

func (n *Notifier) Alert(text string) {
	_, _ = alertColour.Fprintln(n.out, text)
}

// ErrorAlerter logs failed requests and shows the operator the reason. Problem documents returned by the
// server are shown as title and detail, anything else as the error text.
type ErrorAlerter struct {
	out io.Writer
}

func NewErrorAlerter(out io.Writer) *ErrorAlerter {
	return &ErrorAlerter{out: out}
}

func (a *ErrorAlerter) Alert(err error) {
	slog.Error("Moderation request failed", log.ErrAttr(err))

	_, _ = alertColour.Fprintln(a.out, translate.T("Request failed")+": "+ErrorMessage(err))
}

// ErrorMessage is the operator facing text for err.
func ErrorMessage(err error) string {
	var apiErr httphelper.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	return err.Error()
}

// Package terminal implements the operator facing side of the moderation workflow for an interactive shell:
// prompts, toasts, alerts and tables.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ogsmod/modtool/pkg/log"
	"golang.org/x/term"
)

// Prompter reads a single line answer for each prompt. On a terminal the line is edited in raw mode, otherwise
// lines are read as is. End of input cancels the prompt.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
	editor *term.Terminal
	fd     int
	tty    bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	prompter := &Prompter{in: in, out: out, reader: bufio.NewReader(in), fd: -1}

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		prompter.fd = int(file.Fd())
		prompter.tty = true
	}

	return prompter
}

// Prompt shows text and waits for an answer. Submitting an empty line accepts initial.
func (p *Prompter) Prompt(text string, initial string) (string, bool) {
	label := text + " "
	if initial != "" {
		label += fmt.Sprintf("[%s] ", initial)
	}

	var (
		line string
		err  error
	)

	if p.tty {
		line, err = p.readRaw(label)
	} else {
		line, err = p.readLine(label)
	}

	if err != nil {
		if !errors.Is(err, io.EOF) {
			slog.Error("Failed to read prompt input", log.ErrAttr(err))
		}

		return "", false
	}

	if line == "" {
		return initial, true
	}

	return line, true
}

func (p *Prompter) readLine(label string) (string, error) {
	if _, err := io.WriteString(p.out, label); err != nil {
		return "", err
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) readRaw(label string) (string, error) {
	oldState, errRaw := term.MakeRaw(p.fd)
	if errRaw != nil {
		return "", errRaw
	}

	defer func() {
		if errRestore := term.Restore(p.fd, oldState); errRestore != nil {
			slog.Error("Failed to restore terminal", log.ErrAttr(errRestore))
		}
	}()

	return p.readEdited(label)
}

// readEdited reads through a single line editor shared by every prompt so input it has already buffered, such
// as the rest of a pasted note, is kept for the next prompt.
func (p *Prompter) readEdited(label string) (string, error) {
	if p.editor == nil {
		screen := struct {
			io.Reader
			io.Writer
		}{p.in, p.out}

		p.editor = term.NewTerminal(screen, label)
	} else {
		p.editor.SetPrompt(label)
	}

	return p.editor.ReadLine()
}

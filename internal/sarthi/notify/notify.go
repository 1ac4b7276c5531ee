// Package notify holds the narrow interfaces for the presentation-side
// collaborators: transient notifications, clipboard access, and voice
// capture. They are fire-and-forget affordances with no state implications
// for the conversation core.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Notifier displays transient advisory notices (the toast of the UI).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Clipboard copies message text for the user.
type Clipboard interface {
	Copy(text string) error
}

// Transcriber provides a single-shot transcription of spoken input.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// StderrNotifier prints notices to a writer, one per line.
type StderrNotifier struct {
	w io.Writer
}

// NewStderrNotifier returns a notifier writing to stderr.
func NewStderrNotifier() *StderrNotifier {
	return &StderrNotifier{w: os.Stderr}
}

func (n *StderrNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "✓ %s\n", msg)
}

func (n *StderrNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "✗ %s\n", msg)
}

// Discard swallows all notices. Useful in tests.
var Discard Notifier = discardNotifier{}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}

// clipboard tools probed in order; the first one found on PATH wins.
var clipboardCommands = []string{"pbcopy", "wl-copy", "xclip -selection clipboard", "xsel --clipboard --input"}

// SystemClipboard returns a clipboard backed by the platform's copy tool, or
// an error when none is available.
func SystemClipboard() (Clipboard, error) {
	for _, command := range clipboardCommands {
		parts := strings.Fields(command)
		if _, err := exec.LookPath(parts[0]); err == nil {
			return &commandClipboard{name: parts[0], args: parts[1:]}, nil
		}
	}
	return nil, errors.New("no clipboard tool found (tried pbcopy, wl-copy, xclip, xsel)")
}

type commandClipboard struct {
	name string
	args []string
}

func (c *commandClipboard) Copy(text string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// UnsupportedTranscriber is the voice-capture stub for platforms without
// speech recognition. Recognition lives in the browser in the original
// client; the terminal client only reports the capability as unavailable.
type UnsupportedTranscriber struct{}

func (UnsupportedTranscriber) Transcribe(context.Context) (string, error) {
	return "", errors.New("voice capture is not supported in the terminal client")
}

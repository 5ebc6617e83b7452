package shared

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the terminal (OSC 52) on remote sessions and
// under GNU screen, and through the native clipboard otherwise.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	if isLocalTmux() {
		return clipboard.WriteAll(text)
	}
	if isRemoteSession() || isGNUScreen() {
		return copyViaOSC52(text)
	}
	if clipboard.Unsupported {
		return copyViaOSC52(text)
	}
	return clipboard.WriteAll(text)
}

// CopiedMsg reports the outcome of CopyCmd. What names the copied thing for
// the status bar.
type CopiedMsg struct {
	What string
	Err  error
}

// CopyCmd copies text off the UI goroutine.
func CopyCmd(cb Clipboard, what, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{What: what, Err: cb.Copy(text)}
	}
}

func isLocalTmux() bool {
	return os.Getenv("TMUX") != "" && !isRemoteSession()
}

func isRemoteSession() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CLIENT") != "" ||
		os.Getenv("SSH_CONNECTION") != ""
}

func isGNUScreen() bool {
	return os.Getenv("STY") != ""
}

// copyViaOSC52 writes the OSC 52 sequence to /dev/tty so it bypasses the
// alt-screen renderer. Inside tmux or screen the sequence is wrapped in the
// matching passthrough.
func copyViaOSC52(text string) (err error) {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case isGNUScreen():
		seq = seq.Screen()
	}

	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = seq.WriteTo(tty)
	return err
}

// Package editor hands a text buffer to the user's $VISUAL or $EDITOR and
// returns the edited text to the component that asked for it.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
)

// FinishedMsg carries the edited text back. Target is the value passed to
// OpenCmd so a parent with several editable fields can route the result.
type FinishedMsg struct {
	Target  string
	Content string
	Err     error
}

// ExecMsg is returned by OpenCmd's command. The parent must answer it with
// msg.ExecCmd(), which suspends the program while the editor runs.
type ExecMsg struct {
	Target  string
	cmd     *exec.Cmd
	tmpPath string
}

// Command returns the configured editor as argv. Values such as
// "code --wait" are split with shell quoting rules.
func Command() ([]string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return []string{"vi"}, nil
	}
	argv, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", editor, err)
	}
	if len(argv) == 0 {
		return []string{"vi"}, nil
	}
	return argv, nil
}

// OpenCmd writes content to a temp markdown file and prepares the editor.
func OpenCmd(target, content string) tea.Cmd {
	return func() tea.Msg {
		argv, err := Command()
		if err != nil {
			return FinishedMsg{Target: target, Err: err}
		}

		f, err := os.CreateTemp("", "skillforge-*.md")
		if err != nil {
			return FinishedMsg{Target: target, Err: err}
		}
		path := f.Name()
		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(path)
			if werr == nil {
				werr = cerr
			}
			return FinishedMsg{Target: target, Err: werr}
		}

		// #nosec G204 -- the editor comes from the user's own VISUAL/EDITOR
		cmd := exec.Command(argv[0], append(argv[1:], path)...)
		return ExecMsg{Target: target, cmd: cmd, tmpPath: path}
	}
}

// ExecCmd runs the editor and reads the file back once it exits. Trailing
// newlines added by editors on save are dropped.
func (msg ExecMsg) ExecCmd() tea.Cmd {
	return tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(msg.tmpPath) }()
		if err != nil {
			return FinishedMsg{Target: msg.Target, Err: err}
		}
		data, err := os.ReadFile(msg.tmpPath)
		if err != nil {
			return FinishedMsg{Target: msg.Target, Err: err}
		}
		return FinishedMsg{Target: msg.Target, Content: strings.TrimRight(string(data), "\n")}
	})
}

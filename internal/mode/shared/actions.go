// Package shared provides common utilities shared between mode controllers.
package shared

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"text/template"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/config"
	"github.com/zjrosen/skillforge/internal/log"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// WorkflowContext provides template variables for user-defined actions.
// Fields are exported for text/template access.
type WorkflowContext struct {
	ID       string
	Name     string
	Priority string
	Status   string
}

// NewWorkflowContext creates a WorkflowContext from a workflow record.
func NewWorkflowContext(wf *wfdomain.Workflow) WorkflowContext {
	if wf == nil {
		return WorkflowContext{}
	}
	return WorkflowContext{
		ID:       wf.ID,
		Name:     wf.Name,
		Priority: string(wf.Priority.OrDefault()),
		Status:   string(wf.Status.Normalize()),
	}
}

// renderCommand renders a command template with the given WorkflowContext.
// Commands without template markers are returned unchanged.
func renderCommand(tmpl string, ctx WorkflowContext) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// ActionExecutedMsg is returned when a user action command is launched.
type ActionExecutedMsg struct {
	Name string
	Err  error
}

// ExecuteAction starts a user-defined action and returns without waiting for
// the command to finish.
func ExecuteAction(name string, action config.ActionConfig, wf *wfdomain.Workflow) tea.Cmd {
	label := action.Description
	if label == "" {
		label = name
	}
	return func() tea.Msg {
		rendered, err := renderCommand(action.Command, NewWorkflowContext(wf))
		if err != nil {
			return ActionExecutedMsg{Name: label, Err: fmt.Errorf("template rendering failed: %w", err)}
		}

		log.Debug(log.CatUI, "Executing user action", "action", label, "command", rendered)

		// #nosec G204 -- command is user-configured
		cmd := exec.Command("sh", "-c", rendered)
		if err := cmd.Start(); err != nil {
			return ActionExecutedMsg{Name: label, Err: fmt.Errorf("failed to start command: %w", err)}
		}
		go func() { _ = cmd.Wait() }()

		log.Debug(log.CatUI, "User action launched", "action", label, "pid", cmd.Process.Pid)
		return ActionExecutedMsg{Name: label}
	}
}

// MatchUserAction reports the configured action bound to the pressed key.
func MatchUserAction(msg tea.KeyMsg, actions map[string]config.ActionConfig) (config.ActionConfig, string, bool) {
	if len(actions) == 0 {
		return config.ActionConfig{}, "", false
	}

	pressed := config.NormalizeKey(msg.String())
	for name, action := range actions {
		if config.NormalizeKey(action.Key) == pressed {
			return action, name, true
		}
	}
	return config.ActionConfig{}, "", false
}

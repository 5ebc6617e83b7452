package dashboard

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/skillforge/internal/agents"
	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/log"
	"github.com/zjrosen/skillforge/internal/mode/shared"
	"github.com/zjrosen/skillforge/internal/ui/insightspanel"
	"github.com/zjrosen/skillforge/internal/ui/offline"
	"github.com/zjrosen/skillforge/internal/ui/shared/editor"
	"github.com/zjrosen/skillforge/internal/ui/shared/modal"
	"github.com/zjrosen/skillforge/internal/ui/styles"
	"github.com/zjrosen/skillforge/internal/ui/workflowdetail"
	"github.com/zjrosen/skillforge/internal/ui/workflowform"
	"github.com/zjrosen/skillforge/internal/ui/workflowlist"
	"github.com/zjrosen/skillforge/internal/workflows"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ThemeChangedMsg:
		if err := styles.ApplyTheme(msg.Theme); err != nil {
			log.ErrorErr(log.CatConfig, "Theme reload failed", err)
			return m, m.showToast("Theme not applied: "+err.Error(), true)
		}
		m.resize()
		return m, m.showToast("Theme updated", false)

	case workflowsLoadedMsg:
		return m.handleWorkflowsLoaded(msg)

	case workflowCreatedMsg:
		return m.handleWorkflowCreated(msg)

	case workflowDeletedMsg:
		return m.handleWorkflowDeleted(msg)

	case detailLoadedMsg:
		if m.screen != screenDetail || m.detail.ID() != msg.id {
			return m, nil
		}
		if msg.err != nil {
			m.detail = m.detail.SetError(detailErrorText(msg.err))
			return m, nil
		}
		m.detail = m.detail.SetWorkflow(msg.workflow)
		return m, nil

	case insightsLoadedMsg:
		m.insights = m.insights.SetReport(msg.report, msg.at)
		return m, nil

	case autoRefreshMsg:
		cmds := []tea.Cmd{m.scheduleAutoRefresh()}
		if !m.refreshing && !m.offlineMode {
			m.refreshing = true
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case offline.RetryMsg:
		m.refreshing = true
		return m, m.refreshCmd()

	case workflowlist.RefreshRequestMsg:
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case workflowlist.OpenDetailMsg:
		m.screen = screenDetail
		m.detail = workflowdetail.New(msg.ID)
		m.resize()
		return m, m.detailCmd(msg.ID)

	case workflowlist.DeleteRequestMsg:
		confirm := modal.New(modal.Config{
			Title:        "Delete " + msg.Name,
			Message:      workflows.RemovePrompt,
			ConfirmLabel: "Delete",
			CancelLabel:  "Cancel",
			Destructive:  true,
			Payload:      msg.ID,
		})
		confirm.SetSize(m.width, m.height)
		m.confirm = &confirm
		return m, nil

	case workflowlist.NewWorkflowMsg:
		m.screen = screenForm
		m.resize()
		return m, m.form.Init()

	case workflowform.SubmitMsg:
		return m, m.createCmd(msg.Request)

	case workflowform.CancelMsg, workflowdetail.CloseMsg:
		m.screen = screenList
		return m, nil

	case modal.ConfirmedMsg:
		m.confirm = nil
		id, _ := msg.Payload.(string)
		return m, m.deleteCmd(id)

	case modal.CancelMsg:
		m.confirm = nil
		return m, nil

	case insightspanel.RefreshMsg:
		return m, m.loadInsights()

	case shared.CopiedMsg:
		if msg.Err != nil {
			return m, m.showToast("Copy failed: "+msg.Err.Error(), true)
		}
		return m, m.showToast("Copied "+msg.What, false)

	case shared.ActionExecutedMsg:
		if msg.Err != nil {
			return m, m.showToast(msg.Name+": "+msg.Err.Error(), true)
		}
		return m, m.showToast("Started "+msg.Name, false)

	case editor.ExecMsg, editor.FinishedMsg:
		var formCmd, chatCmd tea.Cmd
		m.form, formCmd = m.form.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(formCmd, chatCmd)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Replies, spinner ticks and cursor blinks.
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m Model) handleWorkflowsLoaded(msg workflowsLoadedMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false
	if msg.err != nil {
		text := api.UserMessage(msg.err, "Failed to load workflows")
		if !m.cfg.Store.Loaded() {
			m.offlineMode = true
			m.offline = m.offline.WithError(text).SetSize(m.width, m.height)
			return m, nil
		}
		return m, m.showToast("Failed to refresh workflows: "+text, true)
	}

	m.offlineMode = false
	m.list = m.list.SetView(msg.view)
	return m, nil
}

func (m Model) handleWorkflowCreated(msg workflowCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.form = m.form.Failed("Error: " + api.UserMessage(msg.err, "Failed to create workflow"))
		return m, nil
	}

	r := msg.result
	m.form = m.form.Done()
	m.list = m.list.SetView(m.cfg.Store.View())
	m.screen = screenDetail
	m.detail = workflowdetail.New(r.WorkflowID)
	m.resize()
	m.detail = m.detail.SetWorkflow(wfdomain.Workflow{
		ID:          r.WorkflowID,
		Name:        msg.req.Name,
		Description: msg.req.Description,
		Priority:    msg.req.Priority,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		Result:      r.Result,
	})

	return m, tea.Batch(
		m.showToast(fmt.Sprintf("✅ Workflow Created Successfully (ID: %s)", r.WorkflowID), false),
		m.detailCmd(r.WorkflowID),
	)
}

func (m Model) handleWorkflowDeleted(msg workflowDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, workflows.ErrRemoveCancelled) {
			return m, nil
		}
		return m, m.showToast(api.UserMessage(msg.err, "Failed to delete workflow"), true)
	}

	m.list = m.list.SetView(m.cfg.Store.View())
	if m.screen == screenDetail && m.detail.ID() == msg.id {
		m.screen = screenList
	}
	return m, m.showToast(fmt.Sprintf("✅ Workflow deleted successfully (ID: %s)", msg.id), false)
}

func detailErrorText(err error) string {
	var notFound *wfdomain.NotFoundError
	if errors.As(err, &notFound) {
		return "Workflow not found"
	}
	return api.UserMessage(err, "Failed to load workflow details")
}

func (m *Model) loadInsights() tea.Cmd {
	if m.insights.Loading() || m.cfg.Insights == nil {
		return nil
	}
	m.insights = m.insights.SetLoading()
	return m.insightsCmd()
}

// switchTab shows t. Opening Workflows reloads the list and opening
// Insights reloads the report.
func (m Model) switchTab(t Tab) (Model, tea.Cmd) {
	if t == m.activeTab {
		return m, nil
	}
	m.activeTab = t
	m.chat = m.chat.SetVisible(t == TabAgents).SetFocused(t == TabAgents)

	switch t {
	case TabWorkflows:
		if m.screen == screenList && !m.refreshing {
			m.refreshing = true
			return m, m.refreshCmd()
		}
	case TabInsights:
		return m, m.loadInsights()
	}
	return m, nil
}

// typing reports whether the focused component takes free text, in which
// case single-letter shortcuts go to it.
func (m Model) typing() bool {
	return m.activeTab == TabAgents || (m.activeTab == TabWorkflows && m.screen == screenForm)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.offlineMode {
		var cmd tea.Cmd
		m.offline, cmd = m.offline.Update(msg)
		return m, cmd
	}

	if m.confirm != nil {
		updated, cmd := m.confirm.Update(msg)
		m.confirm = &updated
		return m, cmd
	}

	inForm := m.activeTab == TabWorkflows && m.screen == screenForm
	switch key {
	case "tab":
		if !inForm {
			return m.switchTab((m.activeTab + 1) % Tab(len(tabNames)))
		}
	case "shift+tab":
		if !inForm {
			return m.switchTab((m.activeTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		}
	}

	if !m.typing() {
		switch key {
		case "1", "2", "3":
			return m.switchTab(Tab(key[0] - '1'))
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabWorkflows:
		return m.handleWorkflowKey(msg)
	case TabAgents:
		if key == "ctrl+y" {
			return m, m.copyLastReply()
		}
		m.chat, cmd = m.chat.Update(msg)
	case TabInsights:
		m.insights, cmd = m.insights.Update(msg)
	}
	return m, cmd
}

func (m Model) handleWorkflowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenForm:
		m.form, cmd = m.form.Update(msg)
	case screenDetail:
		if msg.String() == "y" {
			if wf, ok := m.detail.Workflow(); ok {
				return m, shared.CopyCmd(m.cfg.Clipboard, "workflow ID", wf.ID)
			}
			return m, nil
		}
		m.detail, cmd = m.detail.Update(msg)
	default:
		if wf, ok := m.list.Selected(); ok {
			if msg.String() == "y" {
				return m, shared.CopyCmd(m.cfg.Clipboard, "workflow ID", wf.ID)
			}
			if action, name, found := shared.MatchUserAction(msg, m.cfg.UI.Actions); found {
				return m, shared.ExecuteAction(name, action, &wf)
			}
		}
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) copyLastReply() tea.Cmd {
	transcript := m.chat.Session().Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == agents.RoleAssistant {
			return shared.CopyCmd(m.cfg.Clipboard, "agent reply", transcript[i].Content)
		}
	}
	return nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.offlineMode || m.confirm != nil {
		return m, nil
	}
	if m.cfg.Zones != nil && msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		for i := range tabNames {
			if m.cfg.Zones.Get(tabZoneID(Tab(i))).InBounds(msg) {
				return m.switchTab(Tab(i))
			}
		}
	}
	if m.activeTab == TabAgents {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize pushes the body size to every component. Components with cached
// content re-render it, which also picks up theme changes.
func (m *Model) resize() {
	w, h := m.bodySize()
	m.list = m.list.SetSize(w, h)
	m.form = m.form.SetSize(w, h)
	m.detail = m.detail.SetSize(w, h)
	m.chat = m.chat.SetSize(w, h)
	m.insights = m.insights.SetSize(w, h)
	m.offline = m.offline.SetSize(m.width, m.height)
	if m.confirm != nil {
		m.confirm.SetSize(m.width, m.height)
	}
}

func (m Model) bodySize() (int, int) {
	chrome := tabBarHeight
	if m.cfg.UI.ShowStatusBar {
		chrome += statusBarHeight
	}
	return m.width, max(m.height-chrome, 3)
}

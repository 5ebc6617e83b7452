// Package dashboard implements the tabbed SkillForge TUI.
//
// The dashboard owns the workflow store, the insights service and the
// component models. Components never call each other: they emit intent
// messages, the dashboard runs the matching operation in a tea.Cmd and feeds
// the result back as another message.
package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/skillforge/internal/config"
	"github.com/zjrosen/skillforge/internal/insights"
	"github.com/zjrosen/skillforge/internal/mode/shared"
	"github.com/zjrosen/skillforge/internal/ui/insightspanel"
	"github.com/zjrosen/skillforge/internal/ui/offline"
	"github.com/zjrosen/skillforge/internal/ui/shared/chatpanel"
	"github.com/zjrosen/skillforge/internal/ui/shared/modal"
	"github.com/zjrosen/skillforge/internal/ui/workflowdetail"
	"github.com/zjrosen/skillforge/internal/ui/workflowform"
	"github.com/zjrosen/skillforge/internal/ui/workflowlist"
	"github.com/zjrosen/skillforge/internal/workflows"
	wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// Tab is a top-level dashboard tab.
type Tab int

const (
	TabWorkflows Tab = iota
	TabAgents
	TabInsights
)

var tabNames = []string{"Workflows", "Agents", "Insights"}

// String returns the tab title.
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// workflowScreen is what the Workflows tab is showing.
type workflowScreen int

const (
	screenList workflowScreen = iota
	screenForm
	screenDetail
)

const toastDuration = 4 * time.Second

// Config wires the dashboard.
type Config struct {
	Store    *workflows.Store
	Insights *insights.Service
	Chat     chatpanel.Config
	UI       config.UIConfig
	BaseURL  string
	// Timeout bounds each API operation started from the UI.
	Timeout   time.Duration
	Clipboard shared.Clipboard
	// Zones enables mouse support for tabs. Optional.
	Zones *zone.Manager
	// Now is the clock used for insights timestamps. Defaults to time.Now.
	Now func() time.Time
}

// ThemeChangedMsg applies a new theme while the program runs. The config
// watcher sends it when the config file changes.
type ThemeChangedMsg struct {
	Theme config.ThemeConfig
}

type (
	workflowsLoadedMsg struct {
		view workflows.ListView
		err  error
	}
	workflowCreatedMsg struct {
		req    wfdomain.CreateRequest
		result wfdomain.CreateResult
		err    error
	}
	workflowDeletedMsg struct {
		id  string
		err error
	}
	detailLoadedMsg struct {
		id       string
		workflow wfdomain.Workflow
		err      error
	}
	insightsLoadedMsg struct {
		report insights.Report
		at     time.Time
	}
	autoRefreshMsg  struct{}
	toastExpiredMsg struct{ seq int }
)

// Model is the root dashboard model.
type Model struct {
	cfg Config

	activeTab Tab
	screen    workflowScreen

	list     workflowlist.Model
	form     workflowform.Model
	detail   workflowdetail.Model
	chat     chatpanel.Model
	insights insightspanel.Model
	offline  offline.Model
	confirm  *modal.Model

	// offlineMode is set while the very first load has not succeeded.
	offlineMode bool
	refreshing  bool

	toast    string
	toastErr bool
	toastSeq int

	width  int
	height int
}

// New creates the dashboard on the Workflows tab.
func New(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = shared.SystemClipboard{}
	}
	chatCfg := cfg.Chat
	if chatCfg.Zones == nil {
		chatCfg.Zones = cfg.Zones
	}
	return Model{
		cfg:      cfg,
		list:     workflowlist.New(),
		form:     workflowform.New(),
		chat:     chatpanel.New(chatCfg).SetVisible(false),
		insights: insightspanel.New(),
		offline:  offline.New(cfg.BaseURL),
	}
}

// Init loads the workflow list and starts the auto-refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.scheduleAutoRefresh())
}

// ActiveTab returns the selected tab.
func (m Model) ActiveTab() Tab { return m.activeTab }

// Offline reports whether the offline screen is shown.
func (m Model) Offline() bool { return m.offlineMode }

func (m Model) context() (context.Context, context.CancelFunc) {
	if m.cfg.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.cfg.Timeout)
}

func (m Model) refreshCmd() tea.Cmd {
	store := m.cfg.Store
	ctx, cancel := m.context()
	return func() tea.Msg {
		defer cancel()
		err := store.Refresh(ctx)
		return workflowsLoadedMsg{view: store.View(), err: err}
	}
}

func (m Model) createCmd(req wfdomain.CreateRequest) tea.Cmd {
	store := m.cfg.Store
	ctx, cancel := m.context()
	return func() tea.Msg {
		defer cancel()
		result, err := store.Create(ctx, req)
		return workflowCreatedMsg{req: req, result: result, err: err}
	}
}

// deleteCmd runs after the confirmation modal was accepted, so the store's
// confirmer always answers yes.
func (m Model) deleteCmd(id string) tea.Cmd {
	store := m.cfg.Store
	ctx, cancel := m.context()
	return func() tea.Msg {
		defer cancel()
		return workflowDeletedMsg{id: id, err: store.Remove(ctx, id, wfapp.AlwaysConfirm)}
	}
}

func (m Model) detailCmd(id string) tea.Cmd {
	store := m.cfg.Store
	ctx, cancel := m.context()
	return func() tea.Msg {
		defer cancel()
		wf, err := store.Detail(ctx, id)
		return detailLoadedMsg{id: id, workflow: wf, err: err}
	}
}

func (m Model) insightsCmd() tea.Cmd {
	svc := m.cfg.Insights
	if svc == nil {
		return nil
	}
	total := len(m.cfg.Store.View().Workflows)
	now := m.cfg.Now
	ctx, cancel := m.context()
	return func() tea.Msg {
		defer cancel()
		return insightsLoadedMsg{report: svc.Load(ctx, total), at: now()}
	}
}

func (m Model) scheduleAutoRefresh() tea.Cmd {
	if !m.cfg.UI.AutoRefresh || m.cfg.UI.AutoRefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.cfg.UI.AutoRefreshInterval, func(time.Time) tea.Msg { return autoRefreshMsg{} })
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastErr = isErr
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// Package chatpanel is the conversation view for the agent personas.
//
// The panel owns one agents.Session per persona and switches between them
// with persona tabs. Sending echoes the message at once and resolves the
// exchange in a tea.Cmd; the session's busy state disables sending until the
// reply (or error entry) arrives.
package chatpanel

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/skillforge/internal/agents"
	"github.com/zjrosen/skillforge/internal/log"
	"github.com/zjrosen/skillforge/internal/ui/shared/editor"
	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// ProcessingLabel replaces the send hint while a reply is outstanding.
const ProcessingLabel = "Processing..."

const (
	editorTarget = "chatpanel.input"
	inputHeight  = 3
	tabsHeight   = 1
	footerHeight = 1
)

// Tab is the index of a persona tab.
type Tab int

// TabChat is the first persona tab.
const TabChat Tab = 0

// Config wires the panel.
type Config struct {
	// Client performs exchanges. api.Client implements it.
	Client agents.Interactor
	// Timeout bounds each exchange. Zero means no timeout.
	Timeout time.Duration
	// Zones makes persona tabs clickable. Optional.
	Zones *zone.Manager
	// SessionOptions are passed to every session.
	SessionOptions []agents.SessionOption
}

// ReplyMsg carries the resolved entry of an exchange.
type ReplyMsg struct {
	SessionID string
	Entry     agents.Message
}

// Model is the panel state.
type Model struct {
	sessions  []*agents.Session
	activeTab Tab
	timeout   time.Duration
	zones     *zone.Manager

	input   textarea.Model
	spinner spinner.Model
	// pane is shared by copies of the model so scroll position and the
	// dirty flag survive View's value receiver.
	pane *paneState

	visible bool
	focused bool
	notice  string
	width   int
	height  int
}

type paneState struct {
	viewport      viewport.Model
	dirty         bool
	hasNewContent bool
}

// New creates the panel with one idle session per persona.
func New(cfg Config) Model {
	personas := agents.Personas()
	sessions := make([]*agents.Session, len(personas))
	for i, p := range personas {
		sessions[i] = agents.NewSession(p, cfg.Client, cfg.SessionOptions...)
	}

	input := textarea.New()
	input.Placeholder = "Ask the agent... (enter to send, alt+enter for a new line)"
	input.ShowLineNumbers = false
	input.Prompt = "┃ "
	input.SetHeight(inputHeight)
	input.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		sessions: sessions,
		timeout:  cfg.Timeout,
		zones:    cfg.Zones,
		input:    input,
		spinner:  sp,
		pane:     &paneState{viewport: viewport.New(0, 0), dirty: true},
		visible:  true,
		focused:  true,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Session returns the session of the active persona tab.
func (m Model) Session() *agents.Session {
	return m.sessions[m.activeTab]
}

// SetVisible shows or hides the panel. Hidden panels still accept editor
// results and replies so nothing is lost while another tab is open.
func (m Model) SetVisible(visible bool) Model {
	m.visible = visible
	return m
}

// SetFocused toggles input focus.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	if focused {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

// SetSize sets the panel size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-2, 10))
	m.pane.dirty = true
	return m
}

// Update handles input, replies and editor results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyMsg:
		for i, s := range m.sessions {
			if s.ID() != msg.SessionID {
				continue
			}
			if Tab(i) == m.activeTab {
				if !m.pane.viewport.AtBottom() {
					m.pane.hasNewContent = true
				}
				m.pane.dirty = true
			}
		}
		return m, nil

	case editor.ExecMsg:
		if msg.Target == editorTarget {
			return m, msg.ExecCmd()
		}
		return m, nil

	case editor.FinishedMsg:
		if msg.Target != editorTarget {
			return m, nil
		}
		if msg.Err != nil {
			m.notice = "Editor failed: " + msg.Err.Error()
			return m, nil
		}
		m.input.SetValue(msg.Content)
		return m, nil

	case spinner.TickMsg:
		if !m.anyBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n", "ctrl+right":
		return m.selectTab((m.activeTab + 1) % Tab(len(m.sessions))), nil
	case "ctrl+p", "ctrl+left":
		return m.selectTab((m.activeTab + Tab(len(m.sessions)) - 1) % Tab(len(m.sessions))), nil
	case "ctrl+l":
		m.Session().Clear()
		m.notice = ""
		m.pane.hasNewContent = false
		m.pane.dirty = true
		m.pane.viewport.GotoBottom()
		return m, nil
	case "ctrl+g":
		return m, editor.OpenCmd(editorTarget, m.input.Value())
	case "pgup", "pgdown", "ctrl+up", "ctrl+down":
		return m.scroll(msg)
	}

	if !m.focused {
		return m, nil
	}
	if msg.String() == "enter" {
		return m.send()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m.scroll(msg)
	}
	for i, s := range m.sessions {
		if m.zones.Get(tabZoneID(s.Persona().Type)).InBounds(msg) {
			return m.selectTab(Tab(i)), nil
		}
	}
	return m, nil
}

func (m Model) scroll(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.pane.viewport, cmd = m.pane.viewport.Update(msg)
	if m.pane.viewport.AtBottom() {
		m.pane.hasNewContent = false
	}
	return m, cmd
}

func (m Model) selectTab(t Tab) Model {
	if t == m.activeTab {
		return m
	}
	m.activeTab = t
	m.notice = ""
	m.pane.hasNewContent = false
	m.pane.dirty = true
	m.pane.viewport.GotoBottom()
	return m
}

// send starts an exchange on the active session. Blank input and a busy
// session are both no-ops.
func (m Model) send() (Model, tea.Cmd) {
	session := m.Session()
	pending, err := session.Begin(m.input.Value())
	switch {
	case errors.Is(err, agents.ErrEmptyMessage):
		return m, nil
	case errors.Is(err, agents.ErrBusy):
		m.notice = "Wait for the current response before sending another message"
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.input.Reset()
	m.notice = ""
	m.pane.dirty = true
	m.pane.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, resolveCmd(session, pending, m.timeout))
}

func resolveCmd(session *agents.Session, pending agents.Pending, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		entry := session.Resolve(ctx, pending)
		log.Debug(log.CatUI, "Agent reply received", "session", session.ID(), "role", string(entry.Role))
		return ReplyMsg{SessionID: session.ID(), Entry: entry}
	}
}

func (m Model) anyBusy() bool {
	for _, s := range m.sessions {
		if s.State() == agents.StateAwaitingResponse {
			return true
		}
	}
	return false
}

func tabZoneID(agentType string) string {
	return "chat-tab-" + agentType
}

// View renders tabs, transcript, input and footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	session := m.Session()
	paneHeight := max(m.height-tabsHeight-inputHeight-footerHeight, 3)
	pane := renderScrollablePane(m.width, paneHeight, paneConfig{
		Viewport:      &m.pane.viewport,
		ContentDirty:  m.pane.dirty,
		HasNewContent: m.pane.hasNewContent,
		Title:         session.Persona().Name,
		Focused:       m.focused,
	}, func(wrapWidth int) string {
		return renderTranscript(session.Persona(), session.Transcript(), wrapWidth)
	})
	m.pane.dirty = false

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		pane,
		m.input.View(),
		m.footerView(session),
	)
}

func (m Model) tabsView() string {
	tabs := make([]string, len(m.sessions))
	for i, s := range m.sessions {
		style := styles.TabStyle
		if Tab(i) == m.activeTab {
			style = styles.ActiveTabStyle
		}
		label := style.Render(s.Persona().Name)
		if m.zones != nil {
			label = m.zones.Mark(tabZoneID(s.Persona().Type), label)
		}
		tabs[i] = label
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) footerView(session *agents.Session) string {
	var left string
	switch {
	case session.State() == agents.StateAwaitingResponse:
		left = m.spinner.View() + " " + styles.DisabledButton.Render(ProcessingLabel)
	case m.notice != "":
		left = styles.ErrorStyle.Render(m.notice)
	default:
		left = styles.HelpStyle.Render("enter send • ctrl+n/p switch agent • ctrl+l clear • ctrl+g editor")
	}
	return styles.TruncateString(left, m.width)
}

// renderTranscript renders the persona introduction followed by the entries.
func renderTranscript(p agents.Persona, transcript []agents.Message, width int) string {
	blocks := []string{styles.Markdown(hardBreaks(p.Intro+"\n\n"+p.Capabilities), width)}
	for _, msg := range transcript {
		header := styles.RoleLabel(msg.Role, p.Name) + " " + styles.MutedStyle.Render(msg.Timestamp.Format("15:04"))
		var body string
		switch msg.Role {
		case agents.RoleAssistant:
			body = styles.Markdown(msg.Content, width)
		case agents.RoleError:
			body = styles.ErrorStyle.Render(styles.Wrap(msg.Content, width))
		default:
			body = styles.Wrap(msg.Content, width)
		}
		blocks = append(blocks, header+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// hardBreaks keeps single newlines as line breaks when rendered as markdown.
func hardBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "  \n")
}

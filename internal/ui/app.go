package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
	"pillterm/internal/config"
	"pillterm/internal/prefs"
	"pillterm/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewSchedule
	ViewMedicines
	ViewRegister
	ViewChat
	ViewReport
	ViewConditions
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Backend
	Store     *state.Store
	Config    *config.Config
	PollTick  time.Duration
	ThemeName string
	PrefsPath string

	// Refresh re-fetches today's data into the store. Wired by the app
	// layer so manual refresh shares the poller's fetch path.
	Refresh func(context.Context) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.Backend
	store     *state.Store
	config    *config.Config
	prefsPath string
	pollTick  time.Duration
	refresh   func(context.Context) error

	// UI state
	theme       Theme
	styles      Styles
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Per-view state
	schedule   scheduleState
	medicines  medicinesState
	register   registerState
	chat       chatState
	report     reportState
	conditions conditionsState

	// Help overlay
	showHelp bool

	// Transient footer message
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Clinic"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		refresh:     opts.Refresh,
		theme:       theme,
		styles:      theme.Styles(),
		keys:        newKeyMap(),
		currentView: ViewHome,
		schedule:    newScheduleState(),
		register:    newRegisterState(),
		chat:        newChatState(),
		report:      newReportState(),
		conditions:  newConditionsState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initRegisterInputs()
			m.initChatInput()
			m.initReportState()
			m.initConditionsInput()
		}
		m.ready = true
		m.resizeReportViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelections()
		return m, nil

	case refreshDoneMsg:
		if msg.err != nil {
			m.setStatus("refresh failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("refreshed", false)
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case scheduleDetailMsg:
		m.handleScheduleDetail(msg)
		return m, nil

	case registerDoneMsg:
		cmd := m.handleRegisterDone(msg)
		return m, cmd

	case chatSessionsMsg:
		m.handleChatSessions(msg)
		return m, nil

	case chatHistoryMsg:
		cmd := m.handleChatHistory(msg)
		return m, cmd

	case chatReplyMsg:
		m.handleChatReply(msg)
		return m, nil

	case scanResultMsg:
		m.handleScanResult(msg)
		return m, nil

	case conditionsSavedMsg:
		m.handleConditionsSaved(msg)
		return m, nil
	}

	// Remaining message types (spinner ticks, input blinks) go to the
	// view that owns the component.
	return m.updateComponents(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Views with focused text inputs consume most keys themselves.
	if m.capturingInput() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleViewKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Home):
		m.currentView = ViewHome
		return m, nil

	case key.Matches(msg, m.keys.Schedule):
		m.currentView = ViewSchedule
		return m, nil

	case key.Matches(msg, m.keys.Medicines):
		m.currentView = ViewMedicines
		return m, nil

	case key.Matches(msg, m.keys.Register):
		m.currentView = ViewRegister
		cmd := m.enterRegister()
		return m, cmd

	case key.Matches(msg, m.keys.Chat):
		m.currentView = ViewChat
		cmd := m.enterChat()
		return m, cmd

	case key.Matches(msg, m.keys.Report):
		m.currentView = ViewReport
		cmd := m.enterReport()
		return m, cmd

	case key.Matches(msg, m.keys.Conditions):
		m.currentView = ViewConditions
		cmd := m.enterConditions()
		return m, cmd
	}

	return m.handleViewKey(msg)
}

// handleViewKey routes keys to the active view.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewSchedule:
		return m.handleScheduleKey(msg)
	case ViewMedicines:
		return m.handleMedicinesKey(msg)
	case ViewRegister:
		return m.handleRegisterKey(msg)
	case ViewChat:
		return m.handleChatKey(msg)
	case ViewReport:
		return m.handleReportKey(msg)
	case ViewConditions:
		return m.handleConditionsKey(msg)
	}
	return m, nil
}

// capturingInput reports whether the active view has a focused text input
// that should receive printable keys before global bindings.
func (m Model) capturingInput() bool {
	switch m.currentView {
	case ViewRegister:
		return true
	case ViewChat:
		return m.chat.mode == chatModeConversation
	case ViewReport:
		return m.report.mode == reportModePrompt
	case ViewConditions:
		return true
	}
	return false
}

// updateComponents forwards component messages (blink, spinner) to the
// active view's widgets.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := m.updateChatComponents(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.updateRegisterComponents(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.updateReportComponents(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.updateConditionsComponents(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.styles = m.theme.Styles()
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
	}
	m.setStatus("theme: "+m.theme.Name, false)
}

// refreshCmd triggers a manual data refresh.
func (m Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	ctx := m.ctx
	refresh := m.refresh
	return func() tea.Msg {
		return refreshDoneMsg{err: refresh(ctx)}
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// clampSelections keeps list cursors in range after data changes.
func (m *Model) clampSelections() {
	if n := len(m.snapshot.Schedules); m.schedule.selected >= n {
		m.schedule.selected = max(0, n-1)
	}
	if n := len(m.medicinesForTab()); m.medicines.selected >= n {
		m.medicines.selected = max(0, n-1)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.renderHome()
	case ViewSchedule:
		return m.renderSchedule()
	case ViewMedicines:
		return m.renderMedicines()
	case ViewRegister:
		return m.renderRegister()
	case ViewChat:
		return m.renderChat()
	case ViewReport:
		return m.renderReport()
	case ViewConditions:
		return m.renderConditions()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshDoneMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"pillterm/internal/api"
)

type chatMode int

const (
	chatModeSessions chatMode = iota
	chatModeConversation
)

// chatState holds the assistant view: the session list and the open
// conversation. An empty sessionID means the next send starts a new session;
// the id the server assigns is adopted from the reply.
type chatState struct {
	mode chatMode

	sessions        []api.ChatSession
	selected        int
	loadingSessions bool

	sessionID string
	messages  []api.ChatMessage
	waiting   bool
	err       error

	input textinput.Model
	spin  spinner.Model
}

func newChatState() chatState {
	return chatState{}
}

type chatSessionsMsg struct {
	sessions []api.ChatSession
	err      error
}

type chatHistoryMsg struct {
	sessionID string
	messages  []api.ChatMessage
	err       error
}

type chatReplyMsg struct {
	reply *api.ChatReply
	err   error
}

func (m *Model) initChatInput() {
	in := textinput.New()
	in.Placeholder = "ask about your medicines..."
	in.CharLimit = 500
	in.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m.chat.input = in
	m.chat.spin = sp
}

// enterChat loads the session list when the view opens.
func (m *Model) enterChat() tea.Cmd {
	if m.chat.mode == chatModeConversation {
		return textinput.Blink
	}
	m.chat.loadingSessions = true
	return loadChatSessionsCmd(m.ctx, m.client)
}

func loadChatSessionsCmd(ctx context.Context, client api.Backend) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.ChatSessions(ctx)
		return chatSessionsMsg{sessions: sessions, err: err}
	}
}

func loadChatHistoryCmd(ctx context.Context, client api.Backend, sessionID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.ChatHistory(ctx, sessionID)
		return chatHistoryMsg{sessionID: sessionID, messages: messages, err: err}
	}
}

func sendChatCmd(ctx context.Context, client api.Backend, message, sessionID string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.SendChat(ctx, message, sessionID)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m *Model) handleChatSessions(msg chatSessionsMsg) {
	m.chat.loadingSessions = false
	m.chat.sessions = msg.sessions
	m.chat.err = msg.err
	if m.chat.selected >= len(msg.sessions) {
		m.chat.selected = max(0, len(msg.sessions)-1)
	}
}

func (m *Model) handleChatHistory(msg chatHistoryMsg) tea.Cmd {
	if msg.err != nil {
		m.chat.err = msg.err
		return nil
	}
	m.chat.err = nil
	m.chat.sessionID = msg.sessionID
	m.chat.messages = msg.messages
	m.chat.mode = chatModeConversation
	m.chat.input.Focus()
	return textinput.Blink
}

func (m *Model) handleChatReply(msg chatReplyMsg) {
	m.chat.waiting = false
	if msg.err != nil {
		m.chat.err = msg.err
		return
	}
	m.chat.err = nil
	m.chat.sessionID = msg.reply.SessionID
	m.chat.messages = append(m.chat.messages, api.ChatMessage{
		Role:      "assistant",
		Content:   msg.reply.Message,
		SessionID: msg.reply.SessionID,
		CreatedAt: msg.reply.CreatedAt,
	})
}

// handleChatKey processes keyboard input for the assistant view.
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chat.mode == chatModeConversation {
		return m.handleConversationKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.currentView = ViewHome
		return m, nil

	case "n":
		m.startNewConversation()
		return m, textinput.Blink

	case "j", "down":
		if m.chat.selected < len(m.chat.sessions)-1 {
			m.chat.selected++
		}
	case "k", "up":
		if m.chat.selected > 0 {
			m.chat.selected--
		}
	case "enter":
		if m.chat.selected < len(m.chat.sessions) {
			id := m.chat.sessions[m.chat.selected].SessionID
			return m, loadChatHistoryCmd(m.ctx, m.client, id)
		}
	}

	return m, nil
}

func (m *Model) startNewConversation() {
	m.chat.mode = chatModeConversation
	m.chat.sessionID = ""
	m.chat.messages = nil
	m.chat.err = nil
	m.chat.input.SetValue("")
	m.chat.input.Focus()
}

func (m Model) handleConversationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chat.mode = chatModeSessions
		m.chat.input.Blur()
		m.chat.loadingSessions = true
		return m, loadChatSessionsCmd(m.ctx, m.client)

	case "enter":
		text := strings.TrimSpace(m.chat.input.Value())
		if text == "" || m.chat.waiting {
			return m, nil
		}
		// Echo the question locally so the conversation reads naturally
		// while the reply is in flight.
		m.chat.messages = append(m.chat.messages, api.ChatMessage{
			Role:      "user",
			Content:   text,
			SessionID: orLocalID(m.chat.sessionID),
		})
		m.chat.input.SetValue("")
		m.chat.waiting = true
		return m, tea.Batch(
			sendChatCmd(m.ctx, m.client, text, m.chat.sessionID),
			m.chat.spin.Tick,
		)
	}

	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return m, cmd
}

// orLocalID tags locally echoed messages of a not-yet-created session with a
// throwaway id so they are distinguishable until the server assigns one.
func orLocalID(sessionID string) string {
	if sessionID != "" {
		return sessionID
	}
	return "local-" + uuid.NewString()
}

func (m *Model) updateChatComponents(msg tea.Msg) tea.Cmd {
	if m.currentView != ViewChat {
		return nil
	}

	var cmds []tea.Cmd

	if m.chat.waiting {
		var cmd tea.Cmd
		m.chat.spin, cmd = m.chat.spin.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.chat.mode == chatModeConversation {
		var cmd tea.Cmd
		m.chat.input, cmd = m.chat.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// renderChat renders either the session list or the open conversation.
func (m Model) renderChat() string {
	if m.chat.mode == chatModeConversation {
		return m.renderConversation()
	}
	return m.renderSessionList()
}

func (m Model) renderSessionList() string {
	var b strings.Builder

	b.WriteString(m.styles.FaintText.Render("n starts a new conversation"))
	b.WriteString("\n\n")

	if m.chat.err != nil {
		b.WriteString(m.styles.DangerText.Render("assistant unavailable: " + m.chat.err.Error()))
		return b.String()
	}
	if m.chat.loadingSessions {
		b.WriteString(m.styles.MutedText.Render("loading sessions..."))
		return b.String()
	}
	if len(m.chat.sessions) == 0 {
		b.WriteString(m.styles.MutedText.Render("no conversations yet"))
		return b.String()
	}

	for i, s := range m.chat.sessions {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s  %s", title, truncate(s.LastMessage, 48))
		if i == m.chat.selected {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderConversation() string {
	var b strings.Builder

	for _, msg := range m.chat.messages {
		if msg.Role == "user" {
			b.WriteString(m.styles.AccentText.Render("you"))
		} else {
			b.WriteString(m.styles.SuccessText.Render("assistant"))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Width(max(20, m.width-4)).Render(msg.Content))
		b.WriteString("\n\n")
	}

	if m.chat.waiting {
		b.WriteString(m.chat.spin.View())
		b.WriteString(m.styles.MutedText.Render(" thinking..."))
		b.WriteString("\n\n")
	}
	if m.chat.err != nil {
		b.WriteString(m.styles.DangerText.Render("send failed: " + m.chat.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.chat.input.View())

	return b.String()
}

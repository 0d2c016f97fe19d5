package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
)

func conversationModel(t *testing.T) Model {
	t.Helper()

	m := New(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	m.currentView = ViewChat

	updated, _ = m.Update(chatHistoryMsg{
		sessionID: "s-1",
		messages: []api.ChatMessage{
			{ID: 1, Role: "user", Content: "hi", SessionID: "s-1"},
		},
	})
	return updated.(Model)
}

func TestOpenedSessionAcceptsTypedInput(t *testing.T) {
	m := conversationModel(t)

	if m.chat.mode != chatModeConversation {
		t.Fatalf("mode = %v, want conversation", m.chat.mode)
	}
	if !m.chat.input.Focused() {
		t.Fatal("input not focused after opening a session")
	}

	for _, r := range "hello" {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}

	if got := m.chat.input.Value(); got != "hello" {
		t.Errorf("input value after typing = %q, want %q", got, "hello")
	}
}

func TestConversationEscReturnsToSessionList(t *testing.T) {
	m := conversationModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.chat.mode != chatModeSessions {
		t.Errorf("mode after esc = %v, want sessions", m.chat.mode)
	}
	if m.chat.input.Focused() {
		t.Error("input still focused after leaving the conversation")
	}
}

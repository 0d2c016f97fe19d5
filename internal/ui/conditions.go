package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
)

// conditionsState holds the health-conditions editor. The full list is
// replaced on save; an empty input clears it.
type conditionsState struct {
	input     textinput.Model
	saving    bool
	status    string
	statusErr bool
}

func newConditionsState() conditionsState {
	return conditionsState{}
}

type conditionsSavedMsg struct {
	count int
	err   error
}

func (m *Model) initConditionsInput() {
	in := textinput.New()
	in.Placeholder = "e.g. hypertension, diabetes"
	in.CharLimit = 250
	in.Prompt = "> "
	m.conditions.input = in
}

func (m *Model) enterConditions() tea.Cmd {
	return m.conditions.input.Focus()
}

// parseConditions splits a comma-separated list, dropping empty entries.
func parseConditions(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func saveConditionsCmd(ctx context.Context, client api.Backend, conditions []string) tea.Cmd {
	return func() tea.Msg {
		err := client.SubmitConditions(ctx, conditions)
		return conditionsSavedMsg{count: len(conditions), err: err}
	}
}

func (m *Model) handleConditionsSaved(msg conditionsSavedMsg) {
	m.conditions.saving = false
	if msg.err != nil {
		m.conditions.status = "save failed: " + msg.err.Error()
		m.conditions.statusErr = true
		return
	}
	if msg.count == 0 {
		m.conditions.status = "conditions cleared"
	} else {
		m.conditions.status = "saved"
	}
	m.conditions.statusErr = false
}

// handleConditionsKey processes keyboard input for the conditions editor.
func (m Model) handleConditionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentView = ViewHome
		return m, nil

	case "enter":
		if m.conditions.saving {
			return m, nil
		}
		m.conditions.saving = true
		m.conditions.status = ""
		return m, saveConditionsCmd(m.ctx, m.client, parseConditions(m.conditions.input.Value()))
	}

	var cmd tea.Cmd
	m.conditions.input, cmd = m.conditions.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConditionsComponents(msg tea.Msg) tea.Cmd {
	if m.currentView != ViewConditions {
		return nil
	}
	var cmd tea.Cmd
	m.conditions.input, cmd = m.conditions.input.Update(msg)
	return cmd
}

// renderConditions renders the conditions editor.
func (m Model) renderConditions() string {
	var b strings.Builder

	b.WriteString(m.styles.Text.Render("Health conditions the assistant should know about"))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("comma separated; saving replaces the stored list"))
	b.WriteString("\n\n")
	b.WriteString(m.conditions.input.View())
	b.WriteString("\n\n")

	if m.conditions.saving {
		b.WriteString(m.styles.MutedText.Render("saving..."))
	} else if m.conditions.status != "" {
		if m.conditions.statusErr {
			b.WriteString(m.styles.DangerText.Render(m.conditions.status))
		} else {
			b.WriteString(m.styles.SuccessText.Render(m.conditions.status))
		}
	} else {
		b.WriteString(m.styles.FaintText.Render("enter saves, esc leaves"))
	}

	return b.String()
}

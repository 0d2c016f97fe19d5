package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp renders the full-screen key reference. Any key closes it.
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{
			"Views",
			[]key.Binding{
				m.keys.Home, m.keys.Schedule, m.keys.Medicines, m.keys.Register,
				m.keys.Chat, m.keys.Report, m.keys.Conditions,
			},
		},
		{
			"Lists",
			[]key.Binding{
				m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Back,
				m.keys.NextTab, m.keys.Toggle,
			},
		},
		{
			"General",
			[]key.Binding{
				m.keys.Refresh, m.keys.Theme, m.keys.Help, m.keys.Quit,
			},
		},
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("pillterm keys"))
	b.WriteString("\n\n")

	for _, section := range sections {
		b.WriteString(m.styles.MutedText.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(m.styles.Text.Render("  " + padRight(h.Key, 11) + h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.FaintText.Render("press any key to close"))
	return b.String()
}

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status line: app name, backend URL, data
// health, last update time.
func (m Model) renderHeader() string {
	name := m.styles.AccentText.Render("pillterm")

	var parts []string
	parts = append(parts, name)

	if m.config != nil {
		parts = append(parts, m.styles.FaintText.Render(truncate(m.config.BaseURL, 40)))
	}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, m.styles.DangerText.Render("OFFLINE"))
	case !m.snapshot.HasData:
		parts = append(parts, m.styles.MutedText.Render("connecting..."))
	case m.stale(time.Now()):
		parts = append(parts, m.styles.WarningText.Render("stale"))
	default:
		parts = append(parts, m.styles.SuccessText.Render("connected"))
	}

	if !m.lastUpdated.IsZero() {
		parts = append(parts, m.styles.FaintText.Render("updated "+m.lastUpdated.Format("15:04:05")))
	}

	line := strings.Join(parts, "  ")
	return m.styles.Header.Width(max(0, m.width)).Render(line)
}

// renderTabBar renders the view switcher line.
func (m Model) renderTabBar() string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewHome, "1 Home"},
		{ViewSchedule, "2 Schedule"},
		{ViewMedicines, "3 Medicines"},
		{ViewRegister, "4 Register"},
		{ViewChat, "5 Assistant"},
		{ViewReport, "6 Analyze"},
		{ViewConditions, "7 Conditions"},
	}

	var parts []string
	for _, t := range tabs {
		if t.view == m.currentView {
			parts = append(parts, m.styles.AccentText.Render(t.label))
		} else {
			parts = append(parts, m.styles.MutedText.Render(t.label))
		}
	}

	return " " + strings.Join(parts, "   ")
}

// renderFooter renders the bottom hint line plus any transient status.
func (m Model) renderFooter() string {
	hint := "? help   t theme   r refresh   q quit"

	var right string
	if m.status != "" {
		if m.statusErr {
			right = m.styles.DangerText.Render(m.status)
		} else {
			right = m.styles.SuccessText.Render(m.status)
		}
	}

	left := m.styles.Footer.Render(hint)
	if right == "" {
		return left
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// stale reports whether the snapshot is older than two poll intervals.
func (m Model) stale(now time.Time) bool {
	if m.lastUpdated.IsZero() {
		return false
	}
	return now.Sub(m.lastUpdated) > 2*m.pollTick
}

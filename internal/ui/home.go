package ui

import (
	"fmt"
	"strings"
	"time"

	"pillterm/internal/sched"
)

// renderHome renders the dashboard: next dose, today's counts, data health.
func (m Model) renderHome() string {
	var b strings.Builder

	now := time.Now()
	b.WriteString(m.styles.MutedText.Render(now.Format("Monday, January 2")))
	b.WriteString("\n\n")

	b.WriteString(m.renderNextDoseCard(now))
	b.WriteString("\n\n")
	b.WriteString(m.renderTodaySummary())

	if m.snapshot.LastError != nil && !m.snapshot.IsOffline() {
		b.WriteString("\n\n")
		b.WriteString(m.styles.WarningText.Render("last refresh failed, showing cached data"))
	}

	return b.String()
}

// renderNextDoseCard shows the closest upcoming dose, or a done/empty note.
func (m Model) renderNextDoseCard(now time.Time) string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render("Next dose"))
	b.WriteString("\n")

	if !m.snapshot.HasData {
		b.WriteString(m.styles.MutedText.Render("waiting for data..."))
		return m.styles.Card.Render(b.String())
	}

	dose, ok := sched.NextDose(now, m.snapshot.Schedules)
	if !ok {
		if len(m.snapshot.Schedules) == 0 {
			b.WriteString(m.styles.MutedText.Render("no doses scheduled today"))
		} else {
			b.WriteString(m.styles.SuccessText.Render("all done for today"))
		}
		return m.styles.Card.Render(b.String())
	}

	when := sched.FormatTime(dose.DoseTime)
	bucket := "later"
	if hour, ok := sched.HourOf(dose.DoseTime); ok {
		bucket = sched.BucketOf(hour).Label()
	}

	b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s  %s", when, dose.MedicineName)))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s, %d dose(s)", bucket, dose.DoseCount)))

	return m.styles.Card.Render(b.String())
}

// renderTodaySummary shows headline counts for the day.
func (m Model) renderTodaySummary() string {
	active := m.snapshot.ActiveMedicines()
	taken := 0
	for _, s := range m.snapshot.Schedules {
		if m.schedule.taken[s.ID] {
			taken++
		}
	}

	lines := []string{
		fmt.Sprintf("%s active medicines", m.styles.AccentText.Render(fmt.Sprintf("%d", len(active)))),
		fmt.Sprintf("%s doses today, %s marked taken",
			m.styles.AccentText.Render(fmt.Sprintf("%d", len(m.snapshot.Schedules))),
			m.styles.AccentText.Render(fmt.Sprintf("%d", taken))),
	}

	return m.styles.Text.Render(strings.Join(lines, "\n"))
}

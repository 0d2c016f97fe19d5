package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
	"pillterm/internal/sched"
)

// scheduleState holds the timeline view's cursor, the session-local taken
// marks, and the expanded detail record. Taken marks live only in memory;
// they reset when the program exits.
type scheduleState struct {
	selected int
	taken    map[int64]bool

	detail        *api.ScheduleDetail
	detailErr     error
	showDetail    bool
	loadingDetail bool
}

func newScheduleState() scheduleState {
	return scheduleState{
		taken: make(map[int64]bool),
	}
}

type scheduleDetailMsg struct {
	detail *api.ScheduleDetail
	err    error
}

// sortedSchedules returns today's doses in display order.
func (m Model) sortedSchedules() []api.Schedule {
	return sched.SortByDoseTime(m.snapshot.Schedules)
}

// handleScheduleKey processes keyboard input for the schedule view.
func (m Model) handleScheduleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.schedule.showDetail {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
			m.schedule.showDetail = false
			m.schedule.detail = nil
			m.schedule.detailErr = nil
		}
		return m, nil
	}

	doses := m.sortedSchedules()
	count := len(doses)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.schedule.selected < count-1 {
			m.schedule.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.schedule.selected > 0 {
			m.schedule.selected--
		}
	case key.Matches(msg, m.keys.Toggle):
		id := doses[m.schedule.selected].ID
		m.schedule.taken[id] = !m.schedule.taken[id]
	case key.Matches(msg, m.keys.Select):
		m.schedule.showDetail = true
		m.schedule.loadingDetail = true
		m.schedule.detail = nil
		m.schedule.detailErr = nil
		return m, fetchScheduleDetailCmd(m.ctx, m.client, doses[m.schedule.selected].ID)
	}

	return m, nil
}

func fetchScheduleDetailCmd(ctx context.Context, client api.Backend, id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.ScheduleDetail(ctx, id)
		return scheduleDetailMsg{detail: detail, err: err}
	}
}

func (m *Model) handleScheduleDetail(msg scheduleDetailMsg) {
	m.schedule.loadingDetail = false
	if !m.schedule.showDetail {
		// Detail closed before the fetch finished.
		return
	}
	m.schedule.detail = msg.detail
	m.schedule.detailErr = msg.err
}

// renderSchedule renders today's doses as a bucketed timeline.
func (m Model) renderSchedule() string {
	doses := m.sortedSchedules()

	if !m.snapshot.HasData {
		return m.styles.MutedText.Render("waiting for data...")
	}
	if len(doses) == 0 {
		return m.styles.MutedText.Render("no doses scheduled today")
	}

	var b strings.Builder
	lastBucket := sched.Bucket(-1)

	for i, dose := range doses {
		bucket := sched.Dinner
		if hour, ok := sched.HourOf(dose.DoseTime); ok {
			bucket = sched.BucketOf(hour)
		}
		if bucket != lastBucket {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.styles.AccentText.Render(bucket.Label()))
			b.WriteString("\n")
			lastBucket = bucket
		}

		b.WriteString(m.renderDoseRow(dose, i == m.schedule.selected))
		b.WriteString("\n")
	}

	if m.schedule.showDetail {
		b.WriteString("\n")
		b.WriteString(m.renderScheduleDetail())
	}

	return b.String()
}

func (m Model) renderDoseRow(dose api.Schedule, selected bool) string {
	mark := "[ ]"
	if m.schedule.taken[dose.ID] {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s %s  %s (%d dose)",
		mark, sched.FormatTime(dose.DoseTime), dose.MedicineName, dose.DoseCount)

	if selected {
		return m.styles.Selected.Render("> " + line)
	}
	if m.schedule.taken[dose.ID] {
		return m.styles.FaintText.Render("  " + line)
	}
	return m.styles.Text.Render("  " + line)
}

func (m Model) renderScheduleDetail() string {
	if m.schedule.loadingDetail {
		return m.styles.Card.Render(m.styles.MutedText.Render("loading..."))
	}
	if m.schedule.detailErr != nil {
		return m.styles.Card.Render(m.styles.DangerText.Render("detail unavailable: " + m.schedule.detailErr.Error()))
	}
	d := m.schedule.detail
	if d == nil {
		return ""
	}

	status := m.styles.SuccessText.Render("active")
	if !d.IsActive {
		status = m.styles.FaintText.Render("inactive")
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render(d.MedicineName))
	b.WriteString("\n")
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s, %d dose  %s", sched.FormatTime(d.DoseTime), d.DoseCount, status)))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("from %s to %s", d.StartDate, d.EndDate)))

	return m.styles.CardFocus.Render(b.String())
}

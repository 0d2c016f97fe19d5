package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
	"pillterm/internal/sched"
)

// medicineTab selects which slice of the cabinet is shown.
type medicineTab int

const (
	tabAll medicineTab = iota
	tabMorning
	tabLunch
	tabDinner
)

var medicineTabs = []medicineTab{tabAll, tabMorning, tabLunch, tabDinner}

func (t medicineTab) label() string {
	switch t {
	case tabMorning:
		return sched.Morning.Label()
	case tabLunch:
		return sched.Lunch.Label()
	case tabDinner:
		return sched.Dinner.Label()
	default:
		return "All"
	}
}

// bucket returns the schedule bucket this tab filters by.
func (t medicineTab) bucket() (sched.Bucket, bool) {
	switch t {
	case tabMorning:
		return sched.Morning, true
	case tabLunch:
		return sched.Lunch, true
	case tabDinner:
		return sched.Dinner, true
	default:
		return 0, false
	}
}

type medicinesState struct {
	tab      medicineTab
	selected int
}

// filterByBucket returns the active medicines with at least one dose time in
// the given bucket. Schedules with unparsable times never match.
func filterByBucket(medicines []api.Medicine, schedules []api.Schedule, bucket sched.Bucket) []api.Medicine {
	inBucket := make(map[int64]bool)
	for _, s := range schedules {
		hour, ok := sched.HourOf(s.DoseTime)
		if !ok {
			continue
		}
		if sched.BucketOf(hour) == bucket {
			inBucket[s.MedicineID] = true
		}
	}

	var out []api.Medicine
	for _, med := range medicines {
		if inBucket[med.ID] {
			out = append(out, med)
		}
	}
	return out
}

// doseTimesByMedicine collects each medicine's display times in dose order.
func doseTimesByMedicine(schedules []api.Schedule) map[int64][]string {
	out := make(map[int64][]string)
	for _, s := range sched.SortByDoseTime(schedules) {
		if t := sched.FormatTime(s.DoseTime); t != "" {
			out[s.MedicineID] = append(out[s.MedicineID], t)
		}
	}
	return out
}

// medicinesForTab returns the medicines visible under the current tab.
func (m Model) medicinesForTab() []api.Medicine {
	active := m.snapshot.ActiveMedicines()
	bucket, ok := m.medicines.tab.bucket()
	if !ok {
		return active
	}
	return filterByBucket(active, m.snapshot.Schedules, bucket)
}

// handleMedicinesKey processes keyboard input for the cabinet view.
func (m Model) handleMedicinesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.medicinesForTab()

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.medicines.tab = medicineTabs[(int(m.medicines.tab)+1)%len(medicineTabs)]
		m.medicines.selected = 0
	case key.Matches(msg, m.keys.PrevTab):
		m.medicines.tab = medicineTabs[(int(m.medicines.tab)+len(medicineTabs)-1)%len(medicineTabs)]
		m.medicines.selected = 0
	case key.Matches(msg, m.keys.Down):
		if m.medicines.selected < len(visible)-1 {
			m.medicines.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.medicines.selected > 0 {
			m.medicines.selected--
		}
	case key.Matches(msg, m.keys.Select):
		if m.medicines.selected < len(visible) {
			med := visible[m.medicines.selected]
			if med.HasReport() {
				m.openMedicineReport(med)
				m.currentView = ViewReport
			} else {
				m.setStatus("no analysis report for "+med.Name, false)
			}
		}
	}

	return m, nil
}

// renderMedicines renders the cabinet with bucket filter tabs.
func (m Model) renderMedicines() string {
	var b strings.Builder

	var tabs []string
	for _, t := range medicineTabs {
		label := " " + t.label() + " "
		if t == m.medicines.tab {
			tabs = append(tabs, m.styles.Selected.Render(label))
		} else {
			tabs = append(tabs, m.styles.MutedText.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if !m.snapshot.HasData {
		b.WriteString(m.styles.MutedText.Render("waiting for data..."))
		return b.String()
	}

	visible := m.medicinesForTab()
	if len(visible) == 0 {
		b.WriteString(m.styles.MutedText.Render("no medicines here"))
		return b.String()
	}

	times := doseTimesByMedicine(m.snapshot.Schedules)

	for i, med := range visible {
		line := fmt.Sprintf("%s  %s %s", med.Name, med.Ingredient, med.Amount)
		if t := times[med.ID]; len(t) > 0 {
			line += "  " + strings.Join(t, " ")
		}
		if med.HasReport() {
			line += "  " + m.renderMedicineRisk(med)
		}
		if i == m.medicines.selected {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderMedicineRisk(med api.Medicine) string {
	report, err := med.Report()
	if err != nil {
		return m.styles.FaintText.Render("report unreadable")
	}
	return m.styles.RiskBadge(report.RiskLevel).Render(report.RiskLevel)
}

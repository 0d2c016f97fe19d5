package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
)

// Register form field order.
const (
	fieldName = iota
	fieldIngredient
	fieldAmount
	fieldTimes
	fieldCount
	fieldDuration
	fieldMax
)

// registerState holds the new-medicine form. The submitting flag is the
// single-flight guard: while a submission is in flight, further submits are
// ignored.
type registerState struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
	statusErr  bool
}

func newRegisterState() registerState {
	return registerState{}
}

type registerDoneMsg struct {
	name string
	err  error
}

func (m *Model) initRegisterInputs() {
	labels := []struct {
		placeholder string
		limit       int
	}{
		{"e.g. Tylenol", 60},
		{"e.g. acetaminophen", 60},
		{"e.g. 500mg", 20},
		{"e.g. 08:00, 13:00, 20:00", 60},
		{"doses per time, e.g. 1", 3},
		{"days, e.g. 7", 3},
	}

	inputs := make([]textinput.Model, fieldMax)
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.CharLimit = l.limit
		in.Prompt = "> "
		inputs[i] = in
	}
	inputs[fieldName].Focus()

	m.register.inputs = inputs
	m.register.focus = fieldName
}

// enterRegister focuses the form when the view opens.
func (m *Model) enterRegister() tea.Cmd {
	if len(m.register.inputs) == 0 {
		return nil
	}
	return m.focusRegisterField(m.register.focus)
}

func (m *Model) focusRegisterField(idx int) tea.Cmd {
	var cmd tea.Cmd
	for i := range m.register.inputs {
		if i == idx {
			cmd = m.register.inputs[i].Focus()
		} else {
			m.register.inputs[i].Blur()
		}
	}
	m.register.focus = idx
	return cmd
}

// handleRegisterKey processes keyboard input for the register form.
func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.register.inputs) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.currentView = ViewHome
		return m, nil

	case "tab", "down":
		cmd := m.focusRegisterField((m.register.focus + 1) % fieldMax)
		return m, cmd

	case "shift+tab", "up":
		cmd := m.focusRegisterField((m.register.focus + fieldMax - 1) % fieldMax)
		return m, cmd

	case "enter":
		if m.register.focus < fieldMax-1 {
			cmd := m.focusRegisterField(m.register.focus + 1)
			return m, cmd
		}
		return m.submitRegister()

	case "ctrl+s":
		return m.submitRegister()
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

// submitRegister validates the form and kicks off the creation flow.
func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	if m.register.submitting {
		// A submission is already in flight.
		return m, nil
	}

	form, err := m.parseRegisterForm()
	if err != nil {
		m.register.status = err.Error()
		m.register.statusErr = true
		return m, nil
	}

	m.register.submitting = true
	m.register.status = "registering..."
	m.register.statusErr = false

	return m, registerCmd(m.ctx, m.client, form)
}

// registerForm is the validated form ready to submit.
type registerForm struct {
	medicine api.NewMedicine
	today    time.Time
}

func (m Model) parseRegisterForm() (registerForm, error) {
	name := strings.TrimSpace(m.register.inputs[fieldName].Value())
	if name == "" {
		return registerForm{}, errors.New("name is required")
	}

	times, err := parseDoseTimes(m.register.inputs[fieldTimes].Value())
	if err != nil {
		return registerForm{}, err
	}

	count, err := parsePositiveInt(m.register.inputs[fieldCount].Value(), "count")
	if err != nil {
		return registerForm{}, err
	}

	duration, err := parsePositiveInt(m.register.inputs[fieldDuration].Value(), "duration")
	if err != nil {
		return registerForm{}, err
	}

	return registerForm{
		medicine: api.NewMedicine{
			Name:       name,
			Ingredient: strings.TrimSpace(m.register.inputs[fieldIngredient].Value()),
			Amount:     strings.TrimSpace(m.register.inputs[fieldAmount].Value()),
			Times:      times,
			Count:      count,
			Duration:   duration,
		},
		today: time.Now(),
	}, nil
}

// parseDoseTimes parses a comma-separated list of clock times and normalizes
// each to HH:MM.
func parseDoseTimes(value string) ([]string, error) {
	var times []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		normalized, err := normalizeClock(part)
		if err != nil {
			return nil, err
		}
		times = append(times, normalized)
	}
	if len(times) == 0 {
		return nil, errors.New("at least one dose time is required")
	}
	return times, nil
}

// normalizeClock validates "H:MM" or "HH:MM" and returns zero-padded "HH:MM".
func normalizeClock(value string) (string, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func parsePositiveInt(value, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", field)
	}
	return n, nil
}

// buildSchedules expands the medicine's dose times into one schedule payload
// per time. Times arrive as "HH:MM" and go out as "HH:MM:SS"; the plan runs
// from today through today plus the duration in days.
func buildSchedules(med api.Medicine, times []string, count, duration int, today time.Time) []api.NewSchedule {
	start := today.Format("2006-01-02")
	end := today.AddDate(0, 0, duration).Format("2006-01-02")

	schedules := make([]api.NewSchedule, 0, len(times))
	for _, t := range times {
		schedules = append(schedules, api.NewSchedule{
			MedicineID:   med.ID,
			MedicineName: med.Name,
			DoseCount:    count,
			DoseTime:     t + ":00",
			StartDate:    start,
			EndDate:      end,
		})
	}
	return schedules
}

// registerCmd creates the medicine, then one schedule per dose time. A
// failing schedule aborts the rest and the error names the time that failed.
func registerCmd(ctx context.Context, client api.Backend, form registerForm) tea.Cmd {
	return func() tea.Msg {
		med, err := client.CreateMedicine(ctx, form.medicine)
		if err != nil {
			return registerDoneMsg{name: form.medicine.Name, err: fmt.Errorf("create medicine: %w", err)}
		}

		schedules := buildSchedules(*med, form.medicine.Times, form.medicine.Count, form.medicine.Duration, form.today)
		for _, s := range schedules {
			if _, err := client.CreateSchedule(ctx, s); err != nil {
				return registerDoneMsg{name: med.Name, err: fmt.Errorf("schedule for %s: %w", s.DoseTime, err)}
			}
		}

		return registerDoneMsg{name: med.Name}
	}
}

// handleRegisterDone finishes a submission and, on success, clears the form
// and refreshes today's data.
func (m *Model) handleRegisterDone(msg registerDoneMsg) tea.Cmd {
	m.register.submitting = false

	if msg.err != nil {
		if errors.Is(msg.err, api.ErrTimeout) {
			m.register.status = "the server took too long, try again"
		} else {
			m.register.status = msg.err.Error()
		}
		m.register.statusErr = true
		return nil
	}

	m.register.status = msg.name + " registered"
	m.register.statusErr = false
	for i := range m.register.inputs {
		m.register.inputs[i].SetValue("")
	}
	focusCmd := m.focusRegisterField(fieldName)

	return tea.Batch(focusCmd, m.refreshCmd())
}

func (m *Model) updateRegisterComponents(msg tea.Msg) tea.Cmd {
	if m.currentView != ViewRegister || len(m.register.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return cmd
}

// renderRegister renders the new-medicine form.
func (m Model) renderRegister() string {
	if len(m.register.inputs) == 0 {
		return ""
	}

	labels := []string{"Name", "Ingredient", "Amount", "Dose times", "Dose count", "Duration"}

	var b strings.Builder
	for i, in := range m.register.inputs {
		label := labels[i]
		if i == m.register.focus {
			b.WriteString(m.styles.AccentText.Render(label))
		} else {
			b.WriteString(m.styles.MutedText.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.register.submitting {
		b.WriteString(m.styles.MutedText.Render("registering..."))
	} else if m.register.status != "" {
		if m.register.statusErr {
			b.WriteString(m.styles.DangerText.Render(m.register.status))
		} else {
			b.WriteString(m.styles.SuccessText.Render(m.register.status))
		}
	} else {
		b.WriteString(m.styles.FaintText.Render("enter advances, ctrl+s submits, esc leaves"))
	}

	return b.String()
}

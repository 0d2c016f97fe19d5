package ui

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pillterm/internal/api"
)

type reportMode int

const (
	reportModePrompt reportMode = iota
	reportModeViewing
)

// reportState drives the analysis view: a prompt for an image to scan, and a
// scrollable rendering of the resulting (or a stored) risk report.
type reportState struct {
	mode reportMode

	pathInput textinput.Model
	viewport  viewport.Model

	report     api.Report
	haveReport bool
	source     string
	scanning   bool
	err        error
}

func newReportState() reportState {
	return reportState{}
}

type scanResultMsg struct {
	report *api.Report
	err    error
}

func (m *Model) initReportState() {
	in := textinput.New()
	in.Placeholder = "path to a photo of the package..."
	in.CharLimit = 250
	in.Prompt = "> "

	m.report.pathInput = in
	m.report.viewport = viewport.New(0, 0)
}

func (m *Model) resizeReportViewport() {
	width := max(20, m.width-4)
	height := max(5, m.height-10)
	m.report.viewport.Width = width
	m.report.viewport.Height = height
	if m.report.haveReport {
		m.report.viewport.SetContent(m.renderReportBody(m.report.report))
	}
}

// enterReport focuses the path prompt, or keeps showing the open report.
func (m *Model) enterReport() tea.Cmd {
	if m.report.mode == reportModeViewing {
		return nil
	}
	return m.report.pathInput.Focus()
}

// openMedicineReport shows the stored analysis of a cabinet medicine.
func (m *Model) openMedicineReport(med api.Medicine) {
	report, err := med.Report()
	if err != nil {
		m.report.err = err
		m.report.mode = reportModePrompt
		return
	}
	m.showReport(report, med.Name)
}

func (m *Model) showReport(report api.Report, source string) {
	m.report.report = report
	m.report.haveReport = true
	m.report.source = source
	m.report.err = nil
	m.report.mode = reportModeViewing
	m.report.pathInput.Blur()
	m.report.viewport.SetContent(m.renderReportBody(report))
	m.report.viewport.GotoTop()
}

func scanImageCmd(ctx context.Context, client api.Backend, path string, userID int64) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return scanResultMsg{err: fmt.Errorf("read image: %w", err)}
		}
		report, err := client.AnalyzeScan(ctx, api.ScanRequest{
			ImageBase64: base64.StdEncoding.EncodeToString(data),
			UserID:      userID,
		})
		return scanResultMsg{report: report, err: err}
	}
}

func (m *Model) handleScanResult(msg scanResultMsg) {
	m.report.scanning = false
	if msg.err != nil {
		m.report.err = msg.err
		return
	}
	m.showReport(*msg.report, "scan")
}

// handleReportKey processes keyboard input for the analysis view.
func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.report.mode == reportModeViewing {
		switch msg.String() {
		case "esc", "s":
			m.report.mode = reportModePrompt
			cmd := m.report.pathInput.Focus()
			return m, cmd
		}
		var cmd tea.Cmd
		m.report.viewport, cmd = m.report.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.report.haveReport {
			m.report.mode = reportModeViewing
			m.report.pathInput.Blur()
			return m, nil
		}
		m.currentView = ViewHome
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.report.pathInput.Value())
		if path == "" || m.report.scanning {
			return m, nil
		}
		m.report.scanning = true
		m.report.err = nil
		var userID int64 = 1
		if m.config != nil {
			userID = m.config.UserID
		}
		return m, scanImageCmd(m.ctx, m.client, path, userID)
	}

	var cmd tea.Cmd
	m.report.pathInput, cmd = m.report.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) updateReportComponents(msg tea.Msg) tea.Cmd {
	if m.currentView != ViewReport || m.report.mode != reportModePrompt {
		return nil
	}
	var cmd tea.Cmd
	m.report.pathInput, cmd = m.report.pathInput.Update(msg)
	return cmd
}

// renderReport renders the scan prompt or the open report.
func (m Model) renderReport() string {
	if m.report.mode == reportModeViewing {
		var b strings.Builder
		b.WriteString(m.styles.AccentText.Render("Analysis: " + m.report.source))
		b.WriteString("\n\n")
		b.WriteString(m.report.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("s scans another, esc goes back"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(m.styles.Text.Render("Analyze a medicine package photo"))
	b.WriteString("\n\n")
	b.WriteString(m.report.pathInput.View())
	b.WriteString("\n\n")

	if m.report.scanning {
		b.WriteString(m.styles.MutedText.Render("analyzing, this can take a while..."))
	} else if m.report.err != nil {
		b.WriteString(m.styles.DangerText.Render(m.report.err.Error()))
	} else {
		b.WriteString(m.styles.FaintText.Render("enter analyzes; open a medicine from the cabinet to see stored reports"))
	}

	return b.String()
}

// renderReportBody lays out a normalized risk report for the viewport.
func (m Model) renderReportBody(r api.Report) string {
	var b strings.Builder

	if r.Medication.Name != "" {
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s %s %s",
			r.Medication.Name, r.Medication.Ingredient, r.Medication.Amount)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.RiskBadge(r.RiskLevel).Render(strings.ToUpper(r.RiskLevel)))
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("  %.1f / %d", r.RiskScore, api.MaxRiskScore)))
	b.WriteString("\n\n")

	if r.Summary != "" {
		b.WriteString(m.styles.Text.Render(r.Summary))
		b.WriteString("\n\n")
	}

	for _, item := range r.Items {
		b.WriteString(m.styles.RiskBadge(item.Severity).Render(item.Severity))
		b.WriteString(m.styles.AccentText.Render(" " + item.Title))
		if item.Percentage > 0 {
			b.WriteString(m.styles.MutedText.Render(fmt.Sprintf(" (%.0f%%)", item.Percentage)))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(item.Description))
		b.WriteString("\n\n")
	}

	for _, w := range r.Warnings {
		b.WriteString(m.styles.WarningText.Render("! " + w))
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
	}

	for _, s := range r.Sections {
		title := s.Title
		if s.Icon != "" {
			title = s.Icon + " " + title
		}
		b.WriteString(m.styles.AccentText.Render(title))
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(s.Content))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Report is the normalized drug-risk analysis result. The backend's field
// names drift between camelCase and snake_case across versions; all spellings
// are resolved here, once, so view code never sees the raw payload.
type Report struct {
	Medication ScannedMedication
	RiskScore  float64
	RiskLevel  string // "high", "medium" or "low"
	Items      []RiskItem
	Warnings   []string
	Summary    string
	Sections   []ReportSection
}

// ScannedMedication identifies the medicine the report is about.
type ScannedMedication struct {
	Name       string `json:"name"`
	Ingredient string `json:"ingredient"`
	Amount     string `json:"amount"`
}

// RiskItem is a single finding (duplicate ingredient, interaction, timing).
type RiskItem struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage"`
}

// ReportSection is a free-form commentary block.
type ReportSection struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MaxRiskScore is the scale the overall score is reported against.
const MaxRiskScore = 10

// UnmarshalJSON accepts both current and legacy field spellings.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		ScannedMedication *ScannedMedication `json:"scannedMedication"`
		Name              string             `json:"name"`
		Ingredient        string             `json:"ingredient"`
		Amount            string             `json:"amount"`
		OverallRiskScore  *float64           `json:"overallRiskScore"`
		RiskScore         *float64           `json:"risk_score"`
		RiskLevel         string             `json:"riskLevel"`
		RiskLevelSnake    string             `json:"risk_level"`
		RiskItems         []RiskItem         `json:"riskItems"`
		Interactions      []RiskItem         `json:"interactions"`
		Warnings          []string           `json:"warnings"`
		Summary           string             `json:"summary"`
		Sections          []ReportSection    `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.ScannedMedication != nil {
		r.Medication = *raw.ScannedMedication
	} else {
		r.Medication = ScannedMedication{Name: raw.Name, Ingredient: raw.Ingredient, Amount: raw.Amount}
	}

	switch {
	case raw.OverallRiskScore != nil:
		r.RiskScore = *raw.OverallRiskScore
	case raw.RiskScore != nil:
		r.RiskScore = *raw.RiskScore
	default:
		r.RiskScore = 0
	}

	r.RiskLevel = normalizeRiskLevel(raw.RiskLevel, raw.RiskLevelSnake)

	r.Items = raw.RiskItems
	if len(r.Items) == 0 {
		r.Items = raw.Interactions
	}
	r.Warnings = raw.Warnings
	r.Summary = raw.Summary
	r.Sections = raw.Sections
	return nil
}

func normalizeRiskLevel(candidates ...string) string {
	for _, c := range candidates {
		level := strings.ToLower(strings.TrimSpace(c))
		switch level {
		case "high", "medium", "low":
			return level
		}
	}
	return "low"
}

// ParseReport decodes a stored scan_report payload. The backend returns it
// either as a JSON object or as a double-encoded JSON string; both forms
// parse. An empty payload yields a zero report.
func ParseReport(raw json.RawMessage) (Report, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Report{RiskLevel: "low"}, nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return Report{RiskLevel: "low"}, fmt.Errorf("decode scan_report wrapper: %w", err)
		}
		trimmed = inner
	}
	var report Report
	if err := json.Unmarshal([]byte(trimmed), &report); err != nil {
		return Report{RiskLevel: "low"}, fmt.Errorf("decode scan_report: %w", err)
	}
	return report, nil
}

// Report parses the medicine's stored scan report, when present.
func (m Medicine) Report() (Report, error) {
	report, err := ParseReport(m.ScanReport)
	if err != nil {
		return report, err
	}
	if report.Medication == (ScannedMedication{}) {
		report.Medication = ScannedMedication{Name: m.Name, Ingredient: m.Ingredient, Amount: m.Amount}
	}
	return report, nil
}

// HasReport reports whether the medicine carries a scan report payload.
func (m Medicine) HasReport() bool {
	trimmed := strings.TrimSpace(string(m.ScanReport))
	return trimmed != "" && trimmed != "null"
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	SelectionBg   string
	SelectionText string

	// Risk badge colors keyed by the normalized risk level.
	RiskColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		CardFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		riskColors: t.RiskColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style

	Card      lipgloss.Style
	CardFocus lipgloss.Style

	riskColors map[string]string
	background string
	muted      string
}

// RiskBadge returns a badge style for the given normalized risk level.
func (s Styles) RiskBadge(level string) lipgloss.Style {
	color := s.riskColors[level]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Clinic":   clinicTheme(),
	"Midnight": midnightTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Clinic", "Midnight", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return clinicTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func clinicTheme() Theme {
	// Red-accent palette lifted from the mobile app this client pairs with.
	return Theme{
		Name: "Clinic",

		Background: "#1a1a1a",
		Surface:    "#262626",

		Border:      "#3f3f3f",
		BorderFocus: "#ff4242",

		Text:    "#e8e8e8",
		Muted:   "#9b9b9b",
		Faint:   "#5c5c5c",
		Accent:  "#ff4242",
		Success: "#34c759",
		Warning: "#ffb020",
		Danger:  "#ff4242",

		SelectionBg:   "#ff4242",
		SelectionText: "#ffffff",

		RiskColors: map[string]string{
			"low":    "#34c759",
			"medium": "#ffb020",
			"high":   "#ff4242",
		},
	}
}

func midnightTheme() Theme {
	return Theme{
		Name: "Midnight",

		Background: "#0f1117",
		Surface:    "#1c1f2b",

		Border:      "#2e3347",
		BorderFocus: "#7aa2f7",

		Text:    "#c0caf5",
		Muted:   "#565f89",
		Faint:   "#3b4261",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Warning: "#e0af68",
		Danger:  "#f7768e",

		SelectionBg:   "#7aa2f7",
		SelectionText: "#0f1117",

		RiskColors: map[string]string{
			"low":    "#9ece6a",
			"medium": "#e0af68",
			"high":   "#f7768e",
		},
	}
}

func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Background: "#1e2226",
		Surface:    "#282d33",

		Border:      "#3a4047",
		BorderFocus: "#8abeb7",

		Text:    "#c5c8c6",
		Muted:   "#869096",
		Faint:   "#4b5359",
		Accent:  "#8abeb7",
		Success: "#b5bd68",
		Warning: "#f0c674",
		Danger:  "#cc6666",

		SelectionBg:   "#8abeb7",
		SelectionText: "#1e2226",

		RiskColors: map[string]string{
			"low":    "#b5bd68",
			"medium": "#f0c674",
			"high":   "#cc6666",
		},
	}
}

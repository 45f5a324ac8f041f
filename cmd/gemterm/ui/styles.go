// Package ui provides the shared visual styling for the gemterm
// front-ends.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors shared by both themes.
var (
	Destructive = lipgloss.Color("#e05252")
	Success     = lipgloss.Color("#7cbf5e")
	Warning     = lipgloss.Color("#e0b252")
)

// Theme holds a color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// DarkTheme is the default scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#e8e8e8"),
		Primary:    lipgloss.Color("#5ea8e0"),
		Accent:     lipgloss.Color("#b085d6"),
		Muted:      lipgloss.Color("#6a7480"),
		Border:     lipgloss.Color("#3a4450"),
		Card:       lipgloss.Color("#1d2430"),
		IsDark:     true,
	}
}

// LightTheme is the alternative scheme for light terminals.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1a2230"),
		Primary:    lipgloss.Color("#1d5e96"),
		Accent:     lipgloss.Color("#6b3fa0"),
		Muted:      lipgloss.Color("#8a94a0"),
		Border:     lipgloss.Color("#c8d0d8"),
		Card:       lipgloss.Color("#f0f2f4"),
		IsDark:     false,
	}
}

// ThemeByName maps a config theme name to a Theme, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles is the set of lipgloss styles both front-ends draw with.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style

	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	UserText  lipgloss.Style

	CodeBlock lipgloss.Style
	Status    lipgloss.Style
	Spinner   lipgloss.Style
	Prompt    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		UserLabel: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginTop(1),

		BotLabel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginTop(1),

		UserText: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		CodeBlock: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Status: lipgloss.NewStyle().
			Foreground(Success),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// DefaultStyles returns the dark style set.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

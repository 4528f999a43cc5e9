package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	Toast    lipgloss.Style
	Overlay  lipgloss.Style
}

// ThemeName selects a style set
type ThemeName string

const (
	// ThemeDark is the default theme
	ThemeDark ThemeName = "dark"
	// ThemeLight suits light terminal backgrounds
	ThemeLight ThemeName = "light"
)

// Toggle returns the other theme
func (t ThemeName) Toggle() ThemeName {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme maps a config string onto a theme, defaulting to dark
func ParseTheme(s string) ThemeName {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// StylesFor returns the style set for a theme
func StylesFor(theme ThemeName) Styles {
	if theme == ThemeLight {
		return lightStyles()
	}
	return darkStyles()
}

func darkStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		Toast: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
		Overlay: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
	}
}

func lightStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("21")). // Blue
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("235")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("124")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("28")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("21")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("21")),
		Toast: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
		Overlay: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("31")),
	}
}

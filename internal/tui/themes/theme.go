// Package themes holds the color schemes of the explorer.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Info          lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#F4A261"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#3b82f6"),
)

// Mono is a theme without colors for terminals that lack them.
var Mono = newTheme("", "", "", "", "", "")

func newTheme(primary, muted, border, errColor, warning, info lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Error:   errColor,
		Warning: warning,
		Info:    info,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle(),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info),
		StatusError: lipgloss.NewStyle().
			Bold(true).
			Foreground(errColor),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		TableSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
	}
}

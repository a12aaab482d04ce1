// Package cli renders the command line output of bundle: styled messages,
// tables of sales figures and association rules, and progress bars.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#F4A261") // basket orange
	SuccessColor = lipgloss.Color("#2A9D8F")
	WarningColor = lipgloss.Color("#E9C46A")
	ErrorColor   = lipgloss.Color("#E76F51")
	InfoColor    = lipgloss.Color("#8ECAE6")
	SubtleColor  = lipgloss.Color("#6C757D")
)

var (
	// TitleStyle is used for section titles above tables.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginTop(1)

	// SubtleStyle formats footnotes such as row counts and timings.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	borderStyle     = lipgloss.NewStyle().Foreground(SubtleColor)

	messageStyles = map[string]lipgloss.Style{
		successIcon: lipgloss.NewStyle().Foreground(SuccessColor),
		warningIcon: lipgloss.NewStyle().Foreground(WarningColor),
		errorIcon:   lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
		infoIcon:    lipgloss.NewStyle().Foreground(InfoColor),
	}
)

// BasketIcon prefixes every title.
const BasketIcon = "🧺"

const (
	successIcon = "✓"
	warningIcon = "!"
	errorIcon   = "✗"
	infoIcon    = "·"
)

func message(icon, text string) string {
	return messageStyles[icon].Render(icon + " " + text)
}

// FormatSuccess formats a message reporting a completed step.
func FormatSuccess(text string) string { return message(successIcon, text) }

// FormatWarning formats a message that needs the user's attention.
func FormatWarning(text string) string { return message(warningIcon, text) }

// FormatError formats a failure message.
func FormatError(text string) string { return message(errorIcon, text) }

// FormatInfo formats a neutral status line.
func FormatInfo(text string) string { return message(infoIcon, text) }

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(BasketIcon + " " + title)
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Thresholds
	SupportUp      key.Binding
	SupportDown    key.Binding
	ConfidenceUp   key.Binding
	ConfidenceDown key.Binding
	ToggleSize     key.Binding
	ResetSizes     key.Binding

	// Table
	RowUp    key.Binding
	RowDown  key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// View modes
	ToggleView key.Binding
	CycleSort  key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SupportUp: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "raise min support"),
		),
		SupportDown: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "lower min support"),
		),
		ConfidenceUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "raise min confidence"),
		),
		ConfidenceDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "lower min confidence"),
		),
		ToggleSize: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle antecedent size"),
		),
		ResetSizes: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all antecedent sizes"),
		),

		RowUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "previous row"),
		),
		RowDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "next row"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp/Ctrl+B", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn/Ctrl+F", "page down"),
		),

		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "rules/itemsets"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort metric"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SupportDown, k.SupportUp, k.ConfidenceUp, k.ConfidenceDown, k.ToggleSize, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SupportUp, k.SupportDown, k.ConfidenceUp, k.ConfidenceDown},
		{k.ToggleSize, k.ResetSizes, k.CycleSort, k.ToggleView},
		{k.RowUp, k.RowDown, k.PageUp, k.PageDown},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// tableKeyMap leaves the arrow keys to the threshold bindings.
func (k KeyMap) tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.LineUp = k.RowUp
	km.LineDown = k.RowDown
	km.PageUp = k.PageUp
	km.PageDown = k.PageDown
	km.HalfPageUp = key.NewBinding(key.WithDisabled())
	km.HalfPageDown = key.NewBinding(key.WithDisabled())
	km.GotoTop = key.NewBinding(key.WithKeys("g", "home"))
	km.GotoBottom = key.NewBinding(key.WithKeys("G", "end"))
	return km
}

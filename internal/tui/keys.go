package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all catalog key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Navigation
	NextFocus key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	// Actions
	Toggle      key.Binding
	ClearFilter key.Binding
	FilterPanel key.Binding
	Reload      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "back"),
		),

		NextFocus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "pagedown"),
			key.WithHelp("pgdn", "page down"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter", "x"),
			key.WithHelp("space", "toggle type"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear types"),
		),
		FilterPanel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "show/hide filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload catalog"),
		),
	}
}

// HelpGroups returns the bindings grouped for the help page.
func (k KeyMap) HelpGroups() []HelpGroup {
	return []HelpGroup{
		{Title: "Global", Bindings: []key.Binding{k.Help, k.Escape, k.Quit, k.ForceQuit}},
		{Title: "Navigation", Bindings: []key.Binding{k.NextFocus, k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown}},
		{Title: "Catalog", Bindings: []key.Binding{k.Toggle, k.ClearFilter, k.FilterPanel, k.Reload}},
	}
}

// HelpGroup is a titled set of bindings shown together on the help page.
type HelpGroup struct {
	Title    string
	Bindings []key.Binding
}

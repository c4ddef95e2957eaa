package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (catalog, help).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Unmounter is implemented by pages that must release state when the App
// navigates away from them.
type Unmounter interface {
	Unmount()
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/bestiary/internal/model"
)

// FilterChangedMsg is the filter-changed notification. The filter panel
// returns it from a tea.Cmd; Bubble Tea delivers it to the root model, which
// routes it down to the catalog view. The payload is a private copy.
type FilterChangedMsg struct {
	model.FilterChanged
}

// Name returns the event name carried on the wire.
func (FilterChangedMsg) Name() string { return model.FilterChangedEvent }

// emitFilterChanged snapshots names now, not when the command runs.
func emitFilterChanged(names []string) tea.Cmd {
	payload := model.NewFilterChanged(names)
	return func() tea.Msg {
		return FilterChangedMsg{FilterChanged: payload}
	}
}

// catalogLoadedMsg carries the result of one load cycle back to the view.
type catalogLoadedMsg struct {
	cycle uint64
	items []model.Item
	err   error
}

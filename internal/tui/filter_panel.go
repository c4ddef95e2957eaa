package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/bestiary/internal/catalog"
	"github.com/tinytelemetry/bestiary/internal/model"
	"github.com/tinytelemetry/bestiary/internal/palette"
)

// FilterPanel lists the known categories as toggles and owns the user's
// selection. It never talks to the catalog view directly: every accepted
// toggle emits a FilterChangedMsg with a snapshot of the selection.
type FilterPanel struct {
	categories []model.Category
	selection  catalog.Selection
	cursor     int
	keys       KeyMap
}

// NewFilterPanel mounts a panel with an empty selection.
func NewFilterPanel(keys KeyMap) *FilterPanel {
	return &FilterPanel{
		categories: palette.Categories(),
		keys:       keys,
	}
}

// ToggleCategory selects or deselects name and returns the notification
// command. Unknown names are ignored and nil is returned.
func (p *FilterPanel) ToggleCategory(name string, selected bool) tea.Cmd {
	if !p.selection.Toggle(name, selected) {
		return nil
	}
	return emitFilterChanged(p.selection.Names())
}

// Selected returns a copy of the current selection.
func (p *FilterPanel) Selected() []string {
	return p.selection.Names()
}

// Update handles keys while the panel has focus.
func (p *FilterPanel) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(km, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, p.keys.Down):
		if p.cursor < len(p.categories)-1 {
			p.cursor++
		}
	case key.Matches(km, p.keys.Home):
		p.cursor = 0
	case key.Matches(km, p.keys.End):
		p.cursor = len(p.categories) - 1
	case key.Matches(km, p.keys.Toggle):
		if p.cursor < len(p.categories) {
			name := p.categories[p.cursor].Name
			return p.ToggleCategory(name, !p.selection.Contains(name))
		}
	case key.Matches(km, p.keys.ClearFilter):
		if p.selection.Len() == 0 {
			return nil
		}
		for _, name := range p.selection.Names() {
			p.selection.Toggle(name, false)
		}
		return emitFilterChanged(p.selection.Names())
	}
	return nil
}

// View renders the panel. It is a pure function of the panel state.
func (p *FilterPanel) View(width, height int, focused bool) string {
	style := sectionStyle.Width(width - 2).Height(height - 2)
	if focused {
		style = activeSectionStyle.Width(width - 2).Height(height - 2)
	}

	total := len(p.categories)
	rows, start := total, 0
	sub := ""
	if avail := height - 4; avail < total {
		rows = max(1, avail)
		start = windowStart(p.cursor, rows, total)
		sub = helpStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, start+rows, total))
	}

	lines := []string{titleStyle.Render("Filter by Type"), sub}
	for i := start; i < start+rows; i++ {
		c := p.categories[i]
		box := "[ ]"
		if p.selection.Contains(c.Name) {
			box = "[x]"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		line := fmt.Sprintf("%s %-9s %s", box, c.Name, swatch)
		if focused && i == p.cursor {
			line = lipgloss.NewStyle().Reverse(true).Render(fmt.Sprintf("%s %-9s", box, c.Name)) + " " + swatch
		}
		lines = append(lines, line)
	}

	return style.Render(strings.Join(lines, "\n"))
}

// windowStart returns the first row of a rows-tall window over total rows
// that keeps cursor roughly centered.
func windowStart(cursor, rows, total int) int {
	start := cursor - rows/2
	return max(0, min(start, total-rows))
}

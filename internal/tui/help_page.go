package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpPageID = "help"

// HelpPage lists the key bindings. Escape or ? returns to the catalog.
type HelpPage struct {
	keys     KeyMap
	viewport viewport.Model
	backTo   string
}

// NewHelpPage creates the help page; backTo is the page id to return to.
func NewHelpPage(keys KeyMap, backTo string) *HelpPage {
	return &HelpPage{
		keys:     keys,
		viewport: viewport.New(80, 20),
		backTo:   backTo,
	}
}

func (h *HelpPage) ID() string { return helpPageID }

func (h *HelpPage) Init() tea.Cmd {
	h.viewport.GotoTop()
	return nil
}

func (h *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, h.keys.ForceQuit):
		return tea.Quit, nil
	case key.Matches(km, h.keys.Escape), key.Matches(km, h.keys.Help), key.Matches(km, h.keys.Quit):
		return nil, &PageNav{PageID: h.backTo}
	case key.Matches(km, h.keys.Up):
		h.viewport.ScrollUp(1)
	case key.Matches(km, h.keys.Down):
		h.viewport.ScrollDown(1)
	case key.Matches(km, h.keys.PageUp):
		h.viewport.HalfPageUp()
	case key.Matches(km, h.keys.PageDown):
		h.viewport.HalfPageDown()
	}
	return nil, nil
}

func (h *HelpPage) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	modalWidth := max(20, width-8)
	modalHeight := max(6, height-4)

	h.viewport.Width = modalWidth - 4
	h.viewport.Height = modalHeight - 4
	h.viewport.SetContent(h.renderContent())

	header := titleStyle.Render("Help")
	footer := helpStyle.Render("esc/?: back • ↑↓: scroll")
	body := lipgloss.JoinVertical(lipgloss.Left, header, h.viewport.View(), footer)

	modal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func (h *HelpPage) renderContent() string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)

	var b strings.Builder
	b.WriteString("The filter panel lists every creature type. Toggling a type\n")
	b.WriteString("shows creatures having any of the selected types.\n")
	for _, g := range h.keys.HelpGroups() {
		b.WriteString("\n" + titleStyle.Render(g.Title) + "\n")
		for _, kb := range g.Bindings {
			hb := kb.Help()
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", hb.Key)), hb.Desc)
		}
	}
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tinytelemetry/bestiary/internal/catalog"
	"github.com/tinytelemetry/bestiary/internal/model"
	"github.com/tinytelemetry/bestiary/internal/palette"
)

const (
	cardWidth       = 24
	sidebarWidth    = 30
	minCatalogWidth = 60
)

// focusArea identifies which child of the catalog view receives keys.
type focusArea int

const (
	focusPanel focusArea = iota
	focusGrid
)

// CatalogView fetches the catalog on mount, holds the result and renders
// the items matching the last selection it received. The filter panel is
// its child in the render tree but the two share no state.
type CatalogView struct {
	state  *catalog.State
	source model.CatalogSource
	logger *zap.Logger
	keys   KeyMap

	panel     *FilterPanel
	showPanel bool
	focus     focusArea
	mounted   bool

	grid    viewport.Model
	spinner spinner.Model
	width   int
	height  int
}

// CatalogViewOptions configures a CatalogView.
type CatalogViewOptions struct {
	Logger    *zap.Logger
	Keys      *KeyMap
	HidePanel bool
}

// NewCatalogView creates an unmounted catalog view backed by source.
func NewCatalogView(source model.CatalogSource, opts CatalogViewOptions) *CatalogView {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorGray)

	c := &CatalogView{
		state:     catalog.NewState(),
		source:    source,
		logger:    logger,
		keys:      keys,
		showPanel: !opts.HidePanel,
		grid:      viewport.New(minCatalogWidth, 20),
		spinner:   sp,
	}
	if c.showPanel {
		c.panel = NewFilterPanel(keys)
	} else {
		c.focus = focusGrid
	}
	return c
}

func (c *CatalogView) ID() string { return "catalog" }

// Init mounts the view and starts a load cycle.
func (c *CatalogView) Init() tea.Cmd {
	c.mounted = true
	return tea.Batch(c.loadCatalog(), c.spinner.Tick)
}

// Unmount marks the view destroyed. Load results that arrive afterwards are
// dropped. In-flight requests are not cancelled.
func (c *CatalogView) Unmount() {
	c.mounted = false
}

// State exposes the view's catalog state for inspection.
func (c *CatalogView) State() *catalog.State { return c.state }

// loadCatalog enters Loading and returns the command that runs the fetch
// pipeline off the update loop.
func (c *CatalogView) loadCatalog() tea.Cmd {
	cycle := c.state.BeginLoad()
	src := c.source
	return func() tea.Msg {
		items, err := src.LoadCatalog(context.Background())
		return catalogLoadedMsg{cycle: cycle, items: items, err: err}
	}
}

// Update handles messages for the view and its child panel.
func (c *CatalogView) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		return nil, nil

	case catalogLoadedMsg:
		c.onCatalogLoaded(msg)
		return nil, nil

	case FilterChangedMsg:
		c.onFilterChanged(msg.SelectedTypes)
		return nil, nil

	case spinner.TickMsg:
		if !c.state.IsLoading() {
			return nil, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return nil, nil
}

func (c *CatalogView) onCatalogLoaded(msg catalogLoadedMsg) {
	if !c.mounted {
		return
	}
	if !c.state.Complete(msg.cycle, msg.items, msg.err) {
		return
	}
	if msg.err != nil {
		c.logger.Warn("catalog load failed",
			zap.Uint64("cycle", msg.cycle),
			zap.Error(msg.err))
		return
	}
	c.logger.Info("catalog loaded",
		zap.Uint64("cycle", msg.cycle),
		zap.Int("items", len(msg.items)))
	c.grid.GotoTop()
}

// onFilterChanged copies the received selection into the view's own state.
// It never triggers a refetch.
func (c *CatalogView) onFilterChanged(selected []string) {
	c.state.SetSelection(selected)
	c.grid.GotoTop()
}

func (c *CatalogView) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, c.keys.ForceQuit), key.Matches(msg, c.keys.Quit):
		return tea.Quit, nil
	case key.Matches(msg, c.keys.Help):
		return nil, &PageNav{PageID: helpPageID}
	case key.Matches(msg, c.keys.Reload):
		return tea.Batch(c.loadCatalog(), c.spinner.Tick), nil
	case key.Matches(msg, c.keys.FilterPanel):
		c.togglePanel()
		return nil, nil
	case key.Matches(msg, c.keys.NextFocus):
		if c.panel != nil {
			if c.focus == focusPanel {
				c.focus = focusGrid
			} else {
				c.focus = focusPanel
			}
		}
		return nil, nil
	}

	if c.focus == focusPanel && c.panel != nil {
		return c.panel.Update(msg), nil
	}

	switch {
	case key.Matches(msg, c.keys.Up):
		c.grid.ScrollUp(1)
	case key.Matches(msg, c.keys.Down):
		c.grid.ScrollDown(1)
	case key.Matches(msg, c.keys.PageUp):
		c.grid.HalfPageUp()
	case key.Matches(msg, c.keys.PageDown):
		c.grid.HalfPageDown()
	case key.Matches(msg, c.keys.Home):
		c.grid.GotoTop()
	case key.Matches(msg, c.keys.End):
		c.grid.GotoBottom()
	}
	return nil, nil
}

// togglePanel mounts or unmounts the filter panel. An unmounted panel's
// selection is discarded; the view keeps its last received copy.
func (c *CatalogView) togglePanel() {
	if c.panel != nil {
		c.panel = nil
		c.showPanel = false
		c.focus = focusGrid
		return
	}
	c.panel = NewFilterPanel(c.keys)
	c.showPanel = true
	c.focus = focusPanel
}

// View renders the catalog page.
func (c *CatalogView) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Initializing catalog..."
	}
	if width < minCatalogWidth || height < 12 {
		return "Terminal too small. Resize to at least 60x12."
	}

	statusLine := c.renderStatusLine(width)
	bodyHeight := height - lipgloss.Height(statusLine)

	mainWidth := width
	var left string
	if c.panel != nil {
		left = c.renderSidebar(bodyHeight)
		mainWidth -= sidebarWidth
	}

	main := c.renderMain(mainWidth, bodyHeight)
	body := main
	if left != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, main)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusLine)
}

func (c *CatalogView) renderSidebar(height int) string {
	panelHeight := len(palette.Names()) + 4
	chartHeight := height - panelHeight
	panel := c.panel.View(sidebarWidth, min(panelHeight, height), c.focus == focusPanel)
	if chartHeight < 6 {
		return panel
	}
	var chart string
	if c.state.IsLoading() {
		chart = renderChartMessage("Loading...", sidebarWidth, chartHeight)
	} else {
		chart = renderDistribution(catalog.CountByCategory(c.state.Visible()), sidebarWidth, chartHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, chart)
}

func (c *CatalogView) renderMain(width, height int) string {
	style := sectionStyle.Width(width - 2).Height(height - 2)
	if c.focus == focusGrid {
		style = activeSectionStyle.Width(width - 2).Height(height - 2)
	}

	heading := titleStyle.Render("Creature Catalog")
	innerWidth := width - 4
	innerHeight := height - 2 - lipgloss.Height(heading)

	if c.state.IsLoading() {
		loading := lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center,
			helpStyle.Render(c.spinner.View()+" Loading..."))
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, heading, loading))
	}

	visible := c.state.Visible()
	if len(visible) == 0 {
		empty := lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("Nothing to show"))
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, heading, empty))
	}

	c.grid.Width = innerWidth
	c.grid.Height = innerHeight
	c.grid.SetContent(renderCardGrid(visible, innerWidth))
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, heading, c.grid.View()))
}

// renderCardGrid lays out one card per item, as many per row as fit.
func renderCardGrid(items []model.Item, width int) string {
	perRow := max(1, width/(cardWidth+2))

	var rows []string
	for start := 0; start < len(items); start += perRow {
		end := min(start+perRow, len(items))
		cards := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			cards = append(cards, renderCard(it))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one catalog card with its categories in their palette
// colors and the item's detail route.
func renderCard(it model.Item) string {
	name := lipgloss.NewStyle().Bold(true).Render(it.Name)
	id := helpStyle.Render(fmt.Sprintf("#%03d", it.ID))

	types := make([]string, 0, len(it.Categories))
	for _, c := range it.Categories {
		types = append(types, lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.ColorFor(c))).
			Render("• "+c))
	}

	link := lipgloss.NewStyle().Foreground(ColorBlue).Underline(true).Render(model.DetailRoute(it.Name))
	image := helpStyle.Render(truncate(it.ImageURL, cardWidth-2))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		name, id, strings.Join(types, " "), image, link))
}

func (c *CatalogView) renderStatusLine(width int) string {
	var left string
	switch c.state.Phase() {
	case catalog.PhaseLoading:
		left = "loading"
	case catalog.PhaseLoadFailed:
		left = "no data"
	case catalog.PhaseLoaded:
		left = fmt.Sprintf("%d/%d shown", len(c.state.Visible()), len(c.state.Items()))
	default:
		left = "idle"
	}

	if sel := c.state.Selection(); len(sel) > 0 {
		left += " • types: " + strings.Join(sel, ", ")
	}

	right := "?: Help • tab: Focus • space: Toggle • f: Filter • r: Reload • q: Quit"
	if width < 100 {
		right = "? • tab • space • f • r • q"
	}

	left = truncate(left, max(1, width-lipgloss.Width(right)-3))
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return statusStyle.Width(width).Render(" " + left + strings.Repeat(" ", gap) + right + " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

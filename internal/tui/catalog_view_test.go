package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/bestiary/internal/catalog"
	"github.com/tinytelemetry/bestiary/internal/model"
)

type fakeSource struct {
	mu    sync.Mutex
	items []model.Item
	err   error
	calls int
}

func (f *fakeSource) LoadCatalog(_ context.Context) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Item(nil), f.items...), nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func scenarioItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "a", Categories: []string{"fire"}},
		{ID: 2, Name: "b", Categories: []string{"water"}},
		{ID: 3, Name: "c", Categories: []string{"grass"}},
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visibleNames(v *CatalogView) []string {
	var out []string
	for _, it := range v.State().Visible() {
		out = append(out, it.Name)
	}
	return out
}

// mountAndLoad mounts v and delivers the result of one load cycle.
func mountAndLoad(t *testing.T, v *CatalogView) {
	t.Helper()
	v.Init()
	msg := v.loadCatalog()()
	v.Update(msg)
}

func TestCatalogView_InitEntersLoading(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	if v.State().Phase() != catalog.PhaseIdle {
		t.Fatalf("phase before mount = %v, want idle", v.State().Phase())
	}

	v.Init()
	if !v.State().IsLoading() {
		t.Fatal("expected loading after mount")
	}
	if got := v.View(120, 40); !strings.Contains(got, "Loading...") {
		t.Fatal("loading indicator not rendered")
	}
}

func TestCatalogView_SuccessfulLoad(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)

	if v.State().IsLoading() {
		t.Fatal("still loading after result delivered")
	}
	if got := len(v.State().Items()); got != 3 {
		t.Fatalf("items = %d, want 3", got)
	}
	out := v.View(140, 50)
	for _, want := range []string{"a", "/monster/b", "Filter by Type"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCatalogView_FailedLoadDegradesToEmpty(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{err: errors.New("detail 3 of 20 failed")}, CatalogViewOptions{})
	mountAndLoad(t, v)

	if v.State().IsLoading() {
		t.Fatal("loading flag not cleared after failure")
	}
	if got := len(v.State().Items()); got != 0 {
		t.Fatalf("items = %d, want 0 after failure", got)
	}
	if v.State().Phase() != catalog.PhaseLoadFailed {
		t.Fatalf("phase = %v, want load_failed", v.State().Phase())
	}
	if out := v.View(120, 40); !strings.Contains(out, "Nothing to show") {
		t.Fatal("empty catalog placeholder not rendered")
	}
}

func TestCatalogView_LateResultAfterUnmountIsDropped(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	v.Init()
	pending := v.loadCatalog()

	v.Unmount()
	v.Update(pending())

	if got := len(v.State().Items()); got != 0 {
		t.Fatalf("items = %d, want 0: late result applied after unmount", got)
	}
}

func TestCatalogView_StaleCycleIgnoredOnReload(t *testing.T) {
	t.Parallel()

	src := &fakeSource{items: scenarioItems()}
	v := NewCatalogView(src, CatalogViewOptions{})
	v.Init()

	first := v.loadCatalog()
	second := v.loadCatalog()

	src.items = scenarioItems()[:1]
	v.Update(second())
	src.items = scenarioItems()
	v.Update(first())

	if got := len(v.State().Items()); got != 1 {
		t.Fatalf("items = %d, want 1 from the latest cycle", got)
	}
}

func TestCatalogView_FilterChangedCopiesPayload(t *testing.T) {
	t.Parallel()

	src := &fakeSource{items: scenarioItems()}
	v := NewCatalogView(src, CatalogViewOptions{})
	mountAndLoad(t, v)
	callsBefore := src.callCount()

	msg := FilterChangedMsg{FilterChanged: model.NewFilterChanged([]string{"fire", "water"})}
	v.Update(msg)

	if got := strings.Join(visibleNames(v), ","); got != "a,b" {
		t.Fatalf("visible = %s, want a,b", got)
	}

	msg.SelectedTypes[0] = "grass"
	if got := strings.Join(visibleNames(v), ","); got != "a,b" {
		t.Fatalf("visible changed through sender's slice: %s", got)
	}
	if src.callCount() != callsBefore {
		t.Fatal("filter change triggered a refetch")
	}
}

func TestCatalogView_ReloadKeyStartsNewCycle(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)
	before := v.State().Cycle()

	cmd, nav := v.Update(runeKey("r"))
	if nav != nil {
		t.Fatal("reload should not navigate")
	}
	if cmd == nil {
		t.Fatal("reload returned no command")
	}
	if !v.State().IsLoading() || v.State().Cycle() != before+1 {
		t.Fatalf("reload did not enter a new loading cycle")
	}
	if got := len(v.State().Items()); got != 3 {
		t.Fatalf("items discarded before reload completed: %d", got)
	}
}

func TestCatalogView_HidingPanelKeepsLastSelection(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)

	cmd := v.panel.ToggleCategory("water", true)
	v.Update(cmd())

	v.Update(runeKey("f"))
	if v.panel != nil {
		t.Fatal("panel still mounted after hide")
	}
	if got := strings.Join(visibleNames(v), ","); got != "b" {
		t.Fatalf("visible = %s, want b after panel unmount", got)
	}

	v.Update(runeKey("f"))
	if v.panel == nil || len(v.panel.Selected()) != 0 {
		t.Fatal("remounted panel should start with an empty selection")
	}
}

func TestCatalogView_HelpNavigation(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{}, CatalogViewOptions{})
	_, nav := v.Update(runeKey("?"))
	if nav == nil || nav.PageID != helpPageID {
		t.Fatalf("nav = %+v, want help page", nav)
	}
}

func TestRenderCard_ColorsAndRoute(t *testing.T) {
	t.Parallel()

	out := renderCard(model.Item{ID: 4, Name: "charmander", Categories: []string{"fire", "shadow"}})
	for _, want := range []string{"charmander", "#004", "fire", "shadow", "/monster/charmander"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogView_ViewFitsTerminalHeight(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)
	v.Update(v.panel.ToggleCategory("fire", true)())

	for _, width := range []int{80, 120} {
		for _, height := range []int{12, 13, 16, 20, 22, 23, 27, 30, 45} {
			if got := lipgloss.Height(v.View(width, height)); got != height {
				t.Errorf("View(%d, %d) rendered %d lines", width, height, got)
			}
		}
	}
}

func TestCatalogView_ShortTerminalKeepsPanelHeading(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)

	out := v.View(80, 12)
	if !strings.Contains(out, "Filter by Type") {
		t.Fatalf("panel heading cut off:\n%s", out)
	}
	if !strings.Contains(out, "normal") {
		t.Fatalf("first category missing at the top of the window:\n%s", out)
	}

	for i := 0; i < 17; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	out = v.View(80, 12)
	if !strings.Contains(out, "fairy") {
		t.Fatalf("window did not follow the cursor to the last category:\n%s", out)
	}
	if strings.Contains(out, "normal") {
		t.Fatalf("window still shows the first category:\n%s", out)
	}
}

func TestWindowStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cursor, rows, total, want int
	}{
		{0, 7, 18, 0},
		{3, 7, 18, 0},
		{9, 7, 18, 6},
		{17, 7, 18, 11},
		{5, 18, 18, 0},
	}
	for _, tt := range tests {
		if got := windowStart(tt.cursor, tt.rows, tt.total); got != tt.want {
			t.Errorf("windowStart(%d, %d, %d) = %d, want %d", tt.cursor, tt.rows, tt.total, got, tt.want)
		}
	}
}

func TestCatalogView_ChartHidesStaleItemsWhileLoading(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&fakeSource{items: scenarioItems()}, CatalogViewOptions{})
	mountAndLoad(t, v)

	if out := v.renderSidebar(40); strings.Contains(out, "Loading...") {
		t.Fatal("loaded chart rendered the loading placeholder")
	}

	v.Update(runeKey("r"))
	if !v.State().IsLoading() {
		t.Fatal("reload did not enter loading")
	}
	if out := v.renderSidebar(40); !strings.Contains(out, "Loading...") {
		t.Fatalf("chart drew stale items during reload:\n%s", out)
	}
}

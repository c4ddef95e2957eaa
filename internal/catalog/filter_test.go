package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinytelemetry/bestiary/internal/model"
)

func names(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func sampleItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "a", Categories: []string{"fire"}},
		{ID: 2, Name: "b", Categories: []string{"water"}},
		{ID: 3, Name: "c", Categories: []string{"grass"}},
		{ID: 4, Name: "d", Categories: []string{"grass", "fire"}},
		{ID: 5, Name: "e", Categories: []string{"water", "flying"}},
	}
}

func TestVisibleItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{"empty selection returns all", nil, []string{"a", "b", "c", "d", "e"}},
		{"single category", []string{"fire"}, []string{"a", "d"}},
		{"or across categories", []string{"fire", "water"}, []string{"a", "b", "d", "e"}},
		{"selection order irrelevant", []string{"water", "fire"}, []string{"a", "b", "d", "e"}},
		{"no match", []string{"dragon"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, names(VisibleItems(sampleItems(), tt.selected)))
		})
	}
}

func TestVisibleItems_Scenario(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{Name: "a", Categories: []string{"fire"}},
		{Name: "b", Categories: []string{"water"}},
		{Name: "c", Categories: []string{"grass"}},
	}
	s := NewSelection("fire", "water")

	assert.Equal(t, []string{"a", "b"}, names(VisibleItems(items, s.Names())))
}

func TestVisibleItems_FreshSlice(t *testing.T) {
	t.Parallel()

	items := sampleItems()
	got := VisibleItems(items, nil)
	got[0].Name = "changed"

	assert.Equal(t, "a", items[0].Name)
}

func TestCountByCategory(t *testing.T) {
	t.Parallel()

	counts := CountByCategory(append(sampleItems(), model.Item{Name: "x", Categories: []string{"shadow"}}))

	got := make(map[string]int)
	var order []string
	for _, c := range counts {
		got[c.Category.Name] = c.Count
		order = append(order, c.Category.Name)
	}

	assert.Equal(t, map[string]int{"fire": 2, "water": 2, "grass": 2, "flying": 1}, got)
	assert.Equal(t, []string{"fire", "water", "grass", "flying"}, order)
}

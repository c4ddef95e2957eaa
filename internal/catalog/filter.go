package catalog

import (
	"github.com/tinytelemetry/bestiary/internal/model"
	"github.com/tinytelemetry/bestiary/internal/palette"
)

// VisibleItems returns the items matching at least one selected category,
// in their original order. An empty selection matches everything. The
// result is always a fresh slice.
func VisibleItems(items []model.Item, selected []string) []model.Item {
	if len(selected) == 0 {
		return append([]model.Item{}, items...)
	}

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		for _, name := range selected {
			if it.HasCategory(name) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// CategoryCount is the number of items carrying one category.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// CountByCategory counts items per registered category, in palette order.
// Categories with no items are omitted; unregistered names are ignored.
func CountByCategory(items []model.Item) []CategoryCount {
	counts := make(map[string]int)
	for _, it := range items {
		for _, c := range it.Categories {
			counts[c]++
		}
	}

	var out []CategoryCount
	for _, cat := range palette.Categories() {
		if n := counts[cat.Name]; n > 0 {
			out = append(out, CategoryCount{Category: cat, Count: n})
		}
	}
	return out
}

// Package palette holds the shared, read-only category table used by both
// the filter panel and the catalog view.
package palette

import "github.com/tinytelemetry/bestiary/internal/model"

var categories = []model.Category{
	{Name: "normal", Color: "#A8A77A"},
	{Name: "fire", Color: "#EE8130"},
	{Name: "water", Color: "#6390F0"},
	{Name: "grass", Color: "#7AC74C"},
	{Name: "electric", Color: "#F7D02C"},
	{Name: "ice", Color: "#96D9D6"},
	{Name: "fighting", Color: "#C22E28"},
	{Name: "poison", Color: "#A33EA1"},
	{Name: "ground", Color: "#E2BF65"},
	{Name: "flying", Color: "#A98FF3"},
	{Name: "psychic", Color: "#F95587"},
	{Name: "bug", Color: "#A6B91A"},
	{Name: "rock", Color: "#B6A136"},
	{Name: "ghost", Color: "#735797"},
	{Name: "dragon", Color: "#6F35FC"},
	{Name: "dark", Color: "#705746"},
	{Name: "steel", Color: "#B7B7CE"},
	{Name: "fairy", Color: "#D685AD"},
}

var colorByName = func() map[string]string {
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[c.Name] = c.Color
	}
	return m
}()

// Categories returns the category table in display order. The slice is a
// copy; callers may modify it freely.
func Categories() []model.Category {
	return append([]model.Category(nil), categories...)
}

// Names returns the category names in display order.
func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Known reports whether name is a registered category.
func Known(name string) bool {
	_, ok := colorByName[name]
	return ok
}

// ColorFor returns the display color for a category, or model.FallbackColor
// when the name is not registered.
func ColorFor(name string) string {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return model.FallbackColor
}

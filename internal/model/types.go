package model

import "net/url"

// Category is a creature type tag and the color it is displayed with.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Item is a single catalog entry. Items are never mutated after a fetch;
// a refetch replaces the whole list.
type Item struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"imageUrl"`
	Categories []string `json:"categories"`
}

// HasCategory reports whether the item is tagged with name.
func (it Item) HasCategory(name string) bool {
	for _, c := range it.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// DetailRoute returns the per-item detail route linked from catalog cards.
func DetailRoute(name string) string {
	return "/monster/" + url.PathEscape(name)
}

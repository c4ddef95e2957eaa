package model

// FilterChangedEvent is the name of the notification emitted by the filter
// panel after every accepted toggle.
const FilterChangedEvent = "filter-changed"

// FilterChanged is the filter-changed payload. SelectedTypes is always a
// snapshot copy; receivers own it.
type FilterChanged struct {
	SelectedTypes []string `json:"selectedTypes"`
}

// NewFilterChanged builds a payload holding a private copy of names.
func NewFilterChanged(names []string) FilterChanged {
	return FilterChanged{SelectedTypes: append([]string{}, names...)}
}

package catalog

import "github.com/tinytelemetry/bestiary/internal/palette"

// Selection is the ordered set of active filter categories. Toggle semantics
// make duplicates impossible; insertion order is kept for stable rendering.
type Selection struct {
	names []string
}

// NewSelection returns a selection seeded with the known, distinct names
// from initial.
func NewSelection(initial ...string) Selection {
	var s Selection
	for _, name := range initial {
		s.Toggle(name, true)
	}
	return s
}

// Toggle selects or deselects name. It returns false when name is not a
// registered category, in which case the selection is left untouched.
// Repeating a toggle with the same flag is a no-op.
func (s *Selection) Toggle(name string, selected bool) bool {
	if !palette.Known(name) {
		return false
	}
	if selected {
		if !s.Contains(name) {
			s.names = append(s.names, name)
		}
		return true
	}

	kept := make([]string, 0, len(s.names))
	for _, n := range s.names {
		if n != name {
			kept = append(kept, n)
		}
	}
	s.names = kept
	return true
}

// Contains reports whether name is selected.
func (s Selection) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns a snapshot copy of the selected names.
func (s Selection) Names() []string {
	return append([]string{}, s.names...)
}

// Len returns the number of selected categories.
func (s Selection) Len() int { return len(s.names) }

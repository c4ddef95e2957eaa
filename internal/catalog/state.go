package catalog

import (
	"sync"

	"github.com/tinytelemetry/bestiary/internal/model"
)

// Phase is the position of a catalog within its current load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// State is the catalog view's own state: the fetched items, the load phase
// and the last filter selection received. It is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	items     []model.Item
	phase     Phase
	cycle     uint64
	selection []string
	lastErr   error
}

// NewState returns an idle, empty catalog state.
func NewState() *State {
	return &State{}
}

// BeginLoad enters Loading and returns the id of the new load cycle. The
// current items stay in place until the cycle completes.
func (s *State) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle++
	s.phase = PhaseLoading
	return s.cycle
}

// Complete finishes load cycle id. On success the items replace the current
// list in one step; on failure the list is emptied. Completions for any
// cycle other than the latest are ignored and Complete returns false.
func (s *State) Complete(cycle uint64, items []model.Item, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cycle != s.cycle || s.phase != PhaseLoading {
		return false
	}
	if err != nil {
		s.items = nil
		s.phase = PhaseLoadFailed
		s.lastErr = err
		return true
	}
	s.items = append([]model.Item(nil), items...)
	s.phase = PhaseLoaded
	s.lastErr = nil
	return true
}

// SetSelection replaces the active selection with a copy of names.
func (s *State) SetSelection(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = append([]string(nil), names...)
}

// Selection returns a copy of the active selection.
func (s *State) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// Items returns a copy of the current items.
func (s *State) Items() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Item(nil), s.items...)
}

// Visible derives the filtered item list from the current items and
// selection. It is recomputed on every call.
func (s *State) Visible() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return VisibleItems(s.items, s.selection)
}

// Phase returns the current load phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// IsLoading reports whether a load cycle is in flight.
func (s *State) IsLoading() bool {
	return s.Phase() == PhaseLoading
}

// Cycle returns the id of the most recent load cycle (0 before the first).
func (s *State) Cycle() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycle
}

// LastError returns the error of the last failed cycle, if the most recent
// completed cycle failed.
func (s *State) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tinytelemetry/bestiary/internal/duckdb"
	"github.com/tinytelemetry/bestiary/internal/model"
)

type stubSource struct {
	mu    sync.Mutex
	items []model.Item
	err   error
	calls int
}

func (s *stubSource) LoadCatalog(_ context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestStore(t *testing.T) *duckdb.Store {
	t.Helper()
	store, err := duckdb.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sample() []model.Item {
	return []model.Item{
		{ID: 1, Name: "a", Categories: []string{"fire"}},
		{ID: 2, Name: "b", Categories: []string{"water"}},
	}
}

func TestReload_SuccessStoresSnapshot(t *testing.T) {
	store := newTestStore(t)
	s := New(&stubSource{items: sample()}, store, nil, Config{})

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	items, err := store.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("stored items = %d, want 2", len(items))
	}

	st := s.Status()
	if st.Phase != "loaded" || st.ItemCount != 2 || st.Cycle != 1 {
		t.Fatalf("status = %+v", st)
	}
}

func TestReload_FailureLeavesEmptyCatalog(t *testing.T) {
	store := newTestStore(t)
	src := &stubSource{items: sample()}
	s := New(src, store, nil, Config{})

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("first Reload: %v", err)
	}

	src.setErr(errors.New("detail fetch failed"))
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	items, err := store.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("stored items = %d, want 0 after failed load", len(items))
	}

	st := s.Status()
	if st.Phase != "load_failed" || st.ItemCount != 0 || st.LastError == "" {
		t.Fatalf("status = %+v", st)
	}

	loads, err := store.RecentLoads(5)
	if err != nil {
		t.Fatalf("RecentLoads: %v", err)
	}
	if len(loads) != 2 || loads[0].Error == "" {
		t.Fatalf("loads = %+v", loads)
	}
}

func TestStart_SchedulesReloads(t *testing.T) {
	store := newTestStore(t)
	src := &stubSource{items: sample()}
	s := New(src, store, nil, Config{Interval: 10 * time.Millisecond})

	s.Start(context.Background())
	deadline := time.After(2 * time.Second)
	for src.callCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d loads after 2s", src.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()
	s.Stop()
}

func TestStart_NoIntervalLoadsOnce(t *testing.T) {
	store := newTestStore(t)
	src := &stubSource{items: sample()}
	s := New(src, store, nil, Config{})

	s.Start(context.Background())
	s.Stop()

	if src.callCount() != 1 {
		t.Fatalf("loads = %d, want 1", src.callCount())
	}
}

type blockingSource struct{}

func (blockingSource) LoadCatalog(ctx context.Context) ([]model.Item, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestReload_TimeoutBoundsCycle(t *testing.T) {
	store := newTestStore(t)
	s := New(blockingSource{}, store, nil, Config{Timeout: 20 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- s.Reload(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Reload err = %v, want deadline exceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Reload ignored the load timeout")
	}

	if st := s.Status(); st.Phase != "load_failed" {
		t.Fatalf("phase = %q, want load_failed", st.Phase)
	}
}

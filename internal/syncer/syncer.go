// Package syncer runs catalog load cycles for the daemon and writes each
// result to the snapshot store.
package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tinytelemetry/bestiary/internal/catalog"
	"github.com/tinytelemetry/bestiary/internal/duckdb"
	"github.com/tinytelemetry/bestiary/internal/model"
)

// Store is the persistence contract the syncer needs.
type Store interface {
	model.CatalogWriter
	RecordLoad(rec duckdb.LoadRecord) error
}

// Config controls scheduling.
type Config struct {
	// Interval between scheduled reloads. Zero loads once at Start.
	Interval time.Duration
	// Timeout bounds one load cycle. Zero means no extra bound beyond the
	// client's own request timeout.
	Timeout time.Duration
}

// Status is a point-in-time view of the syncer.
type Status struct {
	Phase     string    `json:"phase"`
	Cycle     uint64    `json:"cycle"`
	ItemCount int       `json:"item_count"`
	LastError string    `json:"last_error,omitempty"`
	LastLoad  time.Time `json:"last_load,omitempty"`
}

// Syncer owns the daemon's catalog state machine.
type Syncer struct {
	source model.CatalogSource
	store  Store
	state  *catalog.State
	logger *zap.Logger
	cfg    Config

	// loadMu serializes cycles so store writes land in cycle order.
	loadMu   sync.Mutex
	lastMu   sync.RWMutex
	lastLoad time.Time

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a syncer. Call Start to begin loading.
func New(source model.CatalogSource, store Store, logger *zap.Logger, cfg Config) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		source: source,
		store:  store,
		state:  catalog.NewState(),
		logger: logger,
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

// Start runs an initial cycle synchronously, then schedules reloads when an
// interval is configured.
func (s *Syncer) Start(ctx context.Context) {
	_ = s.Reload(ctx)

	if s.cfg.Interval <= 0 {
		return
	}
	s.wg.Add(1)
	go s.tickLoop(ctx)
}

func (s *Syncer) tickLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.Reload(ctx)
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// Stop ends scheduled reloads and waits for the loop to exit.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}

// Reload runs one load cycle. A failed load is logged and leaves an empty
// catalog in the store; the returned error is informational only.
func (s *Syncer) Reload(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	cycle := s.state.BeginLoad()
	items, loadErr := s.source.LoadCatalog(ctx)
	if loadErr != nil {
		items = nil
	}

	if err := s.store.ReplaceCatalog(items); err != nil {
		s.logger.Error("storing catalog snapshot failed", zap.Uint64("cycle", cycle), zap.Error(err))
		if loadErr == nil {
			loadErr = err
			items = nil
		}
	}
	s.state.Complete(cycle, items, loadErr)

	finished := time.Now()
	s.lastMu.Lock()
	s.lastLoad = finished
	s.lastMu.Unlock()

	rec := duckdb.LoadRecord{
		Cycle:      cycle,
		StartedAt:  started,
		FinishedAt: finished,
		ItemCount:  len(items),
	}
	if loadErr != nil {
		rec.Error = loadErr.Error()
		s.logger.Warn("catalog load failed",
			zap.Uint64("cycle", cycle),
			zap.Duration("took", finished.Sub(started)),
			zap.Error(loadErr))
	} else {
		s.logger.Info("catalog loaded",
			zap.Uint64("cycle", cycle),
			zap.Int("items", len(items)),
			zap.Duration("took", finished.Sub(started)))
	}
	if err := s.store.RecordLoad(rec); err != nil {
		s.logger.Error("recording load cycle failed", zap.Uint64("cycle", cycle), zap.Error(err))
	}
	return loadErr
}

// Status reports the current phase and item count.
func (s *Syncer) Status() Status {
	st := Status{
		Phase:     s.state.Phase().String(),
		Cycle:     s.state.Cycle(),
		ItemCount: len(s.state.Items()),
	}
	if err := s.state.LastError(); err != nil {
		st.LastError = err.Error()
	}
	s.lastMu.RLock()
	st.LastLoad = s.lastLoad
	s.lastMu.RUnlock()
	return st
}

package duckdb

import (
	"fmt"
	"time"
)

// LoadRecord is one completed load cycle.
type LoadRecord struct {
	Cycle      uint64    `json:"cycle"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	ItemCount  int       `json:"item_count"`
	Error      string    `json:"error,omitempty"`
}

// RecordLoad appends a load cycle to the history.
func (s *Store) RecordLoad(rec LoadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO catalog_loads (cycle, started_at, finished_at, item_count, error) VALUES (?, ?, ?, ?, ?)",
		int64(rec.Cycle), rec.StartedAt.UTC(), rec.FinishedAt.UTC(), rec.ItemCount, rec.Error)
	if err != nil {
		return fmt.Errorf("recording load: %w", err)
	}
	return nil
}

// RecentLoads returns up to limit load cycles, newest first.
func (s *Store) RecentLoads(limit int) ([]LoadRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT cycle, started_at, finished_at, item_count, error FROM catalog_loads ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing loads: %w", err)
	}
	defer rows.Close()

	out := make([]LoadRecord, 0)
	for rows.Next() {
		var rec LoadRecord
		var cycle int64
		if err := rows.Scan(&cycle, &rec.StartedAt, &rec.FinishedAt, &rec.ItemCount, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning load row: %w", err)
		}
		rec.Cycle = uint64(cycle)
		out = append(out, rec)
	}
	return out, rows.Err()
}

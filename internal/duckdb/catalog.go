package duckdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tinytelemetry/bestiary/internal/model"
)

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}

// ReplaceCatalog swaps the stored catalog for items in one transaction.
// Readers see either the previous list or the new one, never a mix.
func (s *Store) ReplaceCatalog(items []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO catalog_items (position, id, name, image_url, categories) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		cats := it.Categories
		if cats == nil {
			cats = []string{}
		}
		catsJSON, err := json.Marshal(cats)
		if err != nil {
			return fmt.Errorf("encoding categories for %s: %w", it.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, i, it.ID, it.Name, it.ImageURL, string(catsJSON)); err != nil {
			return fmt.Errorf("inserting %s: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// ListItems returns the stored catalog in its original order.
func (s *Store) ListItems() ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, image_url, categories FROM catalog_items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		var catsJSON string
		if err := rows.Scan(&it.ID, &it.Name, &it.ImageURL, &catsJSON); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if err := json.Unmarshal([]byte(catsJSON), &it.Categories); err != nil {
			return nil, fmt.Errorf("decoding categories for %s: %w", it.Name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ItemCount returns the number of stored catalog items.
func (s *Store) ItemCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_items").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting catalog: %w", err)
	}
	return n, nil
}

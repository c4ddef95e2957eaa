package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tinytelemetry/bestiary/internal/duckdb/migrate"
)

const defaultQueryTimeout = 30 * time.Second

// Store keeps the most recent catalog snapshot and a history of load cycles.
// Writes take the exclusive lock so a reader never sees half a snapshot.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	QueryTimeout time.Duration
}

// NewStore opens the catalog database at dbPath, creating parent
// directories and applying schema upgrades. An empty dbPath keeps the
// catalog in memory. queryTimeout bounds each statement; zero or absent
// means 30s.
func NewStore(dbPath string, queryTimeout ...time.Duration) (*Store, error) {
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog db dir: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if err := migrate.NewRunner(db).Run(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("upgrading catalog schema: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath, QueryTimeout: defaultQueryTimeout}
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		s.QueryTimeout = queryTimeout[0]
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

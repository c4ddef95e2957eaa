// Package migrate brings a catalog database up to the schema embedded in
// the binary.
package migrate

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records every schema step applied to a database.
const versionTable = "catalog_schema_versions"

// Runner upgrades one database. It is safe to run against a database that
// is already current.
type Runner struct{ db *sql.DB }

// NewRunner returns a runner for db.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// step is one embedded schema file, named NNN_description.sql.
type step struct {
	version int
	file    string
	body    string
}

func embeddedSteps() ([]step, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("listing schema files: %w", err)
	}

	byVersion := make(map[int]string, len(entries))
	steps := make([]step, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("schema file %s has no numeric version: %w", e.Name(), err)
		}
		if other, taken := byVersion[version]; taken {
			return nil, fmt.Errorf("schema files %s and %s both claim version %d", other, e.Name(), version)
		}
		byVersion[version] = e.Name()

		body, err := migrations.ReadFile(path.Join("migrations", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading schema file %s: %w", e.Name(), err)
		}
		steps = append(steps, step{version: version, file: e.Name(), body: string(body)})
	}

	slices.SortFunc(steps, func(a, b step) int { return a.version - b.version })
	return steps, nil
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
		version    INTEGER PRIMARY KEY,
		file       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`)
	if err != nil {
		return fmt.Errorf("creating %s: %w", versionTable, err)
	}
	return nil
}

func (r *Runner) currentVersion() (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRow("SELECT MAX(version) FROM " + versionTable).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return int(v.Int64), nil
}

// pending returns the current version and the steps newer than it.
func (r *Runner) pending() (int, []step, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, nil, err
	}
	current, err := r.currentVersion()
	if err != nil {
		return 0, nil, err
	}
	steps, err := embeddedSteps()
	if err != nil {
		return 0, nil, err
	}

	var todo []step
	for _, s := range steps {
		if s.version > current {
			todo = append(todo, s)
		}
	}
	return current, todo, nil
}

// Run applies every pending step. A failing step rolls back alone; steps
// before it stay applied.
func (r *Runner) Run() error {
	_, todo, err := r.pending()
	if err != nil {
		return err
	}
	for _, s := range todo {
		if err := r.applyStep(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) applyStep(s step) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("schema %s: begin: %w", s.file, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.body); err != nil {
		return fmt.Errorf("schema %s: %w", s.file, err)
	}
	if _, err := tx.Exec("INSERT INTO "+versionTable+" (version, file) VALUES (?, ?)", s.version, s.file); err != nil {
		return fmt.Errorf("schema %s: recording version: %w", s.file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("schema %s: commit: %w", s.file, err)
	}
	return nil
}

// Status reports the database's schema version and how many embedded steps
// it has not applied yet.
func (r *Runner) Status() (current int, pending int, err error) {
	current, todo, err := r.pending()
	if err != nil {
		return 0, 0, err
	}
	return current, len(todo), nil
}

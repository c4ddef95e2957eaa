package duckdb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tinytelemetry/bestiary/internal/model"
)

func TestExportTo_InMemory(t *testing.T) {
	s := newTestStore(t)
	err := s.ExportTo(filepath.Join(t.TempDir(), "out.duckdb"))
	if !errors.Is(err, ErrInMemoryStore) {
		t.Fatalf("ExportTo err = %v, want ErrInMemoryStore", err)
	}
}

func TestExportTo_CopiesSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "catalog.duckdb"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	items := []model.Item{{ID: 25, Name: "pikachu", Categories: []string{"electric"}}}
	if err := s.ReplaceCatalog(items); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}

	dst := filepath.Join(dir, "exports", "catalog-copy.duckdb")
	if err := s.ExportTo(dst); err != nil {
		t.Fatalf("ExportTo: %v", err)
	}

	copyStore, err := NewStore(dst)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer copyStore.Close()

	got, err := copyStore.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(got) != 1 || got[0].Name != "pikachu" {
		t.Fatalf("exported items = %+v", got)
	}
}

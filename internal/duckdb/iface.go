package duckdb

import "github.com/tinytelemetry/bestiary/internal/model"

// Type aliases re-export the model contracts the store satisfies.
type CatalogReader = model.CatalogReader
type CatalogWriter = model.CatalogWriter

var (
	_ CatalogReader = (*Store)(nil)
	_ CatalogWriter = (*Store)(nil)
)

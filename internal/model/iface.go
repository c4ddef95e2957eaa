package model

import "context"

// CatalogSource produces a fully resolved catalog. Implementations either
// return every item or an error; a partial list is never returned.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]Item, error)
}

// CatalogReader provides read access to the last stored catalog snapshot.
type CatalogReader interface {
	ListItems() ([]Item, error)
}

// CatalogWriter replaces the stored catalog snapshot wholesale.
type CatalogWriter interface {
	ReplaceCatalog(items []Item) error
}

// Package store defines the document store boundary the rest of the
// application talks to. Concrete backends live in subpackages.
package store

import (
	"context"
	"errors"
)

// Collection names are part of the wire contract with the backing store and
// must match the dashboard's historical collections byte for byte.
const (
	CollectionProducts        = "products"
	CollectionStock           = "stock"
	CollectionTransactions    = "transactions"
	CollectionEmployees       = "employees"
	CollectionWeeklyTemplates = "weeklyTemplates"
	CollectionReportsArchive  = "reports_archive"
)

// AllCollections lists every collection in the fixed order the purge
// facility walks them.
func AllCollections() []string {
	return []string{
		CollectionProducts,
		CollectionStock,
		CollectionTransactions,
		CollectionEmployees,
		CollectionReportsArchive,
		CollectionWeeklyTemplates,
	}
}

var (
	// ErrNotFound is returned by Update and Delete when no document carries
	// the given id.
	ErrNotFound = errors.New("store: document not found")
	// ErrUnavailable wraps backend connectivity failures.
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Document is one record as the store hands it back: an opaque id assigned on
// creation plus the raw field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the adapter contract over the external document database.
// Listing order is not guaranteed; callers needing order sort client-side.
// Update applies a partial field replace, never a full-document overwrite.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection string, id string, fields map[string]any) error
	Delete(ctx context.Context, collection string, id string) error
}

// Package memory provides an in-memory DocumentStore used by tests and by
// the STORE_BACKEND=memory development mode.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/patisserie-app/admin/internal/store"
)

// Store keeps collections as maps guarded by one RWMutex. Documents are
// copied on the way in and out so callers can never alias internal state.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string]map[string]map[string]any)}
}

// List returns every document in the collection, in unspecified order.
func (s *Store) List(_ context.Context, collection string) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]store.Document, 0, len(s.collections[collection]))
	for id, fields := range s.collections[collection] {
		docs = append(docs, store.Document{ID: id, Fields: copyFields(fields)})
	}
	return docs, nil
}

// Create stores the fields under a fresh uuid and returns it.
func (s *Store) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	id := uuid.NewString()
	s.collections[collection][id] = copyFields(fields)
	return id, nil
}

// Update merges the given fields into the existing document.
func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range copyFields(fields) {
		doc[k] = v
	}
	return nil
}

// Delete removes the document.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyFields(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}

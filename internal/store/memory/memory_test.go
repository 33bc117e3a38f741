package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/patisserie-app/admin/internal/store"
)

func TestCreateListUpdateDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Create(ctx, "products", map[string]any{"name": "Croissant", "price": 2.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}

	docs, err := s.List(ctx, "products")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("unexpected listing: %+v", docs)
	}

	if err := s.Update(ctx, "products", id, map[string]any{"price": 3.0}); err != nil {
		t.Fatalf("update: %v", err)
	}
	docs, _ = s.List(ctx, "products")
	if docs[0].Fields["price"] != 3.0 || docs[0].Fields["name"] != "Croissant" {
		t.Fatalf("partial update broke fields: %+v", docs[0].Fields)
	}

	if err := s.Delete(ctx, "products", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docs, _ = s.List(ctx, "products")
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
}

func TestNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Update(ctx, "products", "missing", map[string]any{"price": 1.0}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := s.Delete(ctx, "products", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestReturnedDocumentsDoNotAliasInternalState(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, _ := s.Create(ctx, "stock", map[string]any{
		"productName":     "Macaron",
		"cashierSessions": []any{map[string]any{"cashierName": "Zied"}},
	})

	docs, _ := s.List(ctx, "stock")
	docs[0].Fields["productName"] = "mutated"
	docs[0].Fields["cashierSessions"].([]any)[0].(map[string]any)["cashierName"] = "mutated"

	docs, _ = s.List(ctx, "stock")
	if docs[0].Fields["productName"] != "Macaron" {
		t.Fatalf("store state was aliased: %+v", docs[0].Fields)
	}
	session := docs[0].Fields["cashierSessions"].([]any)[0].(map[string]any)
	if session["cashierName"] != "Zied" {
		t.Fatalf("nested store state was aliased: %+v", session)
	}
	_ = id
}

package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/store"
	"github.com/patisserie-app/admin/internal/store/memory"
)

func newTestGenerator(t *testing.T) (*Generator, *memory.Store) {
	t.Helper()
	ms := memory.New()
	return New(ms, nil), ms
}

func TestGenerateEmployeesPinInvariant(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	if err := g.Generate(ctx, store.CollectionEmployees, 4); err != nil {
		t.Fatalf("generate: %v", err)
	}

	docs, _ := ms.List(ctx, store.CollectionEmployees)
	if len(docs) != 4 {
		t.Fatalf("expected 4 employees, got %d", len(docs))
	}

	for _, doc := range docs {
		role, _ := doc.Fields["type"].(string)
		pin, hasPin := doc.Fields["pin"]
		switch role {
		case "caissier":
			s, ok := pin.(string)
			if !ok || len(s) != 4 {
				t.Fatalf("caissier must have a 4-character pin, got %v", pin)
			}
			for _, r := range s {
				if r < '0' || r > '9' {
					t.Fatalf("pin must be numeric, got %q", s)
				}
			}
		case "boulanger":
			if hasPin {
				t.Fatalf("boulanger must not have a pin field: %+v", doc.Fields)
			}
		default:
			t.Fatalf("unexpected employee type %q", role)
		}
	}
}

func TestGenerateStockSamplesExistingProducts(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	productIDs := make(map[string]bool)
	for _, name := range []string{"Croissant", "Macaron"} {
		id, err := ms.Create(ctx, store.CollectionProducts, map[string]any{"name": name})
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
		productIDs[id] = true
	}

	if err := g.Generate(ctx, store.CollectionStock, 6); err != nil {
		t.Fatalf("generate: %v", err)
	}

	docs, _ := ms.List(ctx, store.CollectionStock)
	if len(docs) != 6 {
		t.Fatalf("expected 6 stock items, got %d", len(docs))
	}
	for _, doc := range docs {
		id, _ := doc.Fields["productId"].(string)
		if !productIDs[id] {
			t.Fatalf("stock references unknown product id %q", id)
		}
		name, _ := doc.Fields["productName"].(string)
		if name != "Croissant" && name != "Macaron" {
			t.Fatalf("stock product name not sampled from catalog: %q", name)
		}
	}
}

func TestGenerateStockFallsBackToPlaceholderIDs(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	if err := g.Generate(ctx, store.CollectionStock, 3); err != nil {
		t.Fatalf("generate: %v", err)
	}

	docs, _ := ms.List(ctx, store.CollectionStock)
	for _, doc := range docs {
		id, _ := doc.Fields["productId"].(string)
		if !strings.HasPrefix(id, "test_") {
			t.Fatalf("expected placeholder product id, got %q", id)
		}
		if name, _ := doc.Fields["productName"].(string); name == "" {
			t.Fatal("placeholder product name must not be empty")
		}
	}
}

func TestGenerateUnknownRecordType(t *testing.T) {
	g, _ := newTestGenerator(t)
	if err := g.Generate(context.Background(), "pastries", 3); !errors.Is(err, schema.ErrUnknownRecordType) {
		t.Fatalf("expected ErrUnknownRecordType, got %v", err)
	}
}

func TestGenerateAllDefaultCounts(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	g.GenerateAll(ctx)

	expected := map[string]int{
		store.CollectionProducts:        5,
		store.CollectionStock:           10,
		store.CollectionTransactions:    20,
		store.CollectionEmployees:       4,
		store.CollectionReportsArchive:  5,
		store.CollectionWeeklyTemplates: 3,
	}
	for collection, count := range expected {
		docs, _ := ms.List(ctx, collection)
		if len(docs) != count {
			t.Fatalf("collection %s: expected %d records, got %d", collection, count, len(docs))
		}
	}

	log := g.Log()
	if len(log) == 0 {
		t.Fatal("expected panel log lines")
	}
	if !strings.Contains(log[len(log)-1], "All test data generated successfully") {
		t.Fatalf("unexpected final log line: %s", log[len(log)-1])
	}
}

func TestGeneratedReportsCarryConsistentFinalTotal(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	if err := g.Generate(ctx, store.CollectionReportsArchive, 5); err != nil {
		t.Fatalf("generate: %v", err)
	}

	docs, _ := ms.List(ctx, store.CollectionReportsArchive)
	for _, doc := range docs {
		sales := doc.Fields["totalSales"].(float64)
		expenses := doc.Fields["totalExpenses"].(float64)
		income := doc.Fields["totalIncome"].(float64)
		final := doc.Fields["finalTotal"].(float64)
		if diff := final - (sales + income - expenses); diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("finalTotal mismatch: %v vs %v", final, sales+income-expenses)
		}
		if doc.Fields["type"] != "daily_report" {
			t.Fatalf("report missing daily_report discriminator: %+v", doc.Fields)
		}
	}
}

func TestDeleteAllCollections(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	g.GenerateAll(ctx)

	if err := g.DeleteAllCollections(ctx, func(string) bool { return true }); err != nil {
		t.Fatalf("purge: %v", err)
	}

	for _, collection := range store.AllCollections() {
		docs, _ := ms.List(ctx, collection)
		if len(docs) != 0 {
			t.Fatalf("collection %s not purged: %d left", collection, len(docs))
		}
	}
}

func TestDeleteAllCollectionsDeclined(t *testing.T) {
	g, ms := newTestGenerator(t)
	ctx := context.Background()

	if err := g.Generate(ctx, store.CollectionProducts, 2); err != nil {
		t.Fatalf("generate: %v", err)
	}

	err := g.DeleteAllCollections(ctx, func(string) bool { return false })
	if !errors.Is(err, engine.ErrConfirmationDeclined) {
		t.Fatalf("expected ErrConfirmationDeclined, got %v", err)
	}
	docs, _ := ms.List(ctx, store.CollectionProducts)
	if len(docs) != 2 {
		t.Fatal("declined purge must not touch the store")
	}
}

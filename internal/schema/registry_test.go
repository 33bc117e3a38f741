package schema

import (
	"errors"
	"testing"

	"github.com/patisserie-app/admin/internal/store"
)

func TestRegistryKnowsAllSixRecordTypes(t *testing.T) {
	reg := NewRegistry()

	expected := map[string]string{
		store.CollectionProducts:        store.CollectionProducts,
		store.CollectionStock:           store.CollectionStock,
		store.CollectionTransactions:    store.CollectionTransactions,
		store.CollectionEmployees:       store.CollectionEmployees,
		store.CollectionWeeklyTemplates: store.CollectionWeeklyTemplates,
		store.CollectionReportsArchive:  store.CollectionReportsArchive,
	}

	if got := len(reg.Types()); got != len(expected) {
		t.Fatalf("expected %d record types, got %d", len(expected), got)
	}

	for recordType, collection := range expected {
		s, err := reg.Get(recordType)
		if err != nil {
			t.Fatalf("get %s: %v", recordType, err)
		}
		if s.Collection != collection {
			t.Fatalf("expected collection %s for %s, got %s", collection, recordType, s.Collection)
		}
		if len(s.Fields) == 0 {
			t.Fatalf("schema %s has no fields", recordType)
		}
		if len(s.Identifying) == 0 {
			t.Fatalf("schema %s has no identifying fields", recordType)
		}
	}
}

func TestRegistryUnknownRecordType(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("pastries"); !errors.Is(err, ErrUnknownRecordType) {
		t.Fatalf("expected ErrUnknownRecordType, got %v", err)
	}
}

func TestDefaultsSeedCreateForm(t *testing.T) {
	reg := NewRegistry()
	s, err := reg.Get(store.CollectionTransactions)
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}

	form := s.Defaults()
	if form["type"] != "expense" {
		t.Fatalf("expected default type expense, got %v", form["type"])
	}
}

func TestTransactionsPageSizeAndOrder(t *testing.T) {
	reg := NewRegistry()
	s, _ := reg.Get(store.CollectionTransactions)
	if s.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", s.PageSize)
	}
	if s.SortField != "timestamp" || !s.SortDesc {
		t.Fatalf("expected timestamp desc ordering, got %s desc=%v", s.SortField, s.SortDesc)
	}

	s, _ = reg.Get(store.CollectionReportsArchive)
	if s.SortField != "createdAt" || !s.SortDesc {
		t.Fatalf("expected createdAt desc ordering for reports, got %s desc=%v", s.SortField, s.SortDesc)
	}
	if s.PageSize != 0 {
		t.Fatalf("reports should not be paged")
	}
}

func TestEmployeeNormalizeStripsPinFromBakers(t *testing.T) {
	reg := NewRegistry()
	s, _ := reg.Get(store.CollectionEmployees)
	if s.Normalize == nil {
		t.Fatal("employees schema must have a normalize hook")
	}

	fields := map[string]any{"name": "Karim", "type": "boulanger", "pin": "1234"}
	s.Normalize(fields)
	if _, ok := fields["pin"]; ok {
		t.Fatalf("boulanger must not carry a pin: %v", fields)
	}

	fields = map[string]any{"name": "Amal", "type": "caissier", "pin": "4321"}
	s.Normalize(fields)
	if fields["pin"] != "4321" {
		t.Fatalf("caissier pin must survive normalize: %v", fields)
	}
}

func TestCoerce(t *testing.T) {
	decimalField := Field{Name: "price", Type: TypeDecimal}
	intField := Field{Name: "piecesPerTray", Type: TypeInteger}
	boolField := Field{Name: "savedLocally", Type: TypeBoolean}

	if v, err := Coerce(decimalField, "2.50"); err != nil || v != 2.5 {
		t.Fatalf("decimal from string: got %v, %v", v, err)
	}
	if v, err := Coerce(decimalField, 3); err != nil || v != 3.0 {
		t.Fatalf("decimal from int: got %v, %v", v, err)
	}
	if _, err := Coerce(decimalField, "cheap"); err == nil {
		t.Fatal("expected error coercing non-numeric string to decimal")
	}

	if v, err := Coerce(intField, "12"); err != nil || v != 12 {
		t.Fatalf("integer from string: got %v, %v", v, err)
	}
	if v, err := Coerce(intField, 12.0); err != nil || v != 12 {
		t.Fatalf("integer from json number: got %v, %v", v, err)
	}

	if v, err := Coerce(boolField, "true"); err != nil || v != true {
		t.Fatalf("boolean from string: got %v, %v", v, err)
	}
}

// Package schema declares the field layout of every record type the
// dashboard manages. It is pure data consumed by the CRUD engine; adding a
// seventh record type means adding one RecordSchema here and nothing else.
package schema

import (
	"errors"
	"time"

	"github.com/patisserie-app/admin/internal/domain/models"
	"github.com/patisserie-app/admin/internal/store"
)

// ErrUnknownRecordType is returned for record-type identifiers the registry
// does not know.
var ErrUnknownRecordType = errors.New("schema: unknown record type")

// RecordSchema describes one record type: its backing collection, ordered
// fields, which fields identify a record on create, client-side ordering and
// optional hooks run on create/edit payloads.
type RecordSchema struct {
	Type       string
	Collection string
	Fields     []Field

	// Identifying lists the fields that must be present for a create to go
	// through; a submit missing any of them is silently dropped.
	Identifying []string

	// SortField orders the working set client-side after a load (the store
	// guarantees no order). Empty means store order.
	SortField string
	SortDesc  bool

	// PageSize partitions the loaded set for display; 0 disables paging.
	PageSize int

	// Derive adds clock-derived fields to a create payload.
	Derive func(fields map[string]any, now time.Time)

	// Normalize rewrites a create/edit payload before it is written.
	Normalize func(fields map[string]any)
}

// Field returns the named field declaration.
func (s RecordSchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults builds the blank create form: every field with a declared default.
func (s RecordSchema) Defaults() map[string]any {
	form := make(map[string]any)
	for _, f := range s.Fields {
		if f.Default != nil {
			form[f.Name] = f.Default
		}
	}
	return form
}

// Registry resolves record-type identifiers to their schema.
type Registry struct {
	byType map[string]RecordSchema
	order  []string
}

// Get returns the schema for a record type, ErrUnknownRecordType otherwise.
func (r *Registry) Get(recordType string) (RecordSchema, error) {
	s, ok := r.byType[recordType]
	if !ok {
		return RecordSchema{}, ErrUnknownRecordType
	}
	return s, nil
}

// Types lists the registered record types in registration order.
func (r *Registry) Types() []string {
	return append([]string(nil), r.order...)
}

// NewRegistry builds the registry with the six dashboard record types.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]RecordSchema)}
	for _, s := range []RecordSchema{
		productsSchema(),
		stockSchema(),
		transactionsSchema(),
		employeesSchema(),
		weeklyTemplatesSchema(),
		reportsSchema(),
	} {
		r.byType[s.Type] = s
		r.order = append(r.order, s.Type)
	}
	return r
}

func productsSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionProducts,
		Collection: store.CollectionProducts,
		Fields: []Field{
			{Name: "name", Label: "Name", Type: TypeString, Editable: true},
			{Name: "price", Label: "Price", Type: TypeDecimal, Editable: true},
			{Name: "piecesPerTray", Label: "Pieces/Tray", Type: TypeInteger, Editable: true},
			{Name: "targetValue", Label: "Target", Type: TypeDecimal, Editable: true},
			{Name: "targetType", Label: "Target Type", Type: TypeEnum,
				Options: []string{string(models.TargetPieces), string(models.TargetPlateaux)},
				Default: string(models.TargetPieces), Editable: true},
		},
		Identifying: []string{"name"},
	}
}

func stockSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionStock,
		Collection: store.CollectionStock,
		Fields: []Field{
			{Name: "productId", Label: "Product ID", Type: TypeString, Editable: false},
			{Name: "productName", Label: "Product", Type: TypeString, Editable: true},
			{Name: "piecesPerTray", Label: "Pieces/Tray", Type: TypeInteger, Editable: true},
			{Name: "targetType", Label: "Target Type", Type: TypeString, Editable: true},
			{Name: "percentage", Label: "Percentage", Type: TypeInteger, Editable: true},
			{Name: "date", Label: "Date", Type: TypeDate, Editable: true},
			{Name: "createdAt", Label: "Created", Type: TypeInstant, Editable: false},
			{Name: "updatedAt", Label: "Updated", Type: TypeInstant, Editable: false},
			{Name: "totalItemsProduced", Label: "Produced", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "plateausInFreezer", Label: "In Freezer", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "plateausHolding", Label: "Holding", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "plateausReadyToSell", Label: "Ready", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "itemsInPOS", Label: "In POS", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "itemsSoldToday", Label: "Sold Today", Type: TypeInteger, Default: 0, Editable: true},
			{Name: "cashierSessions", Label: "Cashier Sessions", Type: TypeNestedList, Editable: false},
		},
		Identifying: []string{"productName"},
		Derive: func(fields map[string]any, now time.Time) {
			if _, ok := fields["date"]; !ok {
				fields["date"] = now.Format("2006-01-02")
			}
			if _, ok := fields["createdAt"]; !ok {
				fields["createdAt"] = now.Format(time.RFC3339)
			}
			fields["updatedAt"] = now.Format(time.RFC3339)
		},
	}
}

func transactionsSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionTransactions,
		Collection: store.CollectionTransactions,
		Fields: []Field{
			{Name: "montant", Label: "Amount", Type: TypeDecimal, Editable: true},
			{Name: "raison", Label: "Reason", Type: TypeString, Editable: true},
			{Name: "type", Label: "Type", Type: TypeEnum,
				Options: []string{string(models.TransactionExpense), string(models.TransactionIncome)},
				Default: string(models.TransactionExpense), Editable: true},
			{Name: "timestamp", Label: "Timestamp", Type: TypeInstant, Editable: false},
			{Name: "date", Label: "Date", Type: TypeDate, Editable: false},
			{Name: "cashierId", Label: "Cashier ID", Type: TypeString, Editable: true},
			{Name: "cashierName", Label: "Cashier", Type: TypeString, Editable: true},
		},
		Identifying: []string{"montant", "raison"},
		SortField:   "timestamp",
		SortDesc:    true,
		PageSize:    10,
		Derive: func(fields map[string]any, now time.Time) {
			fields["timestamp"] = now.Format(time.RFC3339)
			fields["date"] = now.Format("2006-01-02")
			if _, ok := fields["cashierId"]; !ok {
				fields["cashierId"] = ""
			}
			if _, ok := fields["cashierName"]; !ok {
				fields["cashierName"] = ""
			}
		},
	}
}

func employeesSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionEmployees,
		Collection: store.CollectionEmployees,
		Fields: []Field{
			{Name: "name", Label: "Name", Type: TypeString, Editable: true},
			{Name: "type", Label: "Role", Type: TypeEnum,
				Options: []string{string(models.RoleCashier), string(models.RoleBaker)},
				Default: string(models.RoleCashier), Editable: true},
			{Name: "pin", Label: "PIN", Type: TypeString, Editable: true},
		},
		Identifying: []string{"name"},
		// A pin may only exist on a cashier document.
		Normalize: func(fields map[string]any) {
			if role, ok := fields["type"].(string); ok && role != string(models.RoleCashier) {
				delete(fields, "pin")
			}
		},
	}
}

func weeklyTemplatesSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionWeeklyTemplates,
		Collection: store.CollectionWeeklyTemplates,
		Fields: []Field{
			{Name: "employeeId", Label: "Employee ID", Type: TypeString, Editable: true},
			{Name: "products", Label: "Schedules", Type: TypeNestedList, Editable: false},
		},
		Identifying: []string{"employeeId"},
	}
}

func reportsSchema() RecordSchema {
	return RecordSchema{
		Type:       store.CollectionReportsArchive,
		Collection: store.CollectionReportsArchive,
		Fields: []Field{
			{Name: "date", Label: "Date", Type: TypeDate, Editable: true},
			{Name: "type", Label: "Type", Type: TypeString, Default: models.ReportTypeDaily, Editable: false},
			{Name: "fileName", Label: "File", Type: TypeString, Editable: true},
			{Name: "createdAt", Label: "Created", Type: TypeInstant, Editable: false},
			{Name: "totalSales", Label: "Sales", Type: TypeDecimal, Editable: true},
			{Name: "totalExpenses", Label: "Expenses", Type: TypeDecimal, Editable: true},
			{Name: "totalIncome", Label: "Income", Type: TypeDecimal, Editable: true},
			// Stored redundantly at write time; edits to the totals do not
			// recompute it.
			{Name: "finalTotal", Label: "Final Total", Type: TypeDecimal, Editable: true},
			{Name: "cashiersCount", Label: "Cashiers", Type: TypeInteger, Editable: true},
			{Name: "savedLocally", Label: "Saved Locally", Type: TypeBoolean, Default: false, Editable: true},
		},
		Identifying: []string{"date"},
		SortField:   "createdAt",
		SortDesc:    true,
		Derive: func(fields map[string]any, now time.Time) {
			if _, ok := fields["createdAt"]; !ok {
				fields["createdAt"] = now.Format(time.RFC3339)
			}
			fields["type"] = models.ReportTypeDaily
		},
	}
}

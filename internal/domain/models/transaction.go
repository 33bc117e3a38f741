package models

import "time"

// TransactionType discriminates cash movements. The amount is always stored
// unsigned; the sign is implied by the type.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one cash register movement.
type Transaction struct {
	ID          string          `bson:"-" json:"id"`
	Montant     float64         `bson:"montant" json:"montant"`
	Raison      string          `bson:"raison" json:"raison"`
	Type        TransactionType `bson:"type" json:"type"`
	Timestamp   time.Time       `bson:"-" json:"-"`
	CashierID   string          `bson:"cashierId" json:"cashierId"`
	CashierName string          `bson:"cashierName" json:"cashierName"`
}

// Fields returns the wire document written to the transactions collection.
// timestamp is an RFC3339 instant and date its calendar-day projection, the
// shape every historical document already has.
func (t Transaction) Fields() map[string]any {
	return map[string]any{
		"montant":     t.Montant,
		"raison":      t.Raison,
		"type":        string(t.Type),
		"timestamp":   t.Timestamp.Format(time.RFC3339),
		"date":        t.Timestamp.Format("2006-01-02"),
		"cashierId":   t.CashierID,
		"cashierName": t.CashierName,
	}
}

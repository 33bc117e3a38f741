package models

import "time"

// ReportTypeDaily is the constant discriminator every archived report
// document carries.
const ReportTypeDaily = "daily_report"

// ReportArchive is one archived end-of-day report. finalTotal is stored
// redundantly at write time (sales + income - expenses) and is not recomputed
// when the totals are later edited.
type ReportArchive struct {
	ID            string    `bson:"-" json:"id"`
	Date          string    `bson:"date" json:"date"`
	FileName      string    `bson:"fileName" json:"fileName"`
	CreatedAt     time.Time `bson:"-" json:"-"`
	TotalSales    float64   `bson:"totalSales" json:"totalSales"`
	TotalExpenses float64   `bson:"totalExpenses" json:"totalExpenses"`
	TotalIncome   float64   `bson:"totalIncome" json:"totalIncome"`
	FinalTotal    float64   `bson:"finalTotal" json:"finalTotal"`
	CashiersCount int       `bson:"cashiersCount" json:"cashiersCount"`
	SavedLocally  bool      `bson:"savedLocally" json:"savedLocally"`
}

// Fields returns the wire document written to the reports_archive collection.
func (r ReportArchive) Fields() map[string]any {
	return map[string]any{
		"date":          r.Date,
		"type":          ReportTypeDaily,
		"fileName":      r.FileName,
		"createdAt":     r.CreatedAt.Format(time.RFC3339),
		"totalSales":    r.TotalSales,
		"totalExpenses": r.TotalExpenses,
		"totalIncome":   r.TotalIncome,
		"finalTotal":    r.FinalTotal,
		"cashiersCount": r.CashiersCount,
		"savedLocally":  r.SavedLocally,
	}
}

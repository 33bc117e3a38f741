package models

import "time"

// WeeklyTemplate assigns a week of production quantities to an employee.
// employeeId is a free string reference, not validated against the employees
// collection.
type WeeklyTemplate struct {
	ID         string            `bson:"-" json:"id"`
	EmployeeID string            `bson:"employeeId" json:"employeeId"`
	Products   []ProductSchedule `bson:"products" json:"products"`
}

// ProductSchedule is one product's weekly quantities inside a template. It
// has no identity of its own outside its parent template.
type ProductSchedule struct {
	ProductID      string    `bson:"productId" json:"productId"`
	Monday         int       `bson:"monday" json:"monday"`
	Tuesday        int       `bson:"tuesday" json:"tuesday"`
	Wednesday      int       `bson:"wednesday" json:"wednesday"`
	Thursday       int       `bson:"thursday" json:"thursday"`
	Friday         int       `bson:"friday" json:"friday"`
	Saturday       int       `bson:"saturday" json:"saturday"`
	Sunday         int       `bson:"sunday" json:"sunday"`
	RepetitiveDays []string  `bson:"repetitiveDays" json:"repetitiveDays"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Weekdays lists schedule day keys in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Fields returns the wire document written to the weeklyTemplates collection.
func (w WeeklyTemplate) Fields() map[string]any {
	schedules := make([]any, 0, len(w.Products))
	for _, p := range w.Products {
		schedules = append(schedules, map[string]any{
			"productId":      p.ProductID,
			"monday":         p.Monday,
			"tuesday":        p.Tuesday,
			"wednesday":      p.Wednesday,
			"thursday":       p.Thursday,
			"friday":         p.Friday,
			"saturday":       p.Saturday,
			"sunday":         p.Sunday,
			"repetitiveDays": p.RepetitiveDays,
			"updatedAt":      p.UpdatedAt.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"employeeId": w.EmployeeID,
		"products":   schedules,
	}
}

package models

import "time"

// Stock is one day's production snapshot for a product. productId and
// productName are point-in-time copies taken when the snapshot is written;
// they are never re-synced after a product rename or delete, and a dangling
// productId is a normal state.
type Stock struct {
	ID                  string           `bson:"-" json:"id"`
	ProductID           string           `bson:"productId" json:"productId"`
	ProductName         string           `bson:"productName" json:"productName"`
	PiecesPerTray       int              `bson:"piecesPerTray" json:"piecesPerTray"`
	TargetType          string           `bson:"targetType" json:"targetType"`
	Percentage          int              `bson:"percentage" json:"percentage"`
	Date                string           `bson:"date" json:"date"`
	CreatedAt           string           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           string           `bson:"updatedAt" json:"updatedAt"`
	TotalItemsProduced  int              `bson:"totalItemsProduced" json:"totalItemsProduced"`
	PlateausInFreezer   int              `bson:"plateausInFreezer" json:"plateausInFreezer"`
	PlateausHolding     int              `bson:"plateausHolding" json:"plateausHolding"`
	PlateausReadyToSell int              `bson:"plateausReadyToSell" json:"plateausReadyToSell"`
	ItemsInPOS          int              `bson:"itemsInPOS" json:"itemsInPOS"`
	ItemsSoldToday      int              `bson:"itemsSoldToday" json:"itemsSoldToday"`
	CashierSessions     []CashierSession `bson:"cashierSessions,omitempty" json:"cashierSessions,omitempty"`
}

// CashierSession records one cashier's shift against a stock snapshot.
type CashierSession struct {
	CashierID                  string     `bson:"cashierId" json:"cashierId"`
	CashierName                string     `bson:"cashierName" json:"cashierName"`
	LoginTime                  time.Time  `bson:"loginTime" json:"loginTime"`
	LogoutTime                 *time.Time `bson:"logoutTime,omitempty" json:"logoutTime,omitempty"`
	StartingStock              int        `bson:"startingStock" json:"startingStock"`
	EndingStock                *int       `bson:"endingStock,omitempty" json:"endingStock,omitempty"`
	ItemsSold                  int        `bson:"itemsSold" json:"itemsSold"`
	PlateausReceived           int        `bson:"plateausReceived" json:"plateausReceived"`
	InitialPlateausReadyToSell *int       `bson:"initialPlateausReadyToSell,omitempty" json:"initialPlateausReadyToSell,omitempty"`
}

// Fields returns the wire document written to the stock collection.
func (s Stock) Fields() map[string]any {
	fields := map[string]any{
		"productId":           s.ProductID,
		"productName":         s.ProductName,
		"piecesPerTray":       s.PiecesPerTray,
		"targetType":          s.TargetType,
		"percentage":          s.Percentage,
		"date":                s.Date,
		"createdAt":           s.CreatedAt,
		"updatedAt":           s.UpdatedAt,
		"totalItemsProduced":  s.TotalItemsProduced,
		"plateausInFreezer":   s.PlateausInFreezer,
		"plateausHolding":     s.PlateausHolding,
		"plateausReadyToSell": s.PlateausReadyToSell,
		"itemsInPOS":          s.ItemsInPOS,
		"itemsSoldToday":      s.ItemsSoldToday,
	}
	if len(s.CashierSessions) > 0 {
		sessions := make([]any, 0, len(s.CashierSessions))
		for _, cs := range s.CashierSessions {
			sessions = append(sessions, cs.fields())
		}
		fields["cashierSessions"] = sessions
	}
	return fields
}

func (cs CashierSession) fields() map[string]any {
	out := map[string]any{
		"cashierId":        cs.CashierID,
		"cashierName":      cs.CashierName,
		"loginTime":        cs.LoginTime,
		"startingStock":    cs.StartingStock,
		"itemsSold":        cs.ItemsSold,
		"plateausReceived": cs.PlateausReceived,
	}
	if cs.LogoutTime != nil {
		out["logoutTime"] = *cs.LogoutTime
	}
	if cs.EndingStock != nil {
		out["endingStock"] = *cs.EndingStock
	}
	if cs.InitialPlateausReadyToSell != nil {
		out["initialPlateausReadyToSell"] = *cs.InitialPlateausReadyToSell
	}
	return out
}

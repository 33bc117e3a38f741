package models

// TargetType says whether a product's daily production target counts
// individual pieces or whole trays.
type TargetType string

const (
	TargetPieces   TargetType = "pieces"
	TargetPlateaux TargetType = "plateaux"
)

// Product is one catalog entry of the patisserie.
type Product struct {
	ID            string     `bson:"-" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Price         float64    `bson:"price" json:"price"`
	PiecesPerTray int        `bson:"piecesPerTray" json:"piecesPerTray"`
	TargetValue   float64    `bson:"targetValue" json:"targetValue"`
	TargetType    TargetType `bson:"targetType" json:"targetType"`
}

// Fields returns the wire document written to the products collection.
func (p Product) Fields() map[string]any {
	return map[string]any{
		"name":          p.Name,
		"price":         p.Price,
		"piecesPerTray": p.PiecesPerTray,
		"targetValue":   p.TargetValue,
		"targetType":    string(p.TargetType),
	}
}

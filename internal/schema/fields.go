package schema

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// FieldType enumerates the value kinds the engine knows how to render and
// coerce.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeInteger    FieldType = "integer"
	TypeDecimal    FieldType = "decimal"
	TypeEnum       FieldType = "enum"
	TypeBoolean    FieldType = "boolean"
	TypeInstant    FieldType = "instant"
	TypeDate       FieldType = "date"
	TypeNestedList FieldType = "nested_list"
)

// Field declares one record field: how it is labeled, typed and whether the
// user may edit it inline.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Options  []string // enum values, in display order
	Default  any      // seed value for a blank create form, nil for none
	Editable bool
}

// Coerce converts a raw form/JSON value into the field's storage
// representation. Numeric fields arrive as JSON numbers or strings; decimals
// go through shopspring for exact parsing before being stored as float64,
// the shape every historical document already has.
func Coerce(f Field, value any) (any, error) {
	switch f.Type {
	case TypeInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			return n, nil
		}
		return nil, fmt.Errorf("field %s: cannot coerce %T to integer", f.Name, value)
	case TypeDecimal:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case decimal.Decimal:
			return v.InexactFloat64(), nil
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			return d.InexactFloat64(), nil
		}
		return nil, fmt.Errorf("field %s: cannot coerce %T to decimal", f.Name, value)
	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			return b, nil
		}
		return nil, fmt.Errorf("field %s: cannot coerce %T to boolean", f.Name, value)
	case TypeString, TypeEnum, TypeInstant, TypeDate:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil
	default:
		// Nested lists pass through untouched; the engine never edits them
		// field by field.
		return value, nil
	}
}

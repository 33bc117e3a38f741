package firestore

import (
	"fmt"
	"strconv"
	"time"
)

// restValue mirrors the Firestore typed Value union. Exactly one member is
// set per value.
type restValue struct {
	NullValue      *struct{}   `json:"nullValue,omitempty"`
	StringValue    *string     `json:"stringValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	IntegerValue   *string     `json:"integerValue,omitempty"`
	DoubleValue    *float64    `json:"doubleValue,omitempty"`
	TimestampValue *string     `json:"timestampValue,omitempty"`
	ArrayValue     *restArray  `json:"arrayValue,omitempty"`
	MapValue       *restFields `json:"mapValue,omitempty"`
}

type restArray struct {
	Values []restValue `json:"values,omitempty"`
}

type restFields struct {
	Fields map[string]restValue `json:"fields,omitempty"`
}

func encodeFields(fields map[string]any) map[string]restValue {
	out := make(map[string]restValue, len(fields))
	for k, v := range fields {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v any) restValue {
	switch val := v.(type) {
	case nil:
		return restValue{NullValue: &struct{}{}}
	case string:
		return restValue{StringValue: &val}
	case bool:
		return restValue{BooleanValue: &val}
	case int:
		s := strconv.Itoa(val)
		return restValue{IntegerValue: &s}
	case int32:
		s := strconv.FormatInt(int64(val), 10)
		return restValue{IntegerValue: &s}
	case int64:
		s := strconv.FormatInt(val, 10)
		return restValue{IntegerValue: &s}
	case float64:
		return restValue{DoubleValue: &val}
	case time.Time:
		s := val.UTC().Format(time.RFC3339Nano)
		return restValue{TimestampValue: &s}
	case []string:
		arr := &restArray{Values: make([]restValue, 0, len(val))}
		for _, item := range val {
			arr.Values = append(arr.Values, encodeValue(item))
		}
		return restValue{ArrayValue: arr}
	case []any:
		arr := &restArray{Values: make([]restValue, 0, len(val))}
		for _, item := range val {
			arr.Values = append(arr.Values, encodeValue(item))
		}
		return restValue{ArrayValue: arr}
	case []map[string]any:
		arr := &restArray{Values: make([]restValue, 0, len(val))}
		for _, item := range val {
			arr.Values = append(arr.Values, encodeValue(item))
		}
		return restValue{ArrayValue: arr}
	case map[string]any:
		return restValue{MapValue: &restFields{Fields: encodeFields(val)}}
	default:
		// Anything else round-trips through its string form rather than
		// failing the whole write.
		s := fmt.Sprint(val)
		return restValue{StringValue: &s}
	}
}

func decodeFields(fields map[string]restValue) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = decodeValue(v)
	}
	return out
}

func decodeValue(v restValue) any {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return *v.IntegerValue
		}
		return int(n)
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.TimestampValue != nil:
		return *v.TimestampValue
	case v.ArrayValue != nil:
		out := make([]any, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			out = append(out, decodeValue(item))
		}
		return out
	case v.MapValue != nil:
		return decodeFields(v.MapValue.Fields)
	default:
		return nil
	}
}

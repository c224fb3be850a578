package collection

import (
	"encoding/json"
	"fmt"
	"math"
)

// Dtype defines the data type of a column.
type Dtype uint8

const (
	DtypeString Dtype = iota + 1
	DtypeInt
	DtypeFloat
	DtypeBool
)

// String returns the string representation of the Dtype.
func (d Dtype) String() string {
	switch d {
	case DtypeString:
		return "string"
	case DtypeInt:
		return "int"
	case DtypeFloat:
		return "float"
	case DtypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dtype) MarshalText() ([]byte, error) {
	switch d {
	case DtypeString, DtypeInt, DtypeFloat, DtypeBool:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("collection: invalid dtype %d", uint8(d))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dtype) UnmarshalText(text []byte) error {
	switch string(text) {
	case "string":
		*d = DtypeString
	case "int":
		*d = DtypeInt
	case "float":
		*d = DtypeFloat
	case "bool":
		*d = DtypeBool
	default:
		return fmt.Errorf("collection: invalid dtype %q", text)
	}
	return nil
}

// Column describes one typed column of a collection.
type Column struct {
	Name  string `json:"name"`
	Dtype Dtype  `json:"dtype"`
}

// coerce normalizes v to the canonical Go representation of the dtype:
// string, int64, float64 or bool. Numeric values convert across int/float
// where the conversion is exact; json.Number is accepted for both.
func coerce(col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch col.Dtype {
	case DtypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case DtypeInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint32:
			return int64(n), nil
		case float64:
			if n == math.Trunc(n) {
				return int64(n), nil
			}
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
	case DtypeFloat:
		switch n := v.(type) {
		case float32:
			return float64(n), nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case DtypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, &ErrDtype{Column: col.Name, Dtype: col.Dtype, Value: v}
}

// CheckRequiredColumns fails with *ErrMissingColumns naming every column in
// required that the collection lacks.
func (c *Collection) CheckRequiredColumns(required ...string) error {
	var missing []string
	for _, name := range required {
		if _, ok := c.colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ErrMissingColumns{Columns: missing}
	}
	return nil
}

// ReconcileColumns widens the receiver's schema with columns only the
// incoming collection has, so that its rows can be appended. Columns present
// on both sides with different dtypes are not changed; they are returned as
// warnings for the caller to log. Schema drift across heterogeneous sources
// is tolerated, not fatal.
func (c *Collection) ReconcileColumns(incoming *Collection) []string {
	var warnings []string
	for _, col := range incoming.columns {
		idx, ok := c.colIndex[col.Name]
		if !ok {
			c.colIndex[col.Name] = len(c.columns)
			c.columns = append(c.columns, col)
			continue
		}
		if c.columns[idx].Dtype != col.Dtype {
			warnings = append(warnings, fmt.Sprintf(
				"column %q: incoming dtype %s conflicts with existing %s; keeping %s",
				col.Name, col.Dtype, c.columns[idx].Dtype, c.columns[idx].Dtype,
			))
		}
	}
	return warnings
}

package collection

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

type row struct {
	geometry geom.Geometry
	values   map[string]any
}

// Collection is a named, indexed tabular set of entities with a geometry per
// row and a shared CRS. The zero value is not usable; use New.
//
// A Collection is not safe for concurrent mutation.
type Collection struct {
	indexName string
	epsg      int
	columns   []Column
	colIndex  map[string]int
	rows      map[string]*row
	order     []string
}

// New creates an empty collection.
//
// indexName names the row index (e.g. "raster_name") and is preserved across
// persistence. epsg identifies the CRS of every geometry in the collection.
func New(indexName string, epsg int, columns ...Column) (*Collection, error) {
	c := &Collection{
		indexName: indexName,
		epsg:      epsg,
		colIndex:  make(map[string]int, len(columns)),
		rows:      map[string]*row{},
	}
	for _, col := range columns {
		if _, err := col.Dtype.MarshalText(); err != nil {
			return nil, err
		}
		if _, exists := c.colIndex[col.Name]; exists {
			return nil, fmt.Errorf("collection: duplicate column %q", col.Name)
		}
		c.colIndex[col.Name] = len(c.columns)
		c.columns = append(c.columns, col)
	}
	return c, nil
}

// IndexName returns the name of the row index.
func (c *Collection) IndexName() string { return c.indexName }

// EPSG returns the EPSG code of the collection's CRS.
func (c *Collection) EPSG() int { return c.epsg }

// Columns returns a copy of the column definitions in order.
func (c *Collection) Columns() []Column {
	return append([]Column(nil), c.columns...)
}

// Len returns the number of rows.
func (c *Collection) Len() int { return len(c.order) }

// Names returns the row names in insertion order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether a row with the given name exists.
func (c *Collection) Has(name string) bool {
	_, ok := c.rows[name]
	return ok
}

// Geometry returns the geometry of the named row.
func (c *Collection) Geometry(name string) (geom.Geometry, bool) {
	r, ok := c.rows[name]
	if !ok {
		return geom.Geometry{}, false
	}
	return r.geometry, true
}

// Value returns the named row's value in the given column. ok is false if the
// row does not exist or the value is null.
func (c *Collection) Value(name, column string) (any, bool) {
	r, ok := c.rows[name]
	if !ok {
		return nil, false
	}
	v, ok := r.values[column]
	return v, ok
}

// IntValue returns an int column value, or 0 if the row or value is absent.
func (c *Collection) IntValue(name, column string) int64 {
	v, ok := c.Value(name, column)
	if !ok {
		return 0
	}
	n, _ := v.(int64)
	return n
}

// Values returns a copy of the named row's non-null values. The second return
// is false if the row does not exist.
func (c *Collection) Values(name string) (map[string]any, bool) {
	r, ok := c.rows[name]
	if !ok {
		return nil, false
	}
	values := make(map[string]any, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	return values, true
}

// SetValue sets the named row's value in the given column, coercing it to the
// column's dtype. Setting nil clears the value.
func (c *Collection) SetValue(name, column string, value any) error {
	r, ok := c.rows[name]
	if !ok {
		return &ErrUnknownRow{Name: name}
	}
	idx, ok := c.colIndex[column]
	if !ok {
		return &ErrUnknownColumn{Column: column}
	}
	if value == nil {
		delete(r.values, column)
		return nil
	}
	coerced, err := coerce(c.columns[idx], value)
	if err != nil {
		return err
	}
	r.values[column] = coerced
	return nil
}

// Append adds a row. The name must be new, and values may only reference
// existing columns; each value is coerced to its column's dtype. Columns
// without a value hold null. An empty geometry is permitted here — geometry
// presence policy belongs to the caller.
func (c *Collection) Append(name string, g geom.Geometry, values map[string]any) error {
	if _, exists := c.rows[name]; exists {
		return &ErrDuplicateKey{Keys: []string{name}}
	}
	r := &row{geometry: g, values: make(map[string]any, len(values))}
	for column, v := range values {
		idx, ok := c.colIndex[column]
		if !ok {
			return &ErrUnknownColumn{Column: column}
		}
		if v == nil {
			continue
		}
		coerced, err := coerce(c.columns[idx], v)
		if err != nil {
			return err
		}
		r.values[column] = coerced
	}
	c.rows[name] = r
	c.order = append(c.order, name)
	return nil
}

// Drop removes a row by name and reports whether it was present.
func (c *Collection) Drop(name string) bool {
	if _, ok := c.rows[name]; !ok {
		return false
	}
	delete(c.rows, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// EmptyLike returns a zero-row collection with the same index name, columns,
// dtypes and CRS as the receiver.
func (c *Collection) EmptyLike() *Collection {
	out, _ := New(c.indexName, c.epsg, c.columns...)
	return out
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := c.EmptyLike()
	for _, name := range c.order {
		r := c.rows[name]
		values := make(map[string]any, len(r.values))
		for k, v := range r.values {
			values[k] = v
		}
		out.rows[name] = &row{geometry: r.geometry, values: values}
		out.order = append(out.order, name)
	}
	return out
}

// Extend appends every row of other to the receiver. The CRS must match and
// no row name may collide; values are re-coerced against the receiver's
// schema. Columns unknown to the receiver fail — reconcile schemas first.
func (c *Collection) Extend(other *Collection) error {
	if other.epsg != c.epsg {
		return &ErrCRSMismatch{Want: c.epsg, Got: other.epsg}
	}
	var dups []string
	for _, name := range other.order {
		if _, exists := c.rows[name]; exists {
			dups = append(dups, name)
		}
	}
	if len(dups) > 0 {
		return &ErrDuplicateKey{Keys: dups}
	}
	for _, name := range other.order {
		r := other.rows[name]
		if err := c.Append(name, r.geometry, r.values); err != nil {
			return err
		}
	}
	return nil
}

// Concat returns the row-wise union of the given collections. All inputs must
// share one CRS; the first input's index name and CRS carry over to the
// result. Dtype conflicts across inputs are reconciled with the first
// occurrence winning.
func Concat(cols []*Collection) (*Collection, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("collection: concat of zero collections")
	}
	out := cols[0].EmptyLike()
	for _, c := range cols[1:] {
		if c.epsg != out.epsg {
			return nil, &ErrCRSMismatch{Want: out.epsg, Got: c.epsg}
		}
		out.ReconcileColumns(c)
	}
	for _, c := range cols {
		if err := out.Extend(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

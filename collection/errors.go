package collection

import (
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateKey indicates row names that collide with existing rows.
type ErrDuplicateKey struct {
	Keys []string
}

func (e *ErrDuplicateKey) Error() string {
	keys := append([]string(nil), e.Keys...)
	sort.Strings(keys)
	return fmt.Sprintf("collection: duplicate key(s): %s", strings.Join(keys, ", "))
}

// ErrUnknownRow indicates a row name absent from the collection.
type ErrUnknownRow struct {
	Name string
}

func (e *ErrUnknownRow) Error() string {
	return fmt.Sprintf("collection: unknown row %q", e.Name)
}

// ErrMissingColumns indicates required columns absent from a collection.
type ErrMissingColumns struct {
	Columns []string
}

func (e *ErrMissingColumns) Error() string {
	cols := append([]string(nil), e.Columns...)
	sort.Strings(cols)
	return fmt.Sprintf("collection: missing required column(s): %s", strings.Join(cols, ", "))
}

// ErrUnknownColumn indicates a value supplied for a column the collection
// does not have.
type ErrUnknownColumn struct {
	Column string
}

func (e *ErrUnknownColumn) Error() string {
	return fmt.Sprintf("collection: unknown column %q", e.Column)
}

// ErrCRSMismatch indicates an operation across collections with different
// coordinate reference systems.
type ErrCRSMismatch struct {
	Want int
	Got  int
}

func (e *ErrCRSMismatch) Error() string {
	return fmt.Sprintf("collection: CRS mismatch: EPSG:%d vs EPSG:%d", e.Want, e.Got)
}

// ErrDtype indicates a value that cannot be coerced to its column's dtype.
type ErrDtype struct {
	Column string
	Dtype  Dtype
	Value  any
}

func (e *ErrDtype) Error() string {
	return fmt.Sprintf("collection: value %v (%T) does not fit column %q (%s)", e.Value, e.Value, e.Column, e.Dtype)
}

// ErrNoTransform indicates a reprojection with no registered transform.
type ErrNoTransform struct {
	From int
	To   int
}

func (e *ErrNoTransform) Error() string {
	return fmt.Sprintf("collection: no transform registered for EPSG:%d -> EPSG:%d", e.From, e.To)
}

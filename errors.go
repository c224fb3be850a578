package geolink

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/geolink/bigraph"
	"github.com/hupe1980/geolink/collection"
)

// ErrNotFound is returned when a queried raster or vector name is absent.
var ErrNotFound = errors.New("not found")

// ErrNullGeometry indicates rows supplied without a geometry.
//
// The connector rejects null geometries uniformly; collaborators that prefer
// to skip such rows must filter them before calling.
type ErrNullGeometry struct {
	Names []string
}

func (e *ErrNullGeometry) Error() string {
	names := append([]string(nil), e.Names...)
	sort.Strings(names)
	return fmt.Sprintf("null geometry for row(s): %s", strings.Join(names, ", "))
}

// ErrUnknownName indicates a name absent from the rasters or vectors
// collection.
//
// The original underlying error (if any) can be accessed via errors.Unwrap;
// it always satisfies errors.Is(err, ErrNotFound).
type ErrUnknownName struct {
	Name       string
	Collection string
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("unknown name %q in %s", e.Name, e.Collection)
}

func (e *ErrUnknownName) Unwrap() error { return ErrNotFound }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	var unknownRow *collection.ErrUnknownRow
	if errors.As(err, &unknownRow) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var unknownVertex *bigraph.ErrUnknownVertex
	if errors.As(err, &unknownVertex) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

// Package relation computes the spatial relation between a raster footprint
// and a vector geometry.
//
// The geometry predicates themselves are delegated to
// github.com/peterstace/simplefeatures; this package only fixes the policy of
// how the two predicates combine into a single relation.
package relation

import (
	"github.com/peterstace/simplefeatures/geom"
)

// Relation is the spatial relation of a raster footprint to a vector geometry.
type Relation uint8

const (
	// Disjoint means the two geometries share no point.
	Disjoint Relation = iota
	// Intersects means a non-empty overlap without full containment.
	Intersects
	// Contains means the vector geometry lies entirely within the footprint.
	Contains
)

// String returns the string representation of the Relation.
func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "disjoint"
	case Intersects:
		return "intersects"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Resolve returns the relation of footprint to g. Both geometries must already
// be expressed in the same coordinate reference system.
//
// Intersection is tested first; only an intersecting pair is refined to
// Contains, so Contains always implies the underlying intersects predicate.
// Resolve is a pure function of its inputs: the same two geometries always
// produce the same relation within one process run.
func Resolve(footprint, g geom.Geometry) (Relation, error) {
	if !geom.Intersects(footprint, g) {
		return Disjoint, nil
	}
	contained, err := geom.Contains(footprint, g)
	if err != nil {
		return Disjoint, err
	}
	if contained {
		return Contains, nil
	}
	return Intersects, nil
}

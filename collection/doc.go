// Package collection provides the tabular stores for raster and vector
// entities.
//
// A Collection is a named, indexed set of rows, each holding a geometry plus
// typed column values, with a single coordinate reference system identified by
// an EPSG code. Row names are unique within a collection and insertion order
// is preserved.
//
// Schema rules: column sets and dtypes stay self-consistent across appends;
// cross-collection operations (Extend, Concat) fail on CRS mismatch and on
// key collisions, and reconcile column drift explicitly via ReconcileColumns.
//
// # Filtering
//
// FilterIndex is a Roaring-bitmap inverted index over column values for fast
// equality lookups:
//
//	ix, _ := collection.BuildFilterIndex(c, "class")
//	names := ix.Eq("class", "building")
package collection

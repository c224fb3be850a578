// Package geolink maintains a consistency index between a collection of
// raster footprints and a collection of vector geometries covering a
// geographic area.
//
// The Connector owns a two-colored bipartite graph (package bigraph) and two
// tabular collections (package collection). For every raster/vector pair it
// tracks whether the pair is disjoint (no edge), intersecting, or the raster
// fully contains the vector, and keeps a per-vector image_count — the number
// of rasters containing it — consistent with the graph on every mutation.
//
// # Quick Start
//
//	c, err := geolink.New("./data", geolink.WithCRS(4326))
//	if err != nil {
//	    panic(err)
//	}
//
//	// rasters and vectors are collection.Collections built by a downloader
//	// or converter.
//	if _, err := c.AddRasters(rasters); err != nil { ... }
//	if _, err := c.AddVectors(vectors, false); err != nil { ... }
//
//	names, err := c.RastersContainingVector("v1")
//
//	if err := c.Save(ctx); err != nil { ... }
//
// A persisted connector is reopened with Open:
//
//	c, err := geolink.Open(ctx, "./data")
//
// # Consistency model
//
// The core is single-threaded and synchronous: mutations must not be
// interleaved across goroutines, and a multi-step add that fails midway can
// leave graph and collections partially updated. Save is an explicit,
// idempotent checkpoint — there is no autosave and no cross-file transaction.
//
// Downloaders, label makers and converters are collaborators of the public
// add/drop/query/save surface; see LabelMaker for the one interface the
// Connector calls back into.
package geolink

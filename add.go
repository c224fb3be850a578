package geolink

import (
	"sort"
	"time"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/hupe1980/geolink/bigraph"
	"github.com/hupe1980/geolink/collection"
	"github.com/hupe1980/geolink/relation"
)

// AddVectors merges the given vector collection into the connector. Rows are
// reprojected to the connector CRS, validated against the required vector
// columns, and related to every stored raster footprint; intersects and
// contains edges are recorded in the graph and each new vector's image count
// is set to the number of rasters containing it.
//
// Rows whose name already exists are skipped unless forceOverwrite is set, in
// which case the existing row and its edges are replaced and all relations of
// the new geometry are recomputed from scratch. Rows without a geometry are
// rejected before any state changes.
//
// Returns the names of the rows actually added (or replaced).
func (c *Connector) AddVectors(vecs *collection.Collection, forceOverwrite bool) ([]string, error) {
	start := time.Now()
	added, affected, skipped, err := c.addVectors(vecs, forceOverwrite)
	err = translateError(err)
	c.metrics.RecordAdd("vectors", len(added), skipped, time.Since(start), err)
	c.logger.LogAdd("vectors", len(added), skipped, err)
	if err != nil {
		return nil, err
	}
	c.relabel(affected)
	return added, nil
}

func (c *Connector) addVectors(vecs *collection.Collection, forceOverwrite bool) (added, affected []string, skipped int, err error) {
	if err := checkGeometries(vecs); err != nil {
		return nil, nil, 0, err
	}
	vecs, err = vecs.Reproject(c.crsEPSG, c.transformers)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := vecs.CheckRequiredColumns(c.requiredVectorColumns...); err != nil {
		return nil, nil, 0, err
	}
	for _, warning := range c.vectors.ReconcileColumns(vecs) {
		c.logger.Warn("vector schema reconciled", "detail", warning)
	}

	rasterGeoms := geometriesByName(c.rasters)
	affectedSet := map[string]struct{}{}

	// Relate into a pruned staging collection first so a relation failure on
	// any row leaves the connector untouched for rows not yet merged.
	pruned := c.vectors.EmptyLike()
	counts := map[string]int64{}

	for _, name := range vecs.Names() {
		if c.vectors.Has(name) {
			if !forceOverwrite {
				c.logger.Info("vector already present, skipping", "name", name)
				skipped++
				continue
			}
			prior, err := c.graph.VerticesOpposite(name, ColorVectors)
			if err != nil {
				return nil, nil, 0, err
			}
			for _, r := range prior {
				affectedSet[r] = struct{}{}
			}
			if err := c.graph.DeleteVertex(name, ColorVectors, true); err != nil {
				return nil, nil, 0, err
			}
			c.vectors.Drop(name)
		}

		g, _ := vecs.Geometry(name)
		if err := c.graph.AddVertex(name, ColorVectors); err != nil {
			return nil, nil, 0, err
		}
		for rasterName, footprint := range rasterGeoms {
			rel, err := relation.Resolve(footprint, g)
			if err != nil {
				return nil, nil, 0, err
			}
			if rel == relation.Disjoint {
				continue
			}
			label := bigraph.LabelIntersects
			if rel == relation.Contains {
				label = bigraph.LabelContains
				counts[name]++
			}
			if err := c.graph.AddEdge(name, ColorVectors, rasterName, label, false); err != nil {
				return nil, nil, 0, err
			}
			affectedSet[rasterName] = struct{}{}
		}

		values, _ := vecs.Values(name)
		if err := pruned.Append(name, g, values); err != nil {
			return nil, nil, 0, err
		}
		added = append(added, name)
	}

	if err := c.vectors.Extend(pruned); err != nil {
		return nil, nil, 0, err
	}
	for _, name := range added {
		if err := c.vectors.SetValue(name, ImageCountColumn, counts[name]); err != nil {
			return nil, nil, 0, err
		}
	}

	return added, sortedKeys(affectedSet), skipped, nil
}

// AddRasters merges the given raster collection into the connector. Rows are
// reprojected to the connector CRS, validated against the required raster
// columns, and related to every stored vector geometry; intersects and
// contains edges are recorded and each contained vector's image count is
// incremented.
//
// Rows whose name already exists are always skipped; rasters are immutable
// once registered. Rows without a geometry are rejected before any state
// changes.
//
// Returns the names of the rows actually added.
func (c *Connector) AddRasters(rasters *collection.Collection) ([]string, error) {
	start := time.Now()
	added, skipped, err := c.addRasters(rasters)
	err = translateError(err)
	c.metrics.RecordAdd("rasters", len(added), skipped, time.Since(start), err)
	c.logger.LogAdd("rasters", len(added), skipped, err)
	if err != nil {
		return nil, err
	}
	c.relabel(added)
	return added, nil
}

func (c *Connector) addRasters(rasters *collection.Collection) (added []string, skipped int, err error) {
	if err := checkGeometries(rasters); err != nil {
		return nil, 0, err
	}
	rasters, err = rasters.Reproject(c.crsEPSG, c.transformers)
	if err != nil {
		return nil, 0, err
	}
	if err := rasters.CheckRequiredColumns(c.requiredRasterColumns...); err != nil {
		return nil, 0, err
	}
	for _, warning := range c.rasters.ReconcileColumns(rasters) {
		c.logger.Warn("raster schema reconciled", "detail", warning)
	}

	vectorGeoms := geometriesByName(c.vectors)

	pruned := c.rasters.EmptyLike()
	increments := map[string]int64{}

	for _, name := range rasters.Names() {
		if c.rasters.Has(name) {
			c.logger.Info("raster already present, skipping", "name", name)
			skipped++
			continue
		}

		footprint, _ := rasters.Geometry(name)
		if err := c.graph.AddVertex(name, ColorRasters); err != nil {
			return nil, 0, err
		}
		for vectorName, g := range vectorGeoms {
			rel, err := relation.Resolve(footprint, g)
			if err != nil {
				return nil, 0, err
			}
			if rel == relation.Disjoint {
				continue
			}
			label := bigraph.LabelIntersects
			if rel == relation.Contains {
				label = bigraph.LabelContains
				increments[vectorName]++
			}
			if err := c.graph.AddEdge(name, ColorRasters, vectorName, label, false); err != nil {
				return nil, 0, err
			}
		}

		values, _ := rasters.Values(name)
		if err := pruned.Append(name, footprint, values); err != nil {
			return nil, 0, err
		}
		added = append(added, name)
	}

	if err := c.rasters.Extend(pruned); err != nil {
		return nil, 0, err
	}
	for vectorName, n := range increments {
		count := c.vectors.IntValue(vectorName, ImageCountColumn)
		if err := c.vectors.SetValue(vectorName, ImageCountColumn, count+n); err != nil {
			return nil, 0, err
		}
	}

	return added, skipped, nil
}

// checkGeometries rejects rows without a geometry before any mutation.
func checkGeometries(c *collection.Collection) error {
	var missing []string
	for _, name := range c.Names() {
		g, ok := c.Geometry(name)
		if !ok || g.IsEmpty() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ErrNullGeometry{Names: missing}
	}
	return nil
}

func geometriesByName(c *collection.Collection) map[string]geom.Geometry {
	out := make(map[string]geom.Geometry, c.Len())
	for _, name := range c.Names() {
		g, _ := c.Geometry(name)
		out[name] = g
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

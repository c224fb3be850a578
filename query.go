package geolink

import (
	"github.com/hupe1980/geolink/bigraph"
	"github.com/hupe1980/geolink/collection"
)

// VectorsIntersectingRaster returns, sorted, the names of all vectors whose
// geometry intersects any of the named rasters' footprints. Contained
// vectors count as intersecting.
func (c *Connector) VectorsIntersectingRaster(rasterNames ...string) ([]string, error) {
	return c.opposite(rasterNames, ColorRasters, "rasters")
}

// VectorsContainedInRaster returns, sorted, the names of all vectors whose
// geometry lies entirely within any of the named rasters' footprints.
func (c *Connector) VectorsContainedInRaster(rasterNames ...string) ([]string, error) {
	return c.opposite(rasterNames, ColorRasters, "rasters", bigraph.LabelContains)
}

// RastersIntersectingVector returns, sorted, the names of all rasters whose
// footprint intersects any of the named vectors' geometries.
func (c *Connector) RastersIntersectingVector(vectorNames ...string) ([]string, error) {
	return c.opposite(vectorNames, ColorVectors, "vectors")
}

// RastersContainingVector returns, sorted, the names of all rasters whose
// footprint fully contains any of the named vectors' geometries.
func (c *Connector) RastersContainingVector(vectorNames ...string) ([]string, error) {
	return c.opposite(vectorNames, ColorVectors, "vectors", bigraph.LabelContains)
}

// DoesRasterIntersectVector reports whether the named raster's footprint
// intersects the named vector's geometry.
func (c *Connector) DoesRasterIntersectVector(rasterName, vectorName string) (bool, error) {
	if err := c.checkPair(rasterName, vectorName); err != nil {
		return false, err
	}
	_, ok := c.graph.EdgeLabel(rasterName, ColorRasters, vectorName)
	return ok, nil
}

// DoesRasterContainVector reports whether the named raster's footprint fully
// contains the named vector's geometry.
func (c *Connector) DoesRasterContainVector(rasterName, vectorName string) (bool, error) {
	if err := c.checkPair(rasterName, vectorName); err != nil {
		return false, err
	}
	label, ok := c.graph.EdgeLabel(rasterName, ColorRasters, vectorName)
	return ok && label == bigraph.LabelContains, nil
}

// RastersWhere returns, in insertion order, the names of rasters whose value
// in the given column equals value. The filter runs over a bitmap index
// built per call; callers filtering the same column repeatedly should hold a
// collection.FilterIndex themselves.
func (c *Connector) RastersWhere(column string, value any) ([]string, error) {
	return filterEq(c.rasters, column, value)
}

// VectorsWhere returns, in insertion order, the names of vectors whose value
// in the given column equals value.
func (c *Connector) VectorsWhere(column string, value any) ([]string, error) {
	return filterEq(c.vectors, column, value)
}

func filterEq(coll *collection.Collection, column string, value any) ([]string, error) {
	ix, err := collection.BuildFilterIndex(coll, column)
	if err != nil {
		return nil, err
	}
	return ix.Eq(column, value), nil
}

// opposite unions VerticesOpposite over the given names, sorted.
func (c *Connector) opposite(names []string, color bigraph.Color, kind string, labels ...bigraph.Label) ([]string, error) {
	union := map[string]struct{}{}
	for _, name := range names {
		opposite, err := c.graph.VerticesOpposite(name, color, labels...)
		if err != nil {
			return nil, &ErrUnknownName{Name: name, Collection: kind}
		}
		for _, n := range opposite {
			union[n] = struct{}{}
		}
	}
	return sortedKeys(union), nil
}

func (c *Connector) checkPair(rasterName, vectorName string) error {
	if !c.rasters.Has(rasterName) {
		return &ErrUnknownName{Name: rasterName, Collection: "rasters"}
	}
	if !c.vectors.Has(vectorName) {
		return &ErrUnknownName{Name: vectorName, Collection: "vectors"}
	}
	return nil
}

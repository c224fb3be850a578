package geolink

import (
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/geolink/bigraph"
)

// DropVectors removes the named vectors from the connector, detaching their
// edges. All names must exist; an unknown name fails the whole call before
// any state changes.
func (c *Connector) DropVectors(names []string) error {
	start := time.Now()
	affected, err := c.dropVectors(names)
	err = translateError(err)
	c.metrics.RecordDrop("vectors", len(names), time.Since(start), err)
	c.logger.LogDrop("vectors", len(names), err)
	if err != nil {
		return err
	}
	c.relabel(affected)
	return nil
}

func (c *Connector) dropVectors(names []string) ([]string, error) {
	for _, name := range names {
		if !c.vectors.Has(name) {
			return nil, &ErrUnknownName{Name: name, Collection: "vectors"}
		}
	}

	affectedSet := map[string]struct{}{}
	for _, name := range names {
		rasters, err := c.graph.VerticesOpposite(name, ColorVectors)
		if err != nil {
			return nil, err
		}
		for _, r := range rasters {
			affectedSet[r] = struct{}{}
		}
		if err := c.graph.DeleteVertex(name, ColorVectors, true); err != nil {
			return nil, err
		}
		c.vectors.Drop(name)
	}

	return sortedKeys(affectedSet), nil
}

// DropRasters removes the named rasters from the connector, detaching their
// edges and decrementing the image count of every vector they contained. All
// names must exist; an unknown name fails the whole call before any state
// changes.
//
// With removeFromDisk set, the rasters' image and label files are deleted as
// well; missing files are ignored.
func (c *Connector) DropRasters(names []string, removeFromDisk bool) error {
	start := time.Now()
	err := translateError(c.dropRasters(names, removeFromDisk))
	c.metrics.RecordDrop("rasters", len(names), time.Since(start), err)
	c.logger.LogDrop("rasters", len(names), err)
	return err
}

func (c *Connector) dropRasters(names []string, removeFromDisk bool) error {
	for _, name := range names {
		if !c.rasters.Has(name) {
			return &ErrUnknownName{Name: name, Collection: "rasters"}
		}
	}

	if c.labelMaker != nil {
		c.deleteLabels(names)
	}

	for _, name := range names {
		contained, err := c.graph.VerticesOpposite(name, ColorRasters, bigraph.LabelContains)
		if err != nil {
			return err
		}
		for _, vectorName := range contained {
			count := c.vectors.IntValue(vectorName, ImageCountColumn)
			if err := c.vectors.SetValue(vectorName, ImageCountColumn, count-1); err != nil {
				return err
			}
		}
		if err := c.graph.DeleteVertex(name, ColorRasters, true); err != nil {
			return err
		}
		c.rasters.Drop(name)

		if removeFromDisk {
			if err := removeFile(c.ImagePath(name)); err != nil {
				return fmt.Errorf("geolink: remove image of %s: %w", name, err)
			}
			if err := removeFile(c.LabelPath(name)); err != nil {
				return fmt.Errorf("geolink: remove label of %s: %w", name, err)
			}
		}
	}

	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

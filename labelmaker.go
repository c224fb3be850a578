package geolink

import "context"

// LabelMaker is the collaborator that rasterizes vector data into label files
// for rasters. The Connector calls it when mutations change which vectors a
// raster sees; it implements neither method itself.
//
// Implementations receive the connector to look up geometries, classes and
// paths, and the names of the rasters whose labels are affected.
type LabelMaker interface {
	// MakeLabels (re)creates the label files for the given rasters.
	MakeLabels(ctx context.Context, c *Connector, rasterNames []string) error

	// DeleteLabels removes the label files for the given rasters.
	// Missing label files are not an error.
	DeleteLabels(ctx context.Context, c *Connector, rasterNames []string) error
}

// relabel tells the label maker, if configured, to rebuild the labels of the
// given rasters. Label-maker failures are logged, not propagated: labels are
// derived data and never gate index mutations.
func (c *Connector) relabel(rasterNames []string) {
	if c.labelMaker == nil || len(rasterNames) == 0 {
		return
	}
	ctx := context.Background()
	if err := c.labelMaker.DeleteLabels(ctx, c, rasterNames); err != nil {
		c.logger.Warn("label delete failed", "rasters", len(rasterNames), "error", err)
		return
	}
	if err := c.labelMaker.MakeLabels(ctx, c, rasterNames); err != nil {
		c.logger.Warn("label rebuild failed", "rasters", len(rasterNames), "error", err)
	}
}

// deleteLabels removes labels for rasters about to be dropped. Failures are
// logged, not propagated.
func (c *Connector) deleteLabels(rasterNames []string) {
	if c.labelMaker == nil || len(rasterNames) == 0 {
		return
	}
	if err := c.labelMaker.DeleteLabels(context.Background(), c, rasterNames); err != nil {
		c.logger.Warn("label delete failed", "rasters", len(rasterNames), "error", err)
	}
}

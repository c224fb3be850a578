package geolink

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/geolink/codec"
	"github.com/hupe1980/geolink/persistence"
)

// Save writes a checkpoint of the connector's state (rasters, vectors, graph
// and attrs) to the configured blob store. A later Open restores the exact
// state, including column dtypes and the CRS.
func (c *Connector) Save(ctx context.Context) error {
	start := time.Now()
	files, bytesWritten, err := c.save(ctx)
	err = translateError(err)
	c.metrics.RecordSave(time.Since(start), err)
	c.logger.LogSave(files, bytesWritten, err)
	return err
}

func (c *Connector) save(ctx context.Context) (files int, bytesWritten uint64, err error) {
	rasters, err := c.codec.Marshal(c.rasters)
	if err != nil {
		return 0, 0, fmt.Errorf("geolink: encode rasters: %w", err)
	}
	vectors, err := c.codec.Marshal(c.vectors)
	if err != nil {
		return 0, 0, fmt.Errorf("geolink: encode vectors: %w", err)
	}
	graph, err := c.codec.Marshal(c.graph.Snapshot())
	if err != nil {
		return 0, 0, fmt.Errorf("geolink: encode graph: %w", err)
	}
	encoded, err := codec.EncodeMap(c.attrs)
	if err != nil {
		return 0, 0, fmt.Errorf("geolink: encode attrs: %w", err)
	}
	attrs, err := c.codec.Marshal(encoded)
	if err != nil {
		return 0, 0, fmt.Errorf("geolink: encode attrs: %w", err)
	}

	payloads := []persistence.File{
		{Name: rastersFile, Data: rasters},
		{Name: vectorsFile, Data: vectors},
		{Name: graphFile, Data: graph},
		{Name: attrsFile, Data: attrs},
	}
	for _, f := range payloads {
		bytesWritten += uint64(len(f.Data))
	}

	manager, err := persistence.NewManager(c.store,
		persistence.WithCodecName(c.codec.Name()),
		persistence.WithCompression(c.compression),
		persistence.WithLogger(c.logger.Logger),
	)
	if err != nil {
		return 0, 0, err
	}
	if err := manager.Save(ctx, payloads); err != nil {
		return 0, 0, err
	}

	return len(payloads), bytesWritten, nil
}

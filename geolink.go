package geolink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/geolink/bigraph"
	"github.com/hupe1980/geolink/blobstore"
	"github.com/hupe1980/geolink/codec"
	"github.com/hupe1980/geolink/collection"
	"github.com/hupe1980/geolink/persistence"
)

const (
	// ColorRasters is the graph color of raster vertices.
	ColorRasters bigraph.Color = "rasters"
	// ColorVectors is the graph color of vector vertices.
	ColorVectors bigraph.Color = "vectors"

	// RasterIndexName names the row index of the rasters collection.
	RasterIndexName = "raster_name"
	// VectorIndexName names the row index of the vectors collection.
	VectorIndexName = "vector_name"

	// ImageCountColumn is the vectors column holding, per vector, the number
	// of rasters that fully contain it.
	ImageCountColumn = "image_count"

	// DefaultEPSG is the connector-wide CRS used when none is configured.
	DefaultEPSG = 4326

	// AttrCRSKey is the reserved attrs key holding the connector CRS.
	AttrCRSKey = "crs_epsg_code"
)

// Persisted file names within the checkpoint store.
const (
	rastersFile = "rasters.geojson"
	vectorsFile = "vectors.geojson"
	graphFile   = "graph.json"
	attrsFile   = "attrs.json"

	assocDir  = "assoc"
	imagesDir = "images"
	labelsDir = "labels"
)

// Connector ties together the rasters collection, the vectors collection and
// the bipartite graph recording which vector geometries each raster footprint
// intersects or contains. All mutations go through the connector so the three
// stay consistent.
//
// A Connector is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
type Connector struct {
	root    string
	crsEPSG int

	rasters *collection.Collection
	vectors *collection.Collection
	graph   *bigraph.Graph
	attrs   map[string]any

	codec                 codec.Codec
	compression           persistence.Compression
	store                 blobstore.Store
	transformers          *collection.TransformerRegistry
	registry              codec.Registry
	requiredRasterColumns []string
	requiredVectorColumns []string
	labelMaker            LabelMaker

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty connector rooted at the given directory. The root
// holds the images and labels directories; checkpoints go to root/assoc
// unless WithBlobStore overrides the store.
func New(root string, optFns ...Option) (*Connector, error) {
	o := applyOptions(optFns)

	c, err := newConnector(root, o)
	if err != nil {
		return nil, err
	}

	c.rasters, err = collection.New(RasterIndexName, o.crsEPSG)
	if err != nil {
		return nil, err
	}
	c.vectors, err = collection.New(VectorIndexName, o.crsEPSG,
		collection.Column{Name: ImageCountColumn, Dtype: collection.DtypeInt},
	)
	if err != nil {
		return nil, err
	}
	c.graph, err = bigraph.New(ColorRasters, ColorVectors, bigraph.WithLogger(c.logger.Logger))
	if err != nil {
		return nil, err
	}

	c.attrs = make(map[string]any, len(o.attrs)+1)
	for k, v := range o.attrs {
		c.attrs[k] = v
	}
	c.attrs[AttrCRSKey] = int64(o.crsEPSG)

	if o.seedRasters != nil {
		if _, err := c.AddRasters(o.seedRasters); err != nil {
			return nil, err
		}
	}
	if o.seedVectors != nil {
		if _, err := c.AddVectors(o.seedVectors, false); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Open restores a connector from the checkpoint under root/assoc (or the
// store configured with WithBlobStore). The CRS, collections, graph and
// attrs all come from the checkpoint; WithCRS is ignored.
func Open(ctx context.Context, root string, optFns ...Option) (*Connector, error) {
	o := applyOptions(optFns)

	c, err := newConnector(root, o)
	if err != nil {
		return nil, err
	}

	manager, err := persistence.NewManager(c.store,
		persistence.WithLogger(c.logger.Logger),
	)
	if err != nil {
		return nil, err
	}

	files, codecName, err := manager.Load(ctx)
	if err != nil {
		return nil, err
	}

	cd, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("geolink: checkpoint uses unknown codec %q", codecName)
	}
	c.codec = cd

	for _, name := range []string{rastersFile, vectorsFile, graphFile, attrsFile} {
		if _, ok := files[name]; !ok {
			return nil, fmt.Errorf("geolink: checkpoint missing %s", name)
		}
	}

	var encoded map[string]codec.Value
	if err := cd.Unmarshal(files[attrsFile], &encoded); err != nil {
		return nil, fmt.Errorf("geolink: decode attrs: %w", err)
	}
	if c.attrs, err = codec.DecodeMap(encoded, o.registry); err != nil {
		return nil, fmt.Errorf("geolink: decode attrs: %w", err)
	}
	epsg, ok := c.attrs[AttrCRSKey].(int64)
	if !ok {
		return nil, fmt.Errorf("geolink: checkpoint attrs missing %s", AttrCRSKey)
	}
	c.crsEPSG = int(epsg)

	c.rasters = &collection.Collection{}
	if err := cd.Unmarshal(files[rastersFile], c.rasters); err != nil {
		return nil, fmt.Errorf("geolink: decode rasters: %w", err)
	}
	c.vectors = &collection.Collection{}
	if err := cd.Unmarshal(files[vectorsFile], c.vectors); err != nil {
		return nil, fmt.Errorf("geolink: decode vectors: %w", err)
	}

	var snap bigraph.Snapshot
	if err := cd.Unmarshal(files[graphFile], &snap); err != nil {
		return nil, fmt.Errorf("geolink: decode graph: %w", err)
	}
	if c.graph, err = bigraph.FromSnapshot(snap, bigraph.WithLogger(c.logger.Logger)); err != nil {
		return nil, err
	}

	c.logger.Info("connector opened",
		"root", root,
		"rasters", c.rasters.Len(),
		"vectors", c.vectors.Len(),
		"edges", c.graph.EdgeCount(),
	)

	return c, nil
}

func newConnector(root string, o options) (*Connector, error) {
	if root == "" {
		return nil, fmt.Errorf("geolink: root directory is required")
	}

	c := &Connector{
		root:                  root,
		crsEPSG:               o.crsEPSG,
		codec:                 o.codec,
		compression:           o.compression,
		store:                 o.store,
		transformers:          o.transformers,
		registry:              o.registry,
		requiredRasterColumns: o.requiredRasterColumns,
		requiredVectorColumns: o.requiredVectorColumns,
		labelMaker:            o.labelMaker,
		logger:                o.logger,
		metrics:               o.metricsCollector,
	}

	if c.transformers == nil {
		c.transformers = collection.DefaultTransformers()
	}

	for _, dir := range []string{c.ImagesDir(), c.LabelsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("geolink: create %s: %w", dir, err)
		}
	}

	if c.store == nil {
		store, err := blobstore.NewLocalStore(filepath.Join(root, assocDir))
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	return c, nil
}

// Root returns the connector's root directory.
func (c *Connector) Root() string { return c.root }

// CRS returns the connector-wide CRS as an EPSG code.
func (c *Connector) CRS() int { return c.crsEPSG }

// ImagesDir returns the directory holding raster image files.
func (c *Connector) ImagesDir() string { return filepath.Join(c.root, imagesDir) }

// LabelsDir returns the directory holding rasterized label files.
func (c *Connector) LabelsDir() string { return filepath.Join(c.root, labelsDir) }

// ImagePath returns the path of the named raster's image file.
func (c *Connector) ImagePath(rasterName string) string {
	return filepath.Join(c.ImagesDir(), rasterName)
}

// LabelPath returns the path of the named raster's label file.
func (c *Connector) LabelPath(rasterName string) string {
	return filepath.Join(c.LabelsDir(), rasterName)
}

// Rasters returns the rasters collection. The caller must not mutate it
// directly; use the connector's add and drop operations.
func (c *Connector) Rasters() *collection.Collection { return c.rasters }

// Vectors returns the vectors collection. The caller must not mutate it
// directly; use the connector's add and drop operations.
func (c *Connector) Vectors() *collection.Collection { return c.vectors }

// GraphSnapshot returns a deep copy of the raster/vector graph state.
func (c *Connector) GraphSnapshot() bigraph.Snapshot { return c.graph.Snapshot() }

// Attrs returns a shallow copy of the connector's attribute map.
func (c *Connector) Attrs() map[string]any {
	out := make(map[string]any, len(c.attrs))
	for k, v := range c.attrs {
		out[k] = v
	}
	return out
}

// Attr returns the named attribute.
func (c *Connector) Attr(key string) (any, bool) {
	v, ok := c.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. The CRS key is owned by the connector and
// cannot be set.
func (c *Connector) SetAttr(key string, value any) error {
	if key == AttrCRSKey {
		return fmt.Errorf("geolink: attribute %s is reserved", AttrCRSKey)
	}
	c.attrs[key] = value
	return nil
}

// ImageCount returns the number of rasters fully containing the named
// vector.
func (c *Connector) ImageCount(vectorName string) (int64, error) {
	if !c.vectors.Has(vectorName) {
		return 0, &ErrUnknownName{Name: vectorName, Collection: "vectors"}
	}
	return c.vectors.IntValue(vectorName, ImageCountColumn), nil
}

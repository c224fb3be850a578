package geolink

import (
	"log/slog"

	"github.com/hupe1980/geolink/blobstore"
	"github.com/hupe1980/geolink/codec"
	"github.com/hupe1980/geolink/collection"
	"github.com/hupe1980/geolink/persistence"
)

type options struct {
	crsEPSG               int
	codec                 codec.Codec
	compression           persistence.Compression
	store                 blobstore.Store
	transformers          *collection.TransformerRegistry
	registry              codec.Registry
	attrs                 map[string]any
	requiredRasterColumns []string
	requiredVectorColumns []string
	labelMaker            LabelMaker
	metricsCollector      MetricsCollector
	logger                *Logger
	seedRasters           *collection.Collection
	seedVectors           *collection.Collection
}

// Option configures New and Open.
type Option func(*options)

// WithCRS sets the connector-wide CRS as an EPSG code. All collections are
// reprojected to this CRS on add. Defaults to 4326. Ignored by Open, which
// reads the CRS from the persisted attributes.
func WithCRS(epsg int) Option {
	return func(o *options) { o.crsEPSG = epsg }
}

// WithCodec configures the codec used for persisted files.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression for persisted files.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithBlobStore replaces the default local blob store used for persisted
// files (e.g. with a minio.Store for remote checkpoints). The connector's
// root directory then only holds images and labels.
func WithBlobStore(store blobstore.Store) Option {
	return func(o *options) { o.store = store }
}

// WithTransformers replaces the default coordinate transformer registry used
// for reprojection on add.
func WithTransformers(reg *collection.TransformerRegistry) Option {
	return func(o *options) { o.transformers = reg }
}

// WithTypeRegistry supplies the factories used to decode typed attribute
// values on Open. Connectors whose attrs hold only scalars, sequences and
// records need none.
func WithTypeRegistry(reg codec.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithAttrs seeds the connector's open-ended attribute map (e.g. task
// classes, background class). The crs_epsg_code key is always owned by the
// connector itself.
func WithAttrs(attrs map[string]any) Option {
	return func(o *options) { o.attrs = attrs }
}

// WithRequiredRasterColumns sets columns every added raster collection must
// carry.
func WithRequiredRasterColumns(columns ...string) Option {
	return func(o *options) { o.requiredRasterColumns = columns }
}

// WithRequiredVectorColumns sets columns every added vector collection must
// carry.
func WithRequiredVectorColumns(columns ...string) Option {
	return func(o *options) { o.requiredVectorColumns = columns }
}

// WithLabelMaker configures the label-maker collaborator notified when
// mutations change the vectors a raster sees. Pass nil to disable.
func WithLabelMaker(lm LabelMaker) Option {
	return func(o *options) { o.labelMaker = lm }
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) { o.logger = NewTextLogger(level) }
}

// WithRasters seeds a new connector with an initial raster collection. The
// rows run through the normal AddRasters path. Ignored by Open.
func WithRasters(c *collection.Collection) Option {
	return func(o *options) { o.seedRasters = c }
}

// WithVectors seeds a new connector with an initial vector collection. The
// rows run through the normal AddVectors path. Ignored by Open.
func WithVectors(c *collection.Collection) Option {
	return func(o *options) { o.seedVectors = c }
}

func applyOptions(optFns []Option) options {
	o := options{
		crsEPSG:          DefaultEPSG,
		codec:            codec.Default,
		compression:      persistence.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

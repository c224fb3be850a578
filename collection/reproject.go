package collection

import (
	"math"

	"github.com/peterstace/simplefeatures/geom"
)

// Transform converts a coordinate between two fixed coordinate reference
// systems.
type Transform func(geom.XY) geom.XY

// TransformerRegistry maps (source EPSG, target EPSG) pairs to coordinate
// transforms. The registry is explicit and caller-extensible; there is no
// ambient projection engine.
type TransformerRegistry struct {
	transforms map[[2]int]Transform
}

// NewTransformerRegistry creates an empty registry.
func NewTransformerRegistry() *TransformerRegistry {
	return &TransformerRegistry{transforms: map[[2]int]Transform{}}
}

// Register adds (or replaces) the transform for the given EPSG pair.
func (r *TransformerRegistry) Register(from, to int, fn Transform) {
	r.transforms[[2]int{from, to}] = fn
}

// Lookup returns the transform for the given EPSG pair.
func (r *TransformerRegistry) Lookup(from, to int) (Transform, bool) {
	fn, ok := r.transforms[[2]int{from, to}]
	return fn, ok
}

const webMercatorRadius = 6378137.0

// DefaultTransformers returns a registry with the two closed-form transforms
// between EPSG:4326 (WGS 84 lon/lat) and EPSG:3857 (web mercator).
func DefaultTransformers() *TransformerRegistry {
	r := NewTransformerRegistry()
	r.Register(4326, 3857, func(xy geom.XY) geom.XY {
		return geom.XY{
			X: webMercatorRadius * xy.X * math.Pi / 180,
			Y: webMercatorRadius * math.Log(math.Tan(math.Pi/4+xy.Y*math.Pi/360)),
		}
	})
	r.Register(3857, 4326, func(xy geom.XY) geom.XY {
		return geom.XY{
			X: xy.X / webMercatorRadius * 180 / math.Pi,
			Y: (2*math.Atan(math.Exp(xy.Y/webMercatorRadius)) - math.Pi/2) * 180 / math.Pi,
		}
	})
	return r
}

// Reproject returns the collection unchanged if it is already in the target
// CRS, and otherwise a coordinate-transformed deep copy. The receiver is
// never mutated. A nil registry uses DefaultTransformers.
func (c *Collection) Reproject(targetEPSG int, reg *TransformerRegistry) (*Collection, error) {
	if c.epsg == targetEPSG {
		return c, nil
	}
	if reg == nil {
		reg = DefaultTransformers()
	}
	fn, ok := reg.Lookup(c.epsg, targetEPSG)
	if !ok {
		return nil, &ErrNoTransform{From: c.epsg, To: targetEPSG}
	}
	out := c.Clone()
	out.epsg = targetEPSG
	for _, name := range out.order {
		r := out.rows[name]
		transformed, err := r.geometry.TransformXY(fn)
		if err != nil {
			return nil, err
		}
		r.geometry = transformed
	}
	return out, nil
}

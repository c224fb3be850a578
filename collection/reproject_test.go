package collection

import (
	"math"
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReproject(t *testing.T) {
	t.Run("SameCRSIsUnchanged", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), nil))

		out, err := c.Reproject(4326, nil)
		require.NoError(t, err)
		assert.Same(t, c, out)
	})

	t.Run("WebMercatorRoundTrip", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((10 50,11 50,11 51,10 51,10 50))"), nil))

		projected, err := c.Reproject(3857, nil)
		require.NoError(t, err)
		assert.Equal(t, 3857, projected.EPSG())
		assert.Equal(t, 4326, c.EPSG(), "receiver must not be mutated")

		back, err := projected.Reproject(4326, nil)
		require.NoError(t, err)

		orig, ok := c.Geometry("v1")
		require.True(t, ok)
		restored, ok := back.Geometry("v1")
		require.True(t, ok)

		origXY, ok := orig.Centroid().XY()
		require.True(t, ok)
		restoredXY, ok := restored.Centroid().XY()
		require.True(t, ok)
		assert.InDelta(t, origXY.X, restoredXY.X, 1e-9)
		assert.InDelta(t, origXY.Y, restoredXY.Y, 1e-9)
	})

	t.Run("NoTransform", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.Reproject(25832, nil)
		var noTransform *ErrNoTransform
		require.ErrorAs(t, err, &noTransform)
		assert.Equal(t, 4326, noTransform.From)
		assert.Equal(t, 25832, noTransform.To)
	})

	t.Run("CustomRegistry", func(t *testing.T) {
		reg := NewTransformerRegistry()
		reg.Register(4326, 25832, func(xy geom.XY) geom.XY {
			return geom.XY{X: xy.X + 100, Y: xy.Y + 100}
		})

		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), nil))

		out, err := c.Reproject(25832, reg)
		require.NoError(t, err)
		g, ok := out.Geometry("v1")
		require.True(t, ok)
		center, ok := g.Centroid().XY()
		require.True(t, ok)
		assert.InDelta(t, 100.5, center.X, 1e-9)
	})
}

func TestDefaultTransformersEquator(t *testing.T) {
	reg := DefaultTransformers()
	fn, ok := reg.Lookup(4326, 3857)
	require.True(t, ok)

	origin := fn(geom.XY{X: 0, Y: 0})
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)

	edge := fn(geom.XY{X: 180, Y: 0})
	assert.InDelta(t, webMercatorRadius*math.Pi, edge.X, 1e-6)
}

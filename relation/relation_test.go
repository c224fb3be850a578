package relation

import (
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWKT(t *testing.T, wkt string) geom.Geometry {
	t.Helper()
	g, err := geom.UnmarshalWKT(wkt)
	require.NoError(t, err)
	return g
}

func TestResolve(t *testing.T) {
	footprint := mustWKT(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")

	t.Run("Contains", func(t *testing.T) {
		inner := mustWKT(t, "POLYGON((4 4,5 4,5 5,4 5,4 4))")
		rel, err := Resolve(footprint, inner)
		require.NoError(t, err)
		assert.Equal(t, Contains, rel)
	})

	t.Run("Intersects", func(t *testing.T) {
		straddling := mustWKT(t, "POLYGON((9 9,11 9,11 11,9 11,9 9))")
		rel, err := Resolve(footprint, straddling)
		require.NoError(t, err)
		assert.Equal(t, Intersects, rel)
	})

	t.Run("Disjoint", func(t *testing.T) {
		outside := mustWKT(t, "POLYGON((20 20,21 20,21 21,20 21,20 20))")
		rel, err := Resolve(footprint, outside)
		require.NoError(t, err)
		assert.Equal(t, Disjoint, rel)
	})

	t.Run("Deterministic", func(t *testing.T) {
		straddling := mustWKT(t, "POLYGON((9 9,11 9,11 11,9 11,9 9))")
		first, err := Resolve(footprint, straddling)
		require.NoError(t, err)
		for range 10 {
			rel, err := Resolve(footprint, straddling)
			require.NoError(t, err)
			assert.Equal(t, first, rel)
		}
	})
}

// Contains must refine, never replace, the intersects predicate.
func TestContainsImpliesIntersects(t *testing.T) {
	footprint := mustWKT(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	cases := []string{
		"POLYGON((4 4,5 4,5 5,4 5,4 4))",
		"POLYGON((0 0,10 0,10 10,0 10,0 0))",
		"POLYGON((9 9,11 9,11 11,9 11,9 9))",
		"POLYGON((20 20,21 20,21 21,20 21,20 20))",
	}
	for _, wkt := range cases {
		g := mustWKT(t, wkt)
		rel, err := Resolve(footprint, g)
		require.NoError(t, err)
		if rel == Contains {
			assert.True(t, geom.Intersects(footprint, g), "contains without intersects for %s", wkt)
		}
	}
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "disjoint", Disjoint.String())
	assert.Equal(t, "intersects", Intersects.String())
	assert.Equal(t, "contains", Contains.String())
	assert.Equal(t, "unknown", Relation(99).String())
}

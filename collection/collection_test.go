package collection

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

func newTestCollection(t *testing.T) *Collection {
	t.Helper()
	c, err := New("vector_name", 4326,
		Column{Name: "class", Dtype: DtypeString},
		Column{Name: "image_count", Dtype: DtypeInt},
		Column{Name: "probability", Dtype: DtypeFloat},
	)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		c := newTestCollection(t)
		assert.Equal(t, "vector_name", c.IndexName())
		assert.Equal(t, 4326, c.EPSG())
		assert.Equal(t, 0, c.Len())
	})

	t.Run("DuplicateColumn", func(t *testing.T) {
		_, err := New("x", 4326,
			Column{Name: "class", Dtype: DtypeString},
			Column{Name: "class", Dtype: DtypeInt},
		)
		require.Error(t, err)
	})

	t.Run("InvalidDtype", func(t *testing.T) {
		_, err := New("x", 4326, Column{Name: "class", Dtype: Dtype(99)})
		require.Error(t, err)
	})
}

func TestAppend(t *testing.T) {
	square := "POLYGON((0 0,1 0,1 1,0 1,0 0))"

	t.Run("CoercesDtypes", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, square), map[string]any{
			"class":       "building",
			"image_count": 2, // Go int coerces to int64
			"probability": 0.5,
		}))

		v, ok := c.Value("v1", "image_count")
		require.True(t, ok)
		assert.Equal(t, int64(2), v)
		assert.Equal(t, int64(2), c.IntValue("v1", "image_count"))
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, square), nil))

		err := c.Append("v1", mustWKT(t, square), nil)
		var dup *ErrDuplicateKey
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, []string{"v1"}, dup.Keys)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		c := newTestCollection(t)
		err := c.Append("v1", mustWKT(t, square), map[string]any{"elevation": 3.0})
		var unknown *ErrUnknownColumn
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("DtypeMismatch", func(t *testing.T) {
		c := newTestCollection(t)
		err := c.Append("v1", mustWKT(t, square), map[string]any{"image_count": "two"})
		var dtypeErr *ErrDtype
		require.ErrorAs(t, err, &dtypeErr)
	})

	t.Run("NullValues", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, square), map[string]any{"class": nil}))
		_, ok := c.Value("v1", "class")
		assert.False(t, ok)
	})
}

func TestDrop(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), nil))
	require.NoError(t, c.Append("v2", mustWKT(t, "POLYGON((2 2,3 2,3 3,2 3,2 2))"), nil))

	assert.True(t, c.Drop("v1"))
	assert.False(t, c.Drop("v1"))
	assert.Equal(t, []string{"v2"}, c.Names())
}

func TestSetValue(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), nil))

	require.NoError(t, c.SetValue("v1", "image_count", 3))
	assert.Equal(t, int64(3), c.IntValue("v1", "image_count"))

	require.NoError(t, c.SetValue("v1", "image_count", nil))
	_, ok := c.Value("v1", "image_count")
	assert.False(t, ok)

	var unknownRow *ErrUnknownRow
	require.ErrorAs(t, c.SetValue("ghost", "image_count", 1), &unknownRow)

	var unknownCol *ErrUnknownColumn
	require.ErrorAs(t, c.SetValue("v1", "ghost", 1), &unknownCol)
}

func TestEmptyLike(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), nil))

	empty := c.EmptyLike()
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, c.IndexName(), empty.IndexName())
	assert.Equal(t, c.EPSG(), empty.EPSG())
	assert.Equal(t, c.Columns(), empty.Columns())
}

func TestCheckRequiredColumns(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.CheckRequiredColumns("class", "image_count"))

	err := c.CheckRequiredColumns("class", "elevation", "source")
	var missing *ErrMissingColumns
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"elevation", "source"}, missing.Columns)
}

func TestReconcileColumns(t *testing.T) {
	c := newTestCollection(t)
	incoming, err := New("vector_name", 4326,
		Column{Name: "class", Dtype: DtypeInt}, // conflicts with existing string
		Column{Name: "source", Dtype: DtypeString},
	)
	require.NoError(t, err)

	warnings := c.ReconcileColumns(incoming)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `column "class"`)

	// The new column arrived, the conflicting dtype did not change.
	require.NoError(t, c.CheckRequiredColumns("source"))
	cols := c.Columns()
	assert.Equal(t, DtypeString, cols[0].Dtype)
}

func TestExtend(t *testing.T) {
	square := "POLYGON((0 0,1 0,1 1,0 1,0 0))"

	t.Run("CRSMismatch", func(t *testing.T) {
		c := newTestCollection(t)
		other, err := New("vector_name", 3857)
		require.NoError(t, err)

		var mismatch *ErrCRSMismatch
		require.ErrorAs(t, c.Extend(other), &mismatch)
	})

	t.Run("DuplicateKeys", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.Append("v1", mustWKT(t, square), nil))

		other := c.EmptyLike()
		require.NoError(t, other.Append("v1", mustWKT(t, square), nil))

		var dup *ErrDuplicateKey
		require.ErrorAs(t, c.Extend(other), &dup)
		assert.Equal(t, 1, c.Len())
	})
}

func TestConcat(t *testing.T) {
	a := newTestCollection(t)
	require.NoError(t, a.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), map[string]any{"class": "building"}))

	b := a.EmptyLike()
	require.NoError(t, b.Append("v2", mustWKT(t, "POLYGON((2 2,3 2,3 3,2 3,2 2))"), map[string]any{"class": "road"}))

	t.Run("Union", func(t *testing.T) {
		out, err := Concat([]*Collection{a, b})
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2"}, out.Names())
		assert.Equal(t, "vector_name", out.IndexName())
		assert.Equal(t, 4326, out.EPSG())
	})

	t.Run("CRSMismatch", func(t *testing.T) {
		other, err := New("vector_name", 3857)
		require.NoError(t, err)

		_, err = Concat([]*Collection{a, other})
		var mismatch *ErrCRSMismatch
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Concat(nil)
		require.Error(t, err)
	})
}

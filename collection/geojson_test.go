package collection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoJSONRoundTrip(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Append("v1", mustWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"), map[string]any{
		"class":       "building",
		"image_count": 3,
		"probability": 0.25,
	}))
	require.NoError(t, c.Append("v2", mustWKT(t, "POLYGON((2 2,3 2,3 3,2 3,2 2))"), map[string]any{
		"class": "road",
	}))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored Collection
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, c.IndexName(), restored.IndexName())
	assert.Equal(t, c.EPSG(), restored.EPSG())
	assert.Equal(t, c.Columns(), restored.Columns())
	assert.Equal(t, c.Names(), restored.Names())

	// Dtypes survive: the int stays an int64, the float stays a float64.
	v, ok := restored.Value("v1", "image_count")
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	v, ok = restored.Value("v1", "probability")
	require.True(t, ok)
	assert.Equal(t, 0.25, v)

	// Nulls stay null.
	_, ok = restored.Value("v2", "image_count")
	assert.False(t, ok)

	// Geometries survive.
	g, ok := restored.Geometry("v2")
	require.True(t, ok)
	orig, ok := c.Geometry("v2")
	require.True(t, ok)
	assert.Equal(t, orig.AsText(), g.AsText())
}

func TestGeoJSONRejectsWrongDocumentType(t *testing.T) {
	var c Collection
	err := json.Unmarshal([]byte(`{"type":"Feature"}`), &c)
	require.Error(t, err)
}

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterIndex(t *testing.T) {
	c := newTestCollection(t)
	squares := map[string]string{
		"v1": "POLYGON((0 0,1 0,1 1,0 1,0 0))",
		"v2": "POLYGON((2 2,3 2,3 3,2 3,2 2))",
		"v3": "POLYGON((4 4,5 4,5 5,4 5,4 4))",
	}
	require.NoError(t, c.Append("v1", mustWKT(t, squares["v1"]), map[string]any{"class": "building", "image_count": 1}))
	require.NoError(t, c.Append("v2", mustWKT(t, squares["v2"]), map[string]any{"class": "road", "image_count": 1}))
	require.NoError(t, c.Append("v3", mustWKT(t, squares["v3"]), map[string]any{"class": "building"}))

	t.Run("Eq", func(t *testing.T) {
		ix, err := BuildFilterIndex(c, "class", "image_count")
		require.NoError(t, err)

		assert.Equal(t, []string{"v1", "v3"}, ix.Eq("class", "building"))
		assert.Equal(t, []string{"v2"}, ix.Eq("class", "road"))
		assert.Empty(t, ix.Eq("class", "water"))

		// Nulls are absent from postings.
		assert.Equal(t, []string{"v1", "v2"}, ix.Eq("image_count", 1))
	})

	t.Run("UnindexedColumn", func(t *testing.T) {
		ix, err := BuildFilterIndex(c, "class")
		require.NoError(t, err)
		assert.Empty(t, ix.Eq("image_count", 1))
	})

	t.Run("MissingColumn", func(t *testing.T) {
		_, err := BuildFilterIndex(c, "elevation")
		var missing *ErrMissingColumns
		require.ErrorAs(t, err, &missing)
	})

	t.Run("FloatColumnRejected", func(t *testing.T) {
		_, err := BuildFilterIndex(c, "probability")
		var dtypeErr *ErrDtype
		require.ErrorAs(t, err, &dtypeErr)
	})
}

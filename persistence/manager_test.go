package persistence

import (
	"context"
	"testing"

	"github.com/hupe1980/geolink/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFiles() []File {
	return []File{
		{Name: "assoc/rasters.geojson", Data: []byte(`{"type":"FeatureCollection","features":[]}`)},
		{Name: "assoc/graph.json", Data: []byte(`{"colors":["rasters","vectors"]}`)},
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()

	for _, compression := range []Compression{CompressionNone, CompressionGzip, CompressionLZ4} {
		t.Run(string(compression), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			m, err := NewManager(store, WithCompression(compression))
			require.NoError(t, err)

			require.NoError(t, m.Save(ctx, testFiles()))

			loaded, codecName, err := m.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "json", codecName)
			require.Len(t, loaded, 2)
			for _, f := range testFiles() {
				assert.Equal(t, f.Data, loaded[f.Name])
			}
		})
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m, err := NewManager(store)
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, testFiles()))
	require.NoError(t, m.Save(ctx, testFiles()))

	loaded, _, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestLoadCompressionIndependentOfConfig(t *testing.T) {
	// Files written gzip'd must load through a manager configured for none.
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	writer, err := NewManager(store, WithCompression(CompressionGzip))
	require.NoError(t, err)
	require.NoError(t, writer.Save(ctx, testFiles()))

	reader, err := NewManager(store)
	require.NoError(t, err)
	loaded, _, err := reader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testFiles()[0].Data, loaded["assoc/rasters.geojson"])
}

func TestLoadDetectsCorruption(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, testFiles()))

	require.NoError(t, store.Put(ctx, "assoc/graph.json", []byte("garbage")))

	_, _, err = m.Load(ctx)
	var checksum *ErrChecksum
	require.ErrorAs(t, err, &checksum)
	assert.Equal(t, "assoc/graph.json", checksum.Name)
}

func TestLoadMissingManifest(t *testing.T) {
	m, err := NewManager(blobstore.NewMemoryStore())
	require.NoError(t, err)

	_, _, err = m.Load(context.Background())
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, ManifestName, []byte(`{"version":99,"codec":"json","compression":"none"}`)))

	m, err := NewManager(store)
	require.NoError(t, err)
	_, _, err = m.Load(ctx)
	require.Error(t, err)
}

func TestNewManagerRejectsUnknownCompression(t *testing.T) {
	_, err := NewManager(blobstore.NewMemoryStore(), WithCompression("zstd"))
	require.Error(t, err)
}

package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	ctx := context.Background()

	stores := map[string]func(t *testing.T) Store{
		"Memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"Local": func(t *testing.T) Store {
			s, err := NewLocalStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("PutGet", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Put(ctx, "graph.json", []byte(`{"a":1}`)))

				data, err := s.Get(ctx, "graph.json")
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"a":1}`), data)
			})

			t.Run("PutOverwrites", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Put(ctx, "x", []byte("one")))
				require.NoError(t, s.Put(ctx, "x", []byte("two")))

				data, err := s.Get(ctx, "x")
				require.NoError(t, err)
				assert.Equal(t, []byte("two"), data)
			})

			t.Run("GetMissing", func(t *testing.T) {
				s := newStore(t)
				_, err := s.Get(ctx, "missing")
				require.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("DeleteIsIdempotent", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Put(ctx, "x", []byte("data")))
				require.NoError(t, s.Delete(ctx, "x"))
				require.NoError(t, s.Delete(ctx, "x"))

				_, err := s.Get(ctx, "x")
				require.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("List", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Put(ctx, "assoc/rasters.geojson", []byte("r")))
				require.NoError(t, s.Put(ctx, "assoc/vectors.geojson", []byte("v")))
				require.NoError(t, s.Put(ctx, "other/file", []byte("o")))

				names, err := s.List(ctx, "assoc/")
				require.NoError(t, err)
				assert.Equal(t, []string{"assoc/rasters.geojson", "assoc/vectors.geojson"}, names)
			})
		})
	}
}

func TestLocalStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "x", []byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x", filepath.Base(entries[0].Name()))
}

// Package persistence writes and reads the connector's persisted files.
//
// A checkpoint is a set of named files plus a MANIFEST recording the format
// version, the codec name, the compression setting and a size + CRC-32 per
// file. The manifest is written last, so a crash mid-save leaves the previous
// manifest pointing at whatever files were fully written; Save is a
// best-effort checkpoint, not a commit protocol.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"log/slog"

	"github.com/hupe1980/geolink/blobstore"
	"golang.org/x/sync/errgroup"
)

const (
	// ManifestName is the blob name of the checkpoint manifest.
	ManifestName = "MANIFEST"

	// FormatVersion is the current checkpoint format version.
	FormatVersion = 1
)

// ErrChecksum indicates a persisted file whose content does not match the
// manifest.
type ErrChecksum struct {
	Name string
}

func (e *ErrChecksum) Error() string {
	return fmt.Sprintf("persistence: checksum mismatch for %q", e.Name)
}

// File is one named persisted payload.
type File struct {
	Name string
	Data []byte
}

type manifestFile struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	CRC32 uint32 `json:"crc32"`
}

type manifest struct {
	Version     int            `json:"version"`
	Codec       string         `json:"codec"`
	Compression Compression    `json:"compression"`
	Files       []manifestFile `json:"files"`
}

// Manager saves and loads checkpoints through a blobstore.Store.
type Manager struct {
	store       blobstore.Store
	codecName   string
	compression Compression
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithCodecName records the codec name in the manifest. Defaults to "json".
func WithCodecName(name string) Option {
	return func(m *Manager) { m.codecName = name }
}

// WithCompression sets the compression for newly-written files.
func WithCompression(c Compression) Option {
	return func(m *Manager) { m.compression = c }
}

// WithLogger sets the logger. Defaults to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a checkpoint manager on the given store.
func NewManager(store blobstore.Store, optFns ...Option) (*Manager, error) {
	m := &Manager{
		store:       store,
		codecName:   "json",
		compression: CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(m)
	}
	if err := m.compression.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Save writes all files and then the manifest. Safe to call repeatedly; an
// existing checkpoint is overwritten file by file.
func (m *Manager) Save(ctx context.Context, files []File) error {
	entries := make([]manifestFile, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			data, err := compress(m.compression, f.Data)
			if err != nil {
				return err
			}
			entries[i] = manifestFile{
				Name:  f.Name,
				Size:  int64(len(data)),
				CRC32: crc32.ChecksumIEEE(data),
			}
			return m.store.Put(gctx, f.Name, data)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	mf := manifest{
		Version:     FormatVersion,
		Codec:       m.codecName,
		Compression: m.compression,
		Files:       entries,
	}
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return err
	}
	return m.store.Put(ctx, ManifestName, data)
}

// Load reads the checkpoint named by the manifest, verifying sizes and
// checksums, and returns the decompressed files keyed by name together with
// the codec name the checkpoint was written with.
func (m *Manager) Load(ctx context.Context) (map[string][]byte, string, error) {
	raw, err := m.store.Get(ctx, ManifestName)
	if err != nil {
		return nil, "", err
	}
	var mf manifest
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, "", err
	}
	if mf.Version != FormatVersion {
		return nil, "", fmt.Errorf("persistence: unsupported format version %d (expected %d)", mf.Version, FormatVersion)
	}
	if err := mf.Compression.validate(); err != nil {
		return nil, "", err
	}

	out := make(map[string][]byte, len(mf.Files))
	for _, entry := range mf.Files {
		data, err := m.store.Get(ctx, entry.Name)
		if err != nil {
			return nil, "", err
		}
		if int64(len(data)) != entry.Size || crc32.ChecksumIEEE(data) != entry.CRC32 {
			return nil, "", &ErrChecksum{Name: entry.Name}
		}
		plain, err := decompress(mf.Compression, data)
		if err != nil {
			return nil, "", err
		}
		out[entry.Name] = plain
	}
	m.logger.Debug("checkpoint loaded", "files", len(out), "codec", mf.Codec)
	return out, mf.Codec, nil
}

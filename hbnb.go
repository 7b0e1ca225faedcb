package hbnb

import (
	_ "embed"
	"log/slog"

	"github.com/aretw0/hbnb/internal/platform"
	"github.com/aretw0/hbnb/pkg/models"
	"github.com/aretw0/hbnb/pkg/storage"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Record is a public alias for the persistable record interface.
type Record = models.Record

// Storage is a public alias for the file-backed registry.
type Storage = storage.FileStorage

// --- Configuration ---

// Option defines a functional option for configuring the storage.
type Option = platform.Option

// WithLogger sets the logger for the storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStrict keeps JSON numbers as json.Number when reloading (default on).
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithIndent pretty-prints the backing file.
func WithIndent(indent bool) Option {
	return platform.WithIndent(indent)
}

// WithAtomicWrites toggles temp file + rename snapshots (default on).
func WithAtomicWrites(enabled bool) Option {
	return platform.WithAtomicWrites(enabled)
}

// WithReadOnly rejects every Save with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithCodec forces the backing file format.
func WithCodec(c storage.Codec) Option {
	return platform.WithCodec(c)
}

// WithEventBuffer sets the capacity of the Watch channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New creates a storage for path without reading it.
func New(path string, opts ...Option) *Storage {
	return platform.New(path, opts...)
}

// Open creates a storage for path and reloads it from disk.
// An empty path falls back to $HBNB_FILE, then "file.json".
func Open(path string, opts ...Option) (*Storage, error) {
	return platform.Open(path, opts...)
}

// --- Records ---

// Create builds a fresh record of typeName registered with s.
func Create(typeName string, s *Storage) (Record, error) {
	return models.Create(typeName, s)
}

// Types lists the record type names known to the storage.
func Types() []string {
	return models.Types()
}

// Package storage is the process-wide record registry and its file-backed
// persistence. Every record lives in one in-memory map keyed by
// "<TypeName>.<id>"; Save writes the whole map as one document and Reload
// rebuilds typed records from it.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/hbnb/pkg/core"
	"github.com/aretw0/hbnb/pkg/models"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "file.json"

// Config holds the configuration for the file storage.
type Config struct {
	Path     string       // Backing file, DefaultPath if empty.
	Logger   *slog.Logger // slog.Default() if nil.
	Codec    Codec        // Chosen from the Path extension if nil.
	Strict   bool         // Decode JSON numbers as json.Number.
	Indent   bool         // Pretty-print the snapshot.
	Atomic   bool         // Replace the file through temp file + rename.
	ReadOnly bool         // Save returns core.ErrReadOnly.
	// EventBuffer is the capacity of the Watch channel. Zero means 16.
	EventBuffer int
}

// FileStorage is the record registry backed by a single file.
//
// It is meant to be owned by one goroutine; the mutex only guards against
// the Watch goroutine reloading while another reader inspects the map.
type FileStorage struct {
	path    string
	codec   Codec
	config  Config
	logger  *slog.Logger
	objects map[string]models.Record

	mu            sync.RWMutex
	lastSave      *time.Time
	lastReload    *time.Time
	watcherActive bool
}

var _ models.Registrar = (*FileStorage)(nil)

// NewFileStorage creates an empty storage. Call Reload to load the backing file.
func NewFileStorage(config Config) *FileStorage {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Codec == nil {
		config.Codec = CodecFor(config.Path, config.Strict, config.Indent)
	}
	return &FileStorage{
		path:    config.Path,
		codec:   config.Codec,
		config:  config,
		logger:  config.Logger,
		objects: make(map[string]models.Record),
	}
}

// Path returns the backing file path.
func (s *FileStorage) Path() string {
	return s.path
}

// Codec returns the codec used for the backing file.
func (s *FileStorage) Codec() Codec {
	return s.codec
}

// KeyOf derives the composite key of r.
func KeyOf(r models.Record) string {
	return core.Key(r.TypeName(), r.Base().ID)
}

// All returns the live map of every registered record.
// It is shared, not copied: deleting from it deletes from the storage.
func (s *FileStorage) All() map[string]models.Record {
	return s.objects
}

// New registers r under its composite key. An existing entry with the same
// key is silently replaced.
func (s *FileStorage) New(r models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[KeyOf(r)] = r
}

// Get returns the record stored under "<typeName>.<id>".
func (s *FileStorage) Get(typeName, id string) (models.Record, error) {
	if !models.Known(typeName) {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownRecordType, typeName)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.objects[core.Key(typeName, id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, core.Key(typeName, id))
	}
	return r, nil
}

// Filter returns the records whose key starts with "<typeName>.", sorted by key.
// An empty typeName returns every record.
func (s *FileStorage) Filter(typeName string) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := ""
	if typeName != "" {
		prefix = typeName + "."
	}
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	records := make([]models.Record, len(keys))
	for i, k := range keys {
		records[i] = s.objects[k]
	}
	return records
}

// Count returns the number of records of typeName.
func (s *FileStorage) Count(typeName string) int {
	return len(s.Filter(typeName))
}

// Snapshot serializes every registered record.
func (s *FileStorage) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.objects))
	for k, r := range s.objects {
		snap[k] = models.ToDict(r)
	}
	return snap
}

// Save writes every registered record to the backing file, replacing it entirely.
func (s *FileStorage) Save() error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	snap := s.Snapshot()
	data, err := s.codec.Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeSnapshot(s.path, data, 0644, s.config.Atomic); err != nil {
		return err
	}

	s.mu.Lock()
	now := time.Now()
	s.lastSave = &now
	s.mu.Unlock()

	s.logger.Debug("snapshot saved", "path", s.path, "records", len(snap))
	return nil
}

// Reload replaces the registry contents with the records of the backing file.
// A missing file leaves the storage empty and is not an error. Any invalid
// entry aborts the reload and keeps the current contents.
func (s *FileStorage) Reload() error {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no backing file, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	snap, err := s.codec.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	loaded, err := Restore(snap)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", s.path, err)
	}

	s.mu.Lock()
	clear(s.objects)
	for k, r := range loaded {
		s.objects[k] = r
	}
	now := time.Now()
	s.lastReload = &now
	s.mu.Unlock()

	s.logger.Debug("snapshot reloaded", "path", s.path, "records", len(loaded))
	return nil
}

// Restore rebuilds typed records from a snapshot.
//
// The type of each entry comes from its type tag, or the key prefix when the
// tag is absent. Every rebuilt record must derive back to the key it was
// stored under.
func Restore(snap Snapshot) (map[string]models.Record, error) {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]models.Record, len(snap))
	for _, key := range keys {
		attrs := snap[key]
		r, err := models.Rebuild(typeOf(key, attrs), attrs)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if r.Base().ID == "" {
			return nil, fmt.Errorf("entry %q: %w: record has no id", key, core.ErrKeyMismatch)
		}
		if derived := KeyOf(r); derived != key {
			return nil, fmt.Errorf("entry %q: %w: record derives %q", key, core.ErrKeyMismatch, derived)
		}
		out[key] = r
	}
	return out, nil
}

func typeOf(key string, attrs map[string]any) string {
	if tag, ok := attrs[core.TypeTag].(string); ok && tag != "" {
		return tag
	}
	typeName, _ := core.SplitKey(key)
	return typeName
}

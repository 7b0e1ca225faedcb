package storage

import (
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string         `json:"path"`
	Codec         string         `json:"codec"`
	Records       int            `json:"records"`
	Types         map[string]int `json:"types"`
	Strict        bool           `json:"strict"`
	Atomic        bool           `json:"atomic"`
	ReadOnly      bool           `json:"read_only"`
	WatcherActive bool           `json:"watcher_active"`
	LastSave      *time.Time     `json:"last_save,omitempty"`
	LastReload    *time.Time     `json:"last_reload,omitempty"`
}

// State implements introspection.Introspectable.
func (s *FileStorage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make(map[string]int)
	for _, r := range s.objects {
		types[r.TypeName()]++
	}

	return StorageState{
		Path:          s.path,
		Codec:         s.codec.Name(),
		Records:       len(s.objects),
		Types:         types,
		Strict:        s.config.Strict,
		Atomic:        s.config.Atomic,
		ReadOnly:      s.config.ReadOnly,
		WatcherActive: s.watcherActive,
		LastSave:      s.lastSave,
		LastReload:    s.lastReload,
	}
}

// ComponentType implements introspection.Component.
func (s *FileStorage) ComponentType() string {
	return "storage"
}

var _ introspection.Introspectable = (*FileStorage)(nil)
var _ introspection.Component = (*FileStorage)(nil)

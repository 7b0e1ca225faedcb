package platform

import (
	"github.com/aretw0/hbnb/pkg/storage"
)

// New builds a storage for path without touching the filesystem.
//
//	s := platform.New("file.json", platform.WithStrict(true))
func New(path string, opts ...Option) *storage.FileStorage {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	strict, _ := o.config["strict"].(bool)
	indent, _ := o.config["indent"].(bool)
	atomic, _ := o.config["atomic"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)

	return storage.NewFileStorage(storage.Config{
		Path:        ResolvePath(path),
		Logger:      o.logger,
		Codec:       o.codec,
		Strict:      strict,
		Indent:      indent,
		Atomic:      atomic,
		ReadOnly:    readOnly,
		EventBuffer: eventBuffer,
	})
}

// Open builds a storage for path and reloads it from the backing file.
// A missing file yields an empty storage.
func Open(path string, opts ...Option) (*storage.FileStorage, error) {
	s := New(path, opts...)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

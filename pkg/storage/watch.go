package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/hbnb/pkg/core"
)

// Watch reloads the storage whenever the backing file changes on disk and
// reports each reload on the returned channel. The channel is closed when
// ctx is done.
//
// Watch is for observers: while it runs, callers must not hold on to the map
// returned by All, since a reload refills it.
func (s *FileStorage) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: atomic writers replace the file by rename.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	size := s.config.EventBuffer
	if size <= 0 {
		size = 16
	}
	events := make(chan core.Event, size)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer watcher.Close()
		defer s.setWatcherActive(false)
		return s.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

func (s *FileStorage) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) error {
	target := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Base(event.Name) != target || isTempFile(event.Name) {
				continue
			}
			s.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			e, ok := s.handleEvent(event)
			if !ok {
				continue
			}
			select {
			case events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Warn("fsnotify error", "error", wErr)
		}
	}
}

// handleEvent maps a filesystem event on the backing file to a storage event.
func (s *FileStorage) handleEvent(event fsnotify.Event) (core.Event, bool) {
	e := core.Event{Path: s.path, Timestamp: time.Now().Unix()}

	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		if err := s.Reload(); err != nil {
			s.logger.Warn("reload after change failed", "path", s.path, "error", err)
			e.Type = core.EventError
			e.Err = err
			return e, true
		}
		e.Type = core.EventReload
		e.Records = s.Count("")
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		// Keep the records in memory; a later Save recreates the file.
		e.Type = core.EventRemove
		e.Records = s.Count("")
	default:
		return e, false
	}
	return e, true
}

func (s *FileStorage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

// Package lifecycle exposes storage watch events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/hbnb/pkg/core"
)

// Watcher is anything that reports changes of a backing file.
// *storage.FileStorage implements it.
type Watcher interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
}

type watchSource struct {
	watcher Watcher
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the reload events of w.
func NewSource(w Watcher) lifecycle.Source {
	return &watchSource{
		watcher: w,
		out:     make(chan lifecycle.Event),
	}
}

func (s *watchSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. Events stops being fed, and is closed, once ctx is
// done or the watcher goes away.
func (s *watchSource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

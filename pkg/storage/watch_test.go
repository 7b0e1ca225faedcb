package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/hbnb/pkg/core"
	"github.com/aretw0/hbnb/pkg/models"
	"github.com/aretw0/hbnb/pkg/storage"
)

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "file.json")
	observer := storage.NewFileStorage(storage.Config{Path: path})
	events, err := observer.Watch(ctx)
	require.NoError(t, err)

	writer := storage.NewFileStorage(storage.Config{Path: path, Atomic: true})
	u := models.NewUser(writer)
	require.NoError(t, writer.Save())

	waitFor(t, events, func(e core.Event) bool {
		return e.Type == core.EventReload && e.Records == 1
	})
	_, err = observer.Get("User", u.ID)
	require.NoError(t, err)

	t.Run("Broken File Reports Error And Keeps Records", func(t *testing.T) {
		// Replace by rename so the observer never sees a truncated empty file.
		scratch := filepath.Join(filepath.Dir(path), "broken.scratch")
		require.NoError(t, os.WriteFile(scratch, []byte("{ broken"), 0644))
		require.NoError(t, os.Rename(scratch, path))

		e := waitFor(t, events, func(e core.Event) bool { return e.Type == core.EventError })
		require.Error(t, e.Err)
		require.Equal(t, 1, observer.Count("User"))
	})

	t.Run("Channel Closes On Cancel", func(t *testing.T) {
		cancel()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("events channel not closed after cancel")
			}
		}
	})
}

func waitFor(t *testing.T, events <-chan core.Event, match func(core.Event) bool) core.Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				t.Fatal("events channel closed")
			}
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

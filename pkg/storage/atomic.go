package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TempFilePrefix names the scratch files of atomic snapshots. Watchers skip them.
const TempFilePrefix = "hbnb-tmp-"

// writeSnapshot replaces filename with data as a whole. With atomic set the
// bytes go to a sibling temp file that is renamed over the target, so readers
// never observe a half-written snapshot. Either way nothing of the previous
// version is kept.
func writeSnapshot(filename string, data []byte, perm os.FileMode, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(filename, data, perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

func isTempFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempFilePrefix)
}

package m3u

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// renameFunc is replaced in tests to simulate a failed publish.
var renameFunc = os.Rename

// WriteFileAtomic streams content into a temporary file next to path and
// renames it over path once everything has been flushed and synced. The
// temporary file is removed on any failure.
func WriteFileAtomic(path string, write func(w *bufio.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(file)
	if err = write(writer); err != nil {
		return err
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("error flushing %s: %w", tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("error syncing %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmpPath, err)
	}
	if err = renameFunc(tmpPath, path); err != nil {
		return fmt.Errorf("error renaming %s to %s: %w", tmpPath, path, err)
	}

	return nil
}

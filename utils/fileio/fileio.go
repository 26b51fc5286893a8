package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LogFunc matches the signature of logging functions used across the app (like LogErrorf).
type LogFunc func(format string, args ...interface{})

// Close closes the given io.Closer and logs any error that occurs.
// If logFunc is nil, the error is ignored.
func Close(c io.Closer, logFunc LogFunc, msg string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		if logFunc != nil {
			logFunc("%s: %v", msg, err)
		}
	}
}

// Remove is a wrapper for os.Remove that logs any error.
func Remove(path string, logFunc LogFunc) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if logFunc != nil {
			logFunc("Remove failed for %s: %v", path, err)
		}
	}
}

// WriteFileAtomic writes data next to path and renames it into place, so
// readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		Remove(tmpPath, nil)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		Remove(tmpPath, nil)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		Remove(tmpPath, nil)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		Remove(tmpPath, nil)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

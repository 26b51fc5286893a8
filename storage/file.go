package storage

import (
	"context"
	"errors"
	"fmt"
	"go-game-hub/utils"
	"go-game-hub/utils/fileio"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

// Path returns the file backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.Dir, utils.SanitizeFileName(key)+".json")
}

func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if err := fileio.WriteFileAtomic(f.Path(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// Watch calls onChange whenever the file backing key is created, rewritten,
// replaced or removed. The directory is watched rather than the file because
// writes replace the file by rename. Watching stops when ctx is done.
func (f *FileStore) Watch(ctx context.Context, key string, onChange func(), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(f.Dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", f.Dir, err)
	}

	target := filepath.Base(f.Path(key))
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}

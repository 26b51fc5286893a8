// Package storage provides the on-device key-value storage that holds the
// custom game list. Values are opaque bytes; callers own the encoding.
package storage

import (
	"context"
	"errors"
	"fmt"
	"go-game-hub/constants"
	"path/filepath"
)

var (
	ErrNotFound       = errors.New("key not found")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrClosed         = errors.New("storage is closed")
)

// Store is a flat key-value store. Set replaces the whole value.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Watcher is implemented by backends that can report changes made outside
// this process.
type Watcher interface {
	Watch(ctx context.Context, key string, onChange func(), onError func(error)) error
}

// Open returns the store for the given backend rooted at dataPath.
func Open(backend, dataPath string) (Store, error) {
	switch backend {
	case constants.BackendSQLite, "":
		return OpenSQLite(filepath.Join(dataPath, constants.SQLiteFile))
	case constants.BackendFile:
		return NewFileStore(dataPath)
	case constants.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

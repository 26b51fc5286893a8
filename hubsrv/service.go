// Package hubsrv runs the mutate-then-rederive pipeline: every change to the
// custom games goes through the custom store and is followed by a fresh load
// of the collection, which is then published to the frontend.
package hubsrv

import (
	"context"
	"fmt"
	"go-game-hub/catalog"
	"go-game-hub/collection"
	"go-game-hub/constants"
	"go-game-hub/customstore"
	"go-game-hub/storage"
	"go-game-hub/types"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// UIProvider defines logging and event emission.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	LogErrorf(format string, args ...interface{})
	EventsEmit(eventName string, args ...interface{})
}

// Loader derives a collection.
type Loader interface {
	Load(ctx context.Context) collection.Result
}

// CustomStore is the mutation surface of the custom game list.
type CustomStore interface {
	Add(req types.NewGame) (types.Game, error)
	Delete(id string) (bool, error)
	Import(data []byte) (int, error)
}

const reloadKey = "collection"

// Service owns the current collection.
type Service struct {
	loader Loader
	store  CustomStore
	ui     UIProvider
	kv     storage.Store

	group singleflight.Group

	mu        sync.RWMutex
	current   []types.Game
	started   uint64
	published uint64
}

// New creates a Service from already built parts.
func New(loader Loader, store CustomStore, ui UIProvider) *Service {
	return &Service{
		loader:  loader,
		store:   store,
		ui:      ui,
		current: []types.Game{},
	}
}

// Open builds the whole pipeline for cfg: storage backend, catalog client,
// custom store and loader.
func Open(cfg types.AppConfig, ui UIProvider) (*Service, error) {
	kv, err := storage.Open(cfg.StorageBackend, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client := catalog.NewClient(cfg.CatalogURL, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)
	store := customstore.New(kv)
	loader := collection.NewLoader(client, store, ui)

	s := New(loader, store, ui)
	s.kv = kv
	return s, nil
}

// Storage returns the store opened by Open, or nil.
func (s *Service) Storage() storage.Store {
	return s.kv
}

// Close releases the storage opened by Open.
func (s *Service) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

// Collection returns the last derived collection.
func (s *Service) Collection() []types.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Game(nil), s.current...)
}

// Reload derives the collection and publishes it. Concurrent reloads share
// one load.
func (s *Service) Reload(ctx context.Context) []types.Game {
	v, _, _ := s.group.Do(reloadKey, func() (interface{}, error) {
		return s.load(ctx), nil
	})
	return append([]types.Game(nil), v.([]types.Game)...)
}

// refresh reloads without joining a load that may have started before the
// caller's mutation.
func (s *Service) refresh(ctx context.Context) []types.Game {
	s.group.Forget(reloadKey)
	return s.Reload(ctx)
}

// load derives and publishes a collection. A load that finishes after a
// newer one has been published is discarded and the newer collection is
// returned instead.
func (s *Service) load(ctx context.Context) []types.Game {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.mu.Unlock()

	s.ui.EventsEmit(constants.EventCollectionLoading)
	res := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.published {
		s.ui.LogInfof("Reload: discarding load %d, load %d is newer", gen, s.published)
		return append([]types.Game(nil), s.current...)
	}
	s.published = gen
	s.current = res.Games
	s.ui.EventsEmit(constants.EventCollectionLoaded, res.Games)
	return res.Games
}

// AddGame stores a new custom game and returns the new collection.
func (s *Service) AddGame(ctx context.Context, req types.NewGame) ([]types.Game, error) {
	game, err := s.store.Add(req)
	if err != nil {
		s.ui.LogErrorf("AddGame: %v", err)
		return s.Collection(), err
	}
	s.ui.LogInfof("AddGame: added %s (%s)", game.ID, game.Title)
	return s.refresh(ctx), nil
}

// DeleteGame removes a custom game and reports whether it existed, along
// with the new collection. Ids that are not custom games leave everything
// unchanged.
func (s *Service) DeleteGame(ctx context.Context, id string) (bool, []types.Game, error) {
	removed, err := s.store.Delete(id)
	if err != nil {
		s.ui.LogErrorf("DeleteGame: failed for %s: %v", id, err)
		return false, s.Collection(), err
	}
	if removed {
		s.ui.LogInfof("DeleteGame: removed %s", id)
	}
	return removed, s.refresh(ctx), nil
}

// ImportGames merges a backup and returns how many games were added along
// with the new collection.
func (s *Service) ImportGames(ctx context.Context, data []byte) (int, []types.Game, error) {
	added, err := s.store.Import(data)
	if err != nil {
		s.ui.LogErrorf("ImportGames: %v", err)
		return 0, s.Collection(), err
	}
	s.ui.LogInfof("ImportGames: %d games added", added)
	return added, s.refresh(ctx), nil
}

// ExportGames serialises the custom games of the current collection.
func (s *Service) ExportGames() ([]byte, error) {
	return customstore.Export(s.Collection())
}

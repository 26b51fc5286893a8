package main

import (
	"context"
	"errors"
	"fmt"
	"go-game-hub/archive"
	"go-game-hub/catalog"
	"go-game-hub/config"
	"go-game-hub/configsrv"
	"go-game-hub/constants"
	"go-game-hub/hubsrv"
	"go-game-hub/playersrv"
	"go-game-hub/storage"
	"go-game-hub/types"
	"go-game-hub/utils/fileio"
	"strings"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

var ErrGameNotFound = errors.New("game not found")

// pipeline is one opened hub with its player. inUse counts bound calls
// still running against it so a replaced pipeline is closed only after they
// finish.
type pipeline struct {
	hub    *hubsrv.Service
	player *playersrv.Service
	inUse  sync.WaitGroup
}

// App struct
type App struct {
	ctx           context.Context
	configManager *config.ConfigManager
	logger        *zap.SugaredLogger
	configService *configsrv.Service

	mu        sync.RWMutex
	pipe      *pipeline
	stopWatch context.CancelFunc
}

// NewApp creates a new App application struct
func NewApp(cm *config.ConfigManager, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		configManager: cm,
		logger:        logger.Sugar(),
	}
	a.configService = configsrv.New(a, a)
	if err := a.rebuild(); err != nil {
		a.LogErrorf("Startup: %v", err)
	}
	return a
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.mu.RLock()
	p := a.pipe
	a.mu.RUnlock()
	if p != nil {
		a.watch(p)
	}
}

// shutdown stops the storage watch and closes storage once running calls
// are done.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	old := a.detach()
	a.mu.Unlock()
	if old != nil {
		a.retire(old)
	}
	_ = a.logger.Sync()
}

func (a *App) context() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// rebuild opens the pipeline for the current configuration and replaces the
// running one. On failure the running pipeline is kept.
func (a *App) rebuild() error {
	cfg := a.configManager.GetConfig()
	hub, err := hubsrv.Open(cfg, a)
	if err != nil {
		return err
	}
	client := catalog.NewClient(cfg.CatalogURL, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)
	p := &pipeline{hub: hub, player: playersrv.New(client, "")}

	a.mu.Lock()
	old := a.detach()
	a.pipe = p
	a.mu.Unlock()

	if old != nil {
		go a.retire(old)
	}

	a.LogInfof("Pipeline: storage=%s catalog=%q", cfg.StorageBackend, cfg.CatalogURL)
	if a.ctx != nil {
		a.watch(p)
	}
	return nil
}

// detach stops the watch and unhooks the running pipeline. It must be
// called with a.mu held.
func (a *App) detach() *pipeline {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
	old := a.pipe
	a.pipe = nil
	return old
}

// retire closes the storage of a detached pipeline after its running calls
// are done.
func (a *App) retire(p *pipeline) {
	p.inUse.Wait()
	fileio.Close(p.hub, a.LogErrorf, "Pipeline: failed to close storage")
}

// watch reloads the collection when another process edits the custom games.
func (a *App) watch(p *pipeline) {
	w, ok := p.hub.Storage().(storage.Watcher)
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(a.context())
	err := w.Watch(ctx, constants.CustomGamesKey, func() {
		a.LoadCollection()
	}, func(err error) {
		a.LogErrorf("Watch: %v", err)
	})
	if err != nil {
		cancel()
		a.LogErrorf("Watch: %v", err)
		return
	}

	a.mu.Lock()
	if a.pipe == p {
		a.stopWatch = cancel
	} else {
		cancel()
	}
	a.mu.Unlock()
}

// acquire returns the running pipeline and marks it in use. Callers must
// call p.inUse.Done when finished.
func (a *App) acquire() (*pipeline, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.pipe == nil {
		return nil, errors.New("storage is not available")
	}
	a.pipe.inUse.Add(1)
	return a.pipe, nil
}

// --- UIProvider ---

func (a *App) LogInfof(format string, args ...interface{}) {
	a.logger.Infof(format, args...)
	if a.ctx != nil {
		wailsRuntime.LogInfof(a.ctx, format, args...)
	}
}

func (a *App) LogErrorf(format string, args ...interface{}) {
	a.logger.Errorf(format, args...)
	if a.ctx != nil {
		wailsRuntime.LogErrorf(a.ctx, format, args...)
	}
}

func (a *App) EventsEmit(eventName string, args ...interface{}) {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, eventName, args...)
	}
}

func (a *App) OpenFileDialog(title string, filters []string) (string, error) {
	if a.ctx == nil {
		return "", errors.New("no window available")
	}
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: title,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Files (" + strings.Join(filters, ", ") + ")", Pattern: strings.Join(filters, ";")},
		},
	})
}

func (a *App) OpenDirectoryDialog(title string) (string, error) {
	if a.ctx == nil {
		return "", errors.New("no window available")
	}
	return wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: title,
	})
}

func (a *App) saveFileDialog(title, defaultName string) (string, error) {
	if a.ctx == nil {
		return "", errors.New("no window available")
	}
	return wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           title,
		DefaultFilename: defaultName,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON (*.json)", Pattern: "*.json"},
		},
	})
}

func (a *App) showError(title string, err error) {
	if a.ctx == nil {
		return
	}
	_, _ = wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:    wailsRuntime.ErrorDialog,
		Title:   title,
		Message: err.Error(),
	})
}

// --- ConfigManager ---

func (a *App) ConfigGetConfig() types.AppConfig {
	return a.configManager.GetConfig()
}

func (a *App) ConfigSave(cfg types.AppConfig) error {
	return a.configManager.Save(cfg)
}

// --- Config ---

// GetConfig returns the current configuration
func (a *App) GetConfig() types.AppConfig {
	return a.configService.GetConfig()
}

// SaveConfig saves the configuration and reopens the pipeline when the
// catalog or storage changed.
func (a *App) SaveConfig(cfg types.AppConfig) string {
	msg, changed := a.configService.SaveConfig(cfg)
	if changed {
		if err := a.rebuild(); err != nil {
			a.LogErrorf("SaveConfig: %v", err)
			return fmt.Sprintf("Configuration saved, but storage could not be opened: %s", err.Error())
		}
	}
	return msg
}

// SelectDataPath lets the user choose where custom games are stored.
func (a *App) SelectDataPath() (string, error) {
	path, err := a.configService.SelectDataPath()
	if err != nil || path == "" {
		return path, err
	}
	return path, a.rebuild()
}

// SelectCatalogFile lets the user choose a local catalog file.
func (a *App) SelectCatalogFile() (string, error) {
	path, err := a.configService.SelectCatalogFile()
	if err != nil || path == "" {
		return path, err
	}
	return path, a.rebuild()
}

// --- Collection ---

// LoadCollection derives the collection from the catalog and the custom
// games. Failures degrade to a smaller collection and are never returned.
func (a *App) LoadCollection() []types.Game {
	p, err := a.acquire()
	if err != nil {
		a.LogErrorf("LoadCollection: %v", err)
		return []types.Game{}
	}
	defer p.inUse.Done()
	return p.hub.Reload(a.context())
}

// GetCollection returns the last loaded collection.
func (a *App) GetCollection() []types.Game {
	p, err := a.acquire()
	if err != nil {
		return []types.Game{}
	}
	defer p.inUse.Done()
	return p.hub.Collection()
}

// AddGame stores a custom game and returns the new collection.
func (a *App) AddGame(req types.NewGame) ([]types.Game, error) {
	p, err := a.acquire()
	if err != nil {
		return nil, err
	}
	defer p.inUse.Done()
	return p.hub.AddGame(a.context(), req)
}

// DeleteGame removes a custom game and returns the new collection.
func (a *App) DeleteGame(id string) ([]types.Game, error) {
	p, err := a.acquire()
	if err != nil {
		return nil, err
	}
	defer p.inUse.Done()
	_, games, err := p.hub.DeleteGame(a.context(), id)
	return games, err
}

// ExportCustom asks where to save the backup and writes it. An empty path
// means the user cancelled.
func (a *App) ExportCustom() (string, error) {
	path, err := a.saveFileDialog("Export Custom Games", constants.ExportFilename)
	if err != nil || path == "" {
		return "", err
	}
	if err := a.exportTo(path); err != nil {
		a.showError("Export failed", err)
		return "", err
	}
	return path, nil
}

func (a *App) exportTo(path string) error {
	p, err := a.acquire()
	if err != nil {
		return err
	}
	defer p.inUse.Done()
	data, err := p.hub.ExportGames()
	if err != nil {
		return err
	}
	if err := fileio.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	a.LogInfof("ExportCustom: wrote %d bytes to %s", len(data), path)
	return nil
}

// ImportCustom asks for a backup file and merges it into the custom games.
func (a *App) ImportCustom() (int, error) {
	path, err := a.OpenFileDialog("Import Custom Games", []string{"*.json", "*.zip", "*.7z", "*.rar"})
	if err != nil || path == "" {
		return 0, err
	}
	added, err := a.importFrom(path)
	if err != nil {
		a.showError("Import failed", err)
		return 0, err
	}
	return added, nil
}

func (a *App) importFrom(path string) (int, error) {
	p, err := a.acquire()
	if err != nil {
		return 0, err
	}
	defer p.inUse.Done()
	data, err := archive.ReadBackup(path)
	if err != nil {
		a.LogErrorf("ImportCustom: %v", err)
		return 0, err
	}
	added, _, err := p.hub.ImportGames(a.context(), data)
	return added, err
}

// --- Player ---

func (a *App) findGame(id string) (types.Game, error) {
	for _, g := range a.GetCollection() {
		if g.ID == id {
			return g, nil
		}
	}
	return types.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
}

// GetPlayURL returns the address the player frame embeds for a game.
func (a *App) GetPlayURL(id string) (string, error) {
	game, err := a.findGame(id)
	if err != nil {
		return "", err
	}
	return playersrv.ResolveContent(game)
}

// GetThumbnail returns the thumbnail of a game as a data URI.
func (a *App) GetThumbnail(id string) (string, error) {
	p, err := a.acquire()
	if err != nil {
		return "", err
	}
	defer p.inUse.Done()
	game, err := a.findGame(id)
	if err != nil {
		return "", err
	}
	return p.player.GetThumbnail(a.context(), game)
}

// OpenInBrowser opens a URL-backed game in the system browser.
func (a *App) OpenInBrowser(id string) error {
	game, err := a.findGame(id)
	if err != nil {
		return err
	}
	u, err := playersrv.ExternalURL(game)
	if err != nil {
		return err
	}
	if a.ctx != nil {
		wailsRuntime.BrowserOpenURL(a.ctx, u)
	}
	return nil
}

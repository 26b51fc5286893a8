package main

import (
	"context"
	"errors"
	"go-game-hub/config"
	"go-game-hub/constants"
	"go-game-hub/customstore"
	"go-game-hub/storage"
	"go-game-hub/types"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(t *testing.T, catalogURL string) (*App, *config.ConfigManager) {
	t.Helper()
	tmpDir := t.TempDir()
	cm := &config.ConfigManager{
		ConfigPath: filepath.Join(tmpDir, "config.json"),
		Config: &types.AppConfig{
			CatalogURL:          catalogURL,
			FetchTimeoutSeconds: 2,
			StorageBackend:      constants.BackendFile,
			DataPath:            filepath.Join(tmpDir, "data"),
		},
	}
	app := NewApp(cm, nil)
	t.Cleanup(func() { app.shutdown(context.Background()) })
	return app, cm
}

func catalogServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSaveConfigMerge(t *testing.T) {
	app, cm := newTestApp(t, "http://initial.com")

	res := app.SaveConfig(types.AppConfig{FetchTimeoutSeconds: 9})
	assert.Equal(t, "Configuration saved successfully!", res)

	finalCfg := cm.GetConfig()
	assert.Equal(t, 9, finalCfg.FetchTimeoutSeconds)
	assert.Equal(t, "http://initial.com", finalCfg.CatalogURL, "empty fields must keep their value")
}

func TestPipelineLifecycle(t *testing.T) {
	app, _ := newTestApp(t, "http://host1.com")
	initial := app.pipe

	app.SaveConfig(types.AppConfig{})
	assert.Same(t, initial, app.pipe, "pipeline should not be rebuilt when nothing changed")

	app.SaveConfig(types.AppConfig{CatalogURL: "http://host2.com"})
	assert.NotSame(t, initial, app.pipe, "pipeline should be rebuilt when the catalog changed")
}

func TestRebuildWaitsForRunningCalls(t *testing.T) {
	tmpDir := t.TempDir()
	cm := &config.ConfigManager{
		ConfigPath: filepath.Join(tmpDir, "config.json"),
		Config: &types.AppConfig{
			FetchTimeoutSeconds: 1,
			StorageBackend:      constants.BackendSQLite,
			DataPath:            filepath.Join(tmpDir, "data"),
		},
	}
	app := NewApp(cm, nil)
	defer app.shutdown(context.Background())

	old, err := app.acquire()
	require.NoError(t, err)

	app.SaveConfig(types.AppConfig{CatalogURL: filepath.Join(tmpDir, "games.json")})
	require.NotSame(t, old, app.pipe)

	games, err := old.hub.AddGame(context.Background(), types.NewGame{Title: "Late", Kind: types.KindURL, Content: "https://late"})
	require.NoError(t, err, "a call that started before the rebuild must finish on the old storage")
	require.Len(t, games, 1)

	old.inUse.Done()
	require.Eventually(t, func() bool {
		_, err := old.hub.Storage().Get(constants.CustomGamesKey)
		return err != nil && !errors.Is(err, storage.ErrNotFound)
	}, 5*time.Second, 10*time.Millisecond, "the old storage is closed once the call is done")

	assert.Equal(t, "Late", app.LoadCollection()[0].Title)
}

func TestCollectionFlow(t *testing.T) {
	server := catalogServer(t, `[{"id":"a","title":"Base","iframeUrl":"https://base"}]`)
	app, _ := newTestApp(t, server.URL)

	games := app.LoadCollection()
	require.Len(t, games, 1)
	assert.Equal(t, "a", games[0].ID)

	games, err := app.AddGame(types.NewGame{Title: "Mine", Kind: types.KindHTML, Content: "<p>hi</p>"})
	require.NoError(t, err)
	require.Len(t, games, 2)
	mine := games[1]
	assert.Equal(t, games, app.GetCollection())

	u, err := app.GetPlayURL(mine.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "data:text/html;base64,"))

	u, err = app.GetPlayURL("a")
	require.NoError(t, err)
	assert.Equal(t, "https://base", u)

	assert.NoError(t, app.OpenInBrowser("a"))
	assert.Error(t, app.OpenInBrowser(mine.ID))

	_, err = app.GetPlayURL("missing")
	assert.True(t, errors.Is(err, ErrGameNotFound))

	games, err = app.DeleteGame(mine.ID)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestExportImportFiles(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.LoadCollection()
	_, err := app.AddGame(types.NewGame{Title: "One", Kind: types.KindURL, Content: "https://one"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), constants.ExportFilename)
	require.NoError(t, app.exportTo(path))

	other, _ := newTestApp(t, "")
	added, err := other.importFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, "One", other.GetCollection()[0].Title)

	added, err = other.importFrom(path)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestImportInvalidFile(t *testing.T) {
	app, _ := newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

	_, err := app.importFrom(path)
	assert.True(t, errors.Is(err, customstore.ErrInvalidImport))
}

func TestLoadCollection_FallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tmpDir := t.TempDir()
	cm := &config.ConfigManager{
		ConfigPath: filepath.Join(tmpDir, "config.json"),
		Config: &types.AppConfig{
			CatalogURL:          filepath.Join(tmpDir, "missing.json"),
			FetchTimeoutSeconds: 1,
			StorageBackend:      constants.BackendMemory,
		},
	}
	app := NewApp(cm, zap.New(core))
	defer app.shutdown(context.Background())

	assert.Empty(t, app.LoadCollection())
	assert.NotZero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestDialogsWithoutWindow(t *testing.T) {
	app, _ := newTestApp(t, "")

	_, err := app.ImportCustom()
	assert.Error(t, err)
	_, err = app.ExportCustom()
	assert.Error(t, err)
}

// Package collection derives the game collection shown to the user from the
// base catalog and the custom games stored on this device.
package collection

import (
	"context"
	"errors"
	"go-game-hub/catalog"
	"go-game-hub/customstore"
	"go-game-hub/types"
)

// CatalogProvider supplies the base catalog.
type CatalogProvider interface {
	FetchCatalog(ctx context.Context) ([]types.Game, error)
}

// CustomProvider supplies the persisted custom games.
type CustomProvider interface {
	Read() customstore.Decoded
}

// UIProvider defines logging.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	LogErrorf(format string, args ...interface{})
}

// Result is one derived collection plus what went wrong on the way.
type Result struct {
	Games        []types.Game
	BaseErr      error
	CustomStatus customstore.Status
}

// Loader reconciles the base catalog with the custom games.
type Loader struct {
	catalog CatalogProvider
	custom  CustomProvider
	ui      UIProvider
}

// NewLoader creates a Loader.
func NewLoader(catalog CatalogProvider, custom CustomProvider, ui UIProvider) *Loader {
	return &Loader{
		catalog: catalog,
		custom:  custom,
		ui:      ui,
	}
}

// Load derives the collection from scratch. It never fails: an unavailable
// or malformed catalog contributes no games, and an unreadable custom list
// contributes none either.
func (l *Loader) Load(ctx context.Context) Result {
	var res Result

	base, err := l.catalog.FetchCatalog(ctx)
	if err != nil {
		res.BaseErr = err
		base = nil
		switch {
		case errors.Is(err, catalog.ErrMalformedCatalog):
			l.ui.LogErrorf("Load: base catalog could not be parsed, treating as empty: %v", err)
		default:
			l.ui.LogErrorf("Load: base catalog unavailable, showing custom games only: %v", err)
		}
	}

	d := l.custom.Read()
	res.CustomStatus = d.Status
	custom := d.Games
	if d.Status == customstore.StatusCorrupt {
		l.ui.LogErrorf("Load: stored custom games are unreadable, ignoring them: %v", d.Err)
		custom = nil
	}

	res.Games = Reconcile(base, custom)
	l.ui.LogInfof("Load: %d base games, %d custom games, %d in collection", len(base), len(custom), len(res.Games))
	return res
}

// Reconcile merges base and custom games. Custom games replace base games
// with the same id; the result lists the remaining base games followed by
// the custom games, each group in its original order. Repeated ids inside
// either list keep their first occurrence.
func Reconcile(base, custom []types.Game) []types.Game {
	customIDs := make(map[string]struct{}, len(custom))
	for _, g := range custom {
		customIDs[g.ID] = struct{}{}
	}

	out := make([]types.Game, 0, len(base)+len(custom))
	seen := make(map[string]struct{}, len(base)+len(custom))

	for _, g := range base {
		if _, ok := customIDs[g.ID]; ok {
			continue
		}
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		g.IsCustom = false
		out = append(out, g)
	}

	for _, g := range custom {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		g.IsCustom = true
		out = append(out, g)
	}
	return out
}

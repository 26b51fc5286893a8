// Package customstore owns the list of games created or imported on this
// device. It is the only code that writes the persisted list.
package customstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go-game-hub/constants"
	"go-game-hub/storage"
	"go-game-hub/types"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrIncompleteEntry = errors.New("title and content are required")
	ErrInvalidKind     = errors.New("content type must be url or html")
	ErrCorruptList     = errors.New("stored custom game list is corrupt")
	ErrInvalidImport   = errors.New("invalid backup file")
)

// Store performs read-modify-write cycles on the persisted custom list.
type Store struct {
	kv    storage.Store
	key   string
	newID func() string
	mu    sync.Mutex
}

// New creates a Store persisting under the default key.
func New(kv storage.Store) *Store {
	return &Store{
		kv:    kv,
		key:   constants.CustomGamesKey,
		newID: newID,
	}
}

func newID() string {
	return constants.CustomIDPrefix + uuid.NewString()
}

// Read returns the persisted list. A missing key is StatusAbsent with an
// empty list; a storage failure is StatusCorrupt carrying the error.
func (s *Store) Read() Decoded {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Decoded{Games: []types.Game{}, Status: StatusAbsent}
		}
		return Decoded{Status: StatusCorrupt, Err: err}
	}
	return Decode(raw)
}

// current reads the list for a mutation. Corrupt data is never overwritten.
func (s *Store) current() ([]types.Game, error) {
	d := s.Read()
	if d.Status == StatusCorrupt {
		return nil, fmt.Errorf("%w: %v", ErrCorruptList, d.Err)
	}
	return d.Games, nil
}

func (s *Store) write(games []types.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("failed to encode custom games: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to persist custom games: %w", err)
	}
	return nil
}

// Add appends a new custom game built from req. Title and content are
// stored as given; only empty values are rejected.
func (s *Store) Add(req types.NewGame) (types.Game, error) {
	if req.Title == "" || req.Content == "" {
		return types.Game{}, ErrIncompleteEntry
	}
	content := req.Content

	game := types.Game{
		Title:       req.Title,
		Description: req.Description,
		Category:    constants.CustomCategory,
		IsCustom:    true,
	}
	if game.Description == "" {
		game.Description = constants.DefaultDescription
	}
	switch req.Kind {
	case types.KindURL:
		game.IframeURL = content
	case types.KindHTML:
		game.HTMLCode = content
	default:
		return types.Game{}, ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.current()
	if err != nil {
		return types.Game{}, err
	}

	game.ID = s.uniqueID(games)
	if err := s.write(append(games, game)); err != nil {
		return types.Game{}, err
	}
	return game, nil
}

func (s *Store) uniqueID(games []types.Game) string {
	taken := idSet(games)
	for {
		id := s.newID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// Delete removes the custom game with id. It reports false and leaves the
// stored bytes untouched when no such game exists.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.current()
	if err != nil {
		return false, err
	}

	kept := make([]types.Game, 0, len(games))
	for _, g := range games {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(games) {
		return false, nil
	}

	if err := s.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Import merges a backup into the persisted list and returns how many games
// were added. Games already present locally win; games without an id are
// skipped.
func (s *Store) Import(data []byte) (int, error) {
	d := Decode(data)
	if d.Status != StatusOK {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, d.Err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.current()
	if err != nil {
		return 0, err
	}

	seen := idSet(games)
	added := 0
	for _, g := range d.Games {
		if g.ID == "" {
			continue
		}
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		g.IsCustom = true
		games = append(games, g)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := s.write(games); err != nil {
		return 0, err
	}
	return added, nil
}

// Export serialises the custom games of a collection as an indented JSON
// array with markup left unescaped. It does not touch storage.
func Export(collection []types.Game) ([]byte, error) {
	custom := make([]types.Game, 0, len(collection))
	for _, g := range collection {
		if g.IsCustom {
			custom = append(custom, g)
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(custom); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return buf.Bytes(), nil
}

func idSet(games []types.Game) map[string]struct{} {
	set := make(map[string]struct{}, len(games))
	for _, g := range games {
		set[g.ID] = struct{}{}
	}
	return set
}

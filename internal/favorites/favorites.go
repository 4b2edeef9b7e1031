// Package favorites implements the account-less liked-ideas store.
//
// The store is a bounded, ordered collection (newest first, at most 10
// entries) serialized as ONE JSON document under a single file path —
// deserialized once at startup, rewritten whole on every mutation. There is
// no update and no delete: an 11th insertion evicts the oldest entry, and
// eviction is driven purely by insertion order, never by access.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/model"
)

// MaxFavorites bounds the collection. Inserting beyond it truncates to the
// 10 most recently added.
const MaxFavorites = 10

// Store holds the favorites in memory and mirrors every mutation to disk.
//
// The logical flow has a single writer, but Go's HTTP layer is concurrent,
// so a mutex guards the slice. Mutation and persistence happen under the
// same lock: the collection on disk is always a complete snapshot.
type Store struct {
	mu     sync.Mutex
	path   string
	items  []model.Favorite
	logger *slog.Logger
}

// New creates a Store backed by the JSON file at path, loading any existing
// collection. An absent file is not an error — it just means an empty list.
func New(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("favorites: reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("favorites: parsing %s: %w", path, err)
	}
	if len(s.items) > MaxFavorites {
		s.items = s.items[:MaxFavorites]
	}

	return s, nil
}

// Add prepends a favorite and persists the whole collection. When the entry
// has no ID or timestamp yet they are assigned here — the store is the
// persistence layer, and identity exists only once something is written.
//
// Returns the stored entry (with ID and timestamp filled in).
func (s *Store) Add(fav model.Favorite) (model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fav.ID == "" {
		fav.ID = xid.New().String()
	}
	if fav.Timestamp == 0 {
		fav.Timestamp = time.Now().UnixMilli()
	}

	// Prepend, then truncate to the cap: FIFO-by-recency eviction.
	s.items = append([]model.Favorite{fav}, s.items...)
	if len(s.items) > MaxFavorites {
		s.items = s.items[:MaxFavorites]
	}

	if err := s.persist(); err != nil {
		return model.Favorite{}, apperror.Persistence("favorites add", err)
	}
	return fav, nil
}

// List returns a copy of the collection, newest first.
func (s *Store) List() []model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Favorite, len(s.items))
	copy(out, s.items)
	return out
}

// Get finds a favorite by ID. The collection is at most 10 entries, so a
// linear scan is all the lookup machinery this needs.
func (s *Store) Get(id string) (model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.items {
		if f.ID == id {
			return f, nil
		}
	}
	return model.Favorite{}, apperror.NotFound("favorite", id)
}

// Len reports the current number of stored favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist writes the whole collection to disk via temp-file + rename, so a
// crash mid-write never leaves a truncated document behind. Caller holds the
// lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("favorites: marshaling: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("favorites: creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".liked_ideas-*.json")
	if err != nil {
		return fmt.Errorf("favorites: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("favorites: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("favorites: closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("favorites: replacing %s: %w", s.path, err)
	}
	return nil
}

package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestStore creates a Store backed by a file inside t.TempDir(), which the
// test framework removes automatically when the test finishes.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liked_ideas.json")
	s, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, path
}

func addTestFavorite(t *testing.T, s *Store, title string) model.Favorite {
	t.Helper()
	fav, err := s.Add(model.Favorite{
		Title:    title,
		Content:  "## " + title + "\n\nbody",
		Category: "startup",
	})
	if err != nil {
		t.Fatalf("Add(%q) error = %v", title, err)
	}
	return fav
}

func TestNew_AbsentFileIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for an absent file", s.Len())
	}
}

func TestAdd_AssignsIdentityAndPersists(t *testing.T) {
	s, path := newTestStore(t)

	fav := addTestFavorite(t, s, "첫 아이디어")
	if fav.ID == "" {
		t.Error("Add() did not assign an ID")
	}
	if fav.Timestamp == 0 {
		t.Error("Add() did not assign a timestamp")
	}

	// The file must hold the complete collection after every add.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}
	var onDisk []model.Favorite
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("parsing store file: %v", err)
	}
	if len(onDisk) != 1 || onDisk[0].ID != fav.ID {
		t.Errorf("on-disk collection = %+v, want the single added favorite", onDisk)
	}
}

func TestAdd_EvictsOldestBeyondTen(t *testing.T) {
	s, _ := newTestStore(t)

	// Add 11 in sequence: exactly the 10 most recent survive, newest first,
	// and the 1st added is gone.
	var added []model.Favorite
	for i := 1; i <= 11; i++ {
		added = append(added, addTestFavorite(t, s, fmt.Sprintf("idea %d", i)))
	}

	list := s.List()
	if len(list) != MaxFavorites {
		t.Fatalf("List() has %d entries, want %d", len(list), MaxFavorites)
	}

	// Newest-first ordering: list[0] is idea 11, list[9] is idea 2.
	for i := 0; i < MaxFavorites; i++ {
		wantTitle := fmt.Sprintf("idea %d", 11-i)
		if list[i].Title != wantTitle {
			t.Errorf("List()[%d].Title = %q, want %q", i, list[i].Title, wantTitle)
		}
	}

	// The first added entry was evicted.
	if _, err := s.Get(added[0].ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(first) error = %v, want ErrNotFound after eviction", err)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	addTestFavorite(t, s, "idea")

	list := s.List()
	list[0].Title = "mutated"

	if got := s.List()[0].Title; got != "idea" {
		t.Errorf("internal state changed through List() copy: Title = %q", got)
	}
}

func TestGet(t *testing.T) {
	s, _ := newTestStore(t)
	fav := addTestFavorite(t, s, "findable")

	got, err := s.Get(fav.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "findable" {
		t.Errorf("Get().Title = %q", got.Title)
	}

	if _, err := s.Get("no-such-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestNew_ReloadsPersistedCollection(t *testing.T) {
	s, path := newTestStore(t)
	addTestFavorite(t, s, "survives restart")
	addTestFavorite(t, s, "also survives")

	// A fresh store on the same path sees the same collection, same order.
	reloaded, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() on existing file error = %v", err)
	}
	list := reloaded.List()
	if len(list) != 2 {
		t.Fatalf("reloaded store has %d entries, want 2", len(list))
	}
	if list[0].Title != "also survives" || list[1].Title != "survives restart" {
		t.Errorf("reloaded order wrong: %q, %q", list[0].Title, list[1].Title)
	}
}

func TestNew_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liked_ideas.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path, testLogger()); err == nil {
		t.Error("New() on corrupt file succeeded, want error")
	}
}

package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/sakif/idea-generator/internal/apperror"
)

func TestGet_KnownCategories(t *testing.T) {
	// The catalog is a fixed, closed set of exactly five categories.
	want := []string{"blog", "business-automation", "project", "startup", "youtube"}

	keys := Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() returned %d categories, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}

	for _, k := range want {
		c, err := Get(k)
		if err != nil {
			t.Errorf("Get(%q) error = %v", k, err)
			continue
		}
		if c.Key != k {
			t.Errorf("Get(%q).Key = %q", k, c.Key)
		}
		if c.DisplayName == "" {
			t.Errorf("Get(%q) has no display name", k)
		}
		if c.SystemPrompt == "" {
			t.Errorf("Get(%q) has no system prompt", k)
		}
		// Every prompt contracts the model to lead with a ## heading —
		// the title extractor depends on it.
		if !strings.Contains(c.SystemPrompt, "## [") {
			t.Errorf("Get(%q) prompt does not request a leading level-2 heading", k)
		}
	}
}

func TestGet_UnknownCategory(t *testing.T) {
	for _, key := range []string{"", "gaming", "STARTUP", "startup "} {
		_, err := Get(key)
		if !errors.Is(err, apperror.ErrUnsupportedCategory) {
			t.Errorf("Get(%q) error = %v, want ErrUnsupportedCategory", key, err)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("startup"); got != "스타트업 아이디어" {
		t.Errorf("DisplayName(startup) = %q", got)
	}
	// Unknown keys fall back to the raw key so stored data always renders.
	if got := DisplayName("legacy-category"); got != "legacy-category" {
		t.Errorf("DisplayName(legacy-category) = %q", got)
	}
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("All() returned %d entries, want 5", len(all))
	}
	for i, c := range all {
		if c.Key != Keys()[i] {
			t.Errorf("All()[%d].Key = %q, want %q", i, c.Key, Keys()[i])
		}
	}
}

package cache_test

import (
	"testing"
	"time"

	"github.com/dalemusser/suggestbox/internal/app/system/cache"
)

func TestTTLCache_SetGetRemove(t *testing.T) {
	c := cache.New[[]string](100, time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("k", []string{"a", "b"})
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}

	c.Remove("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Remove")
	}
}

func TestTTLCache_RemoveMissingKey(t *testing.T) {
	c := cache.New[int](10, time.Minute)
	c.Remove("never-set") // must not panic
}

func TestKeys_PurposeTagged(t *testing.T) {
	userID := "65f0c0ffee0ddba11fee1234"

	// The author key must never equal the raw id or the global list key,
	// and different purposes must never share a key.
	keys := map[string]string{
		"all suggestions":    cache.KeyAllSuggestions(),
		"author suggestions": cache.KeyAuthorSuggestions(userID),
		"all categories":     cache.KeyAllCategories(),
		"all statuses":       cache.KeyAllStatuses(),
	}

	seen := make(map[string]string)
	for name, k := range keys {
		if k == userID {
			t.Errorf("%s key equals raw id %q", name, userID)
		}
		if prev, dup := seen[k]; dup {
			t.Errorf("key collision between %s and %s: %q", name, prev, k)
		}
		seen[k] = name
	}
}

func TestKeys_AuthorKeyIncludesID(t *testing.T) {
	a := cache.KeyAuthorSuggestions("aaa")
	b := cache.KeyAuthorSuggestions("bbb")
	if a == b {
		t.Error("author keys for different users must differ")
	}
}

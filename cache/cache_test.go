package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResponseCache, *FileStore) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return New(store, ttl, nil), store
}

func TestCacheStoreAndGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Hour)

	payload := map[string]any{"requirements": map[string]any{"destination": "Thailand"}}
	if !c.Store(ctx, "trip to thailand", nil, payload) {
		t.Fatal("Store returned false")
	}

	got, hit := c.Get(ctx, "I want to visit Thailand", nil)
	if !hit {
		t.Fatal("expected hit for equivalent phrasing")
	}
	reqs, _ := got["requirements"].(map[string]any)
	if reqs["destination"] != "Thailand" {
		t.Errorf("payload round-trip mismatch: %v", got)
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	if _, hit := c.Get(context.Background(), "trip to paris", nil); hit {
		t.Error("expected miss for never-stored request")
	}
}

func TestCacheDisabledByNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	for _, ttl := range []time.Duration{0, -time.Hour} {
		c, store := newTestCache(t, ttl)
		if c.Enabled() {
			t.Errorf("ttl=%v: cache should be disabled", ttl)
		}
		if c.Store(ctx, "trip to paris", nil, map[string]any{"a": 1}) {
			t.Errorf("ttl=%v: Store must refuse writes", ttl)
		}
		if keys, _ := store.Keys(ctx); len(keys) != 0 {
			t.Errorf("ttl=%v: nothing should have been written, found %d keys", ttl, len(keys))
		}
		if _, hit := c.Get(ctx, "trip to paris", nil); hit {
			t.Errorf("ttl=%v: every lookup must miss", ttl)
		}
	}
}

func TestCacheExpiryLazyDelete(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCache(t, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Store(ctx, "trip to thailand", nil, map[string]any{"a": 1})

	// Move past the TTL; the read must miss and remove the stale record.
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, hit := c.Get(ctx, "trip to thailand", nil); hit {
		t.Fatal("expected miss after TTL elapsed")
	}
	if keys, _ := store.Keys(ctx); len(keys) != 0 {
		t.Errorf("expired record should have been lazily deleted, found %d keys", len(keys))
	}
}

func TestCacheGetWithinTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Store(ctx, "trip to thailand", nil, map[string]any{"a": 1})

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	if _, hit := c.Get(ctx, "trip to thailand", nil); !hit {
		t.Error("expected hit within TTL")
	}
}

func TestCacheSweep(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCache(t, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Store(ctx, "trip to thailand", nil, map[string]any{"a": 1})
	c.Store(ctx, "trip to paris", nil, map[string]any{"b": 2})

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	c.Store(ctx, "trip to tokyo", nil, map[string]any{"c": 3})

	// 90 minutes in: the first two entries are expired, the third is not.
	c.now = func() time.Time { return base.Add(90 * time.Minute) }
	if removed := c.Sweep(ctx); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if keys, _ := store.Keys(ctx); len(keys) != 1 {
		t.Errorf("expected 1 surviving record, found %d", len(keys))
	}
}

func TestCacheSweepRemovesCorruptRecords(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCache(t, time.Hour)

	corrupt := filepath.Join(store.dir, "deadbeef.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt record: %v", err)
	}

	if removed := c.Sweep(ctx); removed != 1 {
		t.Errorf("Sweep removed %d, want 1 corrupt record", removed)
	}
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCache(t, time.Hour)

	c.Store(ctx, "trip to thailand", nil, map[string]any{"a": 1})
	c.Store(ctx, "trip to paris", nil, map[string]any{"b": 2})

	result := c.Clear(ctx)
	if result.EntriesRemoved != 2 {
		t.Errorf("Clear removed %d entries, want 2", result.EntriesRemoved)
	}
	if result.BytesRemoved <= 0 {
		t.Error("Clear should report bytes removed")
	}
	if keys, _ := store.Keys(ctx); len(keys) != 0 {
		t.Errorf("expected empty store after Clear, found %d keys", len(keys))
	}
}

func TestCacheStats(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Store(ctx, "trip to thailand", nil, map[string]any{"a": 1})

	c.now = func() time.Time { return base.Add(90 * time.Minute) }
	c.Store(ctx, "trip to paris", nil, map[string]any{"b": 2})

	stats := c.Stats(ctx)
	if stats.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", stats.TotalEntries)
	}
	if stats.ValidEntries != 1 || stats.ExpiredEntries != 1 {
		t.Errorf("valid/expired = %d/%d, want 1/1", stats.ValidEntries, stats.ExpiredEntries)
	}
	if stats.TotalSizeBytes <= 0 {
		t.Error("TotalSizeBytes should be positive")
	}
}

func TestCacheLastWriteWins(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Hour)

	c.Store(ctx, "trip to thailand", nil, map[string]any{"version": "first"})
	c.Store(ctx, "trip to thailand", nil, map[string]any{"version": "second"})

	got, hit := c.Get(ctx, "trip to thailand", nil)
	if !hit {
		t.Fatal("expected hit")
	}
	if got["version"] != "second" {
		t.Errorf("expected last write to win, got %v", got["version"])
	}
}

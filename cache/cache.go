package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Entry is the record stored per cache key. The layout round-trips through
// JSON so any Store backend can hold it.
type Entry struct {
	Timestamp         time.Time      `json:"timestamp"`
	OriginalRequest   string         `json:"user_request"`
	NormalizedRequest string         `json:"normalized_request"`
	NormalizedContext map[string]any `json:"conversation_context"`
	Payload           map[string]any `json:"response"`
	Key               string         `json:"cache_key"`
}

// Stats is a point-in-time snapshot of the cache, recomputed on every call
// rather than kept as counters that could drift.
type Stats struct {
	TotalEntries   int   `json:"total_entries"`
	ValidEntries   int   `json:"valid_entries"`
	ExpiredEntries int   `json:"expired_entries"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
}

// ClearResult reports what a full clear removed.
type ClearResult struct {
	EntriesRemoved int   `json:"entries_removed"`
	BytesRemoved   int64 `json:"bytes_removed"`
}

// ResponseCache fronts expensive generative calls with a content-addressable,
// TTL-bound record store. A ttl <= 0 disables the cache entirely: every
// lookup misses and nothing is ever written.
type ResponseCache struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger

	now func() time.Time // test seam
}

// New builds a ResponseCache over the given store.
func New(store Store, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseCache{store: store, ttl: ttl, log: logger, now: time.Now}
}

// Enabled reports whether the cache accepts reads and writes.
func (c *ResponseCache) Enabled() bool {
	return c.ttl > 0
}

// Get returns the cached payload for a request+context pair. Expired and
// unreadable records are lazily deleted and reported as misses. Reads take
// no locks; concurrent writers to the same key are last-write-wins, which is
// safe because identical keys carry semantically identical payloads.
func (c *ResponseCache) Get(ctx context.Context, request string, convContext map[string]any) (map[string]any, bool) {
	if !c.Enabled() {
		return nil, false
	}

	key := Key(request, convContext)
	data, err := c.store.Read(ctx, key)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.log.Warn("cache record unreadable, removing", zap.String("cache_key", key), zap.Error(err))
		_ = c.store.Delete(ctx, key)
		return nil, false
	}

	if c.expired(entry) {
		c.log.Debug("cache entry expired", zap.String("cache_key", key), zap.Time("cached_at", entry.Timestamp))
		_ = c.store.Delete(ctx, key)
		return nil, false
	}

	c.log.Info("cache hit",
		zap.String("cache_key", key),
		zap.Duration("age", c.now().Sub(entry.Timestamp)))
	return entry.Payload, true
}

// Store writes a payload for a request+context pair. Returns true when the
// record was written.
func (c *ResponseCache) Store(ctx context.Context, request string, convContext map[string]any, payload map[string]any) bool {
	if !c.Enabled() {
		return false
	}

	key := Key(request, convContext)
	entry := Entry{
		Timestamp:         c.now(),
		OriginalRequest:   request,
		NormalizedRequest: NormalizeRequest(request),
		NormalizedContext: NormalizeContext(convContext),
		Payload:           payload,
		Key:               key,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		c.log.Error("cache entry marshal failed", zap.String("cache_key", key), zap.Error(err))
		return false
	}
	if err := c.store.Write(ctx, key, data); err != nil {
		c.log.Error("cache write failed", zap.String("cache_key", key), zap.Error(err))
		return false
	}

	c.log.Info("response cached", zap.String("cache_key", key), zap.Int("size_bytes", len(data)))
	return true
}

// Sweep removes every expired record and returns how many were deleted.
// Unreadable records are deleted too rather than surfacing an error.
func (c *ResponseCache) Sweep(ctx context.Context) int {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.log.Error("cache sweep listing failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, key := range keys {
		data, err := c.store.Read(ctx, key)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || c.expired(entry) {
			if err := c.store.Delete(ctx, key); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		c.log.Info("cache sweep completed", zap.Int("entries_removed", removed))
	}
	return removed
}

// Clear removes every record regardless of age.
func (c *ResponseCache) Clear(ctx context.Context) ClearResult {
	var result ClearResult

	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.log.Error("cache clear listing failed", zap.Error(err))
		return result
	}

	for _, key := range keys {
		if data, err := c.store.Read(ctx, key); err == nil {
			result.BytesRemoved += int64(len(data))
		}
		if err := c.store.Delete(ctx, key); err == nil {
			result.EntriesRemoved++
		}
	}

	c.log.Info("cache cleared",
		zap.Int("entries_removed", result.EntriesRemoved),
		zap.Int64("bytes_removed", result.BytesRemoved))
	return result
}

// Stats recomputes valid/expired counts and total size at call time.
func (c *ResponseCache) Stats(ctx context.Context) Stats {
	var stats Stats

	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.log.Error("cache stats listing failed", zap.Error(err))
		return stats
	}

	for _, key := range keys {
		data, err := c.store.Read(ctx, key)
		if err != nil {
			continue
		}
		stats.TotalEntries++
		stats.TotalSizeBytes += int64(len(data))

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || c.expired(entry) {
			stats.ExpiredEntries++
		} else {
			stats.ValidEntries++
		}
	}
	return stats
}

func (c *ResponseCache) expired(entry Entry) bool {
	return c.now().Sub(entry.Timestamp) > c.ttl
}

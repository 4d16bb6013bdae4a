package cache

import (
	"context"
	"sync"
	"time"

	"unifi/catalog/internal/domain"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a snapshot stays fresh unless configured
// otherwise.
const DefaultTTL = 5 * time.Minute

// slotKey is the singleflight key for the one catalog entry. The cache
// is single-slot: the whole catalog is one entry, keyed implicitly by
// the one known endpoint.
const slotKey = "catalog"

// FetchFunc produces a fresh validated snapshot. The cache stamps
// FetchedAt itself so the time source stays injectable.
type FetchFunc func(ctx context.Context) (*domain.CatalogSnapshot, error)

// SnapshotCache is a time-boxed, single-entry cache over the validated
// catalog. Concurrent fills are coalesced into one fetch; a failed
// fetch never disturbs the stored snapshot or its timestamp.
type SnapshotCache struct {
	fetch FetchFunc
	ttl   time.Duration
	clock clock.Clock

	group singleflight.Group

	mu        sync.Mutex
	snapshot  *domain.CatalogSnapshot
	fetchedAt time.Time

	// Fill generations implement last-writer-by-intent: a fill whose
	// result arrives after a later-started fill has already stored
	// discards its result. Clear invalidates every fill started before
	// it so a pre-clear result can never repopulate the slot.
	latestGen  uint64
	storedGen  uint64
	invalidGen uint64
}

func NewSnapshotCache(fetch FetchFunc, ttl time.Duration, clk clock.Clock) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clk == nil {
		clk = clock.New()
	}
	return &SnapshotCache{
		fetch: fetch,
		ttl:   ttl,
		clock: clk,
	}
}

// Get returns the stored snapshot while it is fresh; otherwise it
// performs exactly one coalesced fetch-and-validate cycle and stores
// the result with a fresh timestamp.
func (c *SnapshotCache) Get(ctx context.Context) (*domain.CatalogSnapshot, error) {
	c.mu.Lock()
	if c.snapshot != nil && c.clock.Now().Sub(c.fetchedAt) < c.ttl {
		snap := c.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	return c.fill(ctx)
}

// Refresh forces a fetch regardless of freshness. The stored snapshot
// is kept until the new one lands, so a failed refresh leaves the
// cache exactly as it was.
func (c *SnapshotCache) Refresh(ctx context.Context) (*domain.CatalogSnapshot, error) {
	return c.fill(ctx)
}

// Cached returns the stored snapshot without triggering a fetch, even
// when stale. Callers use it to keep showing data next to a fetch
// error banner.
func (c *SnapshotCache) Cached() (*domain.CatalogSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.snapshot != nil
}

// Clear unconditionally discards the stored snapshot; the next Get
// refetches. An in-flight fill is forgotten so it cannot satisfy
// callers arriving after the clear.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.invalidGen = c.latestGen
	c.mu.Unlock()

	c.group.Forget(slotKey)
}

func (c *SnapshotCache) fill(ctx context.Context) (*domain.CatalogSnapshot, error) {
	v, err, _ := c.group.Do(slotKey, func() (any, error) {
		c.mu.Lock()
		c.latestGen++
		gen := c.latestGen
		c.mu.Unlock()

		snap, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		now := c.clock.Now()

		c.mu.Lock()
		defer c.mu.Unlock()

		if gen <= c.invalidGen || gen < c.storedGen {
			log.Debugf("Discarding superseded catalog fetch (generation %d, invalidated %d, stored %d)", gen, c.invalidGen, c.storedGen)
			if c.snapshot != nil {
				return c.snapshot, nil
			}
			return snap, nil
		}

		snap.FetchedAt = now
		c.snapshot = snap
		c.fetchedAt = now
		c.storedGen = gen
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CatalogSnapshot), nil
}

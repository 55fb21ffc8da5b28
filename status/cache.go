// Package status holds the cached, diff-driven status snapshot: the most
// recent and previous decoded readings, a generation counter, and the
// single freshness-check-plus-refresh operation every dependent
// operation goes through.
package status

import (
	"sync"
	"time"

	"github.com/bdube/pslrtether/protocol"
)

// Refresher issues a single status read against the camera, returning the
// decoded snapshot or an error. The cache calls this under its own mutex;
// the function itself is responsible for acquiring the transport mutex
// around the actual SCSI call.
type Refresher func() (protocol.Snapshot, error)

// Diff names which fields changed between two snapshots, keyed by topic
// name, for the observer registry's fan-out.
type Diff map[string]bool

// Cache holds the current and previous snapshot plus the bookkeeping the
// freshness policy needs. The zero value is not usable; use New.
type Cache struct {
	mu         sync.Mutex
	refresh    Refresher
	maxAge     time.Duration
	current    *protocol.Snapshot
	previous   *protocol.Snapshot
	updatedAt  time.Time
	generation uint64
}

// New builds a Cache that calls refresh to fetch a new snapshot and
// treats a reading as stale after maxAge.
func New(refresh Refresher, maxAge time.Duration) *Cache {
	return &Cache{refresh: refresh, maxAge: maxAge}
}

// SetMaxAge updates the freshness window, e.g. in response to a
// configuration reload.
func (c *Cache) SetMaxAge(maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxAge = maxAge
}

// Read returns the current snapshot, refreshing first if force is true or
// the cached reading is older than maxAge. A refresh failure clears the
// current snapshot and returns (zero, false); callers see "no status"
// rather than a stale one. On success it returns the diff against the
// prior snapshot alongside the new one, for fan-out.
func (c *Cache) Read(force bool) (snap protocol.Snapshot, diff Diff, generation uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := c.current == nil || time.Since(c.updatedAt) > c.maxAge
	if !force && !stale {
		return *c.current, nil, c.generation, true
	}

	fresh, err := c.refresh()
	if err != nil {
		c.current = nil
		c.updatedAt = time.Time{}
		return protocol.Snapshot{}, nil, c.generation, false
	}

	d := diffSnapshots(c.current, &fresh)
	c.previous = c.current
	c.current = &fresh
	c.updatedAt = time.Now()
	c.generation++

	return *c.current, d, c.generation, true
}

// Peek returns the current snapshot without triggering a refresh — the
// non-refreshing accessor callbacks use so they never re-enter the
// transport mutex.
func (c *Cache) Peek() (protocol.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return protocol.Snapshot{}, false
	}
	return *c.current, true
}

// Clear discards the cached reading, e.g. on disconnect.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.previous = nil
	c.updatedAt = time.Time{}
}

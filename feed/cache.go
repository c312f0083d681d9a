package feed

import (
	"context"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

// DefaultInterval is the refresh period of the arrivals cache.
const DefaultInterval = 15 * time.Second

// Snapshot is the cached view of the station.
type Snapshot struct {
	Line      string
	Manhattan *int
	Queens    *int
	Updated   time.Time
}

// Minutes returns the cached minutes for dir.
func (s Snapshot) Minutes(dir arrivals.Direction) *int {
	if dir == arrivals.Queens {
		return s.Queens
	}
	return s.Manhattan
}

// Cache keeps the soonest arrival per direction for the preferred line.
// It is owned by the presentation loop and is not safe for concurrent use.
type Cache struct {
	source   Source
	interval time.Duration
	timeout  time.Duration
	priority []string

	lastAttempt time.Time
	attempted   bool
	snap        Snapshot
	lastErr     error
}

// NewCache creates a cache over source. Zero durations fall back to defaults.
func NewCache(source Source, interval, timeout time.Duration, priority []string) *Cache {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if len(priority) == 0 {
		priority = arrivals.DefaultLinePriority
	}
	return &Cache{source: source, interval: interval, timeout: timeout, priority: priority}
}

// Due reports whether a refresh is owed at now. The first call is always due.
func (c *Cache) Due(now time.Time) bool {
	return !c.attempted || now.Sub(c.lastAttempt) >= c.interval
}

// Refresh fetches when due. It returns whether a fetch was attempted and the
// fetch error, if any; on error the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context, now time.Time) (bool, error) {
	if !c.Due(now) {
		return false, nil
	}
	c.attempted = true
	c.lastAttempt = now

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	samples, err := c.source.FetchArrivals(ctx)
	if err != nil {
		c.lastErr = err
		log.Printf("arrivals refresh failed, keeping previous values: %v", err)
		return true, err
	}
	c.lastErr = nil
	c.apply(samples, now)
	return true, nil
}

func (c *Cache) apply(samples []arrivals.Sample, now time.Time) {
	c.snap = Snapshot{Updated: now}
	line, ok := arrivals.SelectLine(samples, c.priority)
	if !ok {
		return
	}
	c.snap.Line = line
	c.snap.Manhattan = arrivals.Soonest(samples, line, arrivals.Manhattan)
	c.snap.Queens = arrivals.Soonest(samples, line, arrivals.Queens)
}

// Snapshot returns the current cached values.
func (c *Cache) Snapshot() Snapshot { return c.snap }

// Err returns the error of the last refresh, nil after a success.
func (c *Cache) Err() error { return c.lastErr }

// SetPriority replaces the line priority; it takes effect at the next refresh.
func (c *Cache) SetPriority(priority []string) {
	if len(priority) > 0 {
		c.priority = priority
	}
}

// SetInterval changes the refresh period.
func (c *Cache) SetInterval(d time.Duration) {
	if d > 0 {
		c.interval = d
	}
}

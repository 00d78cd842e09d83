// Package ratelimit bounds request rates per client with a sliding
// window: no more than limit requests in any trailing window interval,
// recomputed fresh on every check.
package ratelimit

import (
	"sync"
	"time"
)

// idleFactor controls when an inactive client entry is evicted: after
// idleFactor window durations without a request.
const idleFactor = 3

type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	nextSweep time.Time
}

type client struct {
	mu       sync.Mutex
	stamps   []time.Time
	lastSeen time.Time
	// evicted marks an entry removed from the map while a concurrent
	// Allow held a reference to it; such a reference must not be used.
	evicted bool
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Allow records a request for key and reports whether it is admitted.
// Pruning and the ceiling decision happen under the client's own lock,
// so concurrent requests for the same key serialize and the ceiling is
// never exceeded. Rejected requests are not recorded.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	for {
		// Sweep before the lookup so a stale entry for key is gone
		// rather than fetched and then deleted underneath us.
		l.mu.Lock()
		l.maybeSweep(now)
		c, ok := l.clients[key]
		if !ok {
			c = &client{}
			l.clients[key] = c
		}
		l.mu.Unlock()

		c.mu.Lock()
		if c.evicted {
			// a concurrent sweep removed this entry between the map
			// fetch and the lock; start over with a live one
			c.mu.Unlock()
			continue
		}

		cutoff := now.Add(-l.window)
		kept := c.stamps[:0]
		for _, ts := range c.stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		c.stamps = kept
		c.lastSeen = now

		admitted := len(c.stamps) < l.limit
		if admitted {
			c.stamps = append(c.stamps, now)
		}
		c.mu.Unlock()
		return admitted
	}
}

// maybeSweep drops idle client entries. Runs at most once per window so
// the map stays bounded without a background goroutine. Caller holds l.mu.
func (l *Limiter) maybeSweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	l.nextSweep = now.Add(l.window)

	idleCutoff := now.Add(-idleFactor * l.window)
	for key, c := range l.clients {
		// An entry whose Allow is in flight holds its lock; skip it.
		if !c.mu.TryLock() {
			continue
		}
		if !c.lastSeen.IsZero() && c.lastSeen.Before(idleCutoff) {
			c.evicted = true
			delete(l.clients, key)
		}
		c.mu.Unlock()
	}
}

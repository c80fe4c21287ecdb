package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// Limiter hands out one token bucket per client key (the remote IP).
type Limiter struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	rps        rate.Limit
	burst      int
	ttl        time.Duration
	lastPruned time.Time
}

// New returns a limiter. rps <= 0 disables limiting.
func New(rps int, burst int) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[string]*limiterEntry),
		rps:      limit,
		burst:    burst,
		ttl:      30 * time.Minute,
	}
}

// Get returns the bucket for key, normally the client IP, creating it on
// first sight. Buckets idle longer than the TTL are pruned, so a returning
// client starts again with a full burst.
func (l *Limiter) Get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.pruneLocked(now)

	if entry, ok := l.limiters[key]; ok {
		entry.lastUsed = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(l.rps, l.burst)
	l.limiters[key] = &limiterEntry{
		limiter:  limiter,
		lastUsed: now,
	}
	return limiter
}

// Allow reports whether key may make a request now.
func (l *Limiter) Allow(key string) bool {
	return l.Get(key).Allow()
}

func (l *Limiter) pruneLocked(now time.Time) {
	if !l.lastPruned.IsZero() && now.Sub(l.lastPruned) < time.Minute {
		return
	}

	for key, entry := range l.limiters {
		if now.Sub(entry.lastUsed) > l.ttl {
			delete(l.limiters, key)
		}
	}
	l.lastPruned = now
}

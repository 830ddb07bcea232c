// Package timeouts provides centralized timeout values for handler
// operations. Handlers wrap their request context with these instead of
// hard-coding durations, so limits stay consistent and adjustable.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads (suggestion detail, user lookup)
//   - Medium: list queries and simple writes
//   - Long: vote and create transactions touching both collections
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-collection transactions.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Configure overrides the defaults. Zero values leave the current
// setting untouched. Call once at startup.
func Configure(p, s, m, l time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if p > 0 {
		ping = p
	}
	if s > 0 {
		short = s
	}
	if m > 0 {
		medium = m
	}
	if l > 0 {
		long = l
	}
}

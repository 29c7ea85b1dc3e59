// Package ratelimit provides the per-source submission throttle. The
// in-memory implementation is process-local and volatile; losing counters
// on restart is an accepted trade-off at this shop's scale. Deployments
// running several instances can inject a shared-counter implementation
// instead.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a source key may submit again. Allow both checks
// and increments: a true return consumes one slot of the key's window.
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	start time.Time
	count int
}

// Memory is a fixed-window Limiter keyed by caller-supplied strings
// (source IPs). The window starts at the key's first submission, not at a
// clock boundary, and resets lazily once it has elapsed.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
}

// NewMemory builds a Memory limiter allowing max submissions per period.
func NewMemory(max int, period time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
	}
}

func (m *Memory) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.entries[key]
	if !ok || now.Sub(w.start) >= m.period {
		m.entries[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= m.max {
		return false
	}
	w.count++
	return true
}

// Purge drops expired windows. The janitor in cmd/api calls this
// periodically so the map does not grow with one-off visitors.
func (m *Memory) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, w := range m.entries {
		if now.Sub(w.start) >= m.period {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

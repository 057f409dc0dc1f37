// Package lockout throttles clients that keep presenting a wrong admin key.
package lockout

import (
	"sync"
	"time"
)

type entry struct {
	failures    int
	lockedUntil time.Time
}

// MemoryStore counts failed attempts per client key in process memory. For multi-instance
// deployments each instance keeps its own counters.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]*entry
	max      int
	cooldown time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a store that locks a key for cooldown after maxAttempts consecutive
// failures. maxAttempts 0 disables locking.
func NewMemoryStore(maxAttempts int, cooldown time.Duration) *MemoryStore {
	if cooldown <= 0 {
		cooldown = 15 * time.Minute
	}
	return &MemoryStore{
		data:     make(map[string]*entry),
		max:      maxAttempts,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// IsLocked reports whether key is locked and for how much longer.
func (s *MemoryStore) IsLocked(key string) (bool, time.Duration) {
	if s.max <= 0 {
		return false, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok {
		return false, 0
	}
	if left := e.lockedUntil.Sub(s.now()); left > 0 {
		return true, left
	}
	return false, 0
}

// RecordFailure counts a wrong key. Reaching the limit starts the cooldown.
func (s *MemoryStore) RecordFailure(key string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := s.data[key]
	if e == nil {
		e = &entry{}
		s.data[key] = e
	}
	// An expired lock starts a fresh count.
	if !e.lockedUntil.IsZero() && now.After(e.lockedUntil) {
		e.failures = 0
		e.lockedUntil = time.Time{}
	}
	e.failures++
	if e.failures >= s.max {
		e.lockedUntil = now.Add(s.cooldown)
	}
}

// RecordSuccess forgets key.
func (s *MemoryStore) RecordSuccess(key string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

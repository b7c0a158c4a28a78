// Package cache provides string-keyed fetch-or-compute stores scoped to one
// simulation run. A value is computed at most once per key; concurrent
// requests for an absent key share the single in-flight computation.
package cache

import "sync"

// Store is a run-scoped memoization store. The zero value is not usable;
// create stores with NewStore.
type Store[V any] struct {
	entries map[string]*entry[V]
	mu      sync.RWMutex
}

type entry[V any] struct {
	once  sync.Once
	value V
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{
		entries: make(map[string]*entry[V]),
	}
}

// FetchOrCompute returns the value stored under key, computing it with
// compute if absent. compute runs at most once per key; callers racing on the
// same absent key block until the single computation finishes and all observe
// its result. compute must not re-enter the store with the same key.
func (s *Store[V]) FetchOrCompute(key string, compute func() V) V {
	// Fast path: entry already exists.
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		// Double-check after acquiring write lock
		e, ok = s.entries[key]
		if !ok {
			e = &entry[V]{}
			s.entries[key] = e
		}
		s.mu.Unlock()
	}

	// The entry's once gate serializes compute without holding the store
	// lock, so computations for different keys proceed in parallel.
	e.once.Do(func() {
		e.value = compute()
	})

	return e.value
}

// Contains reports whether a value has been requested under key.
func (s *Store[V]) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]

	return ok
}

// Len returns the number of keys ever requested from the store.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Reset discards all entries. Call between simulation runs; never during one.
func (s *Store[V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry[V])
}

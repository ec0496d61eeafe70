// Package cache provides the time-bounded listing cache. One store per
// running process; entries are never mutated, only replaced, and expire
// after the store TTL. A capacity bound evicts the oldest entries so the
// table cannot grow without limit.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Store maps a composite listing key to a previously computed page
// response. Lookups never fail: an expired or evicted entry is simply a
// miss. Safe for concurrent use.
type Store struct {
	lru *expirable.LRU[string, model.ListingResponse]
}

// New creates a store holding at most maxEntries responses, each living
// for ttl.
func New(maxEntries int, ttl time.Duration) *Store {
	return &Store{
		lru: expirable.NewLRU[string, model.ListingResponse](maxEntries, nil, ttl),
	}
}

// Get returns the cached response for key, or false for a missing or
// expired entry.
func (s *Store) Get(key string) (model.ListingResponse, bool) {
	return s.lru.Get(key)
}

// Put stores value under key, replacing any previous entry.
func (s *Store) Put(key string, value model.ListingResponse) {
	s.lru.Add(key, value)
}

// Len returns the number of live entries.
func (s *Store) Len() int { return s.lru.Len() }

// Purge drops all entries.
func (s *Store) Purge() { s.lru.Purge() }

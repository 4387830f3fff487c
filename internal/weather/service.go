package weather

import (
	"context"
	"log"
	"time"
)

// Cache holds the last good reading. It is owned by a single goroutine.
type Cache struct {
	lastGood   *Reading
	lastGoodAt time.Time
	lastFetch  time.Time
	attempted  bool
}

// Due reports whether a fetch should be attempted at now.
func (c *Cache) Due(now time.Time, interval time.Duration) bool {
	return !c.attempted || now.Sub(c.lastFetch) > interval
}

// Record stores the outcome of an attempt. lastFetch always advances;
// the last good reading only changes on success.
func (c *Cache) Record(now time.Time, r Reading, err error) {
	c.lastFetch = now
	c.attempted = true
	if err != nil {
		return
	}
	c.lastGood = &r
	c.lastGoodAt = now
}

// Service fetches from a Source on a fixed cadence, keeps the last good
// reading across failures and publishes every attempt to an optional Store.
type Service struct {
	source   Source
	store    Store
	interval time.Duration
	cache    Cache
}

// NewService creates a new Service. store may be nil.
func NewService(source Source, store Store, interval time.Duration) *Service {
	return &Service{
		source:   source,
		store:    store,
		interval: interval,
	}
}

// Refresh fetches synchronously when the refresh interval has elapsed and
// reports whether it did. The call blocks for as long as the Source does.
func (s *Service) Refresh(ctx context.Context, now time.Time) bool {
	if !s.cache.Due(now, s.interval) {
		return false
	}

	log.Printf("DEBUG: fetching weather from %s", s.source.Name())
	r, err := s.source.Fetch(ctx)
	if err != nil {
		// Keep showing the last good reading, if any.
		log.Printf("ERROR: weather fetch from %s failed: %v", s.source.Name(), err)
	}
	s.cache.Record(now, r, err)
	s.publish(now, err)
	return true
}

// Current returns the reading to display.
func (s *Service) Current() (Reading, bool) {
	if s.cache.lastGood == nil {
		return Reading{}, false
	}
	return *s.cache.lastGood, true
}

// Attempted reports whether any fetch has been attempted yet.
func (s *Service) Attempted() bool {
	return s.cache.attempted
}

func (s *Service) publish(now time.Time, err error) {
	if s.store == nil {
		return
	}
	snap := Snapshot{AttemptedAt: now, OK: err == nil}
	if err != nil {
		snap.Error = err.Error()
	}
	if r, ok := s.Current(); ok {
		at := s.cache.lastGoodAt
		snap.LastGood = &r
		snap.LastGoodAt = &at
	}
	s.store.SaveSnapshot(snap)
}

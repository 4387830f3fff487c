package store

import (
	"errors"
	"sync"

	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no fetch has been published yet.
	ErrNotFound = errors.New("no weather data available")
)

// MemoryStore is a concurrency-safe in-memory record of fetch attempts.
// The render loop writes to it and the status API reads from it.
type MemoryStore struct {
	mu sync.RWMutex

	snapshots []weather.Snapshot

	// max number of snapshots kept
	maxHistory int
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{maxHistory: maxHistory}
}

// SaveSnapshot appends a snapshot and enforces retention.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, snapshot)

	if s.maxHistory > 0 && len(s.snapshots) > s.maxHistory {
		over := len(s.snapshots) - s.maxHistory
		s.snapshots = append([]weather.Snapshot(nil), s.snapshots[over:]...)
	}
}

// GetLatest returns the most recent snapshot.
func (s *MemoryStore) GetLatest() (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

// GetHistory returns up to limit snapshots, newest first.
// A limit <= 0 returns everything.
func (s *MemoryStore) GetHistory(limit int) ([]weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return nil, ErrNotFound
	}

	n := len(s.snapshots)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]weather.Snapshot, 0, n)
	for i := len(s.snapshots) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.snapshots[i])
	}
	return result, nil
}

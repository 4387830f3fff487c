package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

func snapAt(minute int) weather.Snapshot {
	return weather.Snapshot{
		AttemptedAt: time.Date(2024, 5, 1, 12, minute, 0, 0, time.UTC),
		OK:          true,
	}
}

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore(4)
	if _, err := s.GetLatest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetHistory(10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRetention(t *testing.T) {
	s := NewMemoryStore(3)
	for i := 0; i < 5; i++ {
		s.SaveSnapshot(snapAt(i))
	}

	latest, err := s.GetLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.AttemptedAt.Minute() != 4 {
		t.Fatalf("expected latest minute 4, got %d", latest.AttemptedAt.Minute())
	}

	history, err := s.GetHistory(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(history))
	}
	for i, want := range []int{4, 3, 2} {
		if got := history[i].AttemptedAt.Minute(); got != want {
			t.Fatalf("history[%d]: expected minute %d, got %d", i, want, got)
		}
	}
}

func TestMemoryStoreHistoryLimit(t *testing.T) {
	s := NewMemoryStore(0)
	for i := 0; i < 10; i++ {
		s.SaveSnapshot(snapAt(i))
	}
	history, err := s.GetHistory(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 || history[0].AttemptedAt.Minute() != 9 || history[1].AttemptedAt.Minute() != 8 {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(8)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SaveSnapshot(snapAt(i))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.GetHistory(5)
		}()
	}
	wg.Wait()

	history, err := s.GetHistory(0)
	if err != nil || len(history) != 4 {
		t.Fatalf("expected 4 snapshots, got %d (%v)", len(history), err)
	}
}

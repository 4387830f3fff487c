package weather

import (
	"context"
)

// Source abstracts a remote weather endpoint. Fetch issues at most one
// request and never retries; implementations return a *FetchError on failure.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Reading, error)
}

// Store receives published snapshots (the status API reads from it).
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest() (Snapshot, error)
	GetHistory(limit int) ([]Snapshot, error)
}

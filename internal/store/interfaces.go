package store

import (
	"context"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// API is the slice of the access layer the cache store depends on.
// client.Client satisfies it; tests substitute mocks.
type API interface {
	FetchAll(ctx context.Context) ([]candidate.Candidate, error)
	FetchByID(ctx context.Context, id int64) (candidate.Candidate, error)
	Create(ctx context.Context, cand candidate.Candidate) (candidate.Candidate, error)
	Update(ctx context.Context, id int64, patch candidate.Patch) (candidate.Candidate, error)
	Delete(ctx context.Context, id int64) error
}

// Reader is the read-only cache API handed to view/rendering code.
type Reader interface {
	Snapshot() []candidate.Candidate
	GetByID(id int64) (candidate.Candidate, bool)
	GetByStatus(status candidate.Status) []candidate.Candidate
	SearchLocal(term string) []candidate.Candidate
	Loading() bool
	LastError() string
}

// Mutator is the cache API handed to flows that change records.
type Mutator interface {
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	Add(ctx context.Context, cand candidate.Candidate) (candidate.Candidate, error)
	Update(ctx context.Context, id int64, patch candidate.Patch) (candidate.Candidate, error)
	Remove(ctx context.Context, id int64) error
}

var (
	_ Reader  = (*Store)(nil)
	_ Mutator = (*Store)(nil)
)

package registry

import (
	"github.com/hiredesk/hiredesk/internal/candidate"
	"github.com/hiredesk/hiredesk/internal/repository"
)

// CandidateStore is the registry API needed by the candidate handlers.
type CandidateStore interface {
	List() []candidate.Candidate
	Get(id int64) (candidate.Candidate, bool)
	Insert(c candidate.Candidate) candidate.Candidate
	Patch(id int64, p candidate.Patch) (candidate.Candidate, error)
	Remove(id int64) error
}

// PersistableStore is the registry API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Snapshot() repository.Document
	ClearDirty()
	SetLastUpdate(ts int64)
}

// AppStore is the registry contract the application container exposes.
// It is intentionally broad: it supports handlers, the persistence scheduler
// and the repository watcher.
type AppStore interface {
	repository.CacheStore
	CandidateStore
	PersistableStore
}

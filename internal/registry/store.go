// Package registry keeps the fixture store's in-memory copy of the candidate
// document and coordinates its persistence.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/hiredesk/hiredesk/internal/candidate"
	"github.com/hiredesk/hiredesk/internal/repository"
)

// ErrCandidateNotFound marks operations on ids the document does not hold.
var ErrCandidateNotFound = errors.New("candidate not found")

// Store keeps an in-memory copy of the data document.
type Store struct {
	mu         sync.RWMutex
	doc        repository.Document
	dirty      bool  // true if the document changed since last persist
	lastUpdate int64 // document metadata.lastUpdate
}

// NewStore creates a store seeded with the given document.
func NewStore(doc repository.Document) *Store {
	return &Store{doc: doc, lastUpdate: doc.Metadata.LastUpdate}
}

// IsDirty returns true if the document has unpersisted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *Store) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// GetLastUpdate returns the document's last update timestamp.
func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate sets the document's last update timestamp.
func (s *Store) SetLastUpdate(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = ts
	s.doc.Metadata.LastUpdate = ts
}

// Snapshot returns a deep copy of the document.
func (s *Store) Snapshot() repository.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneDoc()
}

// Replace swaps the whole document, e.g. after an out-of-band file edit.
func (s *Store) Replace(doc repository.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.doc.Candidates = cloneList(doc.Candidates)
	s.lastUpdate = doc.Metadata.LastUpdate
	s.dirty = false
}

// List returns all candidates in document order.
func (s *Store) List() []candidate.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.doc.Candidates)
}

// Get returns the candidate with the given id.
func (s *Store) Get(id int64) (candidate.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.doc.Candidates {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return candidate.Candidate{}, false
}

// Insert appends a candidate, assigning it the next id, and returns the
// stored record.
func (s *Store) Insert(c candidate.Candidate) candidate.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := c.Clone()
	stored.ID = s.doc.NextID()
	s.doc.Candidates = append(s.doc.Candidates, stored)
	s.touch()
	return stored.Clone()
}

// Patch merges the partial update onto the matching candidate in place and
// returns the full updated record.
func (s *Store) Patch(id int64, p candidate.Patch) (candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Candidates {
		if s.doc.Candidates[i].ID != id {
			continue
		}
		updated := p.Apply(s.doc.Candidates[i])
		s.doc.Candidates[i] = updated
		s.touch()
		return updated.Clone(), nil
	}
	return candidate.Candidate{}, ErrCandidateNotFound
}

// Remove deletes the candidate with the given id.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Candidates {
		if s.doc.Candidates[i].ID == id {
			s.doc.Candidates = append(s.doc.Candidates[:i], s.doc.Candidates[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrCandidateNotFound
}

// touch marks the document dirty and bumps its timestamp. Caller must hold the lock.
func (s *Store) touch() {
	s.dirty = true
	s.lastUpdate = time.Now().UnixMilli()
	s.doc.Metadata.LastUpdate = s.lastUpdate
}

func (s *Store) cloneDoc() repository.Document {
	out := s.doc
	out.Candidates = cloneList(s.doc.Candidates)
	return out
}

func cloneList(in []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

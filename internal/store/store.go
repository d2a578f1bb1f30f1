package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// ErrPending marks a mutation rejected because an earlier call for the same
// logical action has not resolved yet. Guards duplicate submissions.
var ErrPending = errors.New("operation already in progress")

// ErrNotFound marks a point lookup that missed both the cache and the store.
var ErrNotFound = errors.New("candidate not found")

// Store is the session cache of candidates. It mirrors the remote store: every
// successful mutation is applied to both sides using the server's returned
// payload, and a failed mutation leaves the cache exactly as it was. All other
// components get deep-copied snapshots and must route writes through here.
type Store struct {
	api API

	mu         sync.RWMutex
	candidates []candidate.Candidate
	loading    bool
	lastErr    string

	addPending bool
	pending    map[int64]bool // ids with an update or remove in flight
}

// New creates an empty cache store backed by the given access layer.
func New(api API) *Store {
	return &Store{api: api, pending: make(map[int64]bool)}
}

// Load replaces the whole cached list with the store's current contents. This
// is the only full-replace path. On failure the previous list stays intact and
// the error is recorded but not returned: nothing awaits a background load.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	data, err := s.api.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return
	}
	s.candidates = cloneAll(data)
}

// Refresh re-runs Load.
func (s *Store) Refresh(ctx context.Context) {
	s.Load(ctx)
}

// Add validates the submission, creates it remotely and appends the
// server-confirmed record to the end of the cache. Invalid input never
// reaches the network.
func (s *Store) Add(ctx context.Context, cand candidate.Candidate) (candidate.Candidate, error) {
	// Validation failures stay local to the submitting flow; they are not
	// recorded in lastErr and never reach the access layer.
	if err := candidate.ValidateNew(cand); err != nil {
		return candidate.Candidate{}, err
	}

	s.mu.Lock()
	if s.addPending {
		s.mu.Unlock()
		return candidate.Candidate{}, ErrPending
	}
	s.addPending = true
	s.lastErr = ""
	s.mu.Unlock()

	created, err := s.api.Create(ctx, cand)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addPending = false
	if err != nil {
		s.lastErr = err.Error()
		return candidate.Candidate{}, err
	}
	s.candidates = append(s.candidates, created.Clone())
	return created, nil
}

// Update applies a partial update remotely and overwrites the cached record
// wholesale with the server's returned representation, keeping its position.
// No client-side merge: the server's full response is authoritative.
func (s *Store) Update(ctx context.Context, id int64, patch candidate.Patch) (candidate.Candidate, error) {
	if err := candidate.ValidatePatch(patch); err != nil {
		return candidate.Candidate{}, err
	}

	if err := s.acquire(id); err != nil {
		return candidate.Candidate{}, err
	}

	updated, err := s.api.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	if err != nil {
		s.lastErr = err.Error()
		return candidate.Candidate{}, err
	}
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates[i] = updated.Clone()
			break
		}
	}
	return updated, nil
}

// Remove deletes the record remotely, then drops it from the cache.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.acquire(id); err != nil {
		return err
	}

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID is a pure cache lookup; no network call.
func (s *Store) GetByID(id int64) (candidate.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.candidates {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return candidate.Candidate{}, false
}

// GetByStatus filters the cache by exact status. The "all" sentinel returns
// the full list unfiltered.
func (s *Store) GetByStatus(status candidate.Status) []candidate.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status == candidate.StatusAll {
		return cloneAll(s.candidates)
	}
	var out []candidate.Candidate
	for _, c := range s.candidates {
		if c.Status == status {
			out = append(out, c.Clone())
		}
	}
	return out
}

// SearchLocal filters the cache by case-insensitive substring match against
// name, email or position. An empty term returns the full list.
func (s *Store) SearchLocal(term string) []candidate.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if term == "" {
		return cloneAll(s.candidates)
	}
	needle := strings.ToLower(term)
	var out []candidate.Candidate
	for _, c := range s.candidates {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.Position), needle) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Resolve looks a candidate up for a single-record view. Cache hit wins; on a
// miss it falls back to a direct remote fetch. The fallback result is not
// merged into the cache: this path exists for out-of-band records only.
func (s *Store) Resolve(ctx context.Context, id int64) (candidate.Candidate, error) {
	if c, ok := s.GetByID(id); ok {
		return c, nil
	}
	c, err := s.api.FetchByID(ctx, id)
	if err != nil {
		// Transport and 404 collapse into the same outcome here.
		return candidate.Candidate{}, ErrNotFound
	}
	return c, nil
}

// Snapshot returns a deep copy of the cached list in its current order.
func (s *Store) Snapshot() []candidate.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.candidates)
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message recorded by the most recent failed operation,
// or "" after a success.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// acquire claims the per-id pending slot for a mutation.
func (s *Store) acquire(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[id] {
		return ErrPending
	}
	s.pending[id] = true
	s.lastErr = ""
	return nil
}

func cloneAll(in []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second), srv
}

func TestFetchAll(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/candidates" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]candidate.Candidate{
			{ID: 1, Name: "Alice Chen"},
			{ID: 2, Name: "Bob Novak"},
		})
	})

	cands, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 2 || cands[0].ID != 1 || cands[1].Name != "Bob Novak" {
		t.Errorf("unexpected result: %+v", cands)
	}
}

func TestFetchByID(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candidates/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(candidate.Candidate{ID: 7, Name: "Alice Chen"})
	})

	cand, err := c.FetchByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cand.ID != 7 {
		t.Errorf("unexpected candidate: %+v", cand)
	}
}

func TestFetchByID_NotFound(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "candidate not found"})
	})

	_, err := c.FetchByID(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var in candidate.Candidate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatal(err)
		}
		in.ID = 42
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	})

	created, err := c.Create(context.Background(), candidate.Candidate{Name: "New Hire"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 || created.Name != "New Hire" {
		t.Errorf("unexpected created record: %+v", created)
	}
}

func TestUpdate_SendsOnlySetFields(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/candidates/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatal(err)
		}
		if len(raw) != 1 {
			t.Errorf("expected one field on the wire, got %v", raw)
		}
		if raw["status"] != "approved" {
			t.Errorf("unexpected payload: %v", raw)
		}
		json.NewEncoder(w).Encode(candidate.Candidate{ID: 3, Status: candidate.StatusApproved})
	})

	status := candidate.StatusApproved
	updated, err := c.Update(context.Background(), 3, candidate.Patch{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != candidate.StatusApproved {
		t.Errorf("unexpected record: %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	called := false
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete || r.URL.Path != "/candidates/5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("server was never called")
	}
}

func TestDelete_NotFound(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := c.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchByText(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "ali ce" {
			t.Errorf("expected escaped query to round-trip, got %q", got)
		}
		json.NewEncoder(w).Encode([]candidate.Candidate{{ID: 1}})
	})

	cands, err := c.SearchByText(context.Background(), "ali ce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Errorf("unexpected result: %+v", cands)
	}
}

func TestFetchByStatus_ForwardsVerbatim(t *testing.T) {
	var got string
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("status")
		json.NewEncoder(w).Encode([]candidate.Candidate{})
	})

	if _, err := c.FetchByStatus(context.Background(), candidate.StatusAll); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "all" {
		t.Errorf("expected the sentinel forwarded verbatim, got %q", got)
	}

	if _, err := c.FetchByStatus(context.Background(), candidate.StatusOnHold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "on-hold" {
		t.Errorf("expected on-hold, got %q", got)
	}
}

func TestServerErrorMessageSurface(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "validation failed"})
	})

	_, err := c.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "validation failed"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not carry the store's message %q", err, want)
	}
}

func TestDelaySetting(t *testing.T) {
	SetDelay(0)
	t.Cleanup(func() { SetDelay(0) })

	if Delay() != 0 {
		t.Fatalf("expected zero delay, got %v", Delay())
	}

	SetDelay(80 * time.Millisecond)
	if Delay() != 80*time.Millisecond {
		t.Fatalf("expected 80ms, got %v", Delay())
	}

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]candidate.Candidate{})
	})

	start := time.Now()
	if _, err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected at least the configured delay, request took %v", elapsed)
	}
}

func TestDelayHonorsContextCancel(t *testing.T) {
	SetDelay(5 * time.Second)
	t.Cleanup(func() { SetDelay(0) })

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be reached when the context is canceled during the delay")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.FetchAll(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation did not interrupt the delay")
	}
}

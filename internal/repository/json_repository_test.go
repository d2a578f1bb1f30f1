package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

func writeTestFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "candidates.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validFile = `{
  "metadata": {"lastUpdate": 1000},
  "candidates": [
    {
      "id": 1,
      "name": "Alice Chen",
      "email": "alice@example.com",
      "phone": "",
      "position": "Backend Engineer",
      "status": "approved",
      "skills": ["Go"],
      "experience": 5,
      "rating": 4.5,
      "appliedDate": "2026-01-10",
      "interviewDate": null,
      "notes": "",
      "yearlySalary": 90000,
      "location": "Berlin",
      "education": "BSc"
    }
  ]
}`

func TestNewJSONRepository_EmptyPath(t *testing.T) {
	if _, err := NewJSONRepository(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestJSONRepository_Load(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), validFile)
	repo, err := NewJSONRepository(path)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(doc.Candidates))
	}
	if doc.Candidates[0].Name != "Alice Chen" {
		t.Errorf("unexpected name %q", doc.Candidates[0].Name)
	}
	if doc.Candidates[0].InterviewDate != nil {
		t.Error("expected null interviewDate to decode as nil")
	}
	if doc.Metadata.LastUpdate != 1000 {
		t.Errorf("expected lastUpdate 1000, got %d", doc.Metadata.LastUpdate)
	}
}

func TestJSONRepository_Load_MissingFileYieldsEmptyDocument(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Candidates == nil || len(doc.Candidates) != 0 {
		t.Error("expected empty candidate list for missing file")
	}
}

func TestJSONRepository_Load_MalformedJSON(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), `{"candidates": [`)
	repo, _ := NewJSONRepository(path)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestJSONRepository_Load_InvalidCandidate(t *testing.T) {
	// rating outside [0,5] must fail validation
	path := writeTestFile(t, t.TempDir(), `{
	  "metadata": {"lastUpdate": 1},
	  "candidates": [{
	    "id": 1, "name": "Bad", "email": "bad@example.com", "position": "X",
	    "status": "pending", "skills": [], "experience": 1, "rating": 9,
	    "appliedDate": "2026-01-01", "yearlySalary": 1000
	  }]
	}`)
	repo, _ := NewJSONRepository(path)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected validation error for rating 9")
	}
}

func TestJSONRepository_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.json")
	repo, _ := NewJSONRepository(path)

	doc := &Document{
		Metadata: Metadata{LastUpdate: 42},
		Candidates: []candidate.Candidate{
			{ID: 1, Name: "Alice", Email: "alice@example.com", Position: "Engineer",
				Status: candidate.StatusPending, Skills: []string{"Go"},
				AppliedDate: "2026-01-01", YearlySalary: 50000},
		},
	}

	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No temp files may be left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected exactly the data file in dir, got %d entries", len(entries))
	}

	reloaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !AreDocumentsEqual(doc, reloaded) {
		t.Error("expected reloaded document to equal the saved one")
	}
	if reloaded.Metadata.LastUpdate != 42 {
		t.Errorf("expected lastUpdate 42, got %d", reloaded.Metadata.LastUpdate)
	}
}

func TestJSONRepository_Save_NilDocument(t *testing.T) {
	repo, _ := NewJSONRepository(filepath.Join(t.TempDir(), "candidates.json"))
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestJSONRepository_Save_InvalidDocument(t *testing.T) {
	repo, _ := NewJSONRepository(filepath.Join(t.TempDir(), "candidates.json"))
	doc := &Document{
		Candidates: []candidate.Candidate{
			{ID: 1, Name: "", Email: "nope", Position: "", Status: "bogus", AppliedDate: ""},
		},
	}
	if err := repo.Save(context.Background(), doc); err == nil {
		t.Error("expected validation error before save")
	}
}

// fakeCacheStore records Replace calls from the watcher callback.
type fakeCacheStore struct {
	mu         sync.Mutex
	doc        Document
	dirty      bool
	lastUpdate int64
	replaced   int
}

func (f *fakeCacheStore) GetLastUpdate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUpdate
}

func (f *fakeCacheStore) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

func (f *fakeCacheStore) Snapshot() Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc
}

func (f *fakeCacheStore) Replace(doc Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
	f.lastUpdate = doc.Metadata.LastUpdate
	f.replaced++
}

func (f *fakeCacheStore) replacedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replaced
}

func TestWatcherCallback_ReloadsNewerDisk(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), validFile)
	repoIface, _ := NewJSONRepository(path)
	repo := repoIface.(*JSONRepository)

	store := &fakeCacheStore{lastUpdate: 500}
	cb := repo.MakeWatcherCallback(context.Background(), store)
	cb()

	if store.replacedCount() != 1 {
		t.Fatalf("expected one replace, got %d", store.replacedCount())
	}
	if store.GetLastUpdate() != 1000 {
		t.Errorf("expected lastUpdate 1000 after reload, got %d", store.GetLastUpdate())
	}
}

func TestWatcherCallback_SkipsOlderDisk(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), validFile)
	repoIface, _ := NewJSONRepository(path)
	repo := repoIface.(*JSONRepository)

	store := &fakeCacheStore{lastUpdate: 2000}
	cb := repo.MakeWatcherCallback(context.Background(), store)
	cb()

	if store.replacedCount() != 0 {
		t.Errorf("expected no replace for older disk, got %d", store.replacedCount())
	}
}

func TestWatcherCallback_SkipsDirtyCache(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), validFile)
	repoIface, _ := NewJSONRepository(path)
	repo := repoIface.(*JSONRepository)

	store := &fakeCacheStore{lastUpdate: 500, dirty: true}
	cb := repo.MakeWatcherCallback(context.Background(), store)
	cb()

	if store.replacedCount() != 0 {
		t.Errorf("expected no replace while dirty, got %d", store.replacedCount())
	}
}

func TestStartWatcher_ReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, validFile)
	repoIface, _ := NewJSONRepository(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeCacheStore{lastUpdate: 500}
	if err := repoIface.StartWatcher(ctx, store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overwrite the file with a newer version
	newer := `{"metadata": {"lastUpdate": 5000}, "candidates": []}`
	if err := os.WriteFile(path, []byte(newer), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for store.replacedCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher did not reload within deadline")
		case <-time.After(50 * time.Millisecond):
		}
	}

	if store.GetLastUpdate() != 5000 {
		t.Errorf("expected lastUpdate 5000 after watcher reload, got %d", store.GetLastUpdate())
	}
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"

	"github.com/hiredesk/hiredesk/internal/logger"
)

// CacheStore defines the interface for registry operations needed by the watcher callback.
type CacheStore interface {
	GetLastUpdate() int64
	IsDirty() bool
	Snapshot() Document
	Replace(doc Document)
}

// JSONRepository handles disk persistence and watching of the data file.
type JSONRepository struct {
	path      string
	dir       string
	base      string
	validator *validator.Validate
	mu        sync.Mutex
}

// NewJSONRepository creates a repository for the given JSON file path.
func NewJSONRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "" || dir == "." {
		dir = "."
	}

	return &JSONRepository{path: path, dir: dir, base: base, validator: validator.New()}, nil
}

// Load reads the JSON file, parses and validates it. A missing file yields an
// empty document so a fresh server starts without seed data.
func (r *JSONRepository) Load(ctx context.Context) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := &Document{}
			doc.ApplyDefaults()
			return doc, nil
		}
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	var doc Document
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}

	doc.ApplyDefaults()

	if err := r.validator.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate data file: %w", err)
	}

	return &doc, nil
}

// Save validates and writes the document atomically to disk.
func (r *JSONRepository) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	if err := r.validator.Struct(doc); err != nil {
		return fmt.Errorf("validate before save: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(r.dir, r.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), r.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	return nil
}

// StartWatcher listens for changes to the data file and reloads the registry
// after a debounce. It watches the parent directory (not the file) so atomic
// replace sequences (temp+rename) are still observed. Events are filtered by
// basename and debounced to avoid double reloads on write+chmod/rename cycles.
// The caller owns the provided context: cancel it to stop the goroutine and
// close the watcher cleanly.
func (r *JSONRepository) StartWatcher(ctx context.Context, store CacheStore) error {
	onChange := r.MakeWatcherCallback(ctx, store)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		// debounce coalesces bursty fsnotify events into a single reload.
		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("json-repo").Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// MakeWatcherCallback returns a callback that reloads the registry from disk
// when the file holds a newer version than the cache.
func (r *JSONRepository) MakeWatcherCallback(ctx context.Context, store CacheStore) func() {
	log := logger.WithComponent("json-repo")
	return func() {
		diskDoc, loadErr := r.Load(ctx)
		if loadErr != nil {
			log.Errorf("watch reload failed: %v", loadErr)
			return
		}
		cacheLastUpdate := store.GetLastUpdate()
		diskLastUpdate := diskDoc.Metadata.LastUpdate

		if diskLastUpdate < cacheLastUpdate {
			log.Debugf("disk version is not newer than cache: disk=%d cache=%d", diskLastUpdate, cacheLastUpdate)
			return
		}

		if store.IsDirty() {
			// The registry content will be flushed to file soon anyway.
			log.Warn("disk data is newer but registry is dirty; skipping reload")
			return
		}

		if diskLastUpdate == cacheLastUpdate {
			snapshot := store.Snapshot()
			if AreDocumentsEqual(&snapshot, diskDoc) {
				return
			}
		}

		store.Replace(*diskDoc)
		log.Info("registry reloaded from newer disk version")
	}
}

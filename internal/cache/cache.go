package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// entryExt is the file extension for cache entry files.
const entryExt = ".json"

// ErrNotFound is returned by Load when no entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Entry is a single cached value. Entries are immutable once written;
// a refresh replaces the whole file atomically.
type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Fresh reports whether the entry is younger than maxAge at the given time.
// A nil entry, zero fetch time or non-positive maxAge is always stale.
func (e *Entry) Fresh(maxAge time.Duration, now time.Time) bool {
	if e == nil || e.FetchedAt.IsZero() {
		return false
	}
	if maxAge <= 0 {
		return false
	}
	return now.Sub(e.FetchedAt) < maxAge
}

// Store persists cache entries as one JSON file per key in a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the entry file path for a key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}

// LockPath returns the refresh lock file path for a key.
func (s *Store) LockPath(key string) string {
	return filepath.Join(s.dir, key+".lock")
}

// Load reads the entry for key. Returns ErrNotFound if no entry exists.
// A corrupted entry file is treated as absent so a refresh can replace it.
func (s *Store) Load(key string) (*Entry, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// Save durably writes a new entry for key, replacing any prior one.
// The entry is written to a temp file and renamed so concurrent readers
// see either the old entry or the new one, never a partial write.
func (s *Store) Save(key string, payload []byte, now time.Time) error {
	entry := Entry{
		Key:       key,
		Payload:   payload,
		FetchedAt: now,
	}
	data, err := json.MarshalIndent(&entry, "", "  ")
	if err != nil {
		return err
	}

	path := s.Path(key)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Clear removes all entry and failure files from the store.
// Lock files are left alone so an in-flight refresh keeps its lock.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != entryExt {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEntry_Fresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		entry  *Entry
		maxAge time.Duration
		want   bool
	}{
		{
			name:   "nil entry is stale",
			entry:  nil,
			maxAge: time.Hour,
			want:   false,
		},
		{
			name:   "zero fetch time is stale",
			entry:  &Entry{},
			maxAge: time.Hour,
			want:   false,
		},
		{
			name:   "recent entry is fresh",
			entry:  &Entry{FetchedAt: now.Add(-time.Minute)},
			maxAge: time.Hour,
			want:   true,
		},
		{
			name:   "old entry is stale",
			entry:  &Entry{FetchedAt: now.Add(-2 * time.Hour)},
			maxAge: time.Hour,
			want:   false,
		},
		{
			name:   "exactly max age is stale",
			entry:  &Entry{FetchedAt: now.Add(-time.Hour)},
			maxAge: time.Hour,
			want:   false,
		},
		{
			name:   "just under max age is fresh",
			entry:  &Entry{FetchedAt: now.Add(-time.Hour + time.Second)},
			maxAge: time.Hour,
			want:   true,
		},
		{
			name:   "zero max age is always stale",
			entry:  &Entry{FetchedAt: now},
			maxAge: 0,
			want:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.entry.Fresh(tt.maxAge, now); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_Fresh_MonotonicInNow(t *testing.T) {
	t.Parallel()

	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entry := &Entry{FetchedAt: fetched}
	maxAge := 10 * time.Minute

	// If an entry is fresh at t, it was fresh at every earlier t' >= fetch time.
	later := fetched.Add(9 * time.Minute)
	if !entry.Fresh(maxAge, later) {
		t.Fatal("expected entry to be fresh at t+9m")
	}
	for _, earlier := range []time.Duration{0, time.Minute, 5 * time.Minute} {
		if !entry.Fresh(maxAge, fetched.Add(earlier)) {
			t.Errorf("entry stale at t+%v but fresh at t+9m", earlier)
		}
	}
}

func TestStore_LoadNotFound(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = store.Load("reminders")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	payload := []byte(`[{"name":"Shopping"}]`)

	if err := store.Save("reminders", payload, now); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entry, err := store.Load("reminders")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.Key != "reminders" {
		t.Errorf("Key = %q, want %q", entry.Key, "reminders")
	}
	if !entry.FetchedAt.Equal(now) {
		t.Errorf("FetchedAt = %v, want %v", entry.FetchedAt, now)
	}
	if string(entry.Payload) != string(payload) {
		t.Errorf("Payload = %s, want %s", entry.Payload, payload)
	}
}

func TestStore_SaveReplacesEntry(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	t0 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	if err := store.Save("reminders", []byte(`"old"`), t0); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("reminders", []byte(`"new"`), t1); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entry, err := store.Load("reminders")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(entry.Payload) != `"new"` {
		t.Errorf("Payload = %s, want %q", entry.Payload, "new")
	}
	if !entry.FetchedAt.Equal(t1) {
		t.Errorf("FetchedAt = %v, want %v", entry.FetchedAt, t1)
	}

	// No temp file left behind.
	if _, err := os.Stat(store.Path("reminders") + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be gone after Save")
	}
}

func TestStore_LoadCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := os.WriteFile(store.Path("reminders"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err = store.Load("reminders")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound for corrupt entry", err)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	// Deleting a missing entry is fine.
	if err := store.Delete("reminders"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}

	if err := store.Save("reminders", []byte(`[]`), time.Now()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete("reminders"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load("reminders"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Delete = %v, want ErrNotFound", err)
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	now := time.Now()
	if err := store.Save("reminders", []byte(`[]`), now); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.SaveFailure("reminders", "osascript timed out", now); err != nil {
		t.Fatalf("SaveFailure() error = %v", err)
	}

	// Lock files must survive Clear.
	lockPath := store.LockPath("reminders")
	if err := os.WriteFile(lockPath, nil, 0o600); err != nil {
		t.Fatalf("write lock file: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, err := store.Load("reminders"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Clear = %v, want ErrNotFound", err)
	}
	if _, err := store.LoadFailure("reminders"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFailure() after Clear = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("expected lock file to survive Clear, got %v", err)
	}
}

func TestStore_EntryFileIsValidJSON(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := store.Save("reminders", []byte(`{"a":1}`), time.Now()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(store.Path("reminders"))
	if err != nil {
		t.Fatalf("read entry file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("entry file is not valid JSON: %v", err)
	}
	for _, field := range []string{"key", "payload", "fetched_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("entry file missing field %q", field)
		}
	}
}

func TestStore_Paths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if got, want := store.Path("reminders"), filepath.Join(dir, "reminders.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := store.LockPath("reminders"), filepath.Join(dir, "reminders.lock"); got != want {
		t.Errorf("LockPath() = %q, want %q", got, want)
	}
	if got, want := store.FailurePath("reminders"), filepath.Join(dir, "reminders.fail.json"); got != want {
		t.Errorf("FailurePath() = %q, want %q", got, want)
	}
}

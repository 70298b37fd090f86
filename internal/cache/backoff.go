package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// failureSuffix is appended to the key for failure marker files.
// The suffix ends in entryExt so Clear removes markers too.
const failureSuffix = ".fail"

// Failure records a failed refresh attempt for a key. It acts as a short
// negative-cache window: while the failure is recent, the updater skips
// re-fetching so a broken source isn't hammered on every keystroke.
type Failure struct {
	Key      string    `json:"key"`
	FailedAt time.Time `json:"failed_at"`
	Reason   string    `json:"reason"`
}

// Within reports whether the failure happened less than window ago.
func (f *Failure) Within(window time.Duration, now time.Time) bool {
	if f == nil || f.FailedAt.IsZero() || window <= 0 {
		return false
	}
	return now.Sub(f.FailedAt) < window
}

// FailurePath returns the failure marker file path for a key.
func (s *Store) FailurePath(key string) string {
	return s.Path(key + failureSuffix)
}

// LoadFailure reads the failure marker for key.
// Returns ErrNotFound if there is none; a corrupt marker counts as none.
func (s *Store) LoadFailure(key string) (*Failure, error) {
	data, err := os.ReadFile(s.FailurePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read failure marker: %w", err)
	}

	var f Failure
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, ErrNotFound
	}
	return &f, nil
}

// SaveFailure records a failed refresh attempt for key.
func (s *Store) SaveFailure(key, reason string, now time.Time) error {
	f := Failure{
		Key:      key,
		FailedAt: now,
		Reason:   reason,
	}
	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}

	path := s.FailurePath(key)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("write failure marker: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace failure marker: %w", err)
	}
	return nil
}

// ClearFailure removes the failure marker for key, if any.
func (s *Store) ClearFailure(key string) error {
	err := os.Remove(s.FailurePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear failure marker: %w", err)
	}
	return nil
}

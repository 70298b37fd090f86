// Package cache manages the durable stale-while-revalidate store shared by
// every rem invocation.
//
// Each Script Filter keystroke runs a fresh process, so all state crossing
// invocations lives here: one JSON entry file per key, one flock-based lock
// file per key, and an optional failure marker per key.
//
// # Entries
//
// An entry holds an opaque payload plus the time it was fetched:
//
//	{
//	  "key": "reminders",
//	  "payload": [ ... ],
//	  "fetched_at": "2026-08-30T10:00:00Z"
//	}
//
// Writes go through a temp file and rename, so a concurrent reader sees
// either the previous entry or the new one, never a torn write. Entries are
// never deleted by normal operation; a refresh overwrites them in place.
//
// # Refresh locks
//
// [FileLock.TryLock] is the cross-process test-and-set that collapses a
// burst of stale reads into a single background refresh. Because flock is
// tied to the holding process, a crashed updater releases the lock as a
// side effect of process exit.
//
// # Failure markers
//
// A failed refresh records when and why it failed. The updater skips
// re-fetching while the marker is inside the configured retry window,
// bounding how often a consistently failing source is probed.
package cache

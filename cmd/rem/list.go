package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deanishe/alfred-reminders-demo/internal/alfred"
	"github.com/deanishe/alfred-reminders-demo/internal/cache"
	"github.com/deanishe/alfred-reminders-demo/internal/config"
	"github.com/deanishe/alfred-reminders-demo/internal/log"
	"github.com/deanishe/alfred-reminders-demo/internal/reminders"
)

// cacheKey is the cache key for the Reminders.app list of lists.
const cacheKey = "reminders"

// listDeps holds the collaborators of the list command, injected for tests.
type listDeps struct {
	store *cache.Store
	lock  *cache.FileLock
	spawn func() error
	cfg   config.Config
	now   time.Time
}

// runList answers one Script Filter invocation. It never blocks on
// Reminders.app: stale or missing data is refreshed out-of-band and the
// feedback's rerun value makes Alfred ask again shortly.
func runList(ctx context.Context, deps listDeps, query string) *alfred.Feedback {
	fb := &alfred.Feedback{}

	entry, lists := loadCached(ctx, deps.store)

	if !entry.Fresh(deps.cfg.MaxAge(), deps.now) {
		fb.Rerun = alfred.RerunInterval
		maybeSpawnRefresh(ctx, deps)
	}

	if entry == nil {
		it := fb.NewItem("Loading lists from Reminders.app…")
		it.Subtitle = "Results will refresh momentarily"
		it.Icon = alfred.IconSync
		return fb
	}

	lists = reminders.FilterAccounts(lists, deps.cfg.Accounts)
	lists = reminders.Match(lists, query)

	// Always send at least one row: with no items at all, Alfred shows its
	// fallback searches and the workflow looks broken.
	if len(lists) == 0 {
		it := fb.NewItem("No matching lists")
		it.Subtitle = "Try a different query."
		it.Icon = alfred.IconWarning
		return fb
	}

	for _, lst := range lists {
		it := fb.NewItem(lst.Name)
		it.Subtitle = fmt.Sprintf("%s > %s", lst.Account, lst.Name)
		// The ID, not the name, goes to the follow-up action: several
		// lists may share a name.
		it.Arg = lst.ID
		it.UID = lst.ID
		it.Valid = true
		it.Text = &alfred.Text{Copy: lst.Name}
	}
	return fb
}

// loadCached reads and decodes the cached lists. Storage failures and
// corrupt payloads degrade to "no cached data" (nil entry) so the caller
// falls into the refresh path.
func loadCached(ctx context.Context, store *cache.Store) (*cache.Entry, []reminders.List) {
	l := log.FromContext(ctx)

	entry, err := store.Load(cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			l.Error().Err(err).Msg("cache read failed")
		}
		return nil, nil
	}

	var lists []reminders.List
	if err := json.Unmarshal(entry.Payload, &lists); err != nil {
		l.Error().Err(err).Msg("corrupt cache payload")
		return nil, nil
	}
	return entry, lists
}

// maybeSpawnRefresh starts a detached "rem update" unless one is already
// running. The lock is only probed here: the spawned update holds its own
// lock for the duration of the fetch and exits quietly if it loses the
// race, so duplicate spawns in the probe window collapse to one refresh.
func maybeSpawnRefresh(ctx context.Context, deps listDeps) {
	l := log.FromContext(ctx)

	ok, err := deps.lock.TryLock()
	if err != nil {
		// Treat conservatively as "someone else is refreshing".
		l.Debug().Err(err).Msg("refresh lock unavailable")
		return
	}
	if !ok {
		l.Debug().Msg("refresh already in flight")
		return
	}
	_ = deps.lock.Unlock()

	if err := deps.spawn(); err != nil {
		l.Error().Err(err).Msg("failed to spawn background update")
	}
}

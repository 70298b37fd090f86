package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deanishe/alfred-reminders-demo/internal/cache"
	"github.com/deanishe/alfred-reminders-demo/internal/config"
	"github.com/deanishe/alfred-reminders-demo/internal/log"
	"github.com/deanishe/alfred-reminders-demo/internal/reminders"
)

// updateDeps holds the collaborators of the update command, injected for tests.
type updateDeps struct {
	store *cache.Store
	lock  *cache.FileLock
	fetch func(context.Context) ([]reminders.List, error)
	cfg   config.Config
	now   func() time.Time
	force bool
}

// runUpdate performs one cache refresh under the per-key refresh lock.
// Losing the lock race is not an error: it means another update is
// already doing the work.
func runUpdate(ctx context.Context, deps updateDeps) error {
	l := log.FromContext(ctx)

	ok, err := deps.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !ok {
		l.Info().Msg("another update is already running")
		return nil
	}
	// Released on every exit path below; if this process dies instead,
	// the kernel drops the flock on exit.
	defer deps.lock.Unlock()

	if !deps.force {
		if f, err := deps.store.LoadFailure(cacheKey); err == nil && f.Within(deps.cfg.RetryAfter(), deps.now()) {
			l.Info().Time("failed_at", f.FailedAt).Str("reason", f.Reason).Msg("recent fetch failed, backing off")
			return nil
		}
	}

	fctx := ctx
	if timeout := deps.cfg.FetchTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lists, err := deps.fetch(fctx)
	if err != nil {
		// Leave the old entry intact; record the failure so the next
		// spawned update backs off instead of retrying immediately.
		if serr := deps.store.SaveFailure(cacheKey, err.Error(), deps.now()); serr != nil {
			l.Error().Err(serr).Msg("failed to record fetch failure")
		}
		return fmt.Errorf("fetch lists: %w", err)
	}

	payload, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("encode lists: %w", err)
	}
	if err := deps.store.Save(cacheKey, payload, deps.now()); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := deps.store.ClearFailure(cacheKey); err != nil {
		l.Warn().Err(err).Msg("failed to clear failure marker")
	}

	l.Info().Int("lists", len(lists)).Msg("cached Reminders.app lists")
	return nil
}

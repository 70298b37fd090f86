package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/deanishe/alfred-reminders-demo/internal/alfred"
	"github.com/deanishe/alfred-reminders-demo/internal/cache"
	"github.com/deanishe/alfred-reminders-demo/internal/config"
	"github.com/deanishe/alfred-reminders-demo/internal/log"
	"github.com/deanishe/alfred-reminders-demo/internal/reminders"
)

func newUpdateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch lists from Reminders.app and cache them",
		Long: `Fetches all lists from Reminders.app and atomically replaces the cache.

Normally runs as the detached background process spawned by "rem list"
when the cache has gone stale. Exits quietly when another update holds
the refresh lock, and skips fetching for a short window after a failed
attempt so a broken Reminders.app isn't hammered on every keystroke.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(alfred.DataDir())
			if err != nil {
				log.FromContext(ctx).Warn().Err(err).Msg("using default settings")
			}

			store, err := cache.NewStore(alfred.CacheDir())
			if err != nil {
				return err
			}

			deps := updateDeps{
				store: store,
				lock:  cache.NewFileLock(store.LockPath(cacheKey)),
				fetch: reminders.Fetch,
				cfg:   cfg,
				now:   time.Now,
				force: force,
			}
			return runUpdate(ctx, deps)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Fetch even if a recent attempt failed")

	return cmd
}

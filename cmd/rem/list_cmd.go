package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/deanishe/alfred-reminders-demo/internal/alfred"
	"github.com/deanishe/alfred-reminders-demo/internal/background"
	"github.com/deanishe/alfred-reminders-demo/internal/cache"
	"github.com/deanishe/alfred-reminders-demo/internal/config"
	"github.com/deanishe/alfred-reminders-demo/internal/log"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "Show Reminders.app lists as Script Filter JSON",
		Long: `Emits the Alfred Script Filter feedback for the given query.

Lists are served from the workflow cache. When the cache is stale or
missing, a detached "rem update" is spawned and the feedback asks Alfred
to re-run the Script Filter shortly, so fresh results appear without the
keystroke ever waiting on Reminders.app.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var query string
			if len(args) > 0 {
				query = args[0]
			}

			cfg, err := config.Load(alfred.DataDir())
			if err != nil {
				log.FromContext(ctx).Warn().Err(err).Msg("using default settings")
			}

			store, err := cache.NewStore(alfred.CacheDir())
			if err != nil {
				// Degrade to an explanatory row rather than crash:
				// Alfred shows its fallback searches on a hard failure.
				log.FromContext(ctx).Error().Err(err).Msg("cache unavailable")
				fb := &alfred.Feedback{}
				it := fb.NewItem("Cannot access workflow cache")
				it.Subtitle = err.Error()
				it.Icon = alfred.IconWarning
				return fb.Send(cmd.OutOrStdout())
			}

			deps := listDeps{
				store: store,
				lock:  cache.NewFileLock(store.LockPath(cacheKey)),
				spawn: func() error { return background.SpawnSelf("update") },
				cfg:   cfg,
				now:   time.Now(),
			}
			return runList(ctx, deps, query).Send(cmd.OutOrStdout())
		},
	}
}

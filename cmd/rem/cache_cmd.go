package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deanishe/alfred-reminders-demo/internal/alfred"
	"github.com/deanishe/alfred-reminders-demo/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the workflow cache",
	}

	cmd.AddCommand(newCachePathCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), alfred.CacheDir())
			return err
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached data",
		Long: `Deletes the cached lists and any failure markers.

Waits for an in-flight update to finish before clearing, so a refresh
can't race the deletion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.NewStore(alfred.CacheDir())
			if err != nil {
				return err
			}

			lock := cache.NewFileLock(store.LockPath(cacheKey))
			if err := lock.Lock(); err != nil {
				return fmt.Errorf("acquire refresh lock: %w", err)
			}
			defer lock.Unlock()

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/deanishe/alfred-reminders-demo/internal/log"
	"github.com/deanishe/alfred-reminders-demo/internal/reminders"
)

func newOpenCmd() *cobra.Command {
	var copyID bool

	cmd := &cobra.Command{
		Use:   "open <list-id>",
		Short: "Open a list in Reminders.app",
		Long: `Opens the list with the given ID in Reminders.app.

Alfred calls this with the ID of the actioned result row.

Examples:
  rem open x-apple-reminder://A1B2C3
  rem open --copy x-apple-reminder://A1B2C3   # copy the ID instead`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			listID := args[0]

			if copyID {
				if err := clipboard.WriteAll(listID); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Info().Str("list", listID).Msg("copied list ID to clipboard")
				return nil
			}

			log.FromContext(ctx).Debug().Str("list", listID).Msg("opening list")
			return reminders.Open(ctx, listID)
		},
	}

	cmd.Flags().BoolVar(&copyID, "copy", false, "Copy the list ID to the clipboard instead of opening it")

	return cmd
}

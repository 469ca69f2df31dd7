// ABOUTME: CLI commands for the offline change queue.
// ABOUTME: status, pending, and prune; the transport itself lives elsewhere.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncLimit int

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Inspect the offline sync queue",
	Long: `Inspect the offline change queue.

Every local mutation of user-owned data queues an entry here. A sync
transport drains the queue when connectivity returns; until then,
'status' and 'pending' show what is waiting.

COMMANDS:

  status    Pending and transmitted counts
  pending   List queued changes, oldest first
  prune     Delete entries already transmitted`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue status",
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, synced, err := store.CountChanges(cmd.Context())
		if err != nil {
			return fmt.Errorf("count changes: %w", err)
		}

		if pending == 0 {
			color.Green("✓ Nothing waiting to sync")
		} else {
			color.Yellow("⚠ %d changes waiting to sync", pending)
		}
		fmt.Printf("  Transmitted: %d\n", synced)
		return nil
	},
}

var syncPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List pending changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.PendingChanges(cmd.Context(), syncLimit)
		if err != nil {
			return fmt.Errorf("list pending changes: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No pending changes.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(e.EnqueuedAt.Format("2006-01-02 15:04:05")),
				padRight(string(e.Operation), 6),
				padRight(e.TableName, 16),
				faint.Sprint(e.RecordID))
		}
		return nil
	},
}

var syncPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete transmitted entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := store.PruneSyncedChanges(cmd.Context())
		if err != nil {
			return fmt.Errorf("prune changes: %w", err)
		}

		color.Green("✓ Pruned %d transmitted entries", n)
		return nil
	},
}

func init() {
	syncPendingCmd.Flags().IntVarP(&syncLimit, "limit", "n", 0, "max number of results (0 = all)")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPendingCmd)
	syncCmd.AddCommand(syncPruneCmd)
	rootCmd.AddCommand(syncCmd)
}

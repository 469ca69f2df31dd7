// ABOUTME: CLI command running the daily maintenance sweep on demand.
// ABOUTME: The MCP server runs the same sweep on a cron schedule.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/logger"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/maintenance"
)

var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run the daily maintenance sweep now",
	Long: `Run the daily maintenance sweep immediately.

The sweep expires goals whose window has closed, re-reads body-weight
goals against the latest weigh-in, and prunes sync-queue entries that
have already been transmitted. The long-running MCP server performs
the same sweep on a schedule; this command is for everyone else.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := maintenance.NewRunner(store, goalEngine, logger.Log)

		report, err := runner.RunOnce(cmd.Context())
		if err != nil {
			return err
		}

		color.Green("✓ Maintenance complete")
		fmt.Printf("  Athletes swept:  %d\n", report.UsersSwept)
		fmt.Printf("  Goals expired:   %d\n", report.ExpiredGoals)
		fmt.Printf("  Goals achieved:  %d\n", report.AchievedGoals)
		fmt.Printf("  Goals updated:   %d\n", report.UpdatedGoals)
		fmt.Printf("  Queue pruned:    %d\n", report.PrunedChanges)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(maintainCmd)
}

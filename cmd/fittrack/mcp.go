// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP plus the scheduled maintenance sweep.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/logger"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/maintenance"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log workouts, track goals, and
read your training data through a standardized protocol. The server
communicates via stdin/stdout and runs the daily maintenance sweep on
a schedule while it is up.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fittrack": {
        "command": "fittrack",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_workout       Record a workout with exercises and sets
  get_workout       Get one workout with its full exercise graph
  list_workouts     List recent workouts
  delete_workout    Delete a workout by ID
  list_exercises    Browse the exercise catalogue
  log_weight        Record a body-weight entry
  log_rest_day      Log a rest day (keeps the streak alive)
  create_goal       Create a training goal
  list_goals        List goals with live progress
  get_streak        Current and longest activity streaks
  list_milestones   Personal bests and other achievements
  list_notifications  Unread in-app notifications
  sync_status       Pending offline changes

AVAILABLE RESOURCES:

  fittrack://summary   Streak, latest weight, goal counts
  fittrack://recent    Recent workouts and milestones
  fittrack://goals     Active goals with progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, ledger, goalEngine, streakTracker, logger.Log)
		if err != nil {
			return err
		}

		runner := maintenance.NewRunner(store, goalEngine, logger.Log)
		scheduler := maintenance.NewScheduler(runner, cfg.Maintenance.Schedule, logger.Log)
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// ABOUTME: Root Cobra command for the fittrack CLI.
// ABOUTME: Opens the store and wires the engines in PersistentPreRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/auth"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/config"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/logger"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/tracker"
)

var (
	cfg           *config.Config
	store         *storage.Store
	goalEngine    *tracker.GoalEngine
	streakTracker *tracker.StreakTracker
	ledger        *tracker.WorkoutLedger

	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Offline-first personal fitness tracker",
	Long: `Fittrack logs workouts, body weight, goals, and streaks in a local
SQLite database. Everything works offline; every change is queued for a
future sync.

QUICK START:

  $ fittrack user register Jane Doe        # Create a profile
  $ fittrack login "Jane Doe"              # Log in on this device
  $ fittrack workout add -e "bench press:8@60,8@60,6@65"
  $ fittrack weight add 81.5               # Record body weight
  $ fittrack rest                          # Log a rest day (keeps the streak)
  $ fittrack streak                        # Show current/longest streak

GOALS:

  $ fittrack goal add exercise_target --exercise "bench press" \
      --target 100 --start 2025-01-01 --end 2025-06-30
  $ fittrack goal add workout_frequency --target 12 \
      --start 2025-01-01 --end 2025-01-31
  $ fittrack goal add weight_target --target 78 \
      --start 2025-01-01 --end 2025-06-30
  $ fittrack goal list

  Exercise goals advance when you set a new personal best. Frequency
  goals count workouts in their date range. Weight goals follow your
  latest body-weight entry toward the target from where you started.

SYNC (OFFLINE QUEUE):

  Changes queue locally; a sync transport drains them later.

  $ fittrack sync status     # Pending / transmitted counts
  $ fittrack sync pending    # Inspect queued changes

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The database lives at ~/.local/share/fittrack/fittrack.db (XDG paths
  respected). Config is read from ~/.config/fittrack/config.yaml and
  FITTRACK_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch the database skip the store.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = config.ExpandPath(flagDataDir)
		}
		if err := logger.InitLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		store, err = cfg.OpenStore(logger.Log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		goalEngine = tracker.NewGoalEngine(store, logger.Log)
		streakTracker = tracker.NewStreakTracker(store, logger.Log)
		ledger = tracker.NewWorkoutLedger(store, goalEngine, streakTracker, logger.Log)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logger.Sync()
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "override the data directory")
}

// requireUser returns the logged-in user id with a friendly hint when
// there is no session.
func requireUser() (string, error) {
	userID, err := auth.CurrentUserID()
	if err != nil {
		if errors.Is(err, models.ErrNotLoggedIn) {
			return "", fmt.Errorf("not logged in: run 'fittrack login <user>' first")
		}
		return "", err
	}
	return userID, nil
}

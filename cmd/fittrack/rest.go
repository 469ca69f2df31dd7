// ABOUTME: CLI commands for rest days and the streak display.
// ABOUTME: Rest counts as activity, so logging it protects the streak.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var (
	restDate  string
	restNotes string
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Log a rest day",
	Long: `Log a rest day.

Rest days count as activity: logging one keeps your streak alive
without a workout. A day already logged as a workout stays a workout.

Examples:
  fittrack rest
  fittrack rest --date 2025-03-02 --notes "deload"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		date := restDate
		if date == "" {
			date = models.Today()
		}
		var notes *string
		if restNotes != "" {
			notes = &restNotes
		}

		streak, err := streakTracker.LogRest(cmd.Context(), userID, date, notes)
		if err != nil {
			return fmt.Errorf("log rest day: %w", err)
		}

		color.Green("✓ Rest day logged for %s", date)
		fmt.Printf("  Streak: %d (longest %d)\n", streak.CurrentStreak, streak.LongestStreak)
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the activity streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		streak, err := store.GetStreak(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("get streak: %w", err)
		}

		fmt.Printf("Current streak: %d\n", streak.CurrentStreak)
		fmt.Printf("Longest streak: %d\n", streak.LongestStreak)
		if streak.LastActivityDate != nil {
			fmt.Printf("Last activity:  %s\n", *streak.LastActivityDate)
		}
		if streak.LastWorkoutDate != nil {
			fmt.Printf("Last workout:   %s\n", *streak.LastWorkoutDate)
		}
		return nil
	},
}

func init() {
	restCmd.Flags().StringVar(&restDate, "date", "", "rest day (YYYY-MM-DD, default today)")
	restCmd.Flags().StringVarP(&restNotes, "notes", "n", "", "notes")

	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(streakCmd)
}

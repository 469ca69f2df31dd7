// ABOUTME: CLI commands for goals: create and list with progress.
// ABOUTME: Goal kinds: exercise_target, workout_frequency, weight_target.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var (
	goalExercise string
	goalTarget   float64
	goalStart    string
	goalEnd      string
	goalStatus   string
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Manage fitness goals",
	Long: `Create and review fitness goals.

GOAL KINDS:

  exercise_target     Hit a target weight on one exercise. Progress is
                      your best single-set weight; it advances when you
                      set a new personal best.
  workout_frequency   Log N workouts inside the date range. Progress is
                      the count of workouts, re-counted after every
                      save and delete.
  weight_target       Reach a body weight. Progress follows your latest
                      weigh-in toward the target from where you started,
                      cutting or bulking.

Goals move from active to achieved or expired exactly once. Achieving
one records a milestone and a notification atomically.`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <kind>",
	Short: "Create a goal",
	Long: `Create a goal.

Examples:
  fittrack goal add exercise_target --exercise "bench press" \
      --target 100 --start 2025-01-01 --end 2025-06-30
  fittrack goal add workout_frequency --target 12 \
      --start 2025-01-01 --end 2025-01-31
  fittrack goal add weight_target --target 78 \
      --start 2025-01-01 --end 2025-06-30`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"exercise_target", "workout_frequency", "weight_target"},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}
		if !models.IsValidGoalKind(args[0]) {
			return fmt.Errorf("unknown goal kind: %s", args[0])
		}

		g := models.NewGoal(userID, models.GoalKind(args[0]), goalStart, goalEnd)
		if goalTarget > 0 {
			g.WithTarget(goalTarget)
		}
		if goalExercise != "" {
			ex, err := resolveExercise(cmd, goalExercise)
			if err != nil {
				return err
			}
			g.WithExercise(ex.ID)
		}

		if err := goalEngine.CreateGoal(cmd.Context(), g); err != nil {
			return fmt.Errorf("create goal: %w", err)
		}

		color.Green("✓ Created %s goal", g.Kind)
		fmt.Printf("  ID: %d\n", g.ID)
		fmt.Printf("  Window: %s to %s\n", g.StartDate, g.EndDate)
		if g.StartingValue != nil {
			fmt.Printf("  Starting from: %.1f kg\n", *g.StartingValue)
		}
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		var status *models.GoalStatus
		if goalStatus != "" {
			st := models.GoalStatus(goalStatus)
			status = &st
		}

		goals, err := store.ListGoals(cmd.Context(), userID, status)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		if len(goals) == 0 {
			fmt.Println("No goals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range goals {
			target := "-"
			if g.TargetValue != nil {
				target = fmt.Sprintf("%.1f", *g.TargetValue)
			}
			fmt.Printf("%s %s %s %s/%s %s\n",
				faint.Sprintf("%-4d", g.ID),
				padRight(string(g.Kind), 18),
				statusGlyph(g.Status),
				fmt.Sprintf("%.1f", g.CurrentProgress),
				target,
				faint.Sprintf("%s..%s", g.StartDate, g.EndDate))
		}
		return nil
	},
}

// statusGlyph renders a goal status with the usual palette.
func statusGlyph(s models.GoalStatus) string {
	switch s {
	case models.GoalAchieved:
		return color.GreenString("achieved")
	case models.GoalExpired:
		return color.YellowString("expired ")
	default:
		return "active  "
	}
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalExercise, "exercise", "e", "", "exercise name or id (exercise_target only)")
	goalAddCmd.Flags().Float64VarP(&goalTarget, "target", "t", 0, "target value: weight in kg or workout count")
	goalAddCmd.Flags().StringVar(&goalStart, "start", "", "start day (YYYY-MM-DD)")
	goalAddCmd.Flags().StringVar(&goalEnd, "end", "", "end day (YYYY-MM-DD)")
	_ = goalAddCmd.MarkFlagRequired("start")
	_ = goalAddCmd.MarkFlagRequired("end")

	goalListCmd.Flags().StringVarP(&goalStatus, "status", "s", "", "filter by status (active, achieved, expired)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

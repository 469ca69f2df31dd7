// ABOUTME: CLI commands for the exercise catalog, plus shared helpers
// ABOUTME: for resolving exercise references and formatting output.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var exerciseGroup string

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse and extend the exercise catalog",
	Long: `Browse the exercise catalog.

The catalog ships with common lifts and is shared by all users. Muscle
groups: chest, back, legs, shoulders, arms, core, full_body, cardio.`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		var group *models.MuscleGroup
		if exerciseGroup != "" {
			if !models.IsValidMuscleGroup(exerciseGroup) {
				return fmt.Errorf("unknown muscle group: %s", exerciseGroup)
			}
			g := models.MuscleGroup(exerciseGroup)
			group = &g
		}

		exercises, err := store.ListExercises(cmd.Context(), group)
		if err != nil {
			return fmt.Errorf("list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, ex := range exercises {
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%-4d", ex.ID),
				padRight(ex.Name, 24),
				faint.Sprint(ex.MuscleGroup))
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise to the catalog",
	Long: `Add an exercise to the catalog.

Examples:
  fittrack exercise add "incline bench press" --group chest
  fittrack exercise add "farmer carry" --group full_body`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMuscleGroup(exerciseGroup) {
			return fmt.Errorf("unknown muscle group: %s", exerciseGroup)
		}

		ex := &models.Exercise{
			Name:        args[0],
			MuscleGroup: models.MuscleGroup(exerciseGroup),
		}
		if err := store.CreateExercise(cmd.Context(), ex); err != nil {
			return fmt.Errorf("add exercise: %w", err)
		}

		color.Green("✓ Added %s", ex.Name)
		fmt.Printf("  ID: %d\n", ex.ID)
		return nil
	},
}

// resolveExercise accepts a numeric id or a name fragment.
func resolveExercise(cmd *cobra.Command, ref string) (*models.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return store.GetExercise(cmd.Context(), id)
	}
	return store.FindExerciseByName(cmd.Context(), ref)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "filter by muscle group")
	exerciseAddCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "muscle group (required)")
	_ = exerciseAddCmd.MarkFlagRequired("group")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	rootCmd.AddCommand(exerciseCmd)
}

// ABOUTME: CLI commands for logging, listing, and deleting workouts.
// ABOUTME: Exercises are passed as "name:reps@weight,..." specs.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var (
	workoutDate      string
	workoutDuration  int
	workoutNotes     string
	workoutExercises []string
	workoutLimit     int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Log and review workout sessions.

A workout is saved atomically with its exercises and sets. Saving also
detects personal bests, advances goals, queues the change for sync, and
logs the day into your streak.

EXERCISE SPECS:

  Each --exercise flag is "<exercise>:<set>,<set>,..." where a set is
  "reps@weight" (kilograms) or just "reps" for bodyweight work:

    -e "bench press:8@60,8@60,6@65"
    -e "pull up:10,8,6"
    -e "3:8@100"              # numeric exercise id works too

COMMANDS:

  add      Log a workout
  list     List recent workouts
  show     View one workout with all sets
  delete   Delete a workout`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout",
	Long: `Log a complete workout.

Examples:
  fittrack workout add -e "bench press:8@60,8@60,6@65" --duration 45
  fittrack workout add --date 2025-03-01 -e "squat:5@120" -e "deadlift:5@140"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}
		if len(workoutExercises) == 0 {
			return fmt.Errorf("nothing to log: pass at least one --exercise spec")
		}

		date := workoutDate
		if date == "" {
			date = models.Today()
		}

		w := models.NewWorkout(userID, date)
		if workoutDuration > 0 {
			w.WithDuration(workoutDuration)
		}
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}

		for _, spec := range workoutExercises {
			ref, sets, err := parseExerciseSpec(spec)
			if err != nil {
				return err
			}
			ex, err := resolveExercise(cmd, ref)
			if err != nil {
				return err
			}
			we := w.AddExercise(ex.ID)
			for _, s := range sets {
				we.AddSet(s.reps, s.weight)
			}
		}

		outcome, err := ledger.SaveCompleteWorkout(cmd.Context(), w)
		if err != nil {
			return fmt.Errorf("save workout: %w", err)
		}

		color.Green("✓ Logged workout on %s", date)
		fmt.Printf("  ID: %d\n", outcome.WorkoutID)
		for _, pb := range outcome.PersonalBests {
			if pb.PriorBest > 0 {
				color.Green("★ New personal best: %s %.1f kg (was %.1f)", pb.ExerciseName, pb.Weight, pb.PriorBest)
			} else {
				color.Green("★ First recorded lift: %s %.1f kg", pb.ExerciseName, pb.Weight)
			}
		}
		for _, warn := range outcome.Warnings {
			color.Yellow("⚠ %s: %v", warn.Effect, warn.Err)
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		workouts, err := store.ListWorkouts(cmd.Context(), userID, workoutLimit)
		if err != nil {
			return fmt.Errorf("list workouts: %w", err)
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			duration := ""
			if w.DurationMinutes != nil {
				duration = fmt.Sprintf("%d min", *w.DurationMinutes)
			}
			notes := ""
			if w.Notes != nil && *w.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*w.Notes, 30))
			}
			fmt.Printf("%s %s %s%s\n",
				faint.Sprintf("%-6d", w.ID),
				w.Date,
				padRight(duration, 8),
				notes)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		w, err := store.GetWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("workout %d: %w", id, err)
		}

		fmt.Printf("Workout: %d\n", w.ID)
		fmt.Printf("Date: %s\n", w.Date)
		if w.DurationMinutes != nil {
			fmt.Printf("Duration: %d min\n", *w.DurationMinutes)
		}
		if w.Notes != nil {
			fmt.Printf("Notes: %s\n", *w.Notes)
		}

		for i := range w.Exercises {
			we := &w.Exercises[i]
			fmt.Printf("\n%s\n", we.ExerciseName)
			for _, set := range we.Sets {
				if set.Weight > 0 {
					fmt.Printf("  set %d: %d reps @ %.1f kg\n", set.SetNumber, set.Reps, set.Weight)
				} else {
					fmt.Printf("  set %d: %d reps\n", set.SetNumber, set.Reps)
				}
			}
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout and everything recorded in it.

This permanently deletes the workout, its exercises, and its sets.
There is no undo. Frequency goals are re-counted afterward.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		outcome, err := ledger.DeleteWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}

		color.Yellow("✗ Deleted workout %d", id)
		for _, warn := range outcome.Warnings {
			color.Yellow("⚠ %s: %v", warn.Effect, warn.Err)
		}
		return nil
	},
}

// setSpec is one parsed set from an exercise spec.
type setSpec struct {
	reps   int
	weight float64
}

// parseExerciseSpec parses "<exercise>:<reps>[@<weight>],...".
func parseExerciseSpec(spec string) (string, []setSpec, error) {
	ref, setsPart, ok := strings.Cut(spec, ":")
	ref = strings.TrimSpace(ref)
	if !ok || ref == "" || strings.TrimSpace(setsPart) == "" {
		return "", nil, fmt.Errorf("invalid exercise spec %q (want \"exercise:reps@weight,...\")", spec)
	}

	var sets []setSpec
	for _, tok := range strings.Split(setsPart, ",") {
		tok = strings.TrimSpace(tok)
		repsPart, weightPart, hasWeight := strings.Cut(tok, "@")

		reps, err := strconv.Atoi(strings.TrimSpace(repsPart))
		if err != nil {
			return "", nil, fmt.Errorf("invalid reps %q in spec %q", repsPart, spec)
		}
		var weight float64
		if hasWeight {
			weight, err = strconv.ParseFloat(strings.TrimSpace(weightPart), 64)
			if err != nil {
				return "", nil, fmt.Errorf("invalid weight %q in spec %q", weightPart, spec)
			}
		}
		sets = append(sets, setSpec{reps: reps, weight: weight})
	}
	return ref, sets, nil
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "workout day (YYYY-MM-DD, default today)")
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")
	workoutAddCmd.Flags().StringVarP(&workoutNotes, "notes", "n", "", "workout notes")
	workoutAddCmd.Flags().StringArrayVarP(&workoutExercises, "exercise", "e", nil, "exercise spec (repeatable)")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}

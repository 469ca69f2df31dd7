// ABOUTME: Workout aggregate: session, exercises performed, and their sets.
// ABOUTME: Saved atomically; set numbers are unique within an exercise entry.
package models

import "strings"

// Workout is one training session on a calendar day.
type Workout struct {
	ID              int64
	UserID          string
	Date            string // ISO-8601 day
	DurationMinutes *int
	Notes           *string
	Exercises       []WorkoutExercise // populated when fetching the full workout
}

// NewWorkout creates a Workout for a user on a day.
func NewWorkout(userID, date string) *Workout {
	return &Workout{UserID: userID, Date: date}
}

// WithDuration sets the duration in minutes. Zero means "not recorded"
// and is normalized to nil when the workout is saved.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.DurationMinutes = &minutes
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// AddExercise appends an exercise entry and returns it for set building.
func (w *Workout) AddExercise(exerciseID int64) *WorkoutExercise {
	w.Exercises = append(w.Exercises, WorkoutExercise{ExerciseID: exerciseID})
	return &w.Exercises[len(w.Exercises)-1]
}

// Validate checks the aggregate before a write.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.UserID) == "" {
		return Validationf("workout user", "must not be empty")
	}
	if _, err := ParseDay(w.Date); err != nil {
		return Validationf("workout date", "want YYYY-MM-DD, got %q", w.Date)
	}
	if w.DurationMinutes != nil && *w.DurationMinutes < 0 {
		return Validationf("workout duration", "must not be negative")
	}
	for i := range w.Exercises {
		we := &w.Exercises[i]
		if we.ExerciseID <= 0 {
			return Validationf("workout exercise", "exercise id must be set")
		}
		seen := make(map[int]bool, len(we.Sets))
		for _, set := range we.Sets {
			if set.SetNumber <= 0 {
				return Validationf("set number", "must be positive, got %d", set.SetNumber)
			}
			if seen[set.SetNumber] {
				return Validationf("set number", "%d repeats within one exercise", set.SetNumber)
			}
			seen[set.SetNumber] = true
			if set.Reps < 0 {
				return Validationf("set reps", "must not be negative")
			}
		}
	}
	return nil
}

// WorkoutExercise links one exercise into a workout.
type WorkoutExercise struct {
	ID           int64
	WorkoutID    int64
	ExerciseID   int64
	ExerciseName string // joined for display, not stored on this row
	Sets         []WorkoutSet
}

// AddSet appends a set with the next set number.
func (we *WorkoutExercise) AddSet(reps int, weight float64) *WorkoutExercise {
	we.Sets = append(we.Sets, WorkoutSet{
		SetNumber: len(we.Sets) + 1,
		Reps:      reps,
		Weight:    weight,
	})
	return we
}

// WorkoutSet is one set of an exercise. Weight is in kilograms; zero or
// negative weight is stored but ignored for personal-best tracking.
type WorkoutSet struct {
	ID                int64
	WorkoutExerciseID int64
	SetNumber         int
	Reps              int
	Weight            float64
}

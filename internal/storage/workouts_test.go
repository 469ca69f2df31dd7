// ABOUTME: Tests for workout graph persistence.
// ABOUTME: Validates graph round trips, cascade deletes, and best weights.
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func TestInsertAndGetWorkoutGraph(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	bench := findExercise(t, s, "Bench Press")
	squat := findExercise(t, s, "Squat")

	w := models.NewWorkout(u.ID, "2026-03-01").WithDuration(55).WithNotes("push day")
	w.AddExercise(bench.ID).AddSet(10, 60).AddSet(8, 65)
	w.AddExercise(squat.ID).AddSet(5, 100)

	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertWorkoutGraph(w)
	})
	if err != nil {
		t.Fatalf("InsertWorkoutGraph failed: %v", err)
	}
	if w.ID == 0 {
		t.Fatal("expected workout id to be filled in")
	}

	got, err := s.GetWorkout(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Date != "2026-03-01" {
		t.Errorf("Date = %s, want 2026-03-01", got.Date)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 55 {
		t.Error("DurationMinutes mismatch")
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(got.Exercises))
	}
	if got.Exercises[0].ExerciseName != "Bench Press" {
		t.Errorf("ExerciseName = %s, want Bench Press", got.Exercises[0].ExerciseName)
	}
	if len(got.Exercises[0].Sets) != 2 {
		t.Errorf("expected 2 sets, got %d", len(got.Exercises[0].Sets))
	}
	if got.Exercises[0].Sets[1].Weight != 65 {
		t.Errorf("set 2 weight = %g, want 65", got.Exercises[0].Sets[1].Weight)
	}
}

func TestInsertWorkoutGraphWithIDReplacesChildren(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	bench := findExercise(t, s, "Bench Press")

	w := saveWorkout(t, s, u.ID, "2026-03-01", bench.ID, 60, 65)

	// Replaying the same id with different children must not duplicate.
	replay := models.NewWorkout(u.ID, "2026-03-01")
	replay.ID = w.ID
	replay.AddExercise(bench.ID).AddSet(10, 70)
	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertWorkoutGraph(replay)
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	got, err := s.GetWorkout(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if len(got.Exercises) != 1 || len(got.Exercises[0].Sets) != 1 {
		t.Fatalf("expected replaced children, got %d exercises", len(got.Exercises))
	}
	if got.Exercises[0].Sets[0].Weight != 70 {
		t.Errorf("set weight = %g, want 70", got.Exercises[0].Sets[0].Weight)
	}
}

func TestDeleteWorkoutLeavesNoOrphans(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	bench := findExercise(t, s, "Bench Press")

	w := saveWorkout(t, s, u.ID, "2026-03-01", bench.ID, 60, 65, 70)

	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.DeleteWorkout(w.ID)
	})
	if err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	var exercises, sets int
	s.db.QueryRow("SELECT COUNT(*) FROM workout_exercises WHERE workout_id = ?", w.ID).Scan(&exercises)
	s.db.QueryRow(`
		SELECT COUNT(*) FROM workout_sets
		WHERE workout_exercise_id IN (SELECT id FROM workout_exercises WHERE workout_id = ?)`,
		w.ID).Scan(&sets)
	if exercises != 0 || sets != 0 {
		t.Errorf("expected no orphans, got %d exercises and %d sets", exercises, sets)
	}

	if _, err := s.GetWorkout(context.Background(), w.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingWorkout(t *testing.T) {
	s := setupTestStore(t)

	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.DeleteWorkout(9999)
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountWorkoutsInRange(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	bench := findExercise(t, s, "Bench Press")

	saveWorkout(t, s, u.ID, "2026-03-01", bench.ID, 60)
	saveWorkout(t, s, u.ID, "2026-03-05", bench.ID, 60)
	saveWorkout(t, s, u.ID, "2026-03-31", bench.ID, 60)
	saveWorkout(t, s, u.ID, "2026-04-01", bench.ID, 60)

	n, err := s.CountWorkoutsInRange(context.Background(), u.ID, "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("CountWorkoutsInRange failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3 (bounds inclusive)", n)
	}
}

func TestBestSetWeightExcludesWorkout(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	bench := findExercise(t, s, "Bench Press")

	w1 := saveWorkout(t, s, u.ID, "2026-03-01", bench.ID, 80)
	w2 := saveWorkout(t, s, u.ID, "2026-03-02", bench.ID, 85)

	// From w2's point of view the prior best is w1's 80.
	best, ok, err := s.BestSetWeight(context.Background(), u.ID, bench.ID, w2.ID)
	if err != nil {
		t.Fatalf("BestSetWeight failed: %v", err)
	}
	if !ok || best != 80 {
		t.Errorf("best = %g (ok=%v), want 80", best, ok)
	}

	// From w1's point of view the best elsewhere is w2's 85.
	best, ok, err = s.BestSetWeight(context.Background(), u.ID, bench.ID, w1.ID)
	if err != nil {
		t.Fatalf("BestSetWeight failed: %v", err)
	}
	if !ok || best != 85 {
		t.Errorf("best = %g (ok=%v), want 85", best, ok)
	}
}

func TestBestSetWeightIgnoresBodyweightSets(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	pullup := findExercise(t, s, "Pull-Up")

	saveWorkout(t, s, u.ID, "2026-03-01", pullup.ID, 0, 0)

	_, ok, err := s.BestSetWeight(context.Background(), u.ID, pullup.ID, 0)
	if err != nil {
		t.Fatalf("BestSetWeight failed: %v", err)
	}
	if ok {
		t.Error("expected no qualifying set for bodyweight-only history")
	}
}

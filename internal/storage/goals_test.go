// ABOUTME: Tests for goal persistence and state transitions.
// ABOUTME: Terminal states must stay terminal at the SQL level.
package storage

import (
	"context"
	"testing"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func TestCreateAndGetGoal(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)

	g := models.NewGoal(u.ID, models.GoalWorkoutFrequency, "2026-03-01", "2026-03-31").WithTarget(12)
	if err := s.CreateGoal(context.Background(), g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if g.ID == 0 {
		t.Fatal("expected goal id to be filled in")
	}

	got, err := s.GetGoal(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if got.Status != models.GoalActive {
		t.Errorf("Status = %s, want active", got.Status)
	}
	if got.TargetValue == nil || *got.TargetValue != 12 {
		t.Error("TargetValue mismatch")
	}
}

func TestCreateGoalRejectsKindFieldMismatch(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)

	g := models.NewGoal(u.ID, models.GoalExerciseTarget, "2026-03-01", "2026-03-31").WithTarget(100)
	err := s.CreateGoal(context.Background(), g)
	if !models.IsValidation(err) {
		t.Errorf("expected validation error for exercise_target without exercise, got %v", err)
	}
}

func TestMarkGoalAchievedOnlyOnce(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)

	g := models.NewGoal(u.ID, models.GoalWorkoutFrequency, "2026-03-01", "2026-03-31").WithTarget(3)
	if err := s.CreateGoal(context.Background(), g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	var firstFlip, secondFlip bool
	err := s.WithTx(context.Background(), func(tx *Tx) error {
		var err error
		firstFlip, err = tx.MarkGoalAchieved(g.ID, 3, "2026-03-10")
		if err != nil {
			return err
		}
		secondFlip, err = tx.MarkGoalAchieved(g.ID, 5, "2026-03-12")
		return err
	})
	if err != nil {
		t.Fatalf("MarkGoalAchieved failed: %v", err)
	}
	if !firstFlip {
		t.Error("expected first flip to succeed")
	}
	if secondFlip {
		t.Error("expected second flip to match zero rows")
	}

	got, _ := s.GetGoal(context.Background(), g.ID)
	if got.CurrentProgress != 3 {
		t.Errorf("progress = %g, want 3 from the first flip", got.CurrentProgress)
	}
	if got.AchievedOn == nil || *got.AchievedOn != "2026-03-10" {
		t.Error("AchievedOn should keep the first flip's day")
	}
}

func TestTerminalGoalStaysTerminal(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)

	g := models.NewGoal(u.ID, models.GoalWorkoutFrequency, "2026-03-01", "2026-03-31").WithTarget(3)
	if err := s.CreateGoal(context.Background(), g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	err := s.WithTx(context.Background(), func(tx *Tx) error {
		if _, err := tx.MarkGoalAchieved(g.ID, 3, "2026-03-10"); err != nil {
			return err
		}
		// Neither expiry nor progress writes may touch an achieved goal.
		if _, err := tx.MarkGoalExpired(g.ID); err != nil {
			return err
		}
		return tx.SetGoalProgress(g.ID, 99)
	})
	if err != nil {
		t.Fatalf("transition attempts failed: %v", err)
	}

	got, _ := s.GetGoal(context.Background(), g.ID)
	if got.Status != models.GoalAchieved {
		t.Errorf("Status = %s, want achieved", got.Status)
	}
	if got.CurrentProgress != 3 {
		t.Errorf("progress = %g, want 3", got.CurrentProgress)
	}
}

func TestListGoalsFiltersByStatus(t *testing.T) {
	s := setupTestStore(t)
	u := seedTestUser(t, s)
	ctx := context.Background()

	active := models.NewGoal(u.ID, models.GoalWorkoutFrequency, "2026-03-01", "2026-03-31").WithTarget(3)
	done := models.NewGoal(u.ID, models.GoalWeightTarget, "2026-03-01", "2026-03-31").WithTarget(80)
	s.CreateGoal(ctx, active)
	s.CreateGoal(ctx, done)
	s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.MarkGoalAchieved(done.ID, 80, "2026-03-05")
		return err
	})

	status := models.GoalActive
	goals, err := s.ListGoals(ctx, u.ID, &status)
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != active.ID {
		t.Errorf("expected only the active goal, got %d goals", len(goals))
	}

	all, err := s.ListGoals(ctx, u.ID, nil)
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 goals unfiltered, got %d", len(all))
	}
}

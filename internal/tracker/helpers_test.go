// ABOUTME: Shared test helpers for tracker engine tests.
// ABOUTME: Wires a real store with the engines and seeds an athlete.
package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

// testEngines bundles the engines a tracker test drives against one store.
type testEngines struct {
	store   *storage.Store
	ledger  *WorkoutLedger
	goals   *GoalEngine
	streaks *StreakTracker
	user    *models.User
}

func setupEngines(t *testing.T) *testEngines {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	goals := NewGoalEngine(store, nil)
	streaks := NewStreakTracker(store, nil)
	ledger := NewWorkoutLedger(store, goals, streaks, nil)

	user := models.NewUser("Test", "Athlete")
	require.NoError(t, store.UpsertUser(context.Background(), user))

	return &testEngines{store: store, ledger: ledger, goals: goals, streaks: streaks, user: user}
}

func (e *testEngines) exercise(t *testing.T, name string) *models.Exercise {
	t.Helper()
	ex, err := e.store.FindExerciseByName(context.Background(), name)
	require.NoError(t, err)
	return ex
}

// workout builds a one-exercise payload with one set per weight.
func (e *testEngines) workout(date string, exerciseID int64, weights ...float64) *models.Workout {
	w := models.NewWorkout(e.user.ID, date)
	we := w.AddExercise(exerciseID)
	for _, kg := range weights {
		we.AddSet(10, kg)
	}
	return w
}

func (e *testEngines) save(t *testing.T, w *models.Workout) *SaveOutcome {
	t.Helper()
	outcome, err := e.ledger.SaveCompleteWorkout(context.Background(), w)
	require.NoError(t, err)
	require.False(t, outcome.Degraded(), "save degraded: %+v", outcome.Warnings)
	return outcome
}

func (e *testEngines) milestones(t *testing.T, kind models.MilestoneKind) []*models.Milestone {
	t.Helper()
	ms, err := e.store.ListMilestones(context.Background(), e.user.ID, &kind, 0)
	require.NoError(t, err)
	return ms
}

func (e *testEngines) goal(t *testing.T, id int64) *models.Goal {
	t.Helper()
	g, err := e.store.GetGoal(context.Background(), id)
	require.NoError(t, err)
	return g
}

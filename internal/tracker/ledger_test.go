// ABOUTME: Tests for the workout ledger's composite write path.
// ABOUTME: Personal bests track strict running-maximum increases only.
package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

func TestSaveCompleteWorkoutPersistsGraph(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	w := e.workout("2026-03-01", bench.ID, 60, 65)
	w.WithNotes("push day")
	outcome := e.save(t, w)

	require.NotZero(t, outcome.WorkoutID)

	got, err := e.store.GetWorkout(context.Background(), outcome.WorkoutID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	assert.Len(t, got.Exercises[0].Sets, 2)
	assert.Equal(t, "push day", *got.Notes)
}

func TestSaveCompleteWorkoutNormalizesZeroDuration(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	w := e.workout("2026-03-01", bench.ID, 60).WithDuration(0)
	outcome := e.save(t, w)

	got, err := e.store.GetWorkout(context.Background(), outcome.WorkoutID)
	require.NoError(t, err)
	assert.Nil(t, got.DurationMinutes, "zero duration should be stored as unknown")
}

func TestSaveCompleteWorkoutRejectsUnknownUser(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	w := models.NewWorkout("ghost", "2026-03-01")
	w.AddExercise(bench.ID).AddSet(10, 60)

	_, err := e.ledger.SaveCompleteWorkout(context.Background(), w)
	assert.True(t, models.IsValidation(err), "got %v", err)
}

func TestSaveCompleteWorkoutRejectsUnknownExercise(t *testing.T) {
	e := setupEngines(t)

	w := e.workout("2026-03-01", 99999, 60)
	_, err := e.ledger.SaveCompleteWorkout(context.Background(), w)
	assert.True(t, models.IsValidation(err), "got %v", err)
}

func TestFirstLiftIsPersonalBest(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	outcome := e.save(t, e.workout("2026-03-01", bench.ID, 80))

	require.Len(t, outcome.PersonalBests, 1)
	pb := outcome.PersonalBests[0]
	assert.Equal(t, bench.ID, pb.ExerciseID)
	assert.Equal(t, "Bench Press", pb.ExerciseName)
	assert.Equal(t, 80.0, pb.Weight)
	assert.Zero(t, pb.PriorBest)

	ms := e.milestones(t, models.MilestonePersonalBest)
	require.Len(t, ms, 1)
	assert.Equal(t, 80.0, ms[0].Value)
}

func TestEqualWeightIsNotPersonalBest(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	e.save(t, e.workout("2026-03-01", bench.ID, 80))
	outcome := e.save(t, e.workout("2026-03-02", bench.ID, 80))

	assert.Empty(t, outcome.PersonalBests, "matching a record is not beating it")
	assert.Len(t, e.milestones(t, models.MilestonePersonalBest), 1)
}

func TestHeavierLiftBeatsPrior(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	e.save(t, e.workout("2026-03-01", bench.ID, 80))
	outcome := e.save(t, e.workout("2026-03-02", bench.ID, 82.5, 77.5))

	require.Len(t, outcome.PersonalBests, 1)
	pb := outcome.PersonalBests[0]
	assert.Equal(t, 82.5, pb.Weight, "the heaviest set in the payload wins")
	assert.Equal(t, 80.0, pb.PriorBest)
}

func TestPersonalBestCountsMatchRunningMaximum(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")

	// Running max 80, 80, 85, 85, 90: three strict increases
	// counting the first observation.
	weights := []float64{80, 75, 85, 85, 90}
	day := "2026-03-01"
	for _, kg := range weights {
		e.save(t, e.workout(day, bench.ID, kg))
		var err error
		day, err = models.AddDays(day, 1)
		require.NoError(t, err)
	}

	assert.Len(t, e.milestones(t, models.MilestonePersonalBest), 3)
}

func TestBodyweightSetsNeverSetRecords(t *testing.T) {
	e := setupEngines(t)
	pullup := e.exercise(t, "Pull-Up")

	outcome := e.save(t, e.workout("2026-03-01", pullup.ID, 0))

	assert.Empty(t, outcome.PersonalBests)
	assert.Empty(t, e.milestones(t, models.MilestonePersonalBest))
}

func TestPersonalBestsPerExerciseInPayloadOrder(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	squat := e.exercise(t, "Squat")

	w := models.NewWorkout(e.user.ID, "2026-03-01")
	w.AddExercise(bench.ID).AddSet(10, 60)
	w.AddExercise(squat.ID).AddSet(5, 100)
	outcome := e.save(t, w)

	require.Len(t, outcome.PersonalBests, 2)
	assert.Equal(t, "Bench Press", outcome.PersonalBests[0].ExerciseName)
	assert.Equal(t, "Squat", outcome.PersonalBests[1].ExerciseName)
}

func TestSaveCompleteWorkoutQueuesInsert(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()

	outcome := e.save(t, e.workout("2026-03-01", bench.ID, 80))

	pending, err := e.store.PendingChanges(ctx, 0)
	require.NoError(t, err)

	var found bool
	for _, entry := range pending {
		if entry.TableName == storage.TableWorkouts &&
			entry.RecordID == formatRecordID(outcome.WorkoutID) &&
			entry.Operation == models.OpInsert {
			found = true
		}
	}
	assert.True(t, found, "expected a workouts INSERT entry in the queue")
}

func TestSaveCompleteWorkoutAdvancesStreak(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()

	e.save(t, e.workout("2026-03-01", bench.ID, 80))
	e.save(t, e.workout("2026-03-02", bench.ID, 80))

	st, err := e.store.GetStreak(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
	assert.Equal(t, "2026-03-02", *st.LastWorkoutDate)
}

func TestDeleteWorkoutRemovesGraphAndQueuesDelete(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()

	outcome := e.save(t, e.workout("2026-03-01", bench.ID, 80))

	delOutcome, err := e.ledger.DeleteWorkout(ctx, outcome.WorkoutID)
	require.NoError(t, err)
	assert.False(t, delOutcome.Degraded())

	_, err = e.store.GetWorkout(ctx, outcome.WorkoutID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	pending, err := e.store.PendingChanges(ctx, 0)
	require.NoError(t, err)
	var foundDelete bool
	for _, entry := range pending {
		if entry.TableName == storage.TableWorkouts &&
			entry.RecordID == formatRecordID(outcome.WorkoutID) &&
			entry.Operation == models.OpDelete {
			foundDelete = true
		}
	}
	assert.True(t, foundDelete, "expected a workouts DELETE entry in the queue")
}

func TestDeleteMissingWorkout(t *testing.T) {
	e := setupEngines(t)

	_, err := e.ledger.DeleteWorkout(context.Background(), 12345)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

// The acceptance path: two saves on consecutive days where the second
// beats the first must yield the 85 kg record and a two-day streak.
func TestTwoDayProgressionEndToEnd(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()

	w1 := models.NewWorkout(e.user.ID, "2026-03-01")
	w1.AddExercise(bench.ID).AddSet(10, 80)
	e.save(t, w1)

	w2 := models.NewWorkout(e.user.ID, "2026-03-02")
	w2.AddExercise(bench.ID).AddSet(8, 85)
	outcome := e.save(t, w2)

	require.Len(t, outcome.PersonalBests, 1)
	assert.Equal(t, 85.0, outcome.PersonalBests[0].Weight)
	assert.Equal(t, 80.0, outcome.PersonalBests[0].PriorBest)

	ms := e.milestones(t, models.MilestonePersonalBest)
	require.NotEmpty(t, ms)
	assert.Equal(t, 85.0, ms[0].Value, "newest milestone carries the new record")

	st, err := e.store.GetStreak(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
}

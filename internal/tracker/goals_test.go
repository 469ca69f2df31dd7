// ABOUTME: Tests for the goal engine lifecycle.
// ABOUTME: Covers progress hooks, achievement atomicity, and maintenance.
package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// window returns a goal window spanning offsets (in days) around today.
func window(t *testing.T, startOffset, endOffset int) (string, string) {
	t.Helper()
	start, err := models.AddDays(models.Today(), startOffset)
	require.NoError(t, err)
	end, err := models.AddDays(models.Today(), endOffset)
	require.NoError(t, err)
	return start, end
}

func TestCreateGoalRejectsUnknownExercise(t *testing.T) {
	e := setupEngines(t)
	start, end := window(t, 0, 30)

	g := models.NewGoal(e.user.ID, models.GoalExerciseTarget, start, end).
		WithExercise(99999).WithTarget(100)
	err := e.goals.CreateGoal(context.Background(), g)
	assert.True(t, models.IsValidation(err), "got %v", err)
}

func TestCreateWeightGoalCapturesBaseline(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()
	start, end := window(t, 0, 90)

	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 90)))

	g := models.NewGoal(e.user.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	stored := e.goal(t, g.ID)
	require.NotNil(t, stored.StartingValue)
	assert.Equal(t, 90.0, *stored.StartingValue)
}

func TestCreateWeightGoalWithoutWeighInsLeavesBaselineEmpty(t *testing.T) {
	e := setupEngines(t)
	start, end := window(t, 0, 90)

	g := models.NewGoal(e.user.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, e.goals.CreateGoal(context.Background(), g))

	assert.Nil(t, e.goal(t, g.ID).StartingValue)
}

func TestFrequencyGoalTracksSavesAndDeletes(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	start, end := window(t, -7, 7)

	g := models.NewGoal(e.user.ID, models.GoalWorkoutFrequency, start, end).WithTarget(5)
	require.NoError(t, e.goals.CreateGoal(context.Background(), g))

	day1, _ := models.AddDays(models.Today(), -2)
	day2, _ := models.AddDays(models.Today(), -1)
	first := e.save(t, e.workout(day1, bench.ID, 60))
	e.save(t, e.workout(day2, bench.ID, 60))

	assert.Equal(t, 2.0, e.goal(t, g.ID).CurrentProgress)

	_, err := e.ledger.DeleteWorkout(context.Background(), first.WorkoutID)
	require.NoError(t, err)

	assert.Equal(t, 1.0, e.goal(t, g.ID).CurrentProgress,
		"progress must shrink when history does")
}

func TestFrequencyGoalIgnoresWorkoutsOutsideWindow(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	start, end := window(t, -3, -1)

	g := models.NewGoal(e.user.ID, models.GoalWorkoutFrequency, start, end).WithTarget(5)
	require.NoError(t, e.goals.CreateGoal(context.Background(), g))

	e.save(t, e.workout(models.Today(), bench.ID, 60))

	assert.Equal(t, 0.0, e.goal(t, g.ID).CurrentProgress)
}

func TestFrequencyGoalAchievementIsAtomic(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()
	start, end := window(t, -7, 7)

	g := models.NewGoal(e.user.ID, models.GoalWorkoutFrequency, start, end).WithTarget(2)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	day1, _ := models.AddDays(models.Today(), -1)
	e.save(t, e.workout(day1, bench.ID, 60))
	e.save(t, e.workout(models.Today(), bench.ID, 60))

	stored := e.goal(t, g.ID)
	assert.Equal(t, models.GoalAchieved, stored.Status)
	assert.Equal(t, 2.0, stored.CurrentProgress)
	require.NotNil(t, stored.AchievedOn)
	assert.Equal(t, models.Today(), *stored.AchievedOn)

	ms := e.milestones(t, models.MilestoneGoalAchieved)
	require.Len(t, ms, 1)
	assert.Equal(t, float64(g.ID), ms[0].Value, "milestone points back at the goal")

	alerts, err := e.store.ListNotifications(ctx, e.user.ID, true, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "2 workouts")
}

func TestExerciseGoalMovesOnlyOnPersonalBests(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	start, end := window(t, -7, 30)

	g := models.NewGoal(e.user.ID, models.GoalExerciseTarget, start, end).
		WithExercise(bench.ID).WithTarget(100)
	require.NoError(t, e.goals.CreateGoal(context.Background(), g))

	day1, _ := models.AddDays(models.Today(), -2)
	day2, _ := models.AddDays(models.Today(), -1)

	e.save(t, e.workout(day1, bench.ID, 95))
	assert.Equal(t, 95.0, e.goal(t, g.ID).CurrentProgress)

	// A lighter session is not a record and must not move the needle.
	e.save(t, e.workout(day2, bench.ID, 90))
	assert.Equal(t, 95.0, e.goal(t, g.ID).CurrentProgress)

	outcome := e.save(t, e.workout(models.Today(), bench.ID, 102.5))
	require.Len(t, outcome.PersonalBests, 1)

	stored := e.goal(t, g.ID)
	assert.Equal(t, models.GoalAchieved, stored.Status)
	assert.Equal(t, 102.5, stored.CurrentProgress)

	ms := e.milestones(t, models.MilestoneGoalAchieved)
	require.Len(t, ms, 1)
	require.NotNil(t, ms[0].ExerciseID)
	assert.Equal(t, bench.ID, *ms[0].ExerciseID)
}

func TestExerciseGoalIgnoresOtherExercises(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	squat := e.exercise(t, "Squat")
	start, end := window(t, -7, 30)

	g := models.NewGoal(e.user.ID, models.GoalExerciseTarget, start, end).
		WithExercise(bench.ID).WithTarget(100)
	require.NoError(t, e.goals.CreateGoal(context.Background(), g))

	e.save(t, e.workout(models.Today(), squat.ID, 140))

	stored := e.goal(t, g.ID)
	assert.Equal(t, models.GoalActive, stored.Status)
	assert.Equal(t, 0.0, stored.CurrentProgress)
}

func TestMaintenanceExpiresOverdueGoals(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()
	start, end := window(t, -30, -1)

	g := models.NewGoal(e.user.ID, models.GoalWorkoutFrequency, start, end).WithTarget(12)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	report, err := e.goals.PerformDailyMaintenance(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiredGoals)

	stored := e.goal(t, g.ID)
	assert.Equal(t, models.GoalExpired, stored.Status)
	assert.Empty(t, e.milestones(t, models.MilestoneGoalAchieved),
		"expiry earns no milestone")
}

func TestMaintenanceExpiryBeatsAchievement(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()
	start, end := window(t, -60, -1)

	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 90)))
	g := models.NewGoal(e.user.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	// The target was reached, but only after the window closed.
	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 79)))

	report, err := e.goals.PerformDailyMaintenance(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiredGoals)
	assert.Zero(t, report.AchievedGoals)
	assert.Equal(t, models.GoalExpired, e.goal(t, g.ID).Status)
}

func TestMaintenanceAchievesWeightGoalFromLatestWeighIn(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()
	start, end := window(t, -30, 30)

	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 90)))
	g := models.NewGoal(e.user.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	// Still cutting: progress updates but no achievement.
	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 85)))
	report, err := e.goals.PerformDailyMaintenance(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.UpdatedGoals)
	assert.Equal(t, 85.0, e.goal(t, g.ID).CurrentProgress)
	assert.Equal(t, models.GoalActive, e.goal(t, g.ID).Status)

	// Under the target from above: achieved.
	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 79.5)))
	report, err = e.goals.PerformDailyMaintenance(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.AchievedGoals)
	assert.Equal(t, models.GoalAchieved, e.goal(t, g.ID).Status)
}

func TestMaintenanceIsIdempotentOnTerminalGoals(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()
	start, end := window(t, -30, 30)

	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 90)))
	g := models.NewGoal(e.user.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, e.goals.CreateGoal(ctx, g))
	require.NoError(t, e.store.CreateWeightEntry(ctx, models.NewWeightEntry(e.user.ID, 78)))

	for i := 0; i < 3; i++ {
		_, err := e.goals.PerformDailyMaintenance(ctx, e.user.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, models.GoalAchieved, e.goal(t, g.ID).Status)
	assert.Len(t, e.milestones(t, models.MilestoneGoalAchieved), 1,
		"repeat passes must not duplicate the record")

	alerts, err := e.store.ListNotifications(ctx, e.user.ID, false, 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestAchievedGoalSurvivesShrinkingHistory(t *testing.T) {
	e := setupEngines(t)
	bench := e.exercise(t, "Bench Press")
	ctx := context.Background()
	start, end := window(t, -7, 7)

	g := models.NewGoal(e.user.ID, models.GoalWorkoutFrequency, start, end).WithTarget(2)
	require.NoError(t, e.goals.CreateGoal(ctx, g))

	day1, _ := models.AddDays(models.Today(), -1)
	first := e.save(t, e.workout(day1, bench.ID, 60))
	e.save(t, e.workout(models.Today(), bench.ID, 60))
	require.Equal(t, models.GoalAchieved, e.goal(t, g.ID).Status)

	_, err := e.ledger.DeleteWorkout(ctx, first.WorkoutID)
	require.NoError(t, err)

	stored := e.goal(t, g.ID)
	assert.Equal(t, models.GoalAchieved, stored.Status, "terminal states never roll back")
	assert.Equal(t, 2.0, stored.CurrentProgress)
}

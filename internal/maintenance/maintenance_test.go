// ABOUTME: Tests for the maintenance runner: multi-user goal sweeps,
// ABOUTME: queue pruning, and cron schedule validation.
package maintenance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/tracker"
)

type fixture struct {
	store  *storage.Store
	goals  *tracker.GoalEngine
	runner *Runner
}

func setupRunner(t *testing.T) *fixture {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	goals := tracker.NewGoalEngine(store, nil)
	return &fixture{store: store, goals: goals, runner: NewRunner(store, goals, nil)}
}

func (f *fixture) seedUser(t *testing.T, first, last string) *models.User {
	t.Helper()
	u := models.NewUser(first, last)
	require.NoError(t, f.store.UpsertUser(context.Background(), u))
	return u
}

func window(t *testing.T, startOffset, endOffset int) (string, string) {
	t.Helper()
	start, err := models.AddDays(models.Today(), startOffset)
	require.NoError(t, err)
	end, err := models.AddDays(models.Today(), endOffset)
	require.NoError(t, err)
	return start, end
}

func TestRunOnceSweepsEveryUser(t *testing.T) {
	f := setupRunner(t)
	ctx := context.Background()

	start, end := window(t, -30, -1)
	alice := f.seedUser(t, "Alice", "Anders")
	bob := f.seedUser(t, "Bob", "Burke")
	for _, u := range []*models.User{alice, bob} {
		g := models.NewGoal(u.ID, models.GoalWorkoutFrequency, start, end).WithTarget(12)
		require.NoError(t, f.goals.CreateGoal(ctx, g))
	}

	report, err := f.runner.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.UsersSwept)
	assert.Equal(t, 2, report.ExpiredGoals)
	assert.Zero(t, report.AchievedGoals)

	expired := models.GoalExpired
	for _, u := range []*models.User{alice, bob} {
		gs, err := f.store.ListGoals(ctx, u.ID, &expired)
		require.NoError(t, err)
		assert.Len(t, gs, 1)
	}
}

func TestRunOnceAchievesWeightGoals(t *testing.T) {
	f := setupRunner(t)
	ctx := context.Background()
	u := f.seedUser(t, "Alice", "Anders")

	require.NoError(t, f.store.CreateWeightEntry(ctx, models.NewWeightEntry(u.ID, 90)))
	start, end := window(t, -30, 30)
	g := models.NewGoal(u.ID, models.GoalWeightTarget, start, end).WithTarget(80)
	require.NoError(t, f.goals.CreateGoal(ctx, g))
	require.NoError(t, f.store.CreateWeightEntry(ctx, models.NewWeightEntry(u.ID, 78)))

	report, err := f.runner.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.UsersSwept)
	assert.Equal(t, 1, report.AchievedGoals)
	got, err := f.store.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalAchieved, got.Status)
}

func TestRunOncePrunesTransmittedChanges(t *testing.T) {
	f := setupRunner(t)
	ctx := context.Background()

	require.NoError(t, f.store.Enqueue(ctx, storage.TableWorkouts, "w-1", models.OpInsert))
	require.NoError(t, f.store.Enqueue(ctx, storage.TableWorkouts, "w-2", models.OpInsert))
	entries, err := f.store.PendingChanges(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.store.MarkChangesSynced(ctx, entries[0].ID))

	report, err := f.runner.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.PrunedChanges)
	pending, synced, err := f.store.CountChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending, "unsynced work survives the prune")
	assert.Zero(t, synced)
}

func TestRunOnceOnEmptyDatabase(t *testing.T) {
	f := setupRunner(t)

	report, err := f.runner.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Report{}, report)
}

func TestSchedulerRejectsMalformedExpression(t *testing.T) {
	f := setupRunner(t)

	s := NewScheduler(f.runner, "whenever I feel like it", nil)
	err := s.Start()
	assert.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	f := setupRunner(t)

	s := NewScheduler(f.runner, "0 3 * * *", nil)
	require.NoError(t, s.Start())
	s.Stop()
}

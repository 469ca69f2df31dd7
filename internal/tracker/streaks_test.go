// ABOUTME: Tests for streak continuity across workout and rest logs.
// ABOUTME: Gaps reset, rest days extend, backdated logs never rewind.
package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func TestFirstLogStartsStreakAtOne(t *testing.T) {
	e := setupEngines(t)

	st, err := e.streaks.LogWorkout(context.Background(), e.user.ID, "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, 1, st.LongestStreak)
	assert.Equal(t, "2026-03-01", *st.LastActivityDate)
	assert.Equal(t, "2026-03-01", *st.LastWorkoutDate)
}

func TestConsecutiveDaysExtendStreak(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-02")
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-03")
	require.NoError(t, err)

	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 3, st.LongestStreak)
}

func TestMissedDayResetsStreak(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-03")
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak, "a skipped day starts over")
	assert.Equal(t, 1, st.LongestStreak)
}

func TestRestDayKeepsStreakAlive(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	rest, err := e.streaks.LogRest(ctx, e.user.ID, "2026-03-02", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rest.CurrentStreak)
	assert.Equal(t, "2026-03-01", *rest.LastWorkoutDate,
		"a rest day is activity, not training")

	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, "2026-03-03", *st.LastWorkoutDate)
}

func TestSameDayLogsLeaveCountersAlone(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-02")
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
}

func TestWorkoutOnRestDayUpgradesWithoutDoubleCount(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogRest(ctx, e.user.ID, "2026-03-01", nil)
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, "2026-03-01", *st.LastWorkoutDate)

	log, err := e.store.GetDailyLog(ctx, e.user.ID, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityWorkout, log.Activity)
}

func TestBackdatedLogKeepsCountersAnchored(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-10")
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-05")
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, "2026-03-10", *st.LastActivityDate, "counters stay at the frontier")
	assert.Equal(t, "2026-03-10", *st.LastWorkoutDate)

	// The day itself is still recorded.
	log, err := e.store.GetDailyLog(ctx, e.user.ID, "2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityWorkout, log.Activity)
}

func TestLongestStreakNeverShrinks(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	for _, day := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		_, err := e.streaks.LogWorkout(ctx, e.user.ID, day)
		require.NoError(t, err)
	}
	st, err := e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, 3, st.LongestStreak)
}

func TestLongestStreakMilestones(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	// Day one: longest becomes 1, which is not worth announcing.
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-01")
	assert.Empty(t, e.milestones(t, models.MilestoneLongestStreak))

	// Days two and three each set a new record.
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-02")
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-03")
	ms := e.milestones(t, models.MilestoneLongestStreak)
	require.Len(t, ms, 2)
	assert.Equal(t, 3.0, ms[0].Value)
	assert.Equal(t, "2026-03-03", ms[0].AchievedAt, "dated by the activity day")

	// Rebuilding up to the old record ties it; ties are not records.
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-10")
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-11")
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-12")
	assert.Len(t, e.milestones(t, models.MilestoneLongestStreak), 2)

	// One day more beats it.
	e.streaks.LogWorkout(ctx, e.user.ID, "2026-03-13")
	ms = e.milestones(t, models.MilestoneLongestStreak)
	require.Len(t, ms, 3)
	assert.Equal(t, 4.0, ms[0].Value)
}

func TestLogRestKeepsNotes(t *testing.T) {
	e := setupEngines(t)
	ctx := context.Background()

	notes := "deload week"
	_, err := e.streaks.LogRest(ctx, e.user.ID, "2026-03-01", &notes)
	require.NoError(t, err)

	log, err := e.store.GetDailyLog(ctx, e.user.ID, "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, log.Notes)
	assert.Equal(t, "deload week", *log.Notes)
}

func TestLogWorkoutRejectsBadDate(t *testing.T) {
	e := setupEngines(t)

	_, err := e.streaks.LogWorkout(context.Background(), e.user.ID, "March 1st")
	assert.True(t, models.IsValidation(err), "got %v", err)
}

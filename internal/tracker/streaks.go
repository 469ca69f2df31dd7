// ABOUTME: Streak tracker: maintains per-user consecutive-day activity
// ABOUTME: counters from workout and rest-day logs.
package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

// StreakTracker advances streak counters as activity is logged. Both
// workouts and explicit rest days count toward continuity; only a full
// calendar day with no log of either kind breaks a streak.
type StreakTracker struct {
	store *storage.Store
	log   *zap.Logger
}

// NewStreakTracker returns a tracker backed by store.
func NewStreakTracker(store *storage.Store, log *zap.Logger) *StreakTracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &StreakTracker{store: store, log: log}
}

// LogWorkout records a workout day for the user and advances the streak.
func (s *StreakTracker) LogWorkout(ctx context.Context, userID, date string) (*models.Streak, error) {
	return s.logActivity(ctx, userID, date, models.ActivityWorkout, nil)
}

// LogRest records an explicit rest day for the user. Rest keeps a streak
// alive but never downgrades a day already logged as a workout.
func (s *StreakTracker) LogRest(ctx context.Context, userID, date string, notes *string) (*models.Streak, error) {
	return s.logActivity(ctx, userID, date, models.ActivityRest, notes)
}

func (s *StreakTracker) logActivity(ctx context.Context, userID, date string, activity models.Activity, notes *string) (*models.Streak, error) {
	parsed, err := models.ParseDay(date)
	if err != nil {
		return nil, models.Validationf("log date", "want YYYY-MM-DD, got %q", date)
	}
	day := models.Day(parsed)

	entry := &models.DailyLog{
		UserID:   userID,
		Date:     day,
		Activity: activity,
		Notes:    notes,
	}

	var (
		streak    models.Streak
		logID     int64
		milestone *models.Milestone
	)
	err = s.store.WithTx(ctx, func(tx *storage.Tx) error {
		logged, err := tx.UpsertDailyLog(entry)
		if err != nil {
			return err
		}
		logID = logged.ID

		st, err := tx.StreakForUser(userID)
		if err != nil {
			return err
		}

		newRecord, err := advanceStreak(st, day, activity == models.ActivityWorkout)
		if err != nil {
			return err
		}
		if err := tx.PutStreak(st); err != nil {
			return err
		}
		if newRecord {
			m := models.NewMilestone(userID, models.MilestoneLongestStreak, float64(st.LongestStreak), day)
			if err := tx.InsertMilestone(m); err != nil {
				return err
			}
			milestone = m
		}
		streak = *st
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log %s for %s: %w", activity, day, err)
	}

	s.enqueue(ctx, storage.TableDailyLogs, formatRecordID(logID), models.OpUpdate)
	s.enqueue(ctx, storage.TableStreaks, streak.UserID, models.OpUpdate)
	if milestone != nil {
		s.enqueue(ctx, storage.TableMilestones, formatRecordID(milestone.ID), models.OpInsert)
	}
	return &streak, nil
}

// advanceStreak applies one logged day to the counters. It reports
// whether the longest streak reached a new record worth a milestone.
func advanceStreak(st *models.Streak, day string, isWorkout bool) (bool, error) {
	switch {
	case st.LastActivityDate == nil:
		st.CurrentStreak = 1
	default:
		gap, err := models.DaysBetween(*st.LastActivityDate, day)
		if err != nil {
			return false, err
		}
		switch {
		case gap < 0:
			// Backdated log: the daily record is kept but counters
			// stay anchored to the latest activity already seen.
			return false, nil
		case gap == 0:
			// Same day logged again; counters unchanged.
		case gap == 1:
			st.CurrentStreak++
		default:
			st.CurrentStreak = 1
		}
	}

	st.LastActivityDate = &day
	if isWorkout {
		st.LastWorkoutDate = &day
	}

	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
		return st.LongestStreak >= 2, nil
	}
	return false, nil
}

func (s *StreakTracker) enqueue(ctx context.Context, table, recordID string, op models.Operation) {
	if err := s.store.Enqueue(ctx, table, recordID, op); err != nil {
		s.log.Warn("queue streak change", zap.String("table", table), zap.Error(err))
	}
}

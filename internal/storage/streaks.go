// ABOUTME: Streak row persistence: one row per user, read as zeros
// ABOUTME: when absent so first-ever activity starts from a clean slate.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// StreakForUser reads the streak row inside the transaction. A user
// with no row yet gets a zero-valued streak, not an error.
func (t *Tx) StreakForUser(userID string) (*models.Streak, error) {
	row := t.tx.QueryRow(`
		SELECT user_id, current_streak, longest_streak, last_activity_date, last_workout_date
		FROM streaks WHERE user_id = ?`, userID)
	return scanStreakOrZero(row, userID)
}

// PutStreak writes the full streak row.
func (t *Tx) PutStreak(st *models.Streak) error {
	var lastActivity, lastWorkout any
	if st.LastActivityDate != nil {
		lastActivity = *st.LastActivityDate
	}
	if st.LastWorkoutDate != nil {
		lastWorkout = *st.LastWorkoutDate
	}

	_, err := t.tx.Exec(`
		INSERT INTO streaks (user_id, current_streak, longest_streak, last_activity_date, last_workout_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_activity_date = excluded.last_activity_date,
			last_workout_date = excluded.last_workout_date`,
		st.UserID, st.CurrentStreak, st.LongestStreak, lastActivity, lastWorkout)
	if err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

// GetStreak returns a user's streak state, zeros when never active.
func (s *Store) GetStreak(ctx context.Context, userID string) (*models.Streak, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, current_streak, longest_streak, last_activity_date, last_workout_date
		FROM streaks WHERE user_id = ?`, userID)
	return scanStreakOrZero(row, userID)
}

// scanStreakOrZero scans a streak row, defaulting to zeros on no rows.
func scanStreakOrZero(row *sql.Row, userID string) (*models.Streak, error) {
	var st models.Streak
	var lastActivity, lastWorkout sql.NullString

	err := row.Scan(&st.UserID, &st.CurrentStreak, &st.LongestStreak, &lastActivity, &lastWorkout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Streak{UserID: userID}, nil
		}
		return nil, fmt.Errorf("scan streak: %w", err)
	}

	if lastActivity.Valid {
		st.LastActivityDate = &lastActivity.String
	}
	if lastWorkout.Valid {
		st.LastWorkoutDate = &lastWorkout.String
	}

	return &st, nil
}

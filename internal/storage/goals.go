// ABOUTME: Goal persistence: creation, listing, progress and state flips.
// ABOUTME: State guards live in the SQL so terminal goals stay terminal.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

const goalColumns = `id, user_id, kind, exercise_id, target_value, start_date,
	end_date, status, current_progress, starting_value, achieved_on`

// CreateGoal validates and inserts a goal, then queues the change.
func (s *Store) CreateGoal(ctx context.Context, g *models.Goal) error {
	if g.Status == "" {
		g.Status = models.GoalActive
	}
	if err := g.Validate(); err != nil {
		return err
	}

	err := s.WithTx(ctx, func(tx *Tx) error {
		var exerciseID, target, starting any
		if g.ExerciseID != nil {
			exerciseID = *g.ExerciseID
		}
		if g.TargetValue != nil {
			target = *g.TargetValue
		}
		if g.StartingValue != nil {
			starting = *g.StartingValue
		}

		res, err := tx.tx.Exec(`
			INSERT INTO goals (user_id, kind, exercise_id, target_value, start_date,
				end_date, status, current_progress, starting_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.UserID, string(g.Kind), exerciseID, target, g.StartDate,
			g.EndDate, string(g.Status), g.CurrentProgress, starting)
		if err != nil {
			return fmt.Errorf("insert goal: %w", err)
		}
		g.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read goal id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.enqueueBestEffort(TableGoals, formatID(g.ID), models.OpInsert)
	return nil
}

// GetGoal returns a goal by id, or models.ErrNotFound.
func (s *Store) GetGoal(ctx context.Context, id int64) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	return scanGoal(row)
}

// ListGoals returns a user's goals, optionally filtered by status.
func (s *Store) ListGoals(ctx context.Context, userID string, status *models.GoalStatus) ([]*models.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE user_id = ?"
	args := []any{userID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY end_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	return scanGoals(rows)
}

// ActiveGoals returns a user's Active goals inside the transaction, so
// evaluation and the resulting state flips see one snapshot.
func (t *Tx) ActiveGoals(userID string) ([]*models.Goal, error) {
	rows, err := t.tx.Query(
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? AND status = ? ORDER BY id",
		userID, string(models.GoalActive))
	if err != nil {
		return nil, fmt.Errorf("list active goals: %w", err)
	}
	defer rows.Close()

	return scanGoals(rows)
}

// SetGoalProgress updates progress on an Active goal. Terminal goals
// are left untouched; the update is a no-op for them.
func (t *Tx) SetGoalProgress(id int64, progress float64) error {
	_, err := t.tx.Exec(
		"UPDATE goals SET current_progress = ? WHERE id = ? AND status = ?",
		progress, id, string(models.GoalActive))
	if err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	return nil
}

// MarkGoalAchieved flips an Active goal to Achieved with its final
// progress and achievement day. A goal already terminal stays as it
// is: the flip matched zero rows and ok is false.
func (t *Tx) MarkGoalAchieved(id int64, progress float64, achievedOn string) (bool, error) {
	res, err := t.tx.Exec(`
		UPDATE goals SET status = ?, current_progress = ?, achieved_on = ?
		WHERE id = ? AND status = ?`,
		string(models.GoalAchieved), progress, achievedOn, id, string(models.GoalActive))
	if err != nil {
		return false, fmt.Errorf("mark goal achieved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count updated rows: %w", err)
	}
	return n > 0, nil
}

// MarkGoalExpired flips an Active goal to Expired.
func (t *Tx) MarkGoalExpired(id int64) (bool, error) {
	res, err := t.tx.Exec(
		"UPDATE goals SET status = ? WHERE id = ? AND status = ?",
		string(models.GoalExpired), id, string(models.GoalActive))
	if err != nil {
		return false, fmt.Errorf("mark goal expired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count updated rows: %w", err)
	}
	return n > 0, nil
}

// CountWorkoutsInRange is the in-transaction variant used by goal
// evaluation.
func (t *Tx) CountWorkoutsInRange(userID, startDate, endDate string) (int, error) {
	var count int
	err := t.tx.QueryRow(`
		SELECT COUNT(*) FROM workouts
		WHERE user_id = ? AND workout_date >= ? AND workout_date <= ?`,
		userID, startDate, endDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// scanGoal scans a single goal row.
func scanGoal(row *sql.Row) (*models.Goal, error) {
	var g models.Goal
	var kind, status string
	var exerciseID sql.NullInt64
	var target, starting sql.NullFloat64
	var achievedOn sql.NullString

	err := row.Scan(&g.ID, &g.UserID, &kind, &exerciseID, &target, &g.StartDate,
		&g.EndDate, &status, &g.CurrentProgress, &starting, &achievedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.Kind = models.GoalKind(kind)
	g.Status = models.GoalStatus(status)
	if exerciseID.Valid {
		g.ExerciseID = &exerciseID.Int64
	}
	if target.Valid {
		g.TargetValue = &target.Float64
	}
	if starting.Valid {
		g.StartingValue = &starting.Float64
	}
	if achievedOn.Valid {
		g.AchievedOn = &achievedOn.String
	}

	return &g, nil
}

// scanGoals scans multiple goal rows.
func scanGoals(rows *sql.Rows) ([]*models.Goal, error) {
	var goals []*models.Goal

	for rows.Next() {
		var g models.Goal
		var kind, status string
		var exerciseID sql.NullInt64
		var target, starting sql.NullFloat64
		var achievedOn sql.NullString

		err := rows.Scan(&g.ID, &g.UserID, &kind, &exerciseID, &target, &g.StartDate,
			&g.EndDate, &status, &g.CurrentProgress, &starting, &achievedOn)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}

		g.Kind = models.GoalKind(kind)
		g.Status = models.GoalStatus(status)
		if exerciseID.Valid {
			g.ExerciseID = &exerciseID.Int64
		}
		if target.Valid {
			g.TargetValue = &target.Float64
		}
		if starting.Valid {
			g.StartingValue = &starting.Float64
		}
		if achievedOn.Valid {
			g.AchievedOn = &achievedOn.String
		}

		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

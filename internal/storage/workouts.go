// ABOUTME: Workout graph persistence: session, exercise entries, sets.
// ABOUTME: Graph writes are Tx methods so composites commit atomically.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// InsertWorkoutGraph writes a workout with its exercise entries and
// sets. A zero id inserts fresh rows; a caller-supplied id upserts the
// session row and replaces its children, which makes sync replay and
// import idempotent. IDs are filled in on the way out.
func (t *Tx) InsertWorkoutGraph(w *models.Workout) error {
	var duration any
	if w.DurationMinutes != nil {
		duration = *w.DurationMinutes
	}
	var notes any
	if w.Notes != nil {
		notes = *w.Notes
	}

	if w.ID == 0 {
		res, err := t.tx.Exec(
			"INSERT INTO workouts (user_id, workout_date, duration_minutes, notes) VALUES (?, ?, ?, ?)",
			w.UserID, w.Date, duration, notes)
		if err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		w.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read workout id: %w", err)
		}
	} else {
		_, err := t.tx.Exec(`
			INSERT INTO workouts (id, user_id, workout_date, duration_minutes, notes)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				workout_date = excluded.workout_date,
				duration_minutes = excluded.duration_minutes,
				notes = excluded.notes`,
			w.ID, w.UserID, w.Date, duration, notes)
		if err != nil {
			return fmt.Errorf("upsert workout: %w", err)
		}
		if _, err := t.tx.Exec("DELETE FROM workout_exercises WHERE workout_id = ?", w.ID); err != nil {
			return fmt.Errorf("clear workout exercises: %w", err)
		}
	}

	for i := range w.Exercises {
		we := &w.Exercises[i]
		we.WorkoutID = w.ID

		res, err := t.tx.Exec(
			"INSERT INTO workout_exercises (workout_id, exercise_id) VALUES (?, ?)",
			we.WorkoutID, we.ExerciseID)
		if err != nil {
			return fmt.Errorf("insert workout exercise: %w", err)
		}
		we.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read workout exercise id: %w", err)
		}

		for j := range we.Sets {
			set := &we.Sets[j]
			set.WorkoutExerciseID = we.ID

			res, err := t.tx.Exec(
				"INSERT INTO workout_sets (workout_exercise_id, set_number, reps, weight) VALUES (?, ?, ?, ?)",
				set.WorkoutExerciseID, set.SetNumber, set.Reps, set.Weight)
			if err != nil {
				return fmt.Errorf("insert set %d: %w", set.SetNumber, err)
			}
			set.ID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("read set id: %w", err)
			}
		}
	}

	return nil
}

// DeleteWorkout removes a workout; exercise entries and sets cascade.
func (t *Tx) DeleteWorkout(id int64) error {
	res, err := t.tx.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count deleted rows: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetWorkout returns the full workout aggregate, or models.ErrNotFound.
func (s *Store) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, workout_date, duration_minutes, notes
		FROM workouts WHERE id = ?`, id)

	w, err := scanWorkout(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.exercise_id, e.name
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ?
		ORDER BY we.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var we models.WorkoutExercise
		if err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseName); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		w.Exercises = append(w.Exercises, we)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range w.Exercises {
		we := &w.Exercises[i]
		setRows, err := s.db.QueryContext(ctx, `
			SELECT id, workout_exercise_id, set_number, reps, weight
			FROM workout_sets WHERE workout_exercise_id = ?
			ORDER BY set_number`, we.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}

		for setRows.Next() {
			var set models.WorkoutSet
			if err := setRows.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetNumber, &set.Reps, &set.Weight); err != nil {
				setRows.Close()
				return nil, fmt.Errorf("scan set: %w", err)
			}
			we.Sets = append(we.Sets, set)
		}
		if err := setRows.Err(); err != nil {
			setRows.Close()
			return nil, err
		}
		setRows.Close()
	}

	return w, nil
}

// ListWorkouts returns a user's sessions newest first, without
// children. A limit of 0 returns everything.
func (s *Store) ListWorkouts(ctx context.Context, userID string, limit int) ([]*models.Workout, error) {
	query := `
		SELECT id, user_id, workout_date, duration_minutes, notes
		FROM workouts WHERE user_id = ?
		ORDER BY workout_date DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// CountWorkoutsInRange counts a user's sessions with dates inside
// [startDate, endDate], bounds inclusive.
func (s *Store) CountWorkoutsInRange(ctx context.Context, userID, startDate, endDate string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM workouts
		WHERE user_id = ? AND workout_date >= ? AND workout_date <= ?`,
		userID, startDate, endDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// BestSetWeight returns the user's heaviest positive set weight for an
// exercise across all workouts except excludeWorkoutID. The bool is
// false when no qualifying set exists.
func (s *Store) BestSetWeight(ctx context.Context, userID string, exerciseID, excludeWorkoutID int64) (float64, bool, error) {
	var best sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(ws.weight)
		FROM workout_sets ws
		JOIN workout_exercises we ON we.id = ws.workout_exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id = ? AND we.exercise_id = ? AND w.id != ? AND ws.weight > 0`,
		userID, exerciseID, excludeWorkoutID).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("query best set weight: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Float64, true, nil
}

// scanWorkout scans a single workout row.
func scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var duration sql.NullInt64
	var notes sql.NullString

	err := row.Scan(&w.ID, &w.UserID, &w.Date, &duration, &notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	if duration.Valid {
		d := int(duration.Int64)
		w.DurationMinutes = &d
	}
	if notes.Valid {
		w.Notes = &notes.String
	}

	return &w, nil
}

// scanWorkouts scans multiple workout rows.
func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	var workouts []*models.Workout

	for rows.Next() {
		var w models.Workout
		var duration sql.NullInt64
		var notes sql.NullString

		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &duration, &notes); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}

		if duration.Valid {
			d := int(duration.Int64)
			w.DurationMinutes = &d
		}
		if notes.Valid {
			w.Notes = &notes.String
		}

		workouts = append(workouts, &w)
	}

	return workouts, rows.Err()
}

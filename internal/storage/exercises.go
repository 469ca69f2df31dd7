// ABOUTME: Exercise catalog reads and custom-exercise creation.
// ABOUTME: Catalog rows are reference data and never enter the queue.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// CreateExercise adds a custom exercise to the catalog.
func (s *Store) CreateExercise(ctx context.Context, ex *models.Exercise) error {
	if strings.TrimSpace(ex.Name) == "" {
		return models.Validationf("exercise name", "must not be empty")
	}
	if !models.IsValidMuscleGroup(string(ex.MuscleGroup)) {
		return models.Validationf("muscle group", "unknown group %q", ex.MuscleGroup)
	}

	return s.WithTx(ctx, func(tx *Tx) error {
		res, err := tx.tx.Exec(
			"INSERT INTO exercises (name, muscle_group, description) VALUES (?, ?, ?)",
			ex.Name, string(ex.MuscleGroup), ex.Description)
		if err != nil {
			return fmt.Errorf("insert exercise: %w", err)
		}
		ex.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read exercise id: %w", err)
		}
		return nil
	})
}

// GetExercise returns an exercise by id, or models.ErrNotFound.
func (s *Store) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, muscle_group, description FROM exercises WHERE id = ?", id)
	return scanExercise(row)
}

// FindExerciseByName returns an exercise by exact name, or the single
// exercise whose name contains the query when exactly one matches.
func (s *Store) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, muscle_group, description FROM exercises WHERE name = ? COLLATE NOCASE", name)
	ex, err := scanExercise(row)
	if err == nil {
		return ex, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, muscle_group, description FROM exercises
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE ORDER BY name`, name)
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}
	defer rows.Close()

	matches, err := scanExercises(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, models.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous exercise %q: %d matches", name, len(matches))
	}
}

// ListExercises returns the catalog, optionally filtered by muscle group.
func (s *Store) ListExercises(ctx context.Context, group *models.MuscleGroup) ([]*models.Exercise, error) {
	query := "SELECT id, name, muscle_group, description FROM exercises"
	args := []any{}
	if group != nil {
		query += " WHERE muscle_group = ?"
		args = append(args, string(*group))
	}
	query += " ORDER BY muscle_group, name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// scanExercise scans a single exercise row.
func scanExercise(row *sql.Row) (*models.Exercise, error) {
	var ex models.Exercise
	var group string

	err := row.Scan(&ex.ID, &ex.Name, &group, &ex.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	ex.MuscleGroup = models.MuscleGroup(group)
	return &ex, nil
}

// scanExercises scans multiple exercise rows.
func scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var exercises []*models.Exercise

	for rows.Next() {
		var ex models.Exercise
		var group string

		if err := rows.Scan(&ex.ID, &ex.Name, &group, &ex.Description); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		ex.MuscleGroup = models.MuscleGroup(group)
		exercises = append(exercises, &ex)
	}

	return exercises, rows.Err()
}

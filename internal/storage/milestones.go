// ABOUTME: Milestone persistence: append-only achievement rows.
// ABOUTME: Inserts happen inside the transaction that earned them.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// InsertMilestone appends an achievement row and fills its id.
func (t *Tx) InsertMilestone(m *models.Milestone) error {
	if !models.IsValidMilestoneKind(string(m.Kind)) {
		return models.Validationf("milestone kind", "unknown kind %q", m.Kind)
	}

	var exerciseID any
	if m.ExerciseID != nil {
		exerciseID = *m.ExerciseID
	}
	res, err := t.tx.Exec(`
		INSERT INTO milestones (user_id, kind, exercise_id, value, achieved_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.UserID, string(m.Kind), exerciseID, m.Value, m.AchievedAt)
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read milestone id: %w", err)
	}
	return nil
}

// ListMilestones returns a user's achievements newest first, optionally
// filtered by kind. A limit of 0 returns everything.
func (s *Store) ListMilestones(ctx context.Context, userID string, kind *models.MilestoneKind, limit int) ([]*models.Milestone, error) {
	query := `
		SELECT id, user_id, kind, exercise_id, value, achieved_at
		FROM milestones WHERE user_id = ?`
	args := []any{userID}
	if kind != nil {
		query += " AND kind = ?"
		args = append(args, string(*kind))
	}
	query += " ORDER BY achieved_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*models.Milestone
	for rows.Next() {
		var m models.Milestone
		var kindStr string
		var exerciseID sql.NullInt64

		if err := rows.Scan(&m.ID, &m.UserID, &kindStr, &exerciseID, &m.Value, &m.AchievedAt); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}

		m.Kind = models.MilestoneKind(kindStr)
		if exerciseID.Valid {
			m.ExerciseID = &exerciseID.Int64
		}
		milestones = append(milestones, &m)
	}

	return milestones, rows.Err()
}

// CountMilestones counts a user's achievements of one kind.
func (s *Store) CountMilestones(ctx context.Context, userID string, kind models.MilestoneKind) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM milestones WHERE user_id = ? AND kind = ?",
		userID, string(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count milestones: %w", err)
	}
	return count, nil
}

// ABOUTME: Body-weight entry persistence. The latest entry is the
// ABOUTME: measurement weight_target goals evaluate against.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// CreateWeightEntry validates and inserts a measurement, then queues
// the change.
func (s *Store) CreateWeightEntry(ctx context.Context, w *models.WeightEntry) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.RecordedAt.IsZero() {
		w.RecordedAt = time.Now()
	}

	err := s.WithTx(ctx, func(tx *Tx) error {
		res, err := tx.tx.Exec(
			"INSERT INTO weight_entries (user_id, weight_kg, recorded_at) VALUES (?, ?, ?)",
			w.UserID, w.WeightKg, w.RecordedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert weight entry: %w", err)
		}
		w.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read weight entry id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.enqueueBestEffort(TableWeightEntries, formatID(w.ID), models.OpInsert)
	return nil
}

// LatestWeight returns the most recent measurement. The bool is false
// when the user has never weighed in.
func (s *Store) LatestWeight(ctx context.Context, userID string) (float64, bool, error) {
	var kg float64
	err := s.db.QueryRowContext(ctx, `
		SELECT weight_kg FROM weight_entries
		WHERE user_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		userID).Scan(&kg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query latest weight: %w", err)
	}
	return kg, true, nil
}

// LatestWeight is the in-transaction variant used by goal maintenance.
func (t *Tx) LatestWeight(userID string) (float64, bool, error) {
	var kg float64
	err := t.tx.QueryRow(`
		SELECT weight_kg FROM weight_entries
		WHERE user_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		userID).Scan(&kg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query latest weight: %w", err)
	}
	return kg, true, nil
}

// ListWeightEntries returns measurements newest first. A limit of 0
// returns everything.
func (s *Store) ListWeightEntries(ctx context.Context, userID string, limit int) ([]*models.WeightEntry, error) {
	query := `
		SELECT id, user_id, weight_kg, recorded_at
		FROM weight_entries WHERE user_id = ?
		ORDER BY recorded_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WeightEntry
	for rows.Next() {
		var w models.WeightEntry
		var recordedAt string

		if err := rows.Scan(&w.ID, &w.UserID, &w.WeightKg, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}

		w.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		entries = append(entries, &w)
	}

	return entries, rows.Err()
}

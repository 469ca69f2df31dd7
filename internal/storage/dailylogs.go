// ABOUTME: DailyLog persistence with the monotonic activity upsert.
// ABOUTME: A day logged as workout is never downgraded to rest.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// UpsertDailyLog writes the log for (user, day). A second write to the
// same day updates in place, except that workout activity survives a
// later rest write. The stored row comes back with its final id and
// activity so callers see what actually landed.
func (t *Tx) UpsertDailyLog(d *models.DailyLog) (*models.DailyLog, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var notes any
	if d.Notes != nil {
		notes = *d.Notes
	}
	_, err := t.tx.Exec(`
		INSERT INTO daily_logs (user_id, log_date, activity, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, log_date) DO UPDATE SET
			activity = CASE
				WHEN daily_logs.activity = 'workout' THEN daily_logs.activity
				ELSE excluded.activity
			END,
			notes = COALESCE(excluded.notes, daily_logs.notes)`,
		d.UserID, d.Date, string(d.Activity), notes)
	if err != nil {
		return nil, fmt.Errorf("upsert daily log: %w", err)
	}

	row := t.tx.QueryRow(
		"SELECT id, user_id, log_date, activity, notes FROM daily_logs WHERE user_id = ? AND log_date = ?",
		d.UserID, d.Date)
	return scanDailyLog(row)
}

// GetDailyLog returns the log for one day, or models.ErrNotFound.
func (s *Store) GetDailyLog(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, log_date, activity, notes FROM daily_logs WHERE user_id = ? AND log_date = ?",
		userID, date)
	return scanDailyLog(row)
}

// ListDailyLogs returns a user's logs newest first. A limit of 0
// returns everything.
func (s *Store) ListDailyLogs(ctx context.Context, userID string, limit int) ([]*models.DailyLog, error) {
	query := `
		SELECT id, user_id, log_date, activity, notes
		FROM daily_logs WHERE user_id = ? ORDER BY log_date DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.DailyLog
	for rows.Next() {
		var d models.DailyLog
		var activity string
		var notes sql.NullString

		if err := rows.Scan(&d.ID, &d.UserID, &d.Date, &activity, &notes); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}

		d.Activity = models.Activity(activity)
		if notes.Valid {
			d.Notes = &notes.String
		}
		logs = append(logs, &d)
	}

	return logs, rows.Err()
}

// scanDailyLog scans a single daily log row.
func scanDailyLog(row *sql.Row) (*models.DailyLog, error) {
	var d models.DailyLog
	var activity string
	var notes sql.NullString

	err := row.Scan(&d.ID, &d.UserID, &d.Date, &activity, &notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan daily log: %w", err)
	}

	d.Activity = models.Activity(activity)
	if notes.Valid {
		d.Notes = &notes.String
	}

	return &d, nil
}

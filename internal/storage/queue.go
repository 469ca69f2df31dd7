// ABOUTME: Change queue: the offline outbox consumed by a future sync
// ABOUTME: transport. Repeats of (table, record, operation) coalesce.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// Table names recorded in change-queue entries.
const (
	TableUsers         = "users"
	TableWorkouts      = "workouts"
	TableGoals         = "goals"
	TableDailyLogs     = "daily_logs"
	TableStreaks       = "streaks"
	TableMilestones    = "milestones"
	TableWeightEntries = "weight_entries"
	TableNotifications = "notifications"
)

// formatID renders an integer primary key the way queue entries and
// sync payloads carry record ids.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Enqueue records one pending local change. Re-enqueueing the same
// (table, record, operation) refreshes the existing entry and marks it
// unsynced again instead of inserting a duplicate.
func (s *Store) Enqueue(ctx context.Context, table, recordID string, op models.Operation) error {
	if !models.IsValidOperation(string(op)) {
		return models.Validationf("queue operation", "unknown operation %q", op)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO change_queue (table_name, record_id, operation, enqueued_at, synced)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(table_name, record_id, operation)
		DO UPDATE SET enqueued_at = excluded.enqueued_at, synced = 0`,
		table, recordID, string(op), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("enqueue change: %w", err)
	}
	return nil
}

// enqueueBestEffort queues a change and absorbs failure. Queueing never
// vetoes the primary write that already happened.
func (s *Store) enqueueBestEffort(table, recordID string, op models.Operation) {
	if err := s.Enqueue(context.Background(), table, recordID, op); err != nil {
		s.log.Warn("change not queued",
			zap.String("table", table),
			zap.String("record", recordID),
			zap.String("operation", string(op)),
			zap.Error(err))
	}
}

// PendingChanges returns unsynced entries oldest first. A limit of 0
// returns everything.
func (s *Store) PendingChanges(ctx context.Context, limit int) ([]*models.ChangeQueueEntry, error) {
	query := `
		SELECT id, table_name, record_id, operation, enqueued_at, synced
		FROM change_queue WHERE synced = 0 ORDER BY enqueued_at, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending changes: %w", err)
	}
	defer rows.Close()

	return scanChangeEntries(rows)
}

// CountChanges returns how many entries are pending and synced.
func (s *Store) CountChanges(ctx context.Context) (pending, synced int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN synced = 0 THEN 1 END),
			COUNT(CASE WHEN synced = 1 THEN 1 END)
		FROM change_queue`).Scan(&pending, &synced)
	if err != nil {
		return 0, 0, fmt.Errorf("count changes: %w", err)
	}
	return pending, synced, nil
}

// MarkChangesSynced flags entries as transmitted. The sync transport
// calls this after a successful send.
func (s *Store) MarkChangesSynced(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE change_queue SET synced = 1 WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("mark changes synced: %w", err)
	}
	return nil
}

// PruneSyncedChanges deletes entries already transmitted.
func (s *Store) PruneSyncedChanges(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM change_queue WHERE synced = 1")
	if err != nil {
		return 0, fmt.Errorf("prune synced changes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned changes: %w", err)
	}
	return n, nil
}

// scanChangeEntries scans queue rows.
func scanChangeEntries(rows *sql.Rows) ([]*models.ChangeQueueEntry, error) {
	var entries []*models.ChangeQueueEntry

	for rows.Next() {
		var e models.ChangeQueueEntry
		var op, enqueuedAt string
		var synced int

		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &op, &enqueuedAt, &synced); err != nil {
			return nil, fmt.Errorf("scan change entry: %w", err)
		}

		e.Operation = models.Operation(op)
		e.EnqueuedAt, _ = time.Parse(time.RFC3339, enqueuedAt)
		e.Synced = synced != 0

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// ABOUTME: Notification persistence: the local alert feed. Delivery to
// ABOUTME: a device notification system is someone else's job.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// InsertNotification appends an alert row and fills its id.
func (t *Tx) InsertNotification(n *models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	read := 0
	if n.Read {
		read = 1
	}
	res, err := t.tx.Exec(`
		INSERT INTO notifications (user_id, kind, message, created_at, read)
		VALUES (?, ?, ?, ?, ?)`,
		n.UserID, string(n.Kind), n.Message, n.CreatedAt.Format(time.RFC3339), read)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	n.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read notification id: %w", err)
	}
	return nil
}

// ListNotifications returns a user's alerts newest first, optionally
// unread only. A limit of 0 returns everything.
func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, kind, message, created_at, read
		FROM notifications WHERE user_id = ?`
	args := []any{userID}
	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var kind, createdAt string
		var read int

		if err := rows.Scan(&n.ID, &n.UserID, &kind, &n.Message, &createdAt, &read); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}

		n.Kind = models.NotificationKind(kind)
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		n.Read = read != 0
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkNotificationRead flags one alert as read and queues the change.
func (s *Store) MarkNotificationRead(ctx context.Context, id int64) error {
	err := s.WithTx(ctx, func(tx *Tx) error {
		res, err := tx.tx.Exec("UPDATE notifications SET read = 1 WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("mark notification read: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("count updated rows: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.enqueueBestEffort(TableNotifications, formatID(id), models.OpUpdate)
	return nil
}

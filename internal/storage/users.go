// ABOUTME: User persistence: sign-in upsert, lookup, and login refresh.
// ABOUTME: User ids are opaque strings issued by the auth provider.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// UpsertUser writes a user row. A new id inserts; a known id updates
// the profile fields and refreshes last_login_at. The change is queued
// for sync after the write commits.
func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	op := models.OpUpdate
	err := s.WithTx(ctx, func(tx *Tx) error {
		var exists int
		if err := tx.tx.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", u.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if exists == 0 {
			op = models.OpInsert
		}

		var height any
		if u.HeightCm != nil {
			height = *u.HeightCm
		}
		_, err := tx.tx.Exec(`
			INSERT INTO users (id, first_name, last_name, height_cm, registered_at, last_login_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				height_cm = excluded.height_cm,
				last_login_at = excluded.last_login_at`,
			u.ID, u.FirstName, u.LastName, height,
			u.RegisteredAt.Format(time.RFC3339), u.LastLoginAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.enqueueBestEffort(TableUsers, u.ID, op)
	return nil
}

// GetUser returns a user by id, or models.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, height_cm, registered_at, last_login_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// FindUserByName returns the user matching first and last name, or
// models.ErrNotFound. Names are not unique in general; the earliest
// registration wins, which is enough for a single-person device.
func (s *Store) FindUserByName(ctx context.Context, firstName, lastName string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, height_cm, registered_at, last_login_at
		FROM users WHERE first_name = ? AND last_name = ?
		ORDER BY registered_at LIMIT 1`, firstName, lastName)
	return scanUser(row)
}

// ListUsers returns every user ordered by registration.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, height_cm, registered_at, last_login_at
		FROM users ORDER BY registered_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var height sql.NullFloat64
		var registeredAt, lastLoginAt string

		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &height, &registeredAt, &lastLoginAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		if height.Valid {
			u.HeightCm = &height.Float64
		}
		u.RegisteredAt, _ = time.Parse(time.RFC3339, registeredAt)
		u.LastLoginAt, _ = time.Parse(time.RFC3339, lastLoginAt)
		users = append(users, &u)
	}

	return users, rows.Err()
}

// TouchLastLogin refreshes last_login_at for a returning user.
func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	err := s.WithTx(ctx, func(tx *Tx) error {
		res, err := tx.tx.Exec("UPDATE users SET last_login_at = ? WHERE id = ?",
			time.Now().Format(time.RFC3339), id)
		if err != nil {
			return fmt.Errorf("update last login: %w", err)
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

	s.enqueueBestEffort(TableUsers, id, models.OpUpdate)
	return nil
}

// scanUser scans a single user row.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var height sql.NullFloat64
	var registeredAt, lastLoginAt string

	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &height, &registeredAt, &lastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if height.Valid {
		u.HeightCm = &height.Float64
	}
	u.RegisteredAt, _ = time.Parse(time.RFC3339, registeredAt)
	u.LastLoginAt, _ = time.Parse(time.RFC3339, lastLoginAt)

	return &u, nil
}

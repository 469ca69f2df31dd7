// ABOUTME: Versioned schema migrations bringing older databases forward.
// ABOUTME: Steps are idempotent, transactional, and absorbed on failure.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// migration is one schema upgrade step. Steps inspect the live schema
// before touching it so re-running the list is a no-op, and each runs
// in its own transaction. A failing step is logged and skipped: the
// store opens with whatever steps applied cleanly, and existing data
// is never deleted by a migration.
type migration struct {
	name  string
	apply func(tx *sql.Tx) error
}

var migrations = []migration{
	{name: "add workouts.notes", apply: addWorkoutNotes},
	{name: "add users.last_login_at", apply: addUserLastLogin},
	{name: "add goals.starting_value", apply: addGoalStartingValue},
	{name: "add goals.achieved_on", apply: addGoalAchievedOn},
	{name: "add streaks.last_workout_date", apply: addStreakLastWorkout},
	{name: "rebuild daily_logs with unique day", apply: rebuildDailyLogsUnique},
}

// runMigrations applies every step in order, absorbing failures.
func (s *Store) runMigrations() {
	for _, m := range migrations {
		if err := s.applyMigration(m); err != nil {
			s.log.Warn("schema migration skipped",
				zap.String("migration", m.name),
				zap.Error(err))
		}
	}
}

func (s *Store) applyMigration(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := m.apply(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// hasColumn checks the live schema for a column. Table names here are
// package constants, never user input.
func hasColumn(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// tableSQL returns the CREATE statement recorded for a table.
func tableSQL(tx *sql.Tx, table string) (string, error) {
	var ddl string
	err := tx.QueryRow(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&ddl)
	if err != nil {
		return "", fmt.Errorf("read schema for %s: %w", table, err)
	}
	return ddl, nil
}

func addWorkoutNotes(tx *sql.Tx) error {
	ok, err := hasColumn(tx, "workouts", "notes")
	if err != nil || ok {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE workouts ADD COLUMN notes TEXT"); err != nil {
		return fmt.Errorf("add workouts.notes: %w", err)
	}
	return nil
}

func addUserLastLogin(tx *sql.Tx) error {
	ok, err := hasColumn(tx, "users", "last_login_at")
	if err != nil || ok {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE users ADD COLUMN last_login_at TEXT"); err != nil {
		return fmt.Errorf("add users.last_login_at: %w", err)
	}
	// Returning users predate the column; their last visit is unknown,
	// so the registration time stands in.
	if _, err := tx.Exec("UPDATE users SET last_login_at = registered_at WHERE last_login_at IS NULL"); err != nil {
		return fmt.Errorf("backfill users.last_login_at: %w", err)
	}
	return nil
}

func addGoalStartingValue(tx *sql.Tx) error {
	ok, err := hasColumn(tx, "goals", "starting_value")
	if err != nil || ok {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE goals ADD COLUMN starting_value REAL"); err != nil {
		return fmt.Errorf("add goals.starting_value: %w", err)
	}
	return nil
}

func addGoalAchievedOn(tx *sql.Tx) error {
	ok, err := hasColumn(tx, "goals", "achieved_on")
	if err != nil || ok {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE goals ADD COLUMN achieved_on TEXT"); err != nil {
		return fmt.Errorf("add goals.achieved_on: %w", err)
	}
	return nil
}

func addStreakLastWorkout(tx *sql.Tx) error {
	ok, err := hasColumn(tx, "streaks", "last_workout_date")
	if err != nil || ok {
		return err
	}
	if _, err := tx.Exec("ALTER TABLE streaks ADD COLUMN last_workout_date TEXT"); err != nil {
		return fmt.Errorf("add streaks.last_workout_date: %w", err)
	}
	// Older builds only tracked one date; it was the workout date.
	if _, err := tx.Exec("UPDATE streaks SET last_workout_date = last_activity_date WHERE last_workout_date IS NULL"); err != nil {
		return fmt.Errorf("backfill streaks.last_workout_date: %w", err)
	}
	return nil
}

// rebuildDailyLogsUnique adds the (user_id, log_date) uniqueness that
// early databases lacked: rename the old table, recreate it with the
// constraint, repopulate, then drop the old table. Duplicate days
// collapse to their workout entry when one exists, matching the rule
// that a workout day is never downgraded. Every (user, day) pair must
// survive the copy; the step verifies that before dropping.
func rebuildDailyLogsUnique(tx *sql.Tx) error {
	ddl, err := tableSQL(tx, "daily_logs")
	if err != nil {
		return err
	}
	if strings.Contains(strings.ToUpper(ddl), "UNIQUE") {
		return nil
	}

	if _, err := tx.Exec("ALTER TABLE daily_logs RENAME TO daily_logs_old"); err != nil {
		return fmt.Errorf("rename daily_logs: %w", err)
	}

	createNew := `
	CREATE TABLE daily_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		log_date TEXT NOT NULL,
		activity TEXT NOT NULL CHECK (activity IN ('workout', 'rest')),
		notes TEXT,
		UNIQUE (user_id, log_date)
	)`
	if _, err := tx.Exec(createNew); err != nil {
		return fmt.Errorf("recreate daily_logs: %w", err)
	}

	repopulate := `
	INSERT INTO daily_logs (id, user_id, log_date, activity, notes)
	SELECT dl.id, dl.user_id, dl.log_date, dl.activity, dl.notes
	FROM daily_logs_old dl
	WHERE dl.id = (
		SELECT dl2.id FROM daily_logs_old dl2
		WHERE dl2.user_id = dl.user_id AND dl2.log_date = dl.log_date
		ORDER BY CASE dl2.activity WHEN 'workout' THEN 0 ELSE 1 END, dl2.id
		LIMIT 1
	)`
	if _, err := tx.Exec(repopulate); err != nil {
		return fmt.Errorf("repopulate daily_logs: %w", err)
	}

	var want, got int
	if err := tx.QueryRow("SELECT COUNT(DISTINCT user_id || '|' || log_date) FROM daily_logs_old").Scan(&want); err != nil {
		return fmt.Errorf("count distinct days: %w", err)
	}
	if err := tx.QueryRow("SELECT COUNT(*) FROM daily_logs").Scan(&got); err != nil {
		return fmt.Errorf("count copied rows: %w", err)
	}
	if got != want {
		return fmt.Errorf("daily_logs rebuild copied %d of %d days", got, want)
	}

	if _, err := tx.Exec("DROP TABLE daily_logs_old"); err != nil {
		return fmt.Errorf("drop daily_logs_old: %w", err)
	}
	if _, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_daily_logs_user_date ON daily_logs(user_id, log_date DESC)"); err != nil {
		return fmt.Errorf("recreate daily_logs index: %w", err)
	}
	return nil
}

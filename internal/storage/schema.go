// ABOUTME: SQLite schema definition and exercise catalog seeding.
// ABOUTME: Dates are ISO-8601 day strings, timestamps RFC3339 text.
package storage

import (
	"fmt"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// initSchema creates the database schema for fresh installs. Existing
// tables are left alone; older layouts are brought forward by the
// migration steps in migrate.go.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		height_cm REAL CHECK (height_cm > 0),
		registered_at TEXT NOT NULL,
		last_login_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL CHECK (muscle_group IN ('chest', 'back', 'shoulders', 'arms', 'legs', 'core', 'full_body', 'cardio')),
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workout_date TEXT NOT NULL,
		duration_minutes INTEGER,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_exercise_id INTEGER NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
		set_number INTEGER NOT NULL CHECK (set_number > 0),
		reps INTEGER NOT NULL DEFAULT 0,
		weight REAL NOT NULL DEFAULT 0,
		UNIQUE (workout_exercise_id, set_number)
	);

	CREATE TABLE IF NOT EXISTS goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind TEXT NOT NULL CHECK (kind IN ('exercise_target', 'workout_frequency', 'weight_target')),
		exercise_id INTEGER REFERENCES exercises(id),
		target_value REAL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'achieved', 'expired')),
		current_progress REAL NOT NULL DEFAULT 0,
		starting_value REAL,
		achieved_on TEXT
	);

	CREATE TABLE IF NOT EXISTS daily_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		log_date TEXT NOT NULL,
		activity TEXT NOT NULL CHECK (activity IN ('workout', 'rest')),
		notes TEXT,
		UNIQUE (user_id, log_date)
	);

	CREATE TABLE IF NOT EXISTS streaks (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_streak INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
		longest_streak INTEGER NOT NULL DEFAULT 0 CHECK (longest_streak >= 0),
		last_activity_date TEXT,
		last_workout_date TEXT
	);

	CREATE TABLE IF NOT EXISTS milestones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind TEXT NOT NULL CHECK (kind IN ('personal_best', 'longest_streak', 'goal_achieved')),
		exercise_id INTEGER REFERENCES exercises(id),
		value REAL NOT NULL,
		achieved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS weight_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		weight_kg REAL NOT NULL CHECK (weight_kg > 0),
		recorded_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL,
		read INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS change_queue (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		record_id TEXT NOT NULL,
		operation TEXT NOT NULL CHECK (operation IN ('INSERT', 'UPDATE', 'DELETE')),
		enqueued_at TEXT NOT NULL,
		synced INTEGER NOT NULL DEFAULT 0,
		UNIQUE (table_name, record_id, operation)
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, workout_date DESC);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_exercise ON workout_exercises(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_workout_sets_parent ON workout_sets(workout_exercise_id);
	CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status);
	CREATE INDEX IF NOT EXISTS idx_daily_logs_user_date ON daily_logs(user_id, log_date DESC);
	CREATE INDEX IF NOT EXISTS idx_milestones_user ON milestones(user_id, achieved_at DESC);
	CREATE INDEX IF NOT EXISTS idx_weight_entries_user ON weight_entries(user_id, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, read);
	CREATE INDEX IF NOT EXISTS idx_change_queue_pending ON change_queue(synced, enqueued_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedCatalog is the built-in exercise reference data. Inserted once
// when the exercises table is empty; user databases never re-seed.
var seedCatalog = []models.Exercise{
	{Name: "Bench Press", MuscleGroup: models.MuscleChest, Description: "Barbell press on a flat bench"},
	{Name: "Incline Dumbbell Press", MuscleGroup: models.MuscleChest, Description: "Dumbbell press on an incline bench"},
	{Name: "Push-Up", MuscleGroup: models.MuscleChest, Description: "Bodyweight press from the floor"},
	{Name: "Deadlift", MuscleGroup: models.MuscleBack, Description: "Barbell lift from the floor to hip lockout"},
	{Name: "Barbell Row", MuscleGroup: models.MuscleBack, Description: "Bent-over barbell pull to the torso"},
	{Name: "Pull-Up", MuscleGroup: models.MuscleBack, Description: "Bodyweight vertical pull to the bar"},
	{Name: "Lat Pulldown", MuscleGroup: models.MuscleBack, Description: "Cable pull to the upper chest"},
	{Name: "Overhead Press", MuscleGroup: models.MuscleShoulders, Description: "Standing barbell press overhead"},
	{Name: "Lateral Raise", MuscleGroup: models.MuscleShoulders, Description: "Dumbbell raise to shoulder height"},
	{Name: "Barbell Curl", MuscleGroup: models.MuscleArms, Description: "Standing biceps curl"},
	{Name: "Tricep Dip", MuscleGroup: models.MuscleArms, Description: "Bodyweight dip on parallel bars"},
	{Name: "Hammer Curl", MuscleGroup: models.MuscleArms, Description: "Neutral-grip dumbbell curl"},
	{Name: "Squat", MuscleGroup: models.MuscleLegs, Description: "Barbell back squat"},
	{Name: "Leg Press", MuscleGroup: models.MuscleLegs, Description: "Machine press with both legs"},
	{Name: "Lunge", MuscleGroup: models.MuscleLegs, Description: "Alternating forward lunge"},
	{Name: "Romanian Deadlift", MuscleGroup: models.MuscleLegs, Description: "Hip hinge with slight knee bend"},
	{Name: "Calf Raise", MuscleGroup: models.MuscleLegs, Description: "Standing raise onto the toes"},
	{Name: "Plank", MuscleGroup: models.MuscleCore, Description: "Static hold on forearms"},
	{Name: "Crunch", MuscleGroup: models.MuscleCore, Description: "Abdominal curl on the floor"},
	{Name: "Russian Twist", MuscleGroup: models.MuscleCore, Description: "Seated rotation with or without weight"},
	{Name: "Burpee", MuscleGroup: models.MuscleFullBody, Description: "Squat thrust with jump"},
	{Name: "Kettlebell Swing", MuscleGroup: models.MuscleFullBody, Description: "Hip-drive swing to chest height"},
	{Name: "Running", MuscleGroup: models.MuscleCardio, Description: "Outdoor or treadmill run"},
	{Name: "Rowing", MuscleGroup: models.MuscleCardio, Description: "Rowing machine intervals"},
	{Name: "Cycling", MuscleGroup: models.MuscleCardio, Description: "Outdoor or stationary ride"},
}

// seedExercises loads the catalog when the table is empty.
func (s *Store) seedExercises() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ex := range seedCatalog {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO exercises (name, muscle_group, description) VALUES (?, ?, ?)",
			ex.Name, string(ex.MuscleGroup), ex.Description,
		)
		if err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

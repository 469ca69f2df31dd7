// ABOUTME: Export and import of the full store as a JSON envelope.
// ABOUTME: Import upserts by id, so replaying an export is idempotent.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

// ExportData is the full-store envelope written by export and read by
// import.
type ExportData struct {
	Version       string                 `json:"version"`
	ExportedAt    time.Time              `json:"exported_at"`
	Tool          string                 `json:"tool"`
	Users         []*models.User         `json:"users"`
	Exercises     []*models.Exercise     `json:"exercises"`
	Workouts      []*models.Workout      `json:"workouts"`
	Goals         []*models.Goal         `json:"goals"`
	DailyLogs     []*models.DailyLog     `json:"daily_logs"`
	Streaks       []*models.Streak       `json:"streaks"`
	Milestones    []*models.Milestone    `json:"milestones"`
	WeightEntries []*models.WeightEntry  `json:"weight_entries"`
	Notifications []*models.Notification `json:"notifications"`
}

// GetAllData retrieves everything for export. Workouts come back as
// full graphs.
func (s *Store) GetAllData(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fittrack",
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	data.Users = users

	exercises, err := s.ListExercises(ctx, nil)
	if err != nil {
		return nil, err
	}
	data.Exercises = exercises

	for _, u := range users {
		workouts, err := s.ListWorkouts(ctx, u.ID, 0)
		if err != nil {
			return nil, err
		}
		for _, w := range workouts {
			full, err := s.GetWorkout(ctx, w.ID)
			if err != nil {
				return nil, fmt.Errorf("load workout %d: %w", w.ID, err)
			}
			data.Workouts = append(data.Workouts, full)
		}

		goals, err := s.ListGoals(ctx, u.ID, nil)
		if err != nil {
			return nil, err
		}
		data.Goals = append(data.Goals, goals...)

		logs, err := s.ListDailyLogs(ctx, u.ID, 0)
		if err != nil {
			return nil, err
		}
		data.DailyLogs = append(data.DailyLogs, logs...)

		streak, err := s.GetStreak(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if streak.CurrentStreak > 0 || streak.LongestStreak > 0 || streak.LastActivityDate != nil {
			data.Streaks = append(data.Streaks, streak)
		}

		milestones, err := s.ListMilestones(ctx, u.ID, nil, 0)
		if err != nil {
			return nil, err
		}
		data.Milestones = append(data.Milestones, milestones...)

		weights, err := s.ListWeightEntries(ctx, u.ID, 0)
		if err != nil {
			return nil, err
		}
		data.WeightEntries = append(data.WeightEntries, weights...)

		notifications, err := s.ListNotifications(ctx, u.ID, false, 0)
		if err != nil {
			return nil, err
		}
		data.Notifications = append(data.Notifications, notifications...)
	}

	return data, nil
}

// ImportData loads an export envelope in one transaction. Rows upsert
// by primary key, so importing the same file twice changes nothing.
// Imports restore data rather than create it, so nothing is queued.
func (s *Store) ImportData(ctx context.Context, data *ExportData) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		for _, u := range data.Users {
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
				return fmt.Errorf("import user %s: %w", u.ID, err)
			}
		}

		for _, ex := range data.Exercises {
			_, err := tx.tx.Exec(`
				INSERT INTO exercises (id, name, muscle_group, description)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					muscle_group = excluded.muscle_group,
					description = excluded.description`,
				ex.ID, ex.Name, string(ex.MuscleGroup), ex.Description)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", ex.Name, err)
			}
		}

		for _, w := range data.Workouts {
			if err := tx.InsertWorkoutGraph(w); err != nil {
				return fmt.Errorf("import workout %d: %w", w.ID, err)
			}
		}

		for _, g := range data.Goals {
			var exerciseID, target, starting, achievedOn any
			if g.ExerciseID != nil {
				exerciseID = *g.ExerciseID
			}
			if g.TargetValue != nil {
				target = *g.TargetValue
			}
			if g.StartingValue != nil {
				starting = *g.StartingValue
			}
			if g.AchievedOn != nil {
				achievedOn = *g.AchievedOn
			}
			_, err := tx.tx.Exec(`
				INSERT INTO goals (id, user_id, kind, exercise_id, target_value, start_date,
					end_date, status, current_progress, starting_value, achieved_on)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					status = excluded.status,
					current_progress = excluded.current_progress,
					starting_value = excluded.starting_value,
					achieved_on = excluded.achieved_on`,
				g.ID, g.UserID, string(g.Kind), exerciseID, target, g.StartDate,
				g.EndDate, string(g.Status), g.CurrentProgress, starting, achievedOn)
			if err != nil {
				return fmt.Errorf("import goal %d: %w", g.ID, err)
			}
		}

		for _, d := range data.DailyLogs {
			if _, err := tx.UpsertDailyLog(d); err != nil {
				return fmt.Errorf("import daily log %s/%s: %w", d.UserID, d.Date, err)
			}
		}

		for _, st := range data.Streaks {
			if err := tx.PutStreak(st); err != nil {
				return fmt.Errorf("import streak %s: %w", st.UserID, err)
			}
		}

		for _, m := range data.Milestones {
			var exerciseID any
			if m.ExerciseID != nil {
				exerciseID = *m.ExerciseID
			}
			_, err := tx.tx.Exec(`
				INSERT INTO milestones (id, user_id, kind, exercise_id, value, achieved_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO NOTHING`,
				m.ID, m.UserID, string(m.Kind), exerciseID, m.Value, m.AchievedAt)
			if err != nil {
				return fmt.Errorf("import milestone %d: %w", m.ID, err)
			}
		}

		for _, w := range data.WeightEntries {
			_, err := tx.tx.Exec(`
				INSERT INTO weight_entries (id, user_id, weight_kg, recorded_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					weight_kg = excluded.weight_kg,
					recorded_at = excluded.recorded_at`,
				w.ID, w.UserID, w.WeightKg, w.RecordedAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("import weight entry %d: %w", w.ID, err)
			}
		}

		for _, n := range data.Notifications {
			read := 0
			if n.Read {
				read = 1
			}
			_, err := tx.tx.Exec(`
				INSERT INTO notifications (id, user_id, kind, message, created_at, read)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET read = excluded.read`,
				n.ID, n.UserID, string(n.Kind), n.Message,
				n.CreatedAt.Format(time.RFC3339), read)
			if err != nil {
				return fmt.Errorf("import notification %d: %w", n.ID, err)
			}
		}

		return nil
	})
}

// ExportJSON exports all data as indented JSON.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := s.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (s *Store) ImportJSON(ctx context.Context, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return s.ImportData(ctx, &data)
}

// ExportMarkdown renders one user's training history as Markdown.
func (s *Store) ExportMarkdown(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Training Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Athlete: %s\n\n", user.FullName()))

	workouts, err := s.ListWorkouts(ctx, userID, 0)
	if err != nil {
		return "", err
	}
	if len(workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Duration | Notes |\n")
		sb.WriteString("|------|----------|-------|\n")
		for _, w := range workouts {
			duration := ""
			if w.DurationMinutes != nil {
				duration = fmt.Sprintf("%d min", *w.DurationMinutes)
			}
			notes := ""
			if w.Notes != nil {
				notes = *w.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", w.Date, duration, notes))
		}
		sb.WriteString("\n")
	}

	weights, err := s.ListWeightEntries(ctx, userID, 0)
	if err != nil {
		return "", err
	}
	if len(weights) > 0 {
		sb.WriteString("## Body Weight\n\n")
		sb.WriteString("| Date | Weight |\n")
		sb.WriteString("|------|--------|\n")
		for _, w := range weights {
			sb.WriteString(fmt.Sprintf("| %s | %.1f kg |\n",
				w.RecordedAt.Format("2006-01-02 15:04"), w.WeightKg))
		}
		sb.WriteString("\n")
	}

	milestones, err := s.ListMilestones(ctx, userID, nil, 0)
	if err != nil {
		return "", err
	}
	if len(milestones) > 0 {
		sb.WriteString("## Milestones\n\n")
		sb.WriteString("| Date | Kind | Value |\n")
		sb.WriteString("|------|------|-------|\n")
		for _, m := range milestones {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f |\n", m.AchievedAt, m.Kind, m.Value))
		}
	}

	return sb.String(), nil
}

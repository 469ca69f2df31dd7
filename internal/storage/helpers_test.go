// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestStore and seed helpers for isolated stores.
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedTestUser(t *testing.T, s *Store) *models.User {
	t.Helper()
	u := models.NewUser("Test", "Athlete")
	if err := s.UpsertUser(context.Background(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func findExercise(t *testing.T, s *Store, name string) *models.Exercise {
	t.Helper()
	ex, err := s.FindExerciseByName(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to find exercise %q: %v", name, err)
	}
	return ex
}

// saveWorkout inserts a workout graph with one exercise and one set per
// weight, bypassing the ledger's derived effects.
func saveWorkout(t *testing.T, s *Store, userID, date string, exerciseID int64, weights ...float64) *models.Workout {
	t.Helper()
	w := models.NewWorkout(userID, date)
	we := w.AddExercise(exerciseID)
	for _, kg := range weights {
		we.AddSet(10, kg)
	}
	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.InsertWorkoutGraph(w)
	})
	if err != nil {
		t.Fatalf("failed to save workout: %v", err)
	}
	return w
}

// ABOUTME: Workout ledger: saves and deletes complete workout graphs,
// ABOUTME: then runs the derived effects (records, goals, streak, queue).
package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

// WorkoutLedger is the write path for workouts. The workout graph
// commits first in a single transaction; everything derived from it
// (personal bests, goal progress, the streak, the sync queue) runs
// afterward and is absorbed into warnings when it fails. A workout is
// never lost to a broken side effect.
type WorkoutLedger struct {
	store   *storage.Store
	goals   *GoalEngine
	streaks *StreakTracker
	log     *zap.Logger
}

// NewWorkoutLedger wires the ledger to its store and the engines it
// notifies after each committed write.
func NewWorkoutLedger(store *storage.Store, goals *GoalEngine, streaks *StreakTracker, log *zap.Logger) *WorkoutLedger {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkoutLedger{store: store, goals: goals, streaks: streaks, log: log}
}

// exerciseMax is the best positive set weight an exercise saw in one
// workout payload, in payload order.
type exerciseMax struct {
	exerciseID int64
	name       string
	weight     float64
}

// SaveCompleteWorkout persists a workout with its exercises and sets
// atomically, then detects personal bests, queues the change for sync,
// refreshes goals, and logs the day into the streak. Only the first
// step can fail the call; the rest degrade into outcome warnings.
func (l *WorkoutLedger) SaveCompleteWorkout(ctx context.Context, w *models.Workout) (*SaveOutcome, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if _, err := l.store.GetUser(ctx, w.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.Validationf("workout user", "user %s does not exist", w.UserID)
		}
		return nil, err
	}
	names, err := l.resolveExercises(ctx, w)
	if err != nil {
		return nil, err
	}

	if w.DurationMinutes != nil && *w.DurationMinutes == 0 {
		w.DurationMinutes = nil
	}
	maxes := collectMaxWeights(w, names)

	if err := l.store.WithTx(ctx, func(tx *storage.Tx) error {
		return tx.InsertWorkoutGraph(w)
	}); err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}

	outcome := &SaveOutcome{WorkoutID: w.ID}

	for _, m := range maxes {
		prior, hasPrior, err := l.store.BestSetWeight(ctx, w.UserID, m.exerciseID, w.ID)
		if err != nil {
			l.absorb(&outcome.Warnings, "personal-best", fmt.Errorf("%s: %w", m.name, err))
			continue
		}
		if hasPrior && m.weight <= prior {
			continue
		}
		pb := PersonalBest{
			ExerciseID:   m.exerciseID,
			ExerciseName: m.name,
			Weight:       m.weight,
		}
		if hasPrior {
			pb.PriorBest = prior
		}
		if err := l.recordPersonalBest(ctx, w.UserID, pb); err != nil {
			l.absorb(&outcome.Warnings, "personal-best", fmt.Errorf("%s: %w", m.name, err))
		}
		outcome.PersonalBests = append(outcome.PersonalBests, pb)
		if err := l.goals.OnPersonalBest(ctx, w.UserID, m.exerciseID, m.weight); err != nil {
			l.absorb(&outcome.Warnings, "goals", err)
		}
	}

	if err := l.store.Enqueue(ctx, storage.TableWorkouts, formatRecordID(w.ID), models.OpInsert); err != nil {
		l.absorb(&outcome.Warnings, "queue", err)
	}
	if err := l.goals.OnWorkoutSaved(ctx, w.UserID); err != nil {
		l.absorb(&outcome.Warnings, "goals", err)
	}
	if _, err := l.streaks.LogWorkout(ctx, w.UserID, w.Date); err != nil {
		l.absorb(&outcome.Warnings, "streak", err)
	}

	return outcome, nil
}

// DeleteWorkout removes a workout and its exercises and sets in one
// transaction, queues the deletion for sync, and re-counts frequency
// goals that may have just lost a workout.
func (l *WorkoutLedger) DeleteWorkout(ctx context.Context, id int64) (*DeleteOutcome, error) {
	w, err := l.store.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := l.store.WithTx(ctx, func(tx *storage.Tx) error {
		return tx.DeleteWorkout(id)
	}); err != nil {
		return nil, fmt.Errorf("delete workout %d: %w", id, err)
	}

	outcome := &DeleteOutcome{}
	if err := l.store.Enqueue(ctx, storage.TableWorkouts, formatRecordID(id), models.OpDelete); err != nil {
		l.absorb(&outcome.Warnings, "queue", err)
	}
	if err := l.goals.OnWorkoutSaved(ctx, w.UserID); err != nil {
		l.absorb(&outcome.Warnings, "goals", err)
	}
	return outcome, nil
}

// resolveExercises checks that every referenced exercise exists and
// returns their names keyed by id.
func (l *WorkoutLedger) resolveExercises(ctx context.Context, w *models.Workout) (map[int64]string, error) {
	names := make(map[int64]string, len(w.Exercises))
	for i := range w.Exercises {
		id := w.Exercises[i].ExerciseID
		if _, seen := names[id]; seen {
			continue
		}
		ex, err := l.store.GetExercise(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.Validationf("workout exercise", "exercise %d does not exist", id)
			}
			return nil, err
		}
		names[id] = ex.Name
	}
	return names, nil
}

// collectMaxWeights finds the heaviest positive set per exercise in the
// payload, preserving first-appearance order. Bodyweight sets (zero or
// negative weight) never produce personal bests.
func collectMaxWeights(w *models.Workout, names map[int64]string) []exerciseMax {
	var order []exerciseMax
	index := make(map[int64]int, len(w.Exercises))

	for i := range w.Exercises {
		we := &w.Exercises[i]
		for _, set := range we.Sets {
			if set.Weight <= 0 {
				continue
			}
			pos, seen := index[we.ExerciseID]
			if !seen {
				index[we.ExerciseID] = len(order)
				order = append(order, exerciseMax{
					exerciseID: we.ExerciseID,
					name:       names[we.ExerciseID],
					weight:     set.Weight,
				})
				continue
			}
			if set.Weight > order[pos].weight {
				order[pos].weight = set.Weight
			}
		}
	}
	return order
}

// recordPersonalBest writes the milestone for a new best and queues it.
// The milestone is dated today: the record happened now, even when the
// workout itself is backdated.
func (l *WorkoutLedger) recordPersonalBest(ctx context.Context, userID string, pb PersonalBest) error {
	m := models.NewMilestone(userID, models.MilestonePersonalBest, pb.Weight, models.Today()).
		WithExercise(pb.ExerciseID)
	if err := l.store.WithTx(ctx, func(tx *storage.Tx) error {
		return tx.InsertMilestone(m)
	}); err != nil {
		return err
	}
	if err := l.store.Enqueue(ctx, storage.TableMilestones, formatRecordID(m.ID), models.OpInsert); err != nil {
		l.log.Warn("queue personal-best milestone", zap.Int64("milestone", m.ID), zap.Error(err))
	}
	return nil
}

// absorb converts a secondary-effect failure into a warning. The
// primary write already committed; the caller still gets its result.
func (l *WorkoutLedger) absorb(warnings *[]EffectWarning, effect string, err error) {
	*warnings = append(*warnings, EffectWarning{Effect: effect, Err: err})
	l.log.Warn("secondary effect failed", zap.String("effect", effect), zap.Error(err))
}

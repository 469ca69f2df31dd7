// ABOUTME: Goal engine: creates goals, advances their progress from
// ABOUTME: workout/personal-best/weight events, and retires overdue ones.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

// GoalEngine owns the goal lifecycle. Goals only move forward: Active
// to Achieved or Expired, then nothing. Each achievement writes its
// milestone and notification in the same transaction as the status
// change, so a goal can never be achieved without its record.
type GoalEngine struct {
	store *storage.Store
	log   *zap.Logger
}

// NewGoalEngine returns an engine backed by store.
func NewGoalEngine(store *storage.Store, log *zap.Logger) *GoalEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalEngine{store: store, log: log}
}

// CreateGoal validates and persists a new Active goal. Weight-target
// goals without an explicit baseline capture the user's latest recorded
// weight so direction (cutting vs bulking) is known from day one.
func (e *GoalEngine) CreateGoal(ctx context.Context, g *models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Kind == models.GoalExerciseTarget {
		if _, err := e.store.GetExercise(ctx, *g.ExerciseID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.Validationf("goal exercise", "exercise %d does not exist", *g.ExerciseID)
			}
			return err
		}
	}
	if g.Kind == models.GoalWeightTarget && g.StartingValue == nil {
		kg, ok, err := e.store.LatestWeight(ctx, g.UserID)
		if err != nil {
			return fmt.Errorf("capture weight baseline: %w", err)
		}
		if ok {
			g.StartingValue = &kg
		}
	}
	return e.store.CreateGoal(ctx, g)
}

// OnWorkoutSaved recomputes every active frequency goal for the user
// from the actual workout count in its date range. Called after saves
// and after deletes, since frequency counts shrink when history does.
func (e *GoalEngine) OnWorkoutSaved(ctx context.Context, userID string) error {
	var queued []queuedChange
	err := e.store.WithTx(ctx, func(tx *storage.Tx) error {
		goals, err := tx.ActiveGoals(userID)
		if err != nil {
			return err
		}
		for _, g := range goals {
			if g.Kind != models.GoalWorkoutFrequency {
				continue
			}
			n, err := tx.CountWorkoutsInRange(userID, g.StartDate, g.EndDate)
			if err != nil {
				return err
			}
			q, err := e.applyProgress(tx, g, float64(n), "")
			if err != nil {
				return err
			}
			queued = append(queued, q...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh frequency goals: %w", err)
	}
	e.flush(ctx, queued)
	return nil
}

// OnPersonalBest pushes a new best single-set weight into every active
// exercise-target goal bound to that exercise.
func (e *GoalEngine) OnPersonalBest(ctx context.Context, userID string, exerciseID int64, newMax float64) error {
	exerciseName := fmt.Sprintf("exercise %d", exerciseID)
	if ex, err := e.store.GetExercise(ctx, exerciseID); err == nil {
		exerciseName = ex.Name
	}

	var queued []queuedChange
	err := e.store.WithTx(ctx, func(tx *storage.Tx) error {
		goals, err := tx.ActiveGoals(userID)
		if err != nil {
			return err
		}
		for _, g := range goals {
			if g.Kind != models.GoalExerciseTarget || g.ExerciseID == nil || *g.ExerciseID != exerciseID {
				continue
			}
			q, err := e.applyProgress(tx, g, newMax, exerciseName)
			if err != nil {
				return err
			}
			queued = append(queued, q...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh exercise goals: %w", err)
	}
	e.flush(ctx, queued)
	return nil
}

// MaintenanceReport summarizes one daily maintenance pass.
type MaintenanceReport struct {
	ExpiredGoals  int
	AchievedGoals int
	UpdatedGoals  int
}

// PerformDailyMaintenance expires active goals whose end date has
// passed, then refreshes weight-target progress from the latest body
// weight. Weight progress drifts between explicit events, so this is
// where a goal achieved by yesterday's weigh-in gets noticed.
func (e *GoalEngine) PerformDailyMaintenance(ctx context.Context, userID string) (*MaintenanceReport, error) {
	report := &MaintenanceReport{}
	today := models.Today()

	var queued []queuedChange
	err := e.store.WithTx(ctx, func(tx *storage.Tx) error {
		goals, err := tx.ActiveGoals(userID)
		if err != nil {
			return err
		}
		for _, g := range goals {
			if g.EndDate < today {
				expired, err := tx.MarkGoalExpired(g.ID)
				if err != nil {
					return err
				}
				if expired {
					report.ExpiredGoals++
					queued = append(queued, queuedChange{storage.TableGoals, formatRecordID(g.ID), models.OpUpdate})
				}
				continue
			}
			if g.Kind != models.GoalWeightTarget {
				continue
			}
			kg, ok, err := tx.LatestWeight(userID)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			q, err := e.applyProgress(tx, g, kg, "")
			if err != nil {
				return err
			}
			queued = append(queued, q...)
			if len(q) > 0 {
				if g.Status == models.GoalAchieved {
					report.AchievedGoals++
				} else {
					report.UpdatedGoals++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("daily goal maintenance: %w", err)
	}
	e.flush(ctx, queued)
	return report, nil
}

// applyProgress persists new progress for an active goal, transitioning
// it to Achieved when the target is satisfied. The milestone and
// notification ride the same transaction as the status change. It
// returns the queue entries to record once the transaction commits.
func (e *GoalEngine) applyProgress(tx *storage.Tx, g *models.Goal, progress float64, exerciseName string) ([]queuedChange, error) {
	if g.TargetSatisfiedBy(progress) {
		today := models.Today()
		achieved, err := tx.MarkGoalAchieved(g.ID, progress, today)
		if err != nil {
			return nil, err
		}
		if !achieved {
			return nil, nil
		}
		g.Status = models.GoalAchieved
		g.CurrentProgress = progress

		m := models.NewMilestone(g.UserID, models.MilestoneGoalAchieved, float64(g.ID), today)
		if g.ExerciseID != nil {
			m.WithExercise(*g.ExerciseID)
		}
		if err := tx.InsertMilestone(m); err != nil {
			return nil, err
		}
		n := models.NewNotification(g.UserID, models.NotificationGoalAchieved, achievementMessage(g, exerciseName, progress))
		if err := tx.InsertNotification(n); err != nil {
			return nil, err
		}
		return []queuedChange{
			{storage.TableGoals, formatRecordID(g.ID), models.OpUpdate},
			{storage.TableMilestones, formatRecordID(m.ID), models.OpInsert},
			{storage.TableNotifications, formatRecordID(n.ID), models.OpInsert},
		}, nil
	}

	if progress == g.CurrentProgress {
		return nil, nil
	}
	if err := tx.SetGoalProgress(g.ID, progress); err != nil {
		return nil, err
	}
	g.CurrentProgress = progress
	return []queuedChange{{storage.TableGoals, formatRecordID(g.ID), models.OpUpdate}}, nil
}

// achievementMessage renders the notification text for an achieved goal.
func achievementMessage(g *models.Goal, exerciseName string, progress float64) string {
	switch g.Kind {
	case models.GoalExerciseTarget:
		return fmt.Sprintf("Goal achieved: %s at %.1f kg", exerciseName, progress)
	case models.GoalWorkoutFrequency:
		return fmt.Sprintf("Goal achieved: %d workouts between %s and %s", int(progress), g.StartDate, g.EndDate)
	case models.GoalWeightTarget:
		return fmt.Sprintf("Goal achieved: body weight reached %.1f kg", progress)
	default:
		return "Goal achieved"
	}
}

// queuedChange is a change-queue entry deferred until after commit.
type queuedChange struct {
	table    string
	recordID string
	op       models.Operation
}

func (e *GoalEngine) flush(ctx context.Context, queued []queuedChange) {
	for _, q := range queued {
		if err := e.store.Enqueue(ctx, q.table, q.recordID, q.op); err != nil {
			e.log.Warn("queue goal change",
				zap.String("table", q.table),
				zap.String("record", q.recordID),
				zap.Error(err))
		}
	}
}

// formatRecordID renders an integer primary key for change-queue entries.
func formatRecordID(id int64) string {
	return strconv.FormatInt(id, 10)
}

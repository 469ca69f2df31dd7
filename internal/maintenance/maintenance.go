// ABOUTME: Daily maintenance: sweeps every user's goals for expiry and
// ABOUTME: weight-target drift, then prunes transmitted queue entries.
package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/tracker"
)

// Report aggregates one maintenance run across all users.
type Report struct {
	UsersSwept    int
	ExpiredGoals  int
	AchievedGoals int
	UpdatedGoals  int
	PrunedChanges int64
}

// Runner executes one maintenance pass. A failing user does not stop
// the sweep; the failure is logged and the pass moves on.
type Runner struct {
	store *storage.Store
	goals *tracker.GoalEngine
	log   *zap.Logger
}

// NewRunner wires a maintenance runner.
func NewRunner(store *storage.Store, goals *tracker.GoalEngine, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{store: store, goals: goals, log: log}
}

// RunOnce sweeps goals for every user and prunes synced queue entries.
func (r *Runner) RunOnce(ctx context.Context) (*Report, error) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users for maintenance: %w", err)
	}

	report := &Report{}
	for _, u := range users {
		rep, err := r.goals.PerformDailyMaintenance(ctx, u.ID)
		if err != nil {
			r.log.Warn("goal maintenance failed", zap.String("user", u.ID), zap.Error(err))
			continue
		}
		report.UsersSwept++
		report.ExpiredGoals += rep.ExpiredGoals
		report.AchievedGoals += rep.AchievedGoals
		report.UpdatedGoals += rep.UpdatedGoals
	}

	pruned, err := r.store.PruneSyncedChanges(ctx)
	if err != nil {
		r.log.Warn("prune synced changes failed", zap.Error(err))
	} else {
		report.PrunedChanges = pruned
	}

	r.log.Info("maintenance complete",
		zap.Int("users", report.UsersSwept),
		zap.Int("expired", report.ExpiredGoals),
		zap.Int("achieved", report.AchievedGoals),
		zap.Int64("pruned", report.PrunedChanges))
	return report, nil
}

// ABOUTME: Cron scheduler that runs maintenance unattended while a
// ABOUTME: long-lived server command is up.
package maintenance

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers maintenance on a cron schedule.
type Scheduler struct {
	runner   *Runner
	schedule string
	cron     *cron.Cron
	entryID  cron.EntryID
	log      *zap.Logger
}

// NewScheduler wires a scheduler around runner. The schedule is a
// standard five-field cron expression.
func NewScheduler(runner *Runner, schedule string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(),
		log:      log,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.schedule, s.trigger)
	if err != nil {
		return fmt.Errorf("schedule maintenance %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.cron.Start()
	s.log.Info("maintenance scheduled", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron loop. A running job finishes.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.log.Info("maintenance scheduler stopped")
}

func (s *Scheduler) trigger() {
	if _, err := s.runner.RunOnce(context.Background()); err != nil {
		s.log.Error("scheduled maintenance failed", zap.Error(err))
	}
}

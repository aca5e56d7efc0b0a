package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ReminderRunner runs one deposit-reminder sweep.
type ReminderRunner interface {
	SendDepositReminders(ctx context.Context) (int, error)
}

// Scheduler fires the reminder sweep on a cron spec. The sweep itself
// decides whether today is any policy's reminder day, so firing daily
// is enough.
type Scheduler struct {
	cron   *cron.Cron
	runner ReminderRunner
	logger zerolog.Logger
}

// New creates a Scheduler.
func New(runner ReminderRunner, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		logger: logger,
	}
}

// Register adds the reminder job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runReminders)
	return err
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runReminders() {
	sent, err := s.runner.SendDepositReminders(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("reminder sweep failed")
		return
	}

	s.logger.Info().Int("sent", sent).Msg("reminder sweep completed")
}

package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentSweepJob periodically drains the assignment pool. It is the
// safety net for orders left unassigned by rejections, failed attempts, or
// assignment having been disabled for a while.
type AssignmentSweepJob struct {
	handler commands.AssignPendingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentSweepJob creates a job that assigns pool orders every 30 seconds.
func NewAssignmentSweepJob(handler commands.AssignPendingCommandHandler, logger *slog.Logger) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_sweep_job"),
	}
}

// Start begins the assignment sweep on its 30-second schedule.
func (j *AssignmentSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignPendingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty pool, a disabled engine, and a partner drought are
			// expected outcomes, not faults.
			if !errors.Is(err, commands.ErrOrderNotFound) &&
				!errors.Is(err, commands.ErrAssignmentDisabled) &&
				!errors.Is(err, commands.ErrNoEligiblePartners) {
				j.logger.ErrorContext(ctx, "Assignment sweep failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment sweep started (running every 30 seconds)")
	return nil
}

// Stop stops the assignment sweep.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment sweep stopped")
}

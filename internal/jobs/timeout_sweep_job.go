package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TimeoutSweepJob releases assignments whose partner never responded within
// the acceptance window, then immediately tries to find each released order
// a new partner.
type TimeoutSweepJob struct {
	checkHandler  commands.CheckTimeoutsCommandHandler
	assignHandler commands.AssignPartnerCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewTimeoutSweepJob creates a job that sweeps stale assignments every 30 seconds.
func NewTimeoutSweepJob(
	checkHandler commands.CheckTimeoutsCommandHandler,
	assignHandler commands.AssignPartnerCommandHandler,
	logger *slog.Logger,
) *TimeoutSweepJob {
	return &TimeoutSweepJob{
		checkHandler:  checkHandler,
		assignHandler: assignHandler,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "timeout_sweep_job"),
	}
}

// Start begins the timeout sweep on its 30-second schedule.
func (j *TimeoutSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Timeout sweep started (running every 30 seconds)")
	return nil
}

// Stop stops the timeout sweep.
func (j *TimeoutSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Timeout sweep stopped")
}

func (j *TimeoutSweepJob) sweep() {
	ctx := context.Background()

	released, err := j.checkHandler.Handle(ctx, commands.NewCheckTimeoutsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Timeout sweep failed", "error", err)
		return
	}

	if len(released) == 0 {
		return
	}

	j.logger.InfoContext(ctx, "Released timed-out assignments", "count", len(released))

	for _, orderID := range released {
		cmd, cmdErr := commands.NewAssignPartnerCommand(orderID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invalid reassignment command", "order_id", orderID, "error", cmdErr)
			continue
		}

		if assignErr := j.assignHandler.Handle(ctx, cmd); assignErr != nil {
			// Leave the order in the pool for the assignment sweep.
			if !errors.Is(assignErr, commands.ErrAssignmentDisabled) &&
				!errors.Is(assignErr, commands.ErrNoEligiblePartners) {
				j.logger.ErrorContext(ctx, "Reassignment after timeout failed",
					"order_id", orderID, "error", assignErr)
			}
		}
	}
}

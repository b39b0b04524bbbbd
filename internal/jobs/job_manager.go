package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	timeoutSweepJob    *TimeoutSweepJob
	assignmentSweepJob *AssignmentSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	checkTimeoutsHandler commands.CheckTimeoutsCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	assignPendingHandler commands.AssignPendingCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		timeoutSweepJob:    NewTimeoutSweepJob(checkTimeoutsHandler, assignPartnerHandler, logger),
		assignmentSweepJob: NewAssignmentSweepJob(assignPendingHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.timeoutSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start timeout sweep job: %w", err)
	}

	if err := jm.assignmentSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.timeoutSweepJob.Stop()
		return fmt.Errorf("failed to start assignment sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.timeoutSweepJob.Stop()
	jm.assignmentSweepJob.Stop()
}

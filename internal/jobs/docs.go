// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for partner dispatch.
//
// # Available Jobs
//
// 1. TimeoutSweepJob - Runs every 30 seconds to release assignments the
// partner never answered and to reassign the released orders.
// 2. AssignmentSweepJob - Runs every 30 seconds to drain the pool of orders
// waiting for a partner.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(checkTimeoutsHandler, assignPartnerHandler, assignPendingHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both sweeps treat an empty pool, a disabled engine, and the absence of
// eligible partners as expected outcomes and stay quiet about them; anything
// else is logged. A failed job start stops any already running jobs.
package jobs

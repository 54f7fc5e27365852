// Package jobs provides scheduled background tasks for the sequencing service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// DeferralExpiryJob sweeps the active deferral record and drops a defer-until-next-completion
// record whose expiry has passed. The engine's own timer normally gets there first; the sweep
// covers wall clock jumps and timers lost to a suspended device.
//
// # Usage
//
//	sweep := jobs.NewDeferralExpiryJob(expireHandler, cfg.DeferralSweepSchedule, logger)
//	jobManager := jobs.NewJobManager(sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick. A job that fails to start
// stops the jobs already running.
package jobs

package jobs

import (
	"context"
	"log/slog"
	"time"

	"washroute/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDeferralSweepSchedule runs the sweep every second.
const DefaultDeferralSweepSchedule = "* * * * * *"

// DeferralExpirer handles the expiry command.
type DeferralExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireDeferralCommand) (bool, error)
}

// DeferralExpiryJob drops a defer-until-next-completion record whose expiry has passed.
// The engine arms a timer for every such record; the sweep catches expiries the timer missed,
// for example after the wall clock jumped forward.
type DeferralExpiryJob struct {
	handler  DeferralExpirer
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeferralExpiryJob creates the sweep. An empty schedule means DefaultDeferralSweepSchedule.
func NewDeferralExpiryJob(handler DeferralExpirer, schedule string, logger *slog.Logger) *DeferralExpiryJob {
	if schedule == "" {
		schedule = DefaultDeferralSweepSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeferralExpiryJob{
		handler:  handler,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "deferral_expiry_job"),
	}
}

// WithClock replaces time.Now for the sweep.
func (j *DeferralExpiryJob) WithClock(now func() time.Time) *DeferralExpiryJob {
	if now != nil {
		j.now = now
	}
	return j
}

// Start schedules the sweep.
func (j *DeferralExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Deferral expiry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Deferral expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep.
func (j *DeferralExpiryJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewExpireDeferralCommand(j.now())
	if err != nil {
		return err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if expired {
		j.logger.InfoContext(ctx, "Deferral expired by sweep")
	}
	return nil
}

// Stop stops the sweep and waits for a running one to finish.
func (j *DeferralExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Deferral expiry job stopped")
}

package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StaleDealJobName is the name of the stale deal reminder job
const StaleDealJobName = "stale_deals"

// StaleDealReminder defines the interface for sending stale deal reminders.
// This interface allows the job to call the service without importing the
// service package directly.
type StaleDealReminder interface {
	// SendStaleDealReminders notifies admins about deals stuck on an
	// admin-gated status. Returns the number of notifications created.
	SendStaleDealReminders(ctx context.Context) (created int, err error)
}

// StaleDealJob nags admins about deals that have sat on an admin-gated
// status past the stale window.
type StaleDealJob struct {
	reminderService StaleDealReminder
	logger          *zap.Logger
	timeout         time.Duration
}

// NewStaleDealJob creates a new stale deal reminder job.
// The timeout controls how long the scan is allowed to run.
func NewStaleDealJob(reminderService StaleDealReminder, logger *zap.Logger, timeout time.Duration) *StaleDealJob {
	return &StaleDealJob{
		reminderService: reminderService,
		logger:          logger,
		timeout:         timeout,
	}
}

// Run executes the stale deal reminder job.
// This is called by the scheduler according to the cron expression.
func (j *StaleDealJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting stale deal reminder job")

	created, err := j.reminderService.SendStaleDealReminders(ctx)
	if err != nil {
		j.logger.Error("stale deal reminder job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("stale deal reminder job completed",
		zap.Int("notifications_created", created),
		zap.Duration("duration", time.Since(start)))
}

// RegisterStaleDealJob registers the stale deal reminder job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "0 7 * * *" for 07:00 daily).
func RegisterStaleDealJob(scheduler *Scheduler, reminderService StaleDealReminder, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewStaleDealJob(reminderService, logger, timeout)
	return scheduler.AddJob(StaleDealJobName, cronExpr, job.Run)
}

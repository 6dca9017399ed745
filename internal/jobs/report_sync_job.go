package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReportSyncJobName is the name of the reporting sync job
const ReportSyncJobName = "report_sync"

// FinancialSummarySync defines the interface for pushing deal financial
// summaries to the reporting database. This interface allows the job to
// call the service without importing the service package directly.
type FinancialSummarySync interface {
	// SyncFinancialSummaries pushes every deal's financial summary to the
	// reporting table. Returns counts for successfully synced and failed rows.
	SyncFinancialSummaries(ctx context.Context) (synced int, failed int, err error)
}

// ReportSyncJob pushes deal financial summaries to the corporate
// reporting database on a schedule.
type ReportSyncJob struct {
	syncService FinancialSummarySync
	logger      *zap.Logger
	timeout     time.Duration
}

// NewReportSyncJob creates a new reporting sync job.
// The timeout controls how long the sync operation is allowed to run.
func NewReportSyncJob(syncService FinancialSummarySync, logger *zap.Logger, timeout time.Duration) *ReportSyncJob {
	return &ReportSyncJob{
		syncService: syncService,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes the reporting sync job.
// This is called by the scheduler according to the cron expression.
func (j *ReportSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting reporting sync job")

	synced, failed, err := j.syncService.SyncFinancialSummaries(ctx)
	if err != nil {
		j.logger.Error("reporting sync failed",
			zap.Error(err),
			zap.Int("synced", synced),
			zap.Int("failed", failed),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("reporting sync job completed",
		zap.Int("synced", synced),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterReportSyncJob registers the reporting sync job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "30 1 * * *" for 01:30 daily).
func RegisterReportSyncJob(scheduler *Scheduler, syncService FinancialSummarySync, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewReportSyncJob(syncService, logger, timeout)
	return scheduler.AddJob(ReportSyncJobName, cronExpr, job.Run)
}

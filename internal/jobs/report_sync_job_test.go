package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/jobs"
)

type fakeSummarySync struct {
	called   bool
	deadline bool
	synced   int
	failed   int
	err      error
}

func (f *fakeSummarySync) SyncFinancialSummaries(ctx context.Context) (int, int, error) {
	f.called = true
	_, f.deadline = ctx.Deadline()
	return f.synced, f.failed, f.err
}

func TestReportSyncJob_Run(t *testing.T) {
	sync := &fakeSummarySync{synced: 12, failed: 1}
	job := jobs.NewReportSyncJob(sync, zap.NewNop(), time.Minute)

	job.Run()

	assert.True(t, sync.called)
	assert.True(t, sync.deadline, "job should run the service under a timeout")
}

func TestReportSyncJob_Run_ServiceError(t *testing.T) {
	sync := &fakeSummarySync{err: errors.New("reporting unreachable")}
	job := jobs.NewReportSyncJob(sync, zap.NewNop(), time.Minute)

	job.Run()

	assert.True(t, sync.called)
}

func TestRegisterReportSyncJob(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())

	err := jobs.RegisterReportSyncJob(scheduler, &fakeSummarySync{}, zap.NewNop(), "30 1 * * *", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, scheduler.GetJobNames(), jobs.ReportSyncJobName)
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

func TestDashboardService_GetPipelineSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewDashboardService(
		repository.NewDealRepository(db),
		workflow.NewEngine(workflow.DefaultPipeline()),
		zap.NewNop(),
	)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)

	createTestDeal(t, db, rep, domain.DealStatusLead)
	createTestDeal(t, db, rep, domain.DealStatusLead)
	createTestDeal(t, db, rep, domain.DealStatusACVCollected)
	createTestDeal(t, db, rep, domain.DealStatusAdjusterMet)
	createTestDeal(t, db, rep, domain.DealStatusComplete)

	t.Run("admin gets the rollup", func(t *testing.T) {
		summary, err := svc.GetPipelineSummary(adminContext())
		require.NoError(t, err)

		assert.Equal(t, int64(5), summary.TotalDeals)

		require.Len(t, summary.Statuses, 17, "every status appears, zeros included")
		assert.Equal(t, domain.DealStatusLead, summary.Statuses[0].Status)
		assert.Equal(t, "New Lead", summary.Statuses[0].Label)
		assert.Equal(t, int64(2), summary.Statuses[0].Count)
		assert.Equal(t, domain.DealStatusPaid, summary.Statuses[16].Status)
		assert.Zero(t, summary.Statuses[16].Count)

		require.Len(t, summary.Phases, 4)
		assert.Equal(t, domain.DealPhaseSign, summary.Phases[0].Phase)
		assert.Equal(t, int64(3), summary.Phases[0].Count)
		assert.Equal(t, domain.DealPhaseBuild, summary.Phases[1].Phase)
		assert.Equal(t, int64(1), summary.Phases[1].Count)
		assert.Equal(t, domain.DealPhaseFinalizing, summary.Phases[2].Phase)
		assert.Zero(t, summary.Phases[2].Count)
		assert.Equal(t, domain.DealPhaseComplete, summary.Phases[3].Phase)
		assert.Equal(t, int64(1), summary.Phases[3].Count)

		assert.Equal(t, int64(2), summary.AwaitingAdminCount, "adjuster_met and complete are parked")
		assert.Len(t, summary.AwaitingAdmin, 2)
	})

	t.Run("rep is denied", func(t *testing.T) {
		_, err := svc.GetPipelineSummary(repContext(rep))
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.GetPipelineSummary(context.Background())
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

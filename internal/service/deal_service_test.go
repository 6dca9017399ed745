package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

func newTestDealService(db *gorm.DB, adminUserIDs []uuid.UUID) *service.DealService {
	engine := workflow.NewEngine(workflow.DefaultPipeline())
	return service.NewDealService(
		repository.NewDealRepository(db),
		repository.NewRepRepository(db),
		repository.NewDealStatusHistoryRepository(db),
		repository.NewNotificationRepository(db),
		engine,
		workflow.NewCalculator(nil),
		adminUserIDs,
		zap.NewNop(),
	)
}

func createTestRep(t *testing.T, db *gorm.DB, name string, level domain.CommissionLevel) *domain.Rep {
	t.Helper()
	rep := &domain.Rep{
		Name:            name,
		Email:           name + "@ridgeline.example",
		CommissionLevel: level,
		Active:          true,
	}
	require.NoError(t, db.Create(rep).Error)
	return rep
}

func createTestDeal(t *testing.T, db *gorm.DB, rep *domain.Rep, status domain.DealStatus) *domain.Deal {
	t.Helper()
	deal := &domain.Deal{
		Status:        status,
		Revision:      1,
		RepID:         rep.ID,
		RepName:       rep.Name,
		HomeownerName: "Pat Miller",
		Address:       "712 Live Oak Dr",
	}
	require.NoError(t, db.Create(deal).Error)
	return deal
}

func repContext(rep *domain.Rep) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: rep.Name,
		Email:       rep.Email,
		Role:        domain.RoleRep,
		RepID:       &rep.ID,
	})
}

func adminContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Dana Whitfield",
		Email:       "dana@ridgeline.example",
		Role:        domain.RoleAdmin,
	})
}

func crewContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Crew Lead",
		Role:        domain.RoleCrew,
	})
}

func TestDealService_CreateDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)

	t.Run("rep defaults to themselves", func(t *testing.T) {
		deal, err := svc.CreateDeal(repContext(rep), &domain.CreateDealRequest{
			HomeownerName: "Pat Miller",
			Address:       "712 Live Oak Dr",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.DealStatusLead, deal.Status)
		assert.Equal(t, int64(1), deal.Revision)
		assert.Equal(t, rep.ID, deal.RepID)
		assert.Equal(t, "Alex Reyes", deal.RepName)

		var history []domain.DealStatusHistory
		require.NoError(t, db.Where("deal_id = ?", deal.ID).Find(&history).Error)
		require.Len(t, history, 1, "creation is recorded in the trail")
		assert.Nil(t, history[0].FromStatus)
		assert.Equal(t, domain.DealStatusLead, history[0].ToStatus)
	})

	t.Run("rep cannot create for another rep", func(t *testing.T) {
		other := createTestRep(t, db, "Jordan Vega", domain.CommissionLevelJunior)
		_, err := svc.CreateDeal(repContext(rep), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
			RepID:         &other.ID,
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("admin must name a rep", func(t *testing.T) {
		_, err := svc.CreateDeal(adminContext(), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("admin creates for a named rep", func(t *testing.T) {
		deal, err := svc.CreateDeal(adminContext(), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
			RepID:         &rep.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, rep.ID, deal.RepID)
	})

	t.Run("inactive rep is rejected", func(t *testing.T) {
		retired := createTestRep(t, db, "Riley Nash", domain.CommissionLevelJunior)
		require.NoError(t, db.Model(retired).Update("active", false).Error)

		_, err := svc.CreateDeal(adminContext(), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
			RepID:         &retired.ID,
		})
		assert.ErrorIs(t, err, service.ErrRepInactive)
	})

	t.Run("crew cannot create deals", func(t *testing.T) {
		_, err := svc.CreateDeal(crewContext(), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
			RepID:         &rep.ID,
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.CreateDeal(context.Background(), &domain.CreateDealRequest{
			HomeownerName: "Sam Ortiz",
			Address:       "44 Cedar Ln",
		})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestDealService_GetDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	deal := createTestDeal(t, db, rep, domain.DealStatusLead)

	got, err := svc.GetDeal(repContext(rep), deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, got.ID)
	assert.Equal(t, "Pat Miller", got.HomeownerName)

	_, err = svc.GetDeal(repContext(rep), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDealService_ListDeals(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)

	createTestDeal(t, db, rep, domain.DealStatusLead)
	createTestDeal(t, db, rep, domain.DealStatusACVCollected)
	createTestDeal(t, db, rep, domain.DealStatusAdjusterMet)

	t.Run("filters by phase", func(t *testing.T) {
		phase := domain.DealPhaseBuild
		page, err := svc.ListDeals(ctx, service.DealListOptions{Phase: &phase})
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Total)
		deals := page.Data.([]domain.DealDTO)
		require.Len(t, deals, 1)
		assert.Equal(t, domain.DealStatusACVCollected, deals[0].Status)
	})

	t.Run("awaiting admin only", func(t *testing.T) {
		page, err := svc.ListDeals(ctx, service.DealListOptions{AwaitingAdmin: true})
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Total)
		deals := page.Data.([]domain.DealDTO)
		require.Len(t, deals, 1)
		assert.Equal(t, domain.DealStatusAdjusterMet, deals[0].Status)
	})

	t.Run("impossible combination returns an empty page", func(t *testing.T) {
		// lead is never admin-gated, so the intersection is empty.
		page, err := svc.ListDeals(ctx, service.DealListOptions{
			Statuses:      []domain.DealStatus{domain.DealStatusLead},
			AwaitingAdmin: true,
		})
		require.NoError(t, err)

		assert.Zero(t, page.Total)
		assert.Empty(t, page.Data.([]domain.DealDTO))
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := svc.ListDeals(ctx, service.DealListOptions{
			Statuses: []domain.DealStatus{"negotiating"},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestDealService_UpdateDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)

	t.Run("edits fields and bumps the revision", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)
		phone := "555-0199"

		updated, err := svc.UpdateDeal(repContext(rep), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{HomeownerPhone: &phone},
		})
		require.NoError(t, err)

		assert.Equal(t, "555-0199", updated.HomeownerPhone)
		assert.Equal(t, int64(2), updated.Revision)
		assert.Equal(t, domain.DealStatusLead, updated.Status, "field edits never move the status")
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)
		phone := "555-0199"
		stale := int64(42)

		_, err := svc.UpdateDeal(repContext(rep), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{HomeownerPhone: &phone},
			Revision:  &stale,
		})
		assert.ErrorIs(t, err, service.ErrRevisionConflict)
	})

	t.Run("rep cannot touch financials after approval", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusApproved)
		approved := time.Now().UTC()
		require.NoError(t, db.Model(deal).Update("approved_date", approved).Error)

		rcv := decimal.RequireFromString("18000.00")
		_, err := svc.UpdateDeal(repContext(rep), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{RCV: &rcv},
		})
		assert.ErrorIs(t, err, service.ErrFinancialsLocked)

		// Non-financial edits stay open.
		phone := "555-0142"
		_, err = svc.UpdateDeal(repContext(rep), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{HomeownerPhone: &phone},
		})
		assert.NoError(t, err)
	})

	t.Run("admin can correct financials after approval", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusApproved)
		approved := time.Now().UTC()
		require.NoError(t, db.Model(deal).Update("approved_date", approved).Error)

		rcv := decimal.RequireFromString("18000.00")
		updated, err := svc.UpdateDeal(adminContext(), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{RCV: &rcv},
		})
		require.NoError(t, err)
		require.NotNil(t, updated.RCV)
		assert.Equal(t, "18000.00", updated.RCV.StringFixed(2))
	})

	t.Run("rep cannot edit another rep's deal", func(t *testing.T) {
		other := createTestRep(t, db, "Jordan Vega", domain.CommissionLevelJunior)
		deal := createTestDeal(t, db, other, domain.DealStatusLead)
		phone := "555-0199"

		_, err := svc.UpdateDeal(repContext(rep), deal.ID, &domain.UpdateDealRequest{
			DealPatch: domain.DealPatch{HomeownerPhone: &phone},
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestDealService_AdvanceDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)

	t.Run("advances when the step is satisfied", func(t *testing.T) {
		svc := newTestDealService(db, nil)
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)
		inspection := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

		result, err := svc.AdvanceDeal(ctx, deal.ID, &domain.AdvanceDealRequest{
			DealPatch: domain.DealPatch{InspectionDate: &inspection},
		})
		require.NoError(t, err)

		assert.True(t, result.StatusChanged)
		require.NotNil(t, result.FromStatus)
		assert.Equal(t, domain.DealStatusLead, *result.FromStatus)
		require.NotNil(t, result.ToStatus)
		assert.Equal(t, domain.DealStatusInspectionScheduled, *result.ToStatus)
		assert.True(t, result.Check.Satisfied)

		assert.Equal(t, domain.DealStatusInspectionScheduled, result.Deal.Status)
		assert.Equal(t, int64(2), result.Deal.Revision)
		require.NotNil(t, result.Deal.InspectionDate, "the scheduled date survives the transition")

		var history []domain.DealStatusHistory
		require.NoError(t, db.Where("deal_id = ?", deal.ID).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, domain.TransitionSourceSave, history[0].Source)
	})

	t.Run("blocked attempt still saves fields", func(t *testing.T) {
		svc := newTestDealService(db, nil)
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)
		phone := "555-0199"

		result, err := svc.AdvanceDeal(ctx, deal.ID, &domain.AdvanceDealRequest{
			DealPatch: domain.DealPatch{HomeownerPhone: &phone},
		})
		require.NoError(t, err)

		assert.False(t, result.StatusChanged)
		assert.False(t, result.Check.Satisfied)
		require.NotEmpty(t, result.Check.Blockers)
		assert.Equal(t, "inspection_date", result.Check.Blockers[0].Field)

		assert.Equal(t, domain.DealStatusLead, result.Deal.Status)
		assert.Equal(t, "555-0199", result.Deal.HomeownerPhone)
		assert.Equal(t, int64(2), result.Deal.Revision)
	})

	t.Run("parks at the admin gate", func(t *testing.T) {
		svc := newTestDealService(db, nil)
		deal := createTestDeal(t, db, rep, domain.DealStatusAdjusterMet)

		result, err := svc.AdvanceDeal(ctx, deal.ID, &domain.AdvanceDealRequest{})
		require.NoError(t, err)

		assert.True(t, result.AwaitingAdmin)
		assert.False(t, result.StatusChanged)
		assert.Equal(t, domain.DealStatusAdjusterMet, result.Deal.Status)
		assert.Equal(t, int64(1), result.Deal.Revision, "nothing to persist, nothing written")
	})

	t.Run("arrival at an admin step notifies the office", func(t *testing.T) {
		adminIDs := []uuid.UUID{uuid.New(), uuid.New()}
		svc := newTestDealService(db, adminIDs)

		rcv := decimal.RequireFromString("21000.00")
		acv := decimal.RequireFromString("14000.00")
		deductible := decimal.RequireFromString("2000.00")
		depreciation := decimal.RequireFromString("7000.00")
		meeting := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
		deal := &domain.Deal{
			Status:              domain.DealStatusClaimFiled,
			Revision:            1,
			RepID:               rep.ID,
			HomeownerName:       "Pat Miller",
			Address:             "712 Live Oak Dr",
			RCV:                 &rcv,
			ACV:                 &acv,
			Deductible:          &deductible,
			Depreciation:        &depreciation,
			AdjusterName:        "Chris Boone",
			AdjusterMeetingDate: &meeting,
		}
		require.NoError(t, db.Create(deal).Error)

		statement := "aa/bb/lost-statement.pdf"
		result, err := svc.AdvanceDeal(ctx, deal.ID, &domain.AdvanceDealRequest{
			DealPatch: domain.DealPatch{LostStatementURL: &statement},
		})
		require.NoError(t, err)

		require.NotNil(t, result.ToStatus)
		assert.Equal(t, domain.DealStatusAdjusterMet, *result.ToStatus)

		var notifications []domain.Notification
		require.NoError(t, db.Where("entity_id = ?", deal.ID).Find(&notifications).Error)
		require.Len(t, notifications, 2, "one per admin account")
		assert.Equal(t, string(domain.NotificationTypeAwaitingAdmin), notifications[0].Type)
	})
}

func TestDealService_AdminAdvanceDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	svc := newTestDealService(db, nil)

	t.Run("rep is denied", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusAdjusterMet)
		_, err := svc.AdminAdvanceDeal(repContext(rep), deal.ID)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("moves a parked deal", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusAdjusterMet)

		result, err := svc.AdminAdvanceDeal(adminContext(), deal.ID)
		require.NoError(t, err)

		assert.True(t, result.StatusChanged)
		require.NotNil(t, result.ToStatus)
		assert.Equal(t, domain.DealStatusAwaitingApproval, *result.ToStatus)

		var history []domain.DealStatusHistory
		require.NoError(t, db.Where("deal_id = ?", deal.ID).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, domain.TransitionSourceAdmin, history[0].Source)
	})

	t.Run("cannot skip missing data", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusApproved)

		result, err := svc.AdminAdvanceDeal(adminContext(), deal.ID)
		require.NoError(t, err)

		assert.False(t, result.StatusChanged)
		assert.False(t, result.Check.Satisfied)
		require.NotEmpty(t, result.Check.Blockers)
		assert.Equal(t, "acv_receipt_url", result.Check.Blockers[0].Field)
		assert.Equal(t, domain.DealStatusApproved, result.Deal.Status)
	})

	t.Run("payout transition marks the commission paid", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusComplete)
		percent := decimal.NewFromInt(10)
		require.NoError(t, db.Create(&domain.DealCommission{
			DealID:            deal.ID,
			CommissionPercent: &percent,
		}).Error)

		result, err := svc.AdminAdvanceDeal(adminContext(), deal.ID)
		require.NoError(t, err)

		require.NotNil(t, result.ToStatus)
		assert.Equal(t, domain.DealStatusPaid, *result.ToStatus)
		assert.True(t, result.Deal.CommissionPaid)
		require.NotNil(t, result.Deal.CommissionPaidDate)

		require.Len(t, result.Deal.DealCommissions, 1)
		assert.True(t, result.Deal.DealCommissions[0].Paid)
		require.NotNil(t, result.Deal.DealCommissions[0].PaidDate)
	})

	t.Run("terminal deal reports as terminal", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusPaid)

		result, err := svc.AdminAdvanceDeal(adminContext(), deal.ID)
		require.NoError(t, err)

		assert.True(t, result.Terminal)
		assert.False(t, result.StatusChanged)
		assert.Equal(t, domain.DealStatusPaid, result.Deal.Status)
	})
}

func TestDealService_GetDealWorkflow(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	deal := createTestDeal(t, db, rep, domain.DealStatusLead)

	snapshot, err := svc.GetDealWorkflow(repContext(rep), deal.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.DealStatusLead, snapshot.Status)
	assert.Equal(t, domain.DealPhaseSign, snapshot.Phase)
	assert.Zero(t, snapshot.PercentComplete)
	assert.False(t, snapshot.Check.Satisfied)
	require.NotNil(t, snapshot.NextStatus)
	assert.Equal(t, domain.DealStatusInspectionScheduled, *snapshot.NextStatus)

	_, err = svc.GetDealWorkflow(repContext(rep), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDealService_GetCommissionBreakdown(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)

	rcv := decimal.RequireFromString("10000.00")
	deal := createTestDeal(t, db, rep, domain.DealStatusApproved)
	require.NoError(t, db.Model(deal).Update("rcv", rcv).Error)

	t.Run("owning rep sees their payout", func(t *testing.T) {
		breakdown, err := svc.GetCommissionBreakdown(repContext(rep), deal.ID)
		require.NoError(t, err)

		require.NotNil(t, breakdown.SalesTax)
		assert.Equal(t, "825.00", breakdown.SalesTax.StringFixed(2))
		require.NotNil(t, breakdown.BaseAmount)
		assert.Equal(t, "9175.00", breakdown.BaseAmount.StringFixed(2))
		assert.Equal(t, workflow.PercentSourceLevel, breakdown.PercentSource)
		require.NotNil(t, breakdown.CommissionAmount)
		assert.Equal(t, "917.50", breakdown.CommissionAmount.StringFixed(2))
	})

	t.Run("another rep is denied", func(t *testing.T) {
		other := createTestRep(t, db, "Jordan Vega", domain.CommissionLevelJunior)
		_, err := svc.GetCommissionBreakdown(repContext(other), deal.ID)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("admin sees any deal", func(t *testing.T) {
		_, err := svc.GetCommissionBreakdown(adminContext(), deal.ID)
		assert.NoError(t, err)
	})
}

func TestDealService_UpsertCommission(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	deal := createTestDeal(t, db, rep, domain.DealStatusApproved)

	t.Run("admin records a percent", func(t *testing.T) {
		percent := decimal.NewFromInt(12)
		dto, err := svc.UpsertCommission(adminContext(), deal.ID, &domain.UpsertCommissionRequest{
			CommissionPercent: &percent,
		})
		require.NoError(t, err)

		require.NotNil(t, dto.CommissionPercent)
		assert.Equal(t, "12", dto.CommissionPercent.String())
		assert.False(t, dto.Paid)
	})

	t.Run("requires percent or amount", func(t *testing.T) {
		_, err := svc.UpsertCommission(adminContext(), deal.ID, &domain.UpsertCommissionRequest{})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rep is denied", func(t *testing.T) {
		percent := decimal.NewFromInt(15)
		_, err := svc.UpsertCommission(repContext(rep), deal.ID, &domain.UpsertCommissionRequest{
			CommissionPercent: &percent,
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestDealService_GetStatusHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestDealService(db, nil)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)

	created, err := svc.CreateDeal(ctx, &domain.CreateDealRequest{
		HomeownerName: "Pat Miller",
		Address:       "712 Live Oak Dr",
	})
	require.NoError(t, err)

	inspection := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	_, err = svc.AdvanceDeal(ctx, created.ID, &domain.AdvanceDealRequest{
		DealPatch: domain.DealPatch{InspectionDate: &inspection},
	})
	require.NoError(t, err)

	trail, err := svc.GetStatusHistory(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, trail, 2)
	assert.Equal(t, domain.DealStatusInspectionScheduled, trail[0].ToStatus, "newest first")
	require.NotNil(t, trail[0].FromStatus)
	assert.Equal(t, domain.DealStatusLead, *trail[0].FromStatus)
	assert.Equal(t, domain.DealStatusLead, trail[1].ToStatus)
	assert.Nil(t, trail[1].FromStatus)

	_, err = svc.GetStatusHistory(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
)

func newTestAuditLogService(db *gorm.DB) *service.AuditLogService {
	return service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
}

func recordEntry(t *testing.T, svc *service.AuditLogService, method, path, entityType string, entityID *uuid.UUID) {
	t.Helper()
	svc.Record(context.Background(), &domain.AuditLog{
		UserID:     uuid.New().String(),
		UserName:   "Dana Whitfield",
		UserRole:   domain.RoleAdmin,
		Method:     method,
		Path:       path,
		EntityType: entityType,
		EntityID:   entityID,
		StatusCode: http.StatusOK,
		IPAddress:  "10.0.0.9",
	})
}

func TestAuditLogService_Record(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditLogService(db)

	dealID := uuid.New()
	recordEntry(t, svc, http.MethodPost, "/api/v1/deals/"+dealID.String()+"/advance", "deal", &dealID)

	var rows []domain.AuditLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "deal", rows[0].EntityType)
	require.NotNil(t, rows[0].EntityID)
	assert.Equal(t, dealID, *rows[0].EntityID)
	assert.Equal(t, domain.RoleAdmin, rows[0].UserRole)
}

func TestAuditLogService_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditLogService(db)

	dealID := uuid.New()
	recordEntry(t, svc, http.MethodPost, "/api/v1/deals", "deal", nil)
	recordEntry(t, svc, http.MethodPatch, "/api/v1/deals/"+dealID.String(), "deal", &dealID)
	recordEntry(t, svc, http.MethodPost, "/api/v1/reps", "rep", nil)

	t.Run("admin sees everything", func(t *testing.T) {
		page, err := svc.List(adminContext(), nil, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("method filter", func(t *testing.T) {
		page, err := svc.List(adminContext(), &repository.AuditLogFilter{Method: http.MethodPatch}, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("entity filter", func(t *testing.T) {
		page, err := svc.List(adminContext(), &repository.AuditLogFilter{EntityType: "rep"}, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("page size is clamped", func(t *testing.T) {
		page, err := svc.List(adminContext(), nil, 0, 10000)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 200, page.PageSize)
	})

	t.Run("rep is refused", func(t *testing.T) {
		rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
		_, err := svc.List(repContext(rep), nil, 1, 50)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("anonymous is refused", func(t *testing.T) {
		_, err := svc.List(context.Background(), nil, 1, 50)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestAuditLogService_ListByEntity(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditLogService(db)

	dealID := uuid.New()
	otherID := uuid.New()
	recordEntry(t, svc, http.MethodPatch, "/api/v1/deals/"+dealID.String(), "deal", &dealID)
	recordEntry(t, svc, http.MethodPost, "/api/v1/deals/"+dealID.String()+"/advance", "deal", &dealID)
	recordEntry(t, svc, http.MethodPatch, "/api/v1/deals/"+otherID.String(), "deal", &otherID)

	trail, err := svc.ListByEntity(adminContext(), "deal", dealID, 50)
	require.NoError(t, err)
	assert.Len(t, trail, 2)
	for _, entry := range trail {
		require.NotNil(t, entry.EntityID)
		assert.Equal(t, dealID, *entry.EntityID)
		assert.NotEmpty(t, entry.CreatedAt)
	}

	_, err = svc.ListByEntity(crewContext(), "deal", dealID, 50)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestAuditLogService_RecordSurvivesFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestAuditLogService(db)

	// A canceled context fails the insert; Record must swallow it
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, &domain.AuditLog{
		Method: http.MethodPost,
		Path:   "/api/v1/deals",
	})

	// Nothing written, nothing panicked
	var count int64
	db.Model(&domain.AuditLog{}).Count(&count)
	assert.Zero(t, count)
}

package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/http/handler"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
)

func newAuditHandler(db *gorm.DB) *handler.AuditHandler {
	svc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
	return handler.NewAuditHandler(svc, zap.NewNop())
}

func seedAuditRow(t *testing.T, db *gorm.DB, method, path, entityType string, entityID *uuid.UUID, at time.Time) {
	t.Helper()
	row := &domain.AuditLog{
		UserID:     uuid.New().String(),
		UserName:   "Dana Whitfield",
		UserRole:   domain.RoleAdmin,
		Method:     method,
		Path:       path,
		EntityType: entityType,
		EntityID:   entityID,
		StatusCode: http.StatusOK,
		IPAddress:  "10.0.0.9",
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(row).Error)
}

type auditPage struct {
	Data       []domain.AuditLogDTO `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

func crewAuditContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Sam Voss",
		Role:        domain.RoleCrew,
	})
}

func TestAuditHandler_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := newAuditHandler(db)

	dealID := uuid.New()
	now := time.Now().UTC()
	seedAuditRow(t, db, http.MethodPost, "/api/v1/deals", "deal", nil, now.Add(-2*time.Hour))
	seedAuditRow(t, db, http.MethodPatch, "/api/v1/deals/"+dealID.String(), "deal", &dealID, now.Add(-time.Hour))
	seedAuditRow(t, db, http.MethodPost, "/api/v1/reps", "rep", nil, now)

	t.Run("admin pages through the trail newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit?page=1&page_size=2", nil).
			WithContext(dealAdminContext())
		rr := httptest.NewRecorder()
		h.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var page auditPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.PageSize)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "/api/v1/reps", page.Data[0].Path)
	})

	t.Run("filters narrow the trail", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/audit?method=PATCH&entity_type=deal&entity_id="+dealID.String(), nil).
			WithContext(dealAdminContext())
		rr := httptest.NewRecorder()
		h.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var page auditPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, http.MethodPatch, page.Data[0].Method)
		require.NotNil(t, page.Data[0].EntityID)
		assert.Equal(t, dealID, *page.Data[0].EntityID)
	})

	t.Run("time window filter", func(t *testing.T) {
		start := now.Add(-90 * time.Minute).Format(time.RFC3339)
		req := httptest.NewRequest(http.MethodGet, "/audit?start_time="+start, nil).
			WithContext(dealAdminContext())
		rr := httptest.NewRecorder()
		h.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var page auditPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("malformed entity_id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit?entity_id=not-a-uuid", nil).
			WithContext(dealAdminContext())
		rr := httptest.NewRecorder()
		h.List(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit", nil).
			WithContext(crewAuditContext())
		rr := httptest.NewRecorder()
		h.List(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("anonymous is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		rr := httptest.NewRecorder()
		h.List(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuditHandler_ListByEntity(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := newAuditHandler(db)

	dealID := uuid.New()
	now := time.Now().UTC()
	seedAuditRow(t, db, http.MethodPost, "/api/v1/deals", "deal", &dealID, now.Add(-time.Hour))
	seedAuditRow(t, db, http.MethodPost, "/api/v1/deals/"+dealID.String()+"/advance", "deal", &dealID, now)
	seedAuditRow(t, db, http.MethodPost, "/api/v1/reps", "rep", nil, now)

	t.Run("returns the entity trail newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit/deal/"+dealID.String(), nil).
			WithContext(dealAdminContext())
		req = withChiParams(req, map[string]string{"entityType": "deal", "entityID": dealID.String()})
		rr := httptest.NewRecorder()
		h.ListByEntity(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var trail []domain.AuditLogDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trail))
		require.Len(t, trail, 2)
		assert.Equal(t, "/api/v1/deals/"+dealID.String()+"/advance", trail[0].Path)
		assert.Equal(t, "/api/v1/deals", trail[1].Path)
	})

	t.Run("limit caps the trail", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit/deal/"+dealID.String()+"?limit=1", nil).
			WithContext(dealAdminContext())
		req = withChiParams(req, map[string]string{"entityType": "deal", "entityID": dealID.String()})
		rr := httptest.NewRecorder()
		h.ListByEntity(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var trail []domain.AuditLogDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trail))
		require.Len(t, trail, 1)
		assert.Equal(t, "/api/v1/deals/"+dealID.String()+"/advance", trail[0].Path)
	})

	t.Run("malformed entity id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit/deal/not-a-uuid", nil).
			WithContext(dealAdminContext())
		req = withChiParams(req, map[string]string{"entityType": "deal", "entityID": "not-a-uuid"})
		rr := httptest.NewRecorder()
		h.ListByEntity(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/audit/deal/"+dealID.String(), nil).
			WithContext(crewAuditContext())
		req = withChiParams(req, map[string]string{"entityType": "deal", "entityID": dealID.String()})
		rr := httptest.NewRecorder()
		h.ListByEntity(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

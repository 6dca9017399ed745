package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

// AuditHandler serves the trail of mutating API calls. Admin only.
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// List godoc
// @Summary List audit logs
// @Description Returns a paginated list of audit entries, newest first, with optional filters. Admin only.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 200)" default(50)
// @Param user_id query string false "Filter by user ID"
// @Param method query string false "Filter by HTTP method"
// @Param entity_type query string false "Filter by entity type (deal, rep, file, ...)"
// @Param entity_id query string false "Filter by entity ID"
// @Param start_time query string false "Entries at or after this time (RFC3339)"
// @Param end_time query string false "Entries at or before this time (RFC3339)"
// @Param request_id query string false "Filter by request ID"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AuditLogDTO}
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /audit [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	filter := &repository.AuditLogFilter{
		UserID:     r.URL.Query().Get("user_id"),
		Method:     r.URL.Query().Get("method"),
		EntityType: r.URL.Query().Get("entity_type"),
		RequestID:  r.URL.Query().Get("request_id"),
	}

	if eid := r.URL.Query().Get("entity_id"); eid != "" {
		id, err := uuid.Parse(eid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid entity_id: must be a valid UUID")
			return
		}
		filter.EntityID = &id
	}

	if st := r.URL.Query().Get("start_time"); st != "" {
		if t, err := time.Parse(time.RFC3339, st); err == nil {
			filter.StartTime = &t
		}
	}
	if et := r.URL.Query().Get("end_time"); et != "" {
		if t, err := time.Parse(time.RFC3339, et); err == nil {
			filter.EndTime = &t
		}
	}

	result, err := h.auditService.List(r.Context(), filter, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListByEntity godoc
// @Summary Get entity audit trail
// @Description Returns the audit entries recorded against one entity, newest first. Admin only.
// @Tags Audit
// @Produce json
// @Param entityType path string true "Entity type (deal, rep, file, ...)"
// @Param entityID path string true "Entity ID"
// @Param limit query int false "Max entries (max 200)" default(50)
// @Success 200 {array} domain.AuditLogDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /audit/{entityType}/{entityID} [get]
func (h *AuditHandler) ListByEntity(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")

	entityID, err := uuid.Parse(chi.URLParam(r, "entityID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entity ID: must be a valid UUID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	trail, err := h.auditService.ListByEntity(r.Context(), entityType, entityID, limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, trail)
}

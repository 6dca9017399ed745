package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

type DealHandler struct {
	dealService *service.DealService
	logger      *zap.Logger
}

func NewDealHandler(dealService *service.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		logger:      logger,
	}
}

// @Summary List deals
// @Description List deals with optional filters. Reps see the whole book; ownership only restricts writes.
// @Tags Deals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param status query string false "Filter by status, comma-separated (lead, signed, approved, ...)"
// @Param phase query string false "Filter by phase (sign, build, finalizing, complete)"
// @Param awaiting_admin query bool false "Only deals parked at an admin-gated status"
// @Param rep_id query string false "Filter by assigned rep ID"
// @Param q query string false "Search homeowner name or address"
// @Param created_after query string false "Created after date (YYYY-MM-DD)"
// @Param created_before query string false "Created before date (YYYY-MM-DD)"
// @Param sort query string false "Sort by (created_desc, created_asc, updated_desc, homeowner_asc, homeowner_desc)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /deals [get]
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := service.DealListOptions{Sort: repository.DealSortByCreatedDesc}

	opts.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	opts.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))

	if s := r.URL.Query().Get("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				opts.Statuses = append(opts.Statuses, domain.DealStatus(part))
			}
		}
	}

	if p := r.URL.Query().Get("phase"); p != "" {
		phase := domain.DealPhase(p)
		opts.Phase = &phase
	}

	if aa := r.URL.Query().Get("awaiting_admin"); aa != "" {
		opts.AwaitingAdmin, _ = strconv.ParseBool(aa)
	}

	if rid := r.URL.Query().Get("rep_id"); rid != "" {
		id, err := uuid.Parse(rid)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid rep_id: must be a valid UUID")
			return
		}
		opts.RepID = &id
	}

	if q := r.URL.Query().Get("q"); q != "" {
		opts.Search = &q
	}

	if ca := r.URL.Query().Get("created_after"); ca != "" {
		if t, err := time.Parse("2006-01-02", ca); err == nil {
			opts.CreatedAfter = &t
		}
	}
	if cb := r.URL.Query().Get("created_before"); cb != "" {
		if t, err := time.Parse("2006-01-02", cb); err == nil {
			opts.CreatedBefore = &t
		}
	}

	if s := r.URL.Query().Get("sort"); s != "" {
		opts.Sort = repository.DealSortOption(s)
	}

	result, err := h.dealService.ListDeals(r.Context(), opts)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create deal
// @Description Open a new deal at the top of the pipeline
// @Tags Deals
// @Accept json
// @Produce json
// @Param request body domain.CreateDealRequest true "Deal data"
// @Success 201 {object} domain.DealDTO
// @Security BearerAuth
// @Router /deals [post]
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	deal, err := h.dealService.CreateDeal(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/deals/"+deal.ID.String())
	respondJSON(w, http.StatusCreated, deal)
}

// @Summary Get deal
// @Description Get a deal by ID
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} domain.DealDTO
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *DealHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	deal, err := h.dealService.GetDeal(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// @Summary Update deal
// @Description Apply a partial edit without moving the status. Send the current revision to detect concurrent edits.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.UpdateDealRequest true "Fields to change"
// @Success 200 {object} domain.DealDTO
// @Failure 409 {object} domain.APIError "Stale revision"
// @Failure 422 {object} domain.APIError "Financial fields locked after approval"
// @Security BearerAuth
// @Router /deals/{id} [patch]
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	var req domain.UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	deal, err := h.dealService.UpdateDeal(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// @Summary Save and advance
// @Description Apply field updates, then move the deal one status forward if the step is satisfied and not admin-gated. A blocked deal is not an error; the outcome reports what is missing.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.AdvanceDealRequest true "Field updates to apply before evaluating"
// @Success 200 {object} service.AdvanceResult
// @Security BearerAuth
// @Router /deals/{id}/advance [post]
func (h *DealHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	var req domain.AdvanceDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.dealService.AdvanceDeal(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Admin transition
// @Description Move the deal past its admin gate. Step data requirements still apply: a deal with missing fields is refused with the blocking reasons.
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} service.AdvanceResult
// @Failure 422 {object} domain.APIError "Step requirements not met"
// @Security BearerAuth
// @Router /deals/{id}/transitions [post]
func (h *DealHandler) AdminTransition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	result, err := h.dealService.AdminAdvanceDeal(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	if !result.StatusChanged {
		detail := "The deal cannot move forward from its current status"
		if result.Terminal {
			detail = "The deal has already reached the end of the pipeline"
		} else if b := result.Check.FirstBlocker(); b != nil {
			detail = b.Message
		}
		respondWorkflowBlocked(w, result.Check, detail)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Get deal workflow position
// @Description Get the deal's milestone position, phase, percent complete and current step evaluation
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} workflow.Snapshot
// @Security BearerAuth
// @Router /deals/{id}/workflow [get]
func (h *DealHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	snapshot, err := h.dealService.GetDealWorkflow(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// @Summary Get commission breakdown
// @Description Get the computed commission for a deal: RCV source, sales tax, base amount, percent and amount
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} workflow.Breakdown
// @Security BearerAuth
// @Router /deals/{id}/commission [get]
func (h *DealHandler) GetCommission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	breakdown, err := h.dealService.GetCommissionBreakdown(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// @Summary Set commission overrides
// @Description Record a commission percent or amount override for a deal. Admin only.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.UpsertCommissionRequest true "Override values"
// @Success 200 {object} domain.DealCommissionDTO
// @Security BearerAuth
// @Router /deals/{id}/commission [put]
func (h *DealHandler) UpsertCommission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	var req domain.UpsertCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	commission, err := h.dealService.UpsertCommission(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, commission)
}

// @Summary Get deal status history
// @Description Get the transition log for a deal, newest first
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {array} domain.DealStatusHistoryDTO
// @Security BearerAuth
// @Router /deals/{id}/history [get]
func (h *DealHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	history, err := h.dealService.GetStatusHistory(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

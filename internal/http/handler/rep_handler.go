package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

type RepHandler struct {
	repService *service.RepService
	logger     *zap.Logger
}

func NewRepHandler(repService *service.RepService, logger *zap.Logger) *RepHandler {
	return &RepHandler{
		repService: repService,
		logger:     logger,
	}
}

// @Summary List reps
// @Description List sales reps ordered by name
// @Tags Reps
// @Produce json
// @Param include_inactive query bool false "Include deactivated reps" default(false)
// @Success 200 {array} domain.RepDTO
// @Security BearerAuth
// @Router /reps [get]
func (h *RepHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if v := r.URL.Query().Get("include_inactive"); v != "" {
		includeInactive, _ = strconv.ParseBool(v)
	}

	reps, err := h.repService.ListReps(r.Context(), includeInactive)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, reps)
}

// @Summary Create rep
// @Description Register a new sales rep. Admin only.
// @Tags Reps
// @Accept json
// @Produce json
// @Param request body domain.CreateRepRequest true "Rep data"
// @Success 201 {object} domain.RepDTO
// @Failure 409 {object} domain.APIError "Email already in use"
// @Security BearerAuth
// @Router /reps [post]
func (h *RepHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rep, err := h.repService.CreateRep(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/reps/"+rep.ID.String())
	respondJSON(w, http.StatusCreated, rep)
}

// @Summary Get rep
// @Description Get a rep with their deal count
// @Tags Reps
// @Produce json
// @Param id path string true "Rep ID"
// @Success 200 {object} domain.RepDTO
// @Security BearerAuth
// @Router /reps/{id} [get]
func (h *RepHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rep ID: must be a valid UUID")
		return
	}

	rep, err := h.repService.GetRep(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// @Summary Update rep
// @Description Change a rep's profile, commission configuration or active flag. Admin only. Commission changes never rewrite amounts already recorded on deals.
// @Tags Reps
// @Accept json
// @Produce json
// @Param id path string true "Rep ID"
// @Param request body domain.UpdateRepRequest true "Fields to change"
// @Success 200 {object} domain.RepDTO
// @Security BearerAuth
// @Router /reps/{id} [patch]
func (h *RepHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rep ID: must be a valid UUID")
		return
	}

	var req domain.UpdateRepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rep, err := h.repService.UpdateRep(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

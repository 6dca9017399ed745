package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Get pipeline summary
// @Description Returns the office rollup: deal counts per status and phase, and the queue of deals parked on an admin step. Statuses with no deals still appear with a zero count so the board renders every column. Admin only.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.PipelineSummaryDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/pipeline [get]
func (h *DashboardHandler) GetPipelineSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetPipelineSummary(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

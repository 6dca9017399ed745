package handler

import (
	"net/http"

	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

// PipelineHandler serves the static pipeline definition so clients can
// render the milestone board and step forms without hardcoding them.
type PipelineHandler struct {
	pipeline *workflow.Pipeline
}

func NewPipelineHandler(pipeline *workflow.Pipeline) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// PipelineDefinition is the wire shape of the pipeline tables.
type PipelineDefinition struct {
	Milestones []workflow.Milestone `json:"milestones"`
	Steps      []workflow.Step      `json:"steps"`
}

// @Summary Get pipeline definition
// @Description Get the ordered milestone table and per-step requirements. The definition is fixed at startup; clients may cache it for the session.
// @Tags Pipeline
// @Produce json
// @Success 200 {object} PipelineDefinition
// @Security BearerAuth
// @Router /pipeline [get]
func (h *PipelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PipelineDefinition{
		Milestones: h.pipeline.Milestones(),
		Steps:      h.pipeline.Steps(),
	})
}

package workflow

import (
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// Snapshot is the full workflow view of one deal: where it sits in the
// pipeline, what its current step demands, and what is still missing. The
// mobile app renders its entire deal-detail workflow card from this.
type Snapshot struct {
	Status          domain.DealStatus  `json:"status"`
	Phase           domain.DealPhase   `json:"phase"`
	PercentComplete int                `json:"percent_complete"`
	MilestoneIndex  int                `json:"milestone_index"`
	Milestone       Milestone          `json:"milestone"`
	Step            Step               `json:"step"`
	Check           StepCheck          `json:"check"`
	AwaitingAdmin   bool               `json:"awaiting_admin"`
	Terminal        bool               `json:"terminal"`
	NextStatus      *domain.DealStatus `json:"next_status,omitempty"`
}

// Snapshot evaluates the deal in place and reports its pipeline position
// together with the step check. It never mutates the deal.
func (e *Engine) Snapshot(deal *domain.Deal) (Snapshot, error) {
	idx, err := e.pipeline.Locate(deal.Status)
	if err != nil {
		return Snapshot{}, err
	}

	step, err := e.pipeline.Step(deal.Status)
	if err != nil {
		return Snapshot{}, err
	}

	milestone, err := e.pipeline.Milestone(deal.Status)
	if err != nil {
		return Snapshot{}, err
	}

	check, err := e.evaluator.CheckStep(deal)
	if err != nil {
		return Snapshot{}, err
	}

	phase, err := e.pipeline.Phase(deal.Status)
	if err != nil {
		return Snapshot{}, err
	}

	percent, err := e.pipeline.PercentComplete(deal.Status)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Status:          deal.Status,
		Phase:           phase,
		PercentComplete: percent,
		MilestoneIndex:  idx,
		Milestone:       milestone,
		Step:            step,
		Check:           check,
		AwaitingAdmin:   step.AdminOnly,
	}

	if next, ok, err := e.pipeline.Next(deal.Status); err != nil {
		return Snapshot{}, err
	} else if ok {
		snap.NextStatus = &next
	} else {
		snap.Terminal = true
	}

	return snap, nil
}

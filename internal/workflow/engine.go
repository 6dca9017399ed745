package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// ErrMalformedDeal marks a deal record the engine refuses to evaluate:
// missing id or a status outside the pipeline. These are data-integrity
// faults, not validation failures, and callers must not map them to 4xx.
var ErrMalformedDeal = errors.New("malformed deal")

// Outcome is the result of one advance attempt. Exactly one of
// StatusChanged, AwaitingAdmin, Terminal or an unsatisfied Check explains
// why the deal did or did not move.
type Outcome struct {
	// Deal is the simulated post-attempt state: the input deal with the
	// updates merged and, when StatusChanged, the new status and stamp
	// applied. The input deal itself is never mutated.
	Deal *domain.Deal

	// Check is the step evaluation after merging updates.
	Check StepCheck

	StatusChanged bool
	From          domain.DealStatus
	To            domain.DealStatus

	// StampField is the timestamp column recorded by this transition, or
	// empty when the transition carries none or the field was already set.
	StampField string

	// AwaitingAdmin is set when the current step's forward transition is
	// reserved for administrative actors. The attempt is not an error; the
	// deal simply holds until an admin moves it.
	AwaitingAdmin bool

	// Terminal is set when the deal already sits at the end of the pipeline.
	Terminal bool
}

// Engine drives deals through the pipeline. It is pure: callers load the
// deal, hand it in together with any pending field updates, and persist the
// outcome themselves.
type Engine struct {
	pipeline  *Pipeline
	evaluator *Evaluator
}

// NewEngine creates an engine over the given pipeline.
func NewEngine(pipeline *Pipeline) *Engine {
	return &Engine{pipeline: pipeline, evaluator: NewEvaluator(pipeline)}
}

// Pipeline returns the pipeline the engine was built with.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Evaluator returns the step evaluator the engine was built with.
func (e *Engine) Evaluator() *Evaluator {
	return e.evaluator
}

// AttemptAdvance merges the pending updates into a copy of the deal,
// evaluates the current step and advances one status when the step is
// satisfied and not admin-gated. Repeating the call with the same inputs
// yields the same outcome; a blocked attempt never mutates anything.
func (e *Engine) AttemptAdvance(deal *domain.Deal, updates *domain.DealPatch, now time.Time) (Outcome, error) {
	merged, step, err := e.prepare(deal, updates)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Deal: merged, Check: e.evaluator.evalStep(merged, step)}

	if step.AdminOnly {
		out.AwaitingAdmin = true
		return out, nil
	}
	if !out.Check.Satisfied {
		return out, nil
	}
	return e.advance(merged, out, now)
}

// AdminAdvance is the explicit administrative transition: it moves the deal
// one status forward regardless of the admin gate. Step requirements still
// apply; an admin cannot skip missing data, only the gate.
func (e *Engine) AdminAdvance(deal *domain.Deal, now time.Time) (Outcome, error) {
	merged, step, err := e.prepare(deal, nil)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Deal: merged, Check: e.evaluator.evalStep(merged, step)}
	if !out.Check.Satisfied {
		return out, nil
	}
	return e.advance(merged, out, now)
}

// ApplyInspectionPhoto runs the photo shortcut: a deal still at lead moves
// straight to inspection_scheduled when its first inspection photo lands,
// bypassing the step's field requirements. For any other status the upload
// is recorded without workflow effect.
func (e *Engine) ApplyInspectionPhoto(deal *domain.Deal, now time.Time) (Outcome, error) {
	merged, step, err := e.prepare(deal, nil)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Deal: merged, Check: e.evaluator.evalStep(merged, step)}
	if merged.Status != domain.DealStatusLead {
		return out, nil
	}
	return e.advance(merged, out, now)
}

// prepare validates the deal, makes the simulation copy and resolves the
// current step.
func (e *Engine) prepare(deal *domain.Deal, updates *domain.DealPatch) (*domain.Deal, Step, error) {
	if deal == nil {
		return nil, Step{}, fmt.Errorf("%w: nil deal", ErrMalformedDeal)
	}
	if deal.ID == uuid.Nil {
		return nil, Step{}, fmt.Errorf("%w: missing deal id", ErrMalformedDeal)
	}

	step, err := e.pipeline.Step(deal.Status)
	if err != nil {
		return nil, Step{}, fmt.Errorf("%w: deal %s", err, deal.ID)
	}

	merged := *deal
	if updates != nil {
		updates.Apply(&merged)
	}
	return &merged, step, nil
}

// advance moves the merged deal to the next status and stamps the arrival
// timestamp. Terminal deals are reported, not errored.
func (e *Engine) advance(merged *domain.Deal, out Outcome, now time.Time) (Outcome, error) {
	next, ok, err := e.pipeline.Next(merged.Status)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		out.Terminal = true
		return out, nil
	}

	out.StatusChanged = true
	out.From = merged.Status
	out.To = next
	merged.Status = next
	out.StampField = StampTransition(merged, next, now)
	return out, nil
}

// TransitionStamp returns the timestamp column recorded when a deal enters
// the given status, or empty for the two untimestamped stops
// (awaiting_approval, install_scheduled).
func TransitionStamp(to domain.DealStatus) string {
	switch to {
	case domain.DealStatusInspectionScheduled:
		return "inspection_date"
	case domain.DealStatusSigned:
		return "signed_date"
	case domain.DealStatusClaimFiled:
		return "claim_filed_date"
	case domain.DealStatusAdjusterMet:
		return "adjuster_met_date"
	case domain.DealStatusApproved:
		return "approved_date"
	case domain.DealStatusACVCollected:
		return "acv_collected_date"
	case domain.DealStatusDeductibleCollected:
		return "deductible_collected_date"
	case domain.DealStatusMaterialsSelected:
		return "materials_selected_date"
	case domain.DealStatusInstalled:
		return "install_date"
	case domain.DealStatusCompletionSigned:
		return "completion_signed_date"
	case domain.DealStatusInvoiceSent:
		return "invoice_sent_date"
	case domain.DealStatusDepreciationCollected:
		return "depreciation_collected_date"
	case domain.DealStatusComplete:
		return "completed_date"
	case domain.DealStatusPaid:
		return "commission_paid_date"
	}
	return ""
}

// StampTransition sets the arrival timestamp for the given status on the
// deal. Timestamps record the first arrival only; a field that already
// holds a value is left alone and the empty string is returned.
func StampTransition(deal *domain.Deal, to domain.DealStatus, at time.Time) string {
	field := TransitionStamp(to)
	if field == "" {
		return ""
	}
	slot := stampSlot(deal, to)
	if slot == nil || *slot != nil {
		return ""
	}
	t := at
	*slot = &t
	return field
}

func stampSlot(deal *domain.Deal, to domain.DealStatus) **time.Time {
	switch to {
	case domain.DealStatusInspectionScheduled:
		return &deal.InspectionDate
	case domain.DealStatusSigned:
		return &deal.SignedDate
	case domain.DealStatusClaimFiled:
		return &deal.ClaimFiledDate
	case domain.DealStatusAdjusterMet:
		return &deal.AdjusterMetDate
	case domain.DealStatusApproved:
		return &deal.ApprovedDate
	case domain.DealStatusACVCollected:
		return &deal.ACVCollectedDate
	case domain.DealStatusDeductibleCollected:
		return &deal.DeductibleCollectedDate
	case domain.DealStatusMaterialsSelected:
		return &deal.MaterialsSelectedDate
	case domain.DealStatusInstalled:
		return &deal.InstallDate
	case domain.DealStatusCompletionSigned:
		return &deal.CompletionSignedDate
	case domain.DealStatusInvoiceSent:
		return &deal.InvoiceSentDate
	case domain.DealStatusDepreciationCollected:
		return &deal.DepreciationCollectedDate
	case domain.DealStatusComplete:
		return &deal.CompletedDate
	case domain.DealStatusPaid:
		return &deal.CommissionPaidDate
	}
	return nil
}

// Package workflow implements the deal pipeline state machine: the canonical
// milestone and step tables, requirement evaluation, status transitions and
// the commission calculator. Everything in this package is pure; persistence
// and transport live with the callers.
package workflow

import (
	"errors"
	"fmt"
	"math"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// ErrUnknownStatus is returned when a status is outside the canonical
// pipeline. This is a data-integrity fault, never a user validation failure.
var ErrUnknownStatus = errors.New("unknown deal status")

// FieldType tags a required field with its semantic kind. Signature fields
// get the proof-or-document evaluation; all others are plain presence checks.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeDate      FieldType = "date"
	FieldTypePhone     FieldType = "phone"
	FieldTypeEmail     FieldType = "email"
	FieldTypeNumber    FieldType = "number"
	FieldTypeSignature FieldType = "signature"
)

// RequiredField names one field a step needs before the deal can advance.
type RequiredField struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// Milestone is one stage descriptor in the canonical pipeline, used for
// progress display.
type Milestone struct {
	Status domain.DealStatus `json:"status"`
	Label  string            `json:"label"`
	Icon   string            `json:"icon"`
	Phase  domain.DealPhase  `json:"phase"`
}

// Step is one stage's gating definition. AdminOnly marks steps whose forward
// transition must be performed by an administrative actor; the rep-facing
// engine never advances past them.
type Step struct {
	Status         domain.DealStatus `json:"status"`
	Label          string            `json:"label"`
	Description    string            `json:"description"`
	RequiredFields []RequiredField   `json:"required_fields,omitempty"`
	AdminOnly      bool              `json:"admin_only"`
}

// Pipeline holds the immutable milestone and step tables. Construct it once
// at startup and inject it; nothing here mutates after NewPipeline returns.
type Pipeline struct {
	milestones []Milestone
	steps      []Step
	index      map[domain.DealStatus]int
}

// NewPipeline builds a pipeline from parallel milestone and step tables.
// Both tables must cover the canonical status order exactly; anything else
// is a construction error.
func NewPipeline(milestones []Milestone, steps []Step) (*Pipeline, error) {
	order := domain.DealStatusOrder()
	if len(milestones) != len(order) {
		return nil, fmt.Errorf("milestone table has %d entries, want %d", len(milestones), len(order))
	}
	if len(steps) != len(order) {
		return nil, fmt.Errorf("step table has %d entries, want %d", len(steps), len(order))
	}
	index := make(map[domain.DealStatus]int, len(order))
	for i, status := range order {
		if milestones[i].Status != status {
			return nil, fmt.Errorf("milestone %d is %q, want %q", i, milestones[i].Status, status)
		}
		if steps[i].Status != status {
			return nil, fmt.Errorf("step %d is %q, want %q", i, steps[i].Status, status)
		}
		index[status] = i
	}
	return &Pipeline{
		milestones: milestones,
		steps:      steps,
		index:      index,
	}, nil
}

// MustNewPipeline is NewPipeline for statically-known tables.
func MustNewPipeline(milestones []Milestone, steps []Step) *Pipeline {
	p, err := NewPipeline(milestones, steps)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPipeline returns the roofing pipeline shipped with the product.
func DefaultPipeline() *Pipeline {
	return MustNewPipeline(defaultMilestones(), defaultSteps())
}

// Len returns the number of pipeline stages.
func (p *Pipeline) Len() int {
	return len(p.milestones)
}

// Milestones returns a copy of the milestone table.
func (p *Pipeline) Milestones() []Milestone {
	out := make([]Milestone, len(p.milestones))
	copy(out, p.milestones)
	return out
}

// Steps returns a copy of the step table.
func (p *Pipeline) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Locate returns the zero-based position of status in the pipeline.
func (p *Pipeline) Locate(status domain.DealStatus) (int, error) {
	i, ok := p.index[status]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return i, nil
}

// Milestone returns the milestone descriptor for status.
func (p *Pipeline) Milestone(status domain.DealStatus) (Milestone, error) {
	i, err := p.Locate(status)
	if err != nil {
		return Milestone{}, err
	}
	return p.milestones[i], nil
}

// Step returns the step definition for status.
func (p *Pipeline) Step(status domain.DealStatus) (Step, error) {
	i, err := p.Locate(status)
	if err != nil {
		return Step{}, err
	}
	return p.steps[i], nil
}

// Next returns the status immediately following the given one. The second
// return is false when status is the terminal stage.
func (p *Pipeline) Next(status domain.DealStatus) (domain.DealStatus, bool, error) {
	i, err := p.Locate(status)
	if err != nil {
		return "", false, err
	}
	if i >= len(p.steps)-1 {
		return "", false, nil
	}
	return p.steps[i+1].Status, true, nil
}

// PercentComplete maps status to display progress: 0 at the first milestone,
// 100 at the last, rounded linearly in between.
func (p *Pipeline) PercentComplete(status domain.DealStatus) (int, error) {
	i, err := p.Locate(status)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(i) / float64(len(p.milestones)-1) * 100)), nil
}

// Phase returns the coarse milestone grouping for status.
func (p *Pipeline) Phase(status domain.DealStatus) (domain.DealPhase, error) {
	m, err := p.Milestone(status)
	if err != nil {
		return "", err
	}
	return m.Phase, nil
}

// AdminGated reports whether the forward transition out of status requires
// an administrative actor.
func (p *Pipeline) AdminGated(status domain.DealStatus) (bool, error) {
	s, err := p.Step(status)
	if err != nil {
		return false, err
	}
	return s.AdminOnly, nil
}

// StatusesInPhase returns every status belonging to the given phase, in
// pipeline order.
func (p *Pipeline) StatusesInPhase(phase domain.DealPhase) []domain.DealStatus {
	var out []domain.DealStatus
	for _, m := range p.milestones {
		if m.Phase == phase {
			out = append(out, m.Status)
		}
	}
	return out
}

// AdminGatedStatuses returns every status whose forward transition is
// admin-only, in pipeline order.
func (p *Pipeline) AdminGatedStatuses() []domain.DealStatus {
	var out []domain.DealStatus
	for _, s := range p.steps {
		if s.AdminOnly {
			out = append(out, s.Status)
		}
	}
	return out
}

func defaultMilestones() []Milestone {
	return []Milestone{
		{Status: domain.DealStatusLead, Label: "New Lead", Icon: "user-plus", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusInspectionScheduled, Label: "Inspection", Icon: "camera", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusSigned, Label: "Contract Signed", Icon: "file-signature", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusClaimFiled, Label: "Claim Filed", Icon: "shield", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusAdjusterMet, Label: "Adjuster Meeting", Icon: "users", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusAwaitingApproval, Label: "Awaiting Approval", Icon: "hourglass", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusApproved, Label: "Approved", Icon: "check-circle", Phase: domain.DealPhaseSign},
		{Status: domain.DealStatusACVCollected, Label: "ACV Collected", Icon: "dollar-sign", Phase: domain.DealPhaseBuild},
		{Status: domain.DealStatusDeductibleCollected, Label: "Deductible Collected", Icon: "wallet", Phase: domain.DealPhaseBuild},
		{Status: domain.DealStatusMaterialsSelected, Label: "Materials Selected", Icon: "layers", Phase: domain.DealPhaseBuild},
		{Status: domain.DealStatusInstallScheduled, Label: "Install Scheduled", Icon: "calendar", Phase: domain.DealPhaseBuild},
		{Status: domain.DealStatusInstalled, Label: "Installed", Icon: "home", Phase: domain.DealPhaseBuild},
		{Status: domain.DealStatusCompletionSigned, Label: "Completion Signed", Icon: "pen-tool", Phase: domain.DealPhaseFinalizing},
		{Status: domain.DealStatusInvoiceSent, Label: "Invoice Sent", Icon: "send", Phase: domain.DealPhaseFinalizing},
		{Status: domain.DealStatusDepreciationCollected, Label: "Depreciation Collected", Icon: "banknote", Phase: domain.DealPhaseFinalizing},
		{Status: domain.DealStatusComplete, Label: "Complete", Icon: "flag", Phase: domain.DealPhaseComplete},
		{Status: domain.DealStatusPaid, Label: "Commission Paid", Icon: "award", Phase: domain.DealPhaseComplete},
	}
}

func defaultSteps() []Step {
	return []Step{
		{
			Status:      domain.DealStatusLead,
			Label:       "New Lead",
			Description: "Schedule the roof inspection with the homeowner.",
			RequiredFields: []RequiredField{
				{Name: "inspection_date", Label: "Inspection date", Type: FieldTypeDate},
			},
		},
		{
			Status:      domain.DealStatusInspectionScheduled,
			Label:       "Inspection",
			Description: "Inspect the roof and get the contingency contract signed.",
			RequiredFields: []RequiredField{
				{Name: "contract_signed", Label: "Contract signature", Type: FieldTypeSignature},
			},
		},
		{
			Status:      domain.DealStatusSigned,
			Label:       "Contract Signed",
			Description: "File the insurance claim.",
			RequiredFields: []RequiredField{
				{Name: "insurance_company", Label: "Insurance company", Type: FieldTypeText},
				{Name: "policy_number", Label: "Policy number", Type: FieldTypeText},
				{Name: "claim_number", Label: "Claim number", Type: FieldTypeText},
				{Name: "date_of_loss", Label: "Date of loss", Type: FieldTypeDate},
			},
		},
		{
			// Gating for this step goes beyond simple field presence; see
			// the claim-filed override in the evaluator.
			Status:      domain.DealStatusClaimFiled,
			Label:       "Claim Filed",
			Description: "Record the claim financials, the adjuster meeting and the lost statement.",
		},
		{
			Status:      domain.DealStatusAdjusterMet,
			Label:       "Adjuster Meeting",
			Description: "Office review of the adjuster outcome before the claim goes up for approval.",
			AdminOnly:   true,
		},
		{
			Status:      domain.DealStatusAwaitingApproval,
			Label:       "Awaiting Approval",
			Description: "Insurance carrier is reviewing the claim.",
		},
		{
			// ACV receipt override in the evaluator.
			Status:      domain.DealStatusApproved,
			Label:       "Approved",
			Description: "Collect the ACV check from the homeowner.",
		},
		{
			// Deductible receipt override in the evaluator.
			Status:      domain.DealStatusACVCollected,
			Label:       "ACV Collected",
			Description: "Collect the deductible from the homeowner.",
		},
		{
			// Material selection override in the evaluator.
			Status:      domain.DealStatusDeductibleCollected,
			Label:       "Deductible Collected",
			Description: "Pick the roofing materials with the homeowner.",
		},
		{
			Status:      domain.DealStatusMaterialsSelected,
			Label:       "Materials Selected",
			Description: "Office orders materials and schedules the install crew.",
			AdminOnly:   true,
		},
		{
			Status:      domain.DealStatusInstallScheduled,
			Label:       "Install Scheduled",
			Description: "Crew installs the roof; office confirms completion.",
			AdminOnly:   true,
		},
		{
			// Completion signature override in the evaluator.
			Status:      domain.DealStatusInstalled,
			Label:       "Installed",
			Description: "Collect both completion-form signatures.",
		},
		{
			Status:      domain.DealStatusCompletionSigned,
			Label:       "Completion Signed",
			Description: "Office invoices the carrier for the depreciation.",
			AdminOnly:   true,
		},
		{
			// Depreciation receipt override in the evaluator.
			Status:      domain.DealStatusInvoiceSent,
			Label:       "Invoice Sent",
			Description: "Collect the depreciation check.",
		},
		{
			Status:      domain.DealStatusDepreciationCollected,
			Label:       "Depreciation Collected",
			Description: "Office closes out the job.",
			AdminOnly:   true,
		},
		{
			Status:      domain.DealStatusComplete,
			Label:       "Complete",
			Description: "Office disburses the rep's commission.",
			AdminOnly:   true,
		},
		{
			Status:      domain.DealStatusPaid,
			Label:       "Commission Paid",
			Description: "Job closed and commission disbursed.",
		},
	}
}

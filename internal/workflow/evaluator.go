package workflow

import (
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// RequirementGroup partitions blocking reasons so callers can report which
// named part of a step is incomplete instead of a single opaque boolean.
type RequirementGroup string

const (
	GroupField     RequirementGroup = "field"
	GroupSignature RequirementGroup = "signature"
	GroupFinancial RequirementGroup = "financial"
	GroupAdjuster  RequirementGroup = "adjuster"
	GroupDocument  RequirementGroup = "document"
	GroupMaterial  RequirementGroup = "material"
)

// Blocker is one unsatisfied requirement, machine-readable for the UI.
type Blocker struct {
	Group   RequirementGroup `json:"group"`
	Field   string           `json:"field,omitempty"`
	Message string           `json:"message"`
}

// StepCheck is the evaluation result for a deal against its current step.
// Blockers are ordered by display priority; an empty list means satisfied.
type StepCheck struct {
	Status    domain.DealStatus `json:"status"`
	Satisfied bool              `json:"satisfied"`
	Blockers  []Blocker         `json:"blockers,omitempty"`
}

// FirstBlocker returns the highest-priority blocking reason, or nil when
// the step is satisfied. The UI shows exactly one reason at a time.
func (c StepCheck) FirstBlocker() *Blocker {
	if len(c.Blockers) == 0 {
		return nil
	}
	return &c.Blockers[0]
}

// MissingGroups returns the distinct requirement groups still blocking, in
// priority order.
func (c StepCheck) MissingGroups() []RequirementGroup {
	var out []RequirementGroup
	seen := make(map[RequirementGroup]bool)
	for _, b := range c.Blockers {
		if !seen[b.Group] {
			seen[b.Group] = true
			out = append(out, b.Group)
		}
	}
	return out
}

// Evaluator decides whether a deal satisfies its current workflow step.
// Evaluation is pure and never fails for business reasons; only a status
// outside the pipeline is an error.
type Evaluator struct {
	pipeline *Pipeline
}

// NewEvaluator creates an evaluator over the given pipeline.
func NewEvaluator(pipeline *Pipeline) *Evaluator {
	return &Evaluator{pipeline: pipeline}
}

// CheckStep evaluates the deal against the step for its current status.
func (e *Evaluator) CheckStep(deal *domain.Deal) (StepCheck, error) {
	step, err := e.pipeline.Step(deal.Status)
	if err != nil {
		return StepCheck{}, err
	}
	return e.evalStep(deal, step), nil
}

func (e *Evaluator) evalStep(deal *domain.Deal, step Step) StepCheck {
	check := StepCheck{Status: step.Status}

	for _, rf := range step.RequiredFields {
		if rf.Type == FieldTypeSignature {
			if !ContractProofPresent(deal) {
				check.Blockers = append(check.Blockers, Blocker{
					Group:   GroupSignature,
					Field:   rf.Name,
					Message: "Contract must be signed or the signed agreement uploaded",
				})
			}
			continue
		}
		if !fieldPresent(deal, rf.Name) {
			check.Blockers = append(check.Blockers, Blocker{
				Group:   GroupField,
				Field:   rf.Name,
				Message: rf.Label + " is required",
			})
		}
	}

	check.Blockers = append(check.Blockers, e.overrideBlockers(deal, step.Status)...)
	check.Satisfied = len(check.Blockers) == 0
	return check
}

// overrideBlockers applies the business rules that go beyond simple
// required-field presence.
func (e *Evaluator) overrideBlockers(deal *domain.Deal, status domain.DealStatus) []Blocker {
	switch status {
	case domain.DealStatusClaimFiled:
		return checkClaimFiled(deal)
	case domain.DealStatusApproved:
		if deal.ACVReceiptURL == "" {
			return []Blocker{{Group: GroupDocument, Field: "acv_receipt_url", Message: "ACV receipt must be uploaded"}}
		}
	case domain.DealStatusACVCollected:
		if deal.DeductibleReceiptURL == "" {
			return []Blocker{{Group: GroupDocument, Field: "deductible_receipt_url", Message: "Deductible receipt must be uploaded"}}
		}
	case domain.DealStatusDeductibleCollected:
		return materialBlockers(deal)
	case domain.DealStatusInstalled:
		return completionSignatureBlockers(deal)
	case domain.DealStatusInvoiceSent:
		if deal.DepreciationReceiptURL == "" {
			return []Blocker{{Group: GroupDocument, Field: "depreciation_receipt_url", Message: "Depreciation receipt must be uploaded"}}
		}
	}
	return nil
}

// checkClaimFiled gates the move past claim_filed on three independently
// reportable conditions: complete claim financials, complete adjuster info
// and an uploaded lost statement.
func checkClaimFiled(deal *domain.Deal) []Blocker {
	var blockers []Blocker

	financial := []struct {
		set   bool
		field string
		label string
	}{
		{deal.RCV != nil, "rcv", "RCV"},
		{deal.ACV != nil, "acv", "ACV"},
		{deal.Deductible != nil, "deductible", "Deductible"},
		{deal.Depreciation != nil, "depreciation", "Depreciation"},
	}
	for _, f := range financial {
		if !f.set {
			blockers = append(blockers, Blocker{
				Group:   GroupFinancial,
				Field:   f.field,
				Message: f.label + " must be entered",
			})
		}
	}

	if deal.AdjusterName == "" {
		blockers = append(blockers, Blocker{Group: GroupAdjuster, Field: "adjuster_name", Message: "Adjuster name must be entered"})
	}
	if deal.AdjusterMeetingDate == nil {
		blockers = append(blockers, Blocker{Group: GroupAdjuster, Field: "adjuster_meeting_date", Message: "Adjuster meeting date must be entered"})
	}

	if deal.LostStatementURL == "" {
		blockers = append(blockers, Blocker{Group: GroupDocument, Field: "lost_statement_url", Message: "Lost statement must be uploaded"})
	}

	return blockers
}

// ContractProofPresent reports whether the contract requirement is met. An
// in-app signature and an uploaded signed agreement are equivalent proofs;
// either one satisfies the step.
func ContractProofPresent(deal *domain.Deal) bool {
	return deal.ContractSigned || deal.InsuranceAgreementURL != ""
}

// MaterialSelectionComplete reports whether the material choice is specific
// enough to order: a category, plus a metal type for metal categories or a
// color for everything else.
func MaterialSelectionComplete(deal *domain.Deal) bool {
	return len(materialBlockers(deal)) == 0
}

func materialBlockers(deal *domain.Deal) []Blocker {
	if deal.MaterialCategory == nil {
		return []Blocker{{Group: GroupMaterial, Field: "material_category", Message: "Material category must be selected"}}
	}
	if deal.MaterialCategory.IsMetal() {
		if deal.MetalType == "" {
			return []Blocker{{Group: GroupMaterial, Field: "metal_type", Message: "Metal type must be selected"}}
		}
		return nil
	}
	if deal.Color == "" {
		return []Blocker{{Group: GroupMaterial, Field: "color", Message: "Shingle color must be selected"}}
	}
	return nil
}

// CompletionSignaturesComplete reports whether both completion-form
// signatures, rep and homeowner, have been captured.
func CompletionSignaturesComplete(deal *domain.Deal) bool {
	return deal.CompletionRepSignatureURL != "" && deal.CompletionHomeownerSignatureURL != ""
}

func completionSignatureBlockers(deal *domain.Deal) []Blocker {
	var blockers []Blocker
	if deal.CompletionRepSignatureURL == "" {
		blockers = append(blockers, Blocker{Group: GroupSignature, Field: "completion_rep_signature_url", Message: "Rep completion signature is required"})
	}
	if deal.CompletionHomeownerSignatureURL == "" {
		blockers = append(blockers, Blocker{Group: GroupSignature, Field: "completion_homeowner_signature_url", Message: "Homeowner completion signature is required"})
	}
	return blockers
}

// fieldPresent is the generic presence check: non-nil and not an empty
// string. Field names match the deal's wire format.
func fieldPresent(deal *domain.Deal, name string) bool {
	switch name {
	case "homeowner_name":
		return deal.HomeownerName != ""
	case "homeowner_phone":
		return deal.HomeownerPhone != ""
	case "homeowner_email":
		return deal.HomeownerEmail != ""
	case "address":
		return deal.Address != ""
	case "city":
		return deal.City != ""
	case "state":
		return deal.State != ""
	case "zip":
		return deal.Zip != ""
	case "roof_type":
		return deal.RoofType != ""
	case "roof_squares":
		return deal.RoofSquares != nil
	case "inspection_date":
		return deal.InspectionDate != nil
	case "insurance_company":
		return deal.InsuranceCompany != ""
	case "policy_number":
		return deal.PolicyNumber != ""
	case "claim_number":
		return deal.ClaimNumber != ""
	case "date_of_loss":
		return deal.DateOfLoss != nil
	case "adjuster_name":
		return deal.AdjusterName != ""
	case "adjuster_phone":
		return deal.AdjusterPhone != ""
	case "adjuster_meeting_date":
		return deal.AdjusterMeetingDate != nil
	case "rcv":
		return deal.RCV != nil
	case "acv":
		return deal.ACV != nil
	case "deductible":
		return deal.Deductible != nil
	case "depreciation":
		return deal.Depreciation != nil
	case "material_category":
		return deal.MaterialCategory != nil
	case "metal_type":
		return deal.MetalType != ""
	case "color":
		return deal.Color != ""
	case "lost_statement_url":
		return deal.LostStatementURL != ""
	case "insurance_agreement_url":
		return deal.InsuranceAgreementURL != ""
	case "permit_url":
		return deal.PermitURL != ""
	case "acv_receipt_url":
		return deal.ACVReceiptURL != ""
	case "deductible_receipt_url":
		return deal.DeductibleReceiptURL != ""
	case "depreciation_receipt_url":
		return deal.DepreciationReceiptURL != ""
	case "invoice_url":
		return deal.InvoiceURL != ""
	default:
		// Fail closed: a table referencing a field the evaluator cannot
		// read should block, not silently pass.
		return false
	}
}

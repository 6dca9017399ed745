package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealPatch is a partial update of a deal's collected data. Nil fields are
// left untouched, so a patch carries exactly the fields the caller wants to
// change (last write wins per field, never per record). Status and the
// transition timestamps are never patchable, with one exception: the
// inspection date doubles as the appointment the rep schedules, so it stays
// editable like any collected field.
type DealPatch struct {
	HomeownerName  *string  `json:"homeowner_name,omitempty" validate:"omitempty,min=1,max=200"`
	HomeownerPhone *string  `json:"homeowner_phone,omitempty" validate:"omitempty,max=50"`
	HomeownerEmail *string  `json:"homeowner_email,omitempty" validate:"omitempty,email"`
	Address        *string  `json:"address,omitempty" validate:"omitempty,min=1,max=500"`
	City           *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State          *string  `json:"state,omitempty" validate:"omitempty,max=50"`
	Zip            *string  `json:"zip,omitempty" validate:"omitempty,max=20"`
	RoofType       *string  `json:"roof_type,omitempty" validate:"omitempty,max=100"`
	RoofSquares    *float64 `json:"roof_squares,omitempty" validate:"omitempty,gte=0"`

	InspectionDate *time.Time `json:"inspection_date,omitempty"`

	InsuranceCompany    *string    `json:"insurance_company,omitempty" validate:"omitempty,max=200"`
	PolicyNumber        *string    `json:"policy_number,omitempty" validate:"omitempty,max=100"`
	ClaimNumber         *string    `json:"claim_number,omitempty" validate:"omitempty,max=100"`
	DateOfLoss          *time.Time `json:"date_of_loss,omitempty"`
	AdjusterName        *string    `json:"adjuster_name,omitempty" validate:"omitempty,max=200"`
	AdjusterPhone       *string    `json:"adjuster_phone,omitempty" validate:"omitempty,max=50"`
	AdjusterMeetingDate *time.Time `json:"adjuster_meeting_date,omitempty"`

	RCV          *decimal.Decimal `json:"rcv,omitempty"`
	ACV          *decimal.Decimal `json:"acv,omitempty"`
	Deductible   *decimal.Decimal `json:"deductible,omitempty"`
	Depreciation *decimal.Decimal `json:"depreciation,omitempty"`

	MaterialCategory *MaterialCategory `json:"material_category,omitempty" validate:"omitempty,oneof=shingle tile flat metal metal_shingle standing_seam"`
	MetalType        *string           `json:"metal_type,omitempty" validate:"omitempty,max=100"`
	Color            *string           `json:"color,omitempty" validate:"omitempty,max=100"`
	DripEdgeColor    *string           `json:"drip_edge_color,omitempty" validate:"omitempty,max=100"`
	VentColor        *string           `json:"vent_color,omitempty" validate:"omitempty,max=100"`

	InspectionPhotos *StringList `json:"inspection_photos,omitempty"`
	InstallPhotos    *StringList `json:"install_photos,omitempty"`
	CompletionPhotos *StringList `json:"completion_photos,omitempty"`

	LostStatementURL                *string `json:"lost_statement_url,omitempty" validate:"omitempty,max=500"`
	InsuranceAgreementURL           *string `json:"insurance_agreement_url,omitempty" validate:"omitempty,max=500"`
	PermitURL                       *string `json:"permit_url,omitempty" validate:"omitempty,max=500"`
	ACVReceiptURL                   *string `json:"acv_receipt_url,omitempty" validate:"omitempty,max=500"`
	DeductibleReceiptURL            *string `json:"deductible_receipt_url,omitempty" validate:"omitempty,max=500"`
	DepreciationReceiptURL          *string `json:"depreciation_receipt_url,omitempty" validate:"omitempty,max=500"`
	InvoiceURL                      *string `json:"invoice_url,omitempty" validate:"omitempty,max=500"`
	ContractSignatureURL            *string `json:"contract_signature_url,omitempty" validate:"omitempty,max=500"`
	CompletionRepSignatureURL       *string `json:"completion_rep_signature_url,omitempty" validate:"omitempty,max=500"`
	CompletionHomeownerSignatureURL *string `json:"completion_homeowner_signature_url,omitempty" validate:"omitempty,max=500"`

	ContractSigned             *bool `json:"contract_signed,omitempty"`
	ACVCheckCollected          *bool `json:"acv_check_collected,omitempty"`
	DepreciationCheckCollected *bool `json:"depreciation_check_collected,omitempty"`
	PaymentRequested           *bool `json:"payment_requested,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p *DealPatch) IsZero() bool {
	return p == nil || len(p.Columns()) == 0
}

// TouchesFinancials reports whether the patch writes any of the claim
// financial fields. Used to enforce the post-approval lock for reps.
func (p *DealPatch) TouchesFinancials() bool {
	if p == nil {
		return false
	}
	return p.RCV != nil || p.ACV != nil || p.Deductible != nil || p.Depreciation != nil
}

// Apply merges the patch onto a deal in place. Callers that need the
// pre-patch state must pass a copy.
func (p *DealPatch) Apply(d *Deal) {
	if p == nil {
		return
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setTime := func(dst **time.Time, src *time.Time) {
		if src != nil {
			t := *src
			*dst = &t
		}
	}
	setDecimal := func(dst **decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}

	setString(&d.HomeownerName, p.HomeownerName)
	setString(&d.HomeownerPhone, p.HomeownerPhone)
	setString(&d.HomeownerEmail, p.HomeownerEmail)
	setString(&d.Address, p.Address)
	setString(&d.City, p.City)
	setString(&d.State, p.State)
	setString(&d.Zip, p.Zip)
	setString(&d.RoofType, p.RoofType)
	if p.RoofSquares != nil {
		v := *p.RoofSquares
		d.RoofSquares = &v
	}

	setTime(&d.InspectionDate, p.InspectionDate)

	setString(&d.InsuranceCompany, p.InsuranceCompany)
	setString(&d.PolicyNumber, p.PolicyNumber)
	setString(&d.ClaimNumber, p.ClaimNumber)
	setTime(&d.DateOfLoss, p.DateOfLoss)
	setString(&d.AdjusterName, p.AdjusterName)
	setString(&d.AdjusterPhone, p.AdjusterPhone)
	setTime(&d.AdjusterMeetingDate, p.AdjusterMeetingDate)

	setDecimal(&d.RCV, p.RCV)
	setDecimal(&d.ACV, p.ACV)
	setDecimal(&d.Deductible, p.Deductible)
	setDecimal(&d.Depreciation, p.Depreciation)

	if p.MaterialCategory != nil {
		c := *p.MaterialCategory
		d.MaterialCategory = &c
	}
	setString(&d.MetalType, p.MetalType)
	setString(&d.Color, p.Color)
	setString(&d.DripEdgeColor, p.DripEdgeColor)
	setString(&d.VentColor, p.VentColor)

	if p.InspectionPhotos != nil {
		d.InspectionPhotos = append(StringList(nil), *p.InspectionPhotos...)
	}
	if p.InstallPhotos != nil {
		d.InstallPhotos = append(StringList(nil), *p.InstallPhotos...)
	}
	if p.CompletionPhotos != nil {
		d.CompletionPhotos = append(StringList(nil), *p.CompletionPhotos...)
	}

	setString(&d.LostStatementURL, p.LostStatementURL)
	setString(&d.InsuranceAgreementURL, p.InsuranceAgreementURL)
	setString(&d.PermitURL, p.PermitURL)
	setString(&d.ACVReceiptURL, p.ACVReceiptURL)
	setString(&d.DeductibleReceiptURL, p.DeductibleReceiptURL)
	setString(&d.DepreciationReceiptURL, p.DepreciationReceiptURL)
	setString(&d.InvoiceURL, p.InvoiceURL)
	setString(&d.ContractSignatureURL, p.ContractSignatureURL)
	setString(&d.CompletionRepSignatureURL, p.CompletionRepSignatureURL)
	setString(&d.CompletionHomeownerSignatureURL, p.CompletionHomeownerSignatureURL)

	setBool(&d.ContractSigned, p.ContractSigned)
	setBool(&d.ACVCheckCollected, p.ACVCheckCollected)
	setBool(&d.DepreciationCheckCollected, p.DepreciationCheckCollected)
	setBool(&d.PaymentRequested, p.PaymentRequested)
}

// Columns returns the patch as a column → value map for a partial database
// update. Column names match the deal table schema.
func (p *DealPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p == nil {
		return cols
	}
	put := func(name string, v interface{}, set bool) {
		if set {
			cols[name] = v
		}
	}

	put("homeowner_name", deref(p.HomeownerName), p.HomeownerName != nil)
	put("homeowner_phone", deref(p.HomeownerPhone), p.HomeownerPhone != nil)
	put("homeowner_email", deref(p.HomeownerEmail), p.HomeownerEmail != nil)
	put("address", deref(p.Address), p.Address != nil)
	put("city", deref(p.City), p.City != nil)
	put("state", deref(p.State), p.State != nil)
	put("zip", deref(p.Zip), p.Zip != nil)
	put("roof_type", deref(p.RoofType), p.RoofType != nil)
	if p.RoofSquares != nil {
		cols["roof_squares"] = *p.RoofSquares
	}

	if p.InspectionDate != nil {
		cols["inspection_date"] = *p.InspectionDate
	}

	put("insurance_company", deref(p.InsuranceCompany), p.InsuranceCompany != nil)
	put("policy_number", deref(p.PolicyNumber), p.PolicyNumber != nil)
	put("claim_number", deref(p.ClaimNumber), p.ClaimNumber != nil)
	if p.DateOfLoss != nil {
		cols["date_of_loss"] = *p.DateOfLoss
	}
	put("adjuster_name", deref(p.AdjusterName), p.AdjusterName != nil)
	put("adjuster_phone", deref(p.AdjusterPhone), p.AdjusterPhone != nil)
	if p.AdjusterMeetingDate != nil {
		cols["adjuster_meeting_date"] = *p.AdjusterMeetingDate
	}

	if p.RCV != nil {
		cols["rcv"] = *p.RCV
	}
	if p.ACV != nil {
		cols["acv"] = *p.ACV
	}
	if p.Deductible != nil {
		cols["deductible"] = *p.Deductible
	}
	if p.Depreciation != nil {
		cols["depreciation"] = *p.Depreciation
	}

	if p.MaterialCategory != nil {
		cols["material_category"] = *p.MaterialCategory
	}
	put("metal_type", deref(p.MetalType), p.MetalType != nil)
	put("color", deref(p.Color), p.Color != nil)
	put("drip_edge_color", deref(p.DripEdgeColor), p.DripEdgeColor != nil)
	put("vent_color", deref(p.VentColor), p.VentColor != nil)

	if p.InspectionPhotos != nil {
		cols["inspection_photos"] = *p.InspectionPhotos
	}
	if p.InstallPhotos != nil {
		cols["install_photos"] = *p.InstallPhotos
	}
	if p.CompletionPhotos != nil {
		cols["completion_photos"] = *p.CompletionPhotos
	}

	put("lost_statement_url", deref(p.LostStatementURL), p.LostStatementURL != nil)
	put("insurance_agreement_url", deref(p.InsuranceAgreementURL), p.InsuranceAgreementURL != nil)
	put("permit_url", deref(p.PermitURL), p.PermitURL != nil)
	put("acv_receipt_url", deref(p.ACVReceiptURL), p.ACVReceiptURL != nil)
	put("deductible_receipt_url", deref(p.DeductibleReceiptURL), p.DeductibleReceiptURL != nil)
	put("depreciation_receipt_url", deref(p.DepreciationReceiptURL), p.DepreciationReceiptURL != nil)
	put("invoice_url", deref(p.InvoiceURL), p.InvoiceURL != nil)
	put("contract_signature_url", deref(p.ContractSignatureURL), p.ContractSignatureURL != nil)
	put("completion_rep_signature_url", deref(p.CompletionRepSignatureURL), p.CompletionRepSignatureURL != nil)
	put("completion_homeowner_signature_url", deref(p.CompletionHomeownerSignatureURL), p.CompletionHomeownerSignatureURL != nil)

	if p.ContractSigned != nil {
		cols["contract_signed"] = *p.ContractSigned
	}
	if p.ACVCheckCollected != nil {
		cols["acv_check_collected"] = *p.ACVCheckCollected
	}
	if p.DepreciationCheckCollected != nil {
		cols["depreciation_check_collected"] = *p.DepreciationCheckCollected
	}
	if p.PaymentRequested != nil {
		cols["payment_requested"] = *p.PaymentRequested
	}

	return cols
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire DTOs. The deal object serializes flat with snake_case keys and
// deal_commissions as a possibly-empty array; timestamps are RFC3339 UTC
// strings and money fields decimal strings. This is the external contract
// the mobile app and office dashboard both consume.

type DealDTO struct {
	ID       uuid.UUID  `json:"id"`
	Status   DealStatus `json:"status"`
	Revision int64      `json:"revision"`

	RepID   uuid.UUID `json:"rep_id"`
	RepName string    `json:"rep_name,omitempty"`

	HomeownerName  string   `json:"homeowner_name"`
	HomeownerPhone string   `json:"homeowner_phone,omitempty"`
	HomeownerEmail string   `json:"homeowner_email,omitempty"`
	Address        string   `json:"address"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	Zip            string   `json:"zip,omitempty"`
	RoofType       string   `json:"roof_type,omitempty"`
	RoofSquares    *float64 `json:"roof_squares,omitempty"`

	InsuranceCompany    string  `json:"insurance_company,omitempty"`
	PolicyNumber        string  `json:"policy_number,omitempty"`
	ClaimNumber         string  `json:"claim_number,omitempty"`
	DateOfLoss          *string `json:"date_of_loss,omitempty"`
	AdjusterName        string  `json:"adjuster_name,omitempty"`
	AdjusterPhone       string  `json:"adjuster_phone,omitempty"`
	AdjusterMeetingDate *string `json:"adjuster_meeting_date,omitempty"`

	RCV          *decimal.Decimal `json:"rcv,omitempty"`
	ACV          *decimal.Decimal `json:"acv,omitempty"`
	Deductible   *decimal.Decimal `json:"deductible,omitempty"`
	Depreciation *decimal.Decimal `json:"depreciation,omitempty"`

	MaterialCategory *MaterialCategory `json:"material_category,omitempty"`
	MetalType        string            `json:"metal_type,omitempty"`
	Color            string            `json:"color,omitempty"`
	DripEdgeColor    string            `json:"drip_edge_color,omitempty"`
	VentColor        string            `json:"vent_color,omitempty"`

	InspectionPhotos []string `json:"inspection_photos"`
	InstallPhotos    []string `json:"install_photos"`
	CompletionPhotos []string `json:"completion_photos"`

	LostStatementURL                string `json:"lost_statement_url,omitempty"`
	InsuranceAgreementURL           string `json:"insurance_agreement_url,omitempty"`
	PermitURL                       string `json:"permit_url,omitempty"`
	ACVReceiptURL                   string `json:"acv_receipt_url,omitempty"`
	DeductibleReceiptURL            string `json:"deductible_receipt_url,omitempty"`
	DepreciationReceiptURL          string `json:"depreciation_receipt_url,omitempty"`
	InvoiceURL                      string `json:"invoice_url,omitempty"`
	ContractSignatureURL            string `json:"contract_signature_url,omitempty"`
	CompletionRepSignatureURL       string `json:"completion_rep_signature_url,omitempty"`
	CompletionHomeownerSignatureURL string `json:"completion_homeowner_signature_url,omitempty"`

	ContractSigned             bool `json:"contract_signed"`
	ACVCheckCollected          bool `json:"acv_check_collected"`
	DepreciationCheckCollected bool `json:"depreciation_check_collected"`
	PaymentRequested           bool `json:"payment_requested"`
	CommissionPaid             bool `json:"commission_paid"`

	InspectionDate            *string `json:"inspection_date,omitempty"`
	SignedDate                *string `json:"signed_date,omitempty"`
	ClaimFiledDate            *string `json:"claim_filed_date,omitempty"`
	AdjusterMetDate           *string `json:"adjuster_met_date,omitempty"`
	ApprovedDate              *string `json:"approved_date,omitempty"`
	ACVCollectedDate          *string `json:"acv_collected_date,omitempty"`
	DeductibleCollectedDate   *string `json:"deductible_collected_date,omitempty"`
	MaterialsSelectedDate     *string `json:"materials_selected_date,omitempty"`
	InstallDate               *string `json:"install_date,omitempty"`
	CompletionSignedDate      *string `json:"completion_signed_date,omitempty"`
	InvoiceSentDate           *string `json:"invoice_sent_date,omitempty"`
	DepreciationCollectedDate *string `json:"depreciation_collected_date,omitempty"`
	CompletedDate             *string `json:"completed_date,omitempty"`
	CommissionPaidDate        *string `json:"commission_paid_date,omitempty"`

	DealCommissions []DealCommissionDTO `json:"deal_commissions"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type DealCommissionDTO struct {
	ID                uuid.UUID        `json:"id"`
	DealID            uuid.UUID        `json:"deal_id"`
	CommissionPercent *decimal.Decimal `json:"commission_percent,omitempty"`
	CommissionAmount  *decimal.Decimal `json:"commission_amount,omitempty"`
	Paid              bool             `json:"paid"`
	PaidDate          *string          `json:"paid_date,omitempty"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type DealStatusHistoryDTO struct {
	ID            uuid.UUID        `json:"id"`
	DealID        uuid.UUID        `json:"deal_id"`
	FromStatus    *DealStatus      `json:"from_status,omitempty"`
	ToStatus      DealStatus       `json:"to_status"`
	Source        TransitionSource `json:"source"`
	ChangedByID   string           `json:"changed_by_id,omitempty"`
	ChangedByName string           `json:"changed_by_name,omitempty"`
	ChangedByRole UserRole         `json:"changed_by_role,omitempty"`
	ChangedAt     string           `json:"changed_at"`
}

type RepDTO struct {
	ID                       uuid.UUID       `json:"id"`
	Name                     string          `json:"name"`
	Email                    string          `json:"email,omitempty"`
	Phone                    string          `json:"phone,omitempty"`
	CommissionLevel          CommissionLevel `json:"commission_level"`
	DefaultCommissionPercent decimal.Decimal `json:"default_commission_percent"`
	Active                   bool            `json:"active"`
	DealCount                int64           `json:"deal_count,omitempty"`
	CreatedAt                string          `json:"created_at"`
	UpdatedAt                string          `json:"updated_at"`
}

type DealFileDTO struct {
	ID             uuid.UUID    `json:"id"`
	DealID         uuid.UUID    `json:"deal_id"`
	Category       FileCategory `json:"category"`
	StorageKey     string       `json:"storage_key"`
	Filename       string       `json:"filename"`
	ContentType    string       `json:"content_type"`
	Size           int64        `json:"size"`
	UploadedByName string       `json:"uploaded_by_name,omitempty"`
	SignedURL      string       `json:"signed_url,omitempty"`
	CreatedAt      string       `json:"created_at"`
}

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	EntityType string     `json:"entity_type,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

// Dashboard DTOs

// StatusCountDTO is the deal count at one pipeline status.
type StatusCountDTO struct {
	Status DealStatus `json:"status"`
	Label  string     `json:"label"`
	Count  int64      `json:"count"`
}

// PhaseCountDTO is the deal count in one pipeline phase.
type PhaseCountDTO struct {
	Phase DealPhase `json:"phase"`
	Count int64     `json:"count"`
}

// PipelineSummaryDTO is the office dashboard rollup: how many deals sit at
// each status and phase, and which ones are parked waiting on an admin.
type PipelineSummaryDTO struct {
	TotalDeals         int64            `json:"total_deals"`
	Statuses           []StatusCountDTO `json:"statuses"`
	Phases             []PhaseCountDTO  `json:"phases"`
	AwaitingAdminCount int64            `json:"awaiting_admin_count"`
	AwaitingAdmin      []DealDTO        `json:"awaiting_admin,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// Request DTOs

// CreateDealRequest carries the minimum to open a deal: who the homeowner
// is and where the roof is. RepID is required for admin callers; reps
// default to themselves.
type CreateDealRequest struct {
	HomeownerName  string     `json:"homeowner_name" validate:"required,max=200"`
	HomeownerPhone string     `json:"homeowner_phone,omitempty" validate:"max=50"`
	HomeownerEmail string     `json:"homeowner_email,omitempty" validate:"omitempty,email"`
	Address        string     `json:"address" validate:"required,max=500"`
	City           string     `json:"city,omitempty" validate:"max=100"`
	State          string     `json:"state,omitempty" validate:"max=50"`
	Zip            string     `json:"zip,omitempty" validate:"max=20"`
	RoofType       string     `json:"roof_type,omitempty" validate:"max=100"`
	RepID          *uuid.UUID `json:"rep_id,omitempty"`
}

// UpdateDealRequest is a free-form partial edit. Revision, when supplied,
// must match the stored row or the update is rejected as a conflict.
type UpdateDealRequest struct {
	DealPatch
	Revision *int64 `json:"revision,omitempty" validate:"omitempty,gt=0"`
}

// AdvanceDealRequest optionally bundles field updates with the advance
// attempt, so one save can both supply the missing data and move the deal.
type AdvanceDealRequest struct {
	DealPatch
}

// AdvanceOutcomeDTO reports what an advance attempt did.
type AdvanceOutcomeDTO struct {
	StatusChanged bool        `json:"status_changed"`
	FromStatus    *DealStatus `json:"from_status,omitempty"`
	ToStatus      *DealStatus `json:"to_status,omitempty"`
	AwaitingAdmin bool        `json:"awaiting_admin"`
	Terminal      bool        `json:"terminal"`
	Deal          *DealDTO    `json:"deal"`
}

// Rep request DTOs

type CreateRepRequest struct {
	Name                     string           `json:"name" validate:"required,max=200"`
	Email                    string           `json:"email" validate:"required,email,max=255"`
	Phone                    string           `json:"phone,omitempty" validate:"max=50"`
	CommissionLevel          CommissionLevel  `json:"commission_level,omitempty" validate:"omitempty,oneof=junior senior manager"`
	DefaultCommissionPercent *decimal.Decimal `json:"default_commission_percent,omitempty"`
}

type UpdateRepRequest struct {
	Name                     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone                    *string          `json:"phone,omitempty" validate:"omitempty,max=50"`
	CommissionLevel          *CommissionLevel `json:"commission_level,omitempty" validate:"omitempty,oneof=junior senior manager"`
	DefaultCommissionPercent *decimal.Decimal `json:"default_commission_percent,omitempty"`
	Active                   *bool            `json:"active,omitempty"`
}

// UpsertCommissionRequest records or corrects the per-deal commission
// snapshot. A recorded amount becomes authoritative for the payout.
type UpsertCommissionRequest struct {
	CommissionPercent *decimal.Decimal `json:"commission_percent,omitempty"`
	CommissionAmount  *decimal.Decimal `json:"commission_amount,omitempty"`
}

// AuditLogDTO is one recorded mutating API call.
type AuditLogDTO struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name"`
	UserRole   UserRole   `json:"user_role"`
	Method     string     `json:"method"`
	Path       string     `json:"path"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	StatusCode int        `json:"status_code"`
	RequestID  string     `json:"request_id,omitempty"`
	IPAddress  string     `json:"ip_address,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// Auth DTOs

// AuthUserDTO describes the authenticated caller back to the client.
type AuthUserDTO struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email,omitempty"`
	Role    UserRole   `json:"role"`
	RepID   *uuid.UUID `json:"rep_id,omitempty"`
	IsAdmin bool       `json:"is_admin"`
}

// MintTokenRequest asks for a bearer token for one user. Only the office
// system, authenticated by API key or an admin token, may mint.
type MintTokenRequest struct {
	UserID uuid.UUID  `json:"user_id" validate:"required"`
	Name   string     `json:"name" validate:"required,max=200"`
	Email  string     `json:"email,omitempty" validate:"omitempty,email"`
	Role   UserRole   `json:"role" validate:"required,oneof=rep admin crew"`
	RepID  *uuid.UUID `json:"rep_id,omitempty"`
}

// TokenResponse carries a freshly minted bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

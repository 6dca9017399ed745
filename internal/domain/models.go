package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key when it was not set by the caller.
// IDs are generated app-side so the same models work on postgres and on the
// sqlite databases the test suites run against.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DealStatus represents a deal's position in the roofing pipeline
type DealStatus string

const (
	DealStatusLead                  DealStatus = "lead"
	DealStatusInspectionScheduled   DealStatus = "inspection_scheduled"
	DealStatusSigned                DealStatus = "signed"
	DealStatusClaimFiled            DealStatus = "claim_filed"
	DealStatusAdjusterMet           DealStatus = "adjuster_met"
	DealStatusAwaitingApproval      DealStatus = "awaiting_approval"
	DealStatusApproved              DealStatus = "approved"
	DealStatusACVCollected          DealStatus = "acv_collected"
	DealStatusDeductibleCollected   DealStatus = "deductible_collected"
	DealStatusMaterialsSelected     DealStatus = "materials_selected"
	DealStatusInstallScheduled      DealStatus = "install_scheduled"
	DealStatusInstalled             DealStatus = "installed"
	DealStatusCompletionSigned      DealStatus = "completion_signed"
	DealStatusInvoiceSent           DealStatus = "invoice_sent"
	DealStatusDepreciationCollected DealStatus = "depreciation_collected"
	DealStatusComplete              DealStatus = "complete"
	DealStatusPaid                  DealStatus = "paid"
)

// DealStatusOrder is the canonical pipeline ordering. Every workflow table
// (milestones, steps, progress) is built from this single list; there is no
// second copy of the ordering anywhere in the codebase.
func DealStatusOrder() []DealStatus {
	return []DealStatus{
		DealStatusLead,
		DealStatusInspectionScheduled,
		DealStatusSigned,
		DealStatusClaimFiled,
		DealStatusAdjusterMet,
		DealStatusAwaitingApproval,
		DealStatusApproved,
		DealStatusACVCollected,
		DealStatusDeductibleCollected,
		DealStatusMaterialsSelected,
		DealStatusInstallScheduled,
		DealStatusInstalled,
		DealStatusCompletionSigned,
		DealStatusInvoiceSent,
		DealStatusDepreciationCollected,
		DealStatusComplete,
		DealStatusPaid,
	}
}

var dealStatusSet = func() map[DealStatus]struct{} {
	set := make(map[DealStatus]struct{})
	for _, s := range DealStatusOrder() {
		set[s] = struct{}{}
	}
	return set
}()

func (s DealStatus) IsValid() bool {
	_, ok := dealStatusSet[s]
	return ok
}

// DealPhase groups milestones for coarse progress display
type DealPhase string

const (
	DealPhaseSign       DealPhase = "sign"
	DealPhaseBuild      DealPhase = "build"
	DealPhaseFinalizing DealPhase = "finalizing"
	DealPhaseComplete   DealPhase = "complete"
)

// MaterialCategory represents the roofing material family chosen for a deal
type MaterialCategory string

const (
	MaterialCategoryShingle      MaterialCategory = "shingle"
	MaterialCategoryTile         MaterialCategory = "tile"
	MaterialCategoryFlat         MaterialCategory = "flat"
	MaterialCategoryMetal        MaterialCategory = "metal"
	MaterialCategoryMetalShingle MaterialCategory = "metal_shingle"
	MaterialCategoryStandingSeam MaterialCategory = "standing_seam"
)

func (c MaterialCategory) IsValid() bool {
	switch c {
	case MaterialCategoryShingle, MaterialCategoryTile, MaterialCategoryFlat,
		MaterialCategoryMetal, MaterialCategoryMetalShingle, MaterialCategoryStandingSeam:
		return true
	}
	return false
}

// IsMetal reports whether the category is a metal variant. Metal roofs are
// specified by panel type rather than color, which changes the material
// fields required before install.
func (c MaterialCategory) IsMetal() bool {
	switch c {
	case MaterialCategoryMetal, MaterialCategoryMetalShingle, MaterialCategoryStandingSeam:
		return true
	}
	return false
}

// CommissionLevel represents a rep's commission tier
type CommissionLevel string

const (
	CommissionLevelJunior  CommissionLevel = "junior"
	CommissionLevelSenior  CommissionLevel = "senior"
	CommissionLevelManager CommissionLevel = "manager"
)

func (l CommissionLevel) IsValid() bool {
	switch l {
	case CommissionLevelJunior, CommissionLevelSenior, CommissionLevelManager:
		return true
	}
	return false
}

// UserRole represents the actor classes that operate on deals
type UserRole string

const (
	RoleRep   UserRole = "rep"
	RoleAdmin UserRole = "admin"
	RoleCrew  UserRole = "crew"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleRep, RoleAdmin, RoleCrew:
		return true
	}
	return false
}

// StringList stores an ordered list of storage keys as a JSON array. The
// JSON encoding keeps the column portable between postgres and the sqlite
// databases used in tests.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported string list source type %T", value)
	}
}

// Rep represents a sales rep and their commission configuration. Admin and
// crew accounts authenticate with the same identity provider but do not
// carry a rep record; only reps own deals and earn commission.
type Rep struct {
	BaseModel
	Name                     string          `gorm:"type:varchar(200);not null"`
	Email                    string          `gorm:"type:varchar(255);uniqueIndex"`
	Phone                    string          `gorm:"type:varchar(50)"`
	CommissionLevel          CommissionLevel `gorm:"type:varchar(50);not null;default:'junior';column:commission_level"`
	DefaultCommissionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:default_commission_percent"`
	Active                   bool            `gorm:"not null;default:true"`
	Deals                    []Deal          `gorm:"foreignKey:RepID"`
}

// Deal represents one roofing job tracked from lead intake through
// commission payout. Status is the only field that drives workflow state;
// everything else is collected data gated by the workflow step tables.
type Deal struct {
	BaseModel
	Status   DealStatus `gorm:"type:varchar(50);not null;default:'lead';index"`
	Revision int64      `gorm:"not null;default:1"`

	RepID   uuid.UUID `gorm:"type:uuid;not null;index;column:rep_id"`
	Rep     *Rep      `gorm:"foreignKey:RepID"`
	RepName string    `gorm:"type:varchar(200);column:rep_name"`

	// Homeowner / property. Freely editable, never workflow-gated.
	HomeownerName  string   `gorm:"type:varchar(200);not null;index;column:homeowner_name"`
	HomeownerPhone string   `gorm:"type:varchar(50);column:homeowner_phone"`
	HomeownerEmail string   `gorm:"type:varchar(255);column:homeowner_email"`
	Address        string   `gorm:"type:varchar(500);not null"`
	City           string   `gorm:"type:varchar(100)"`
	State          string   `gorm:"type:varchar(50)"`
	Zip            string   `gorm:"type:varchar(20)"`
	RoofType       string   `gorm:"type:varchar(100);column:roof_type"`
	RoofSquares    *float64 `gorm:"type:decimal(10,2);column:roof_squares"`

	// Insurance claim details, required at specific workflow steps.
	InsuranceCompany    string     `gorm:"type:varchar(200);column:insurance_company"`
	PolicyNumber        string     `gorm:"type:varchar(100);column:policy_number"`
	ClaimNumber         string     `gorm:"type:varchar(100);index;column:claim_number"`
	DateOfLoss          *time.Time `gorm:"type:date;column:date_of_loss"`
	AdjusterName        string     `gorm:"type:varchar(200);column:adjuster_name"`
	AdjusterPhone       string     `gorm:"type:varchar(50);column:adjuster_phone"`
	AdjusterMeetingDate *time.Time `gorm:"type:date;column:adjuster_meeting_date"`

	// Financials. Locked to reps once ApprovedDate is set.
	RCV          *decimal.Decimal `gorm:"type:decimal(15,2);column:rcv"`
	ACV          *decimal.Decimal `gorm:"type:decimal(15,2);column:acv"`
	Deductible   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Depreciation *decimal.Decimal `gorm:"type:decimal(15,2)"`

	// Material selection.
	MaterialCategory *MaterialCategory `gorm:"type:varchar(50);column:material_category"`
	MetalType        string            `gorm:"type:varchar(100);column:metal_type"`
	Color            string            `gorm:"type:varchar(100)"`
	DripEdgeColor    string            `gorm:"type:varchar(100);column:drip_edge_color"`
	VentColor        string            `gorm:"type:varchar(100);column:vent_color"`

	// Photos and documents, stored as opaque storage keys.
	InspectionPhotos StringList `gorm:"type:jsonb;column:inspection_photos"`
	InstallPhotos    StringList `gorm:"type:jsonb;column:install_photos"`
	CompletionPhotos StringList `gorm:"type:jsonb;column:completion_photos"`

	LostStatementURL                string `gorm:"type:varchar(500);column:lost_statement_url"`
	InsuranceAgreementURL           string `gorm:"type:varchar(500);column:insurance_agreement_url"`
	PermitURL                       string `gorm:"type:varchar(500);column:permit_url"`
	ACVReceiptURL                   string `gorm:"type:varchar(500);column:acv_receipt_url"`
	DeductibleReceiptURL            string `gorm:"type:varchar(500);column:deductible_receipt_url"`
	DepreciationReceiptURL          string `gorm:"type:varchar(500);column:depreciation_receipt_url"`
	InvoiceURL                      string `gorm:"type:varchar(500);column:invoice_url"`
	ContractSignatureURL            string `gorm:"type:varchar(500);column:contract_signature_url"`
	CompletionRepSignatureURL       string `gorm:"type:varchar(500);column:completion_rep_signature_url"`
	CompletionHomeownerSignatureURL string `gorm:"type:varchar(500);column:completion_homeowner_signature_url"`

	ContractSigned             bool `gorm:"not null;default:false;column:contract_signed"`
	ACVCheckCollected          bool `gorm:"not null;default:false;column:acv_check_collected"`
	DepreciationCheckCollected bool `gorm:"not null;default:false;column:depreciation_check_collected"`
	PaymentRequested           bool `gorm:"not null;default:false;column:payment_requested"`
	CommissionPaid             bool `gorm:"not null;default:false;column:commission_paid"`

	// Transition timestamps, each stamped once when the corresponding
	// transition happens. Display and audit only; workflow decisions never
	// read them back except ApprovedDate, which locks the financial fields.
	InspectionDate            *time.Time `gorm:"column:inspection_date"`
	SignedDate                *time.Time `gorm:"column:signed_date"`
	ClaimFiledDate            *time.Time `gorm:"column:claim_filed_date"`
	AdjusterMetDate           *time.Time `gorm:"column:adjuster_met_date"`
	ApprovedDate              *time.Time `gorm:"column:approved_date"`
	ACVCollectedDate          *time.Time `gorm:"column:acv_collected_date"`
	DeductibleCollectedDate   *time.Time `gorm:"column:deductible_collected_date"`
	MaterialsSelectedDate     *time.Time `gorm:"column:materials_selected_date"`
	InstallDate               *time.Time `gorm:"column:install_date"`
	CompletionSignedDate      *time.Time `gorm:"column:completion_signed_date"`
	InvoiceSentDate           *time.Time `gorm:"column:invoice_sent_date"`
	DepreciationCollectedDate *time.Time `gorm:"column:depreciation_collected_date"`
	CompletedDate             *time.Time `gorm:"column:completed_date"`
	CommissionPaidDate        *time.Time `gorm:"column:commission_paid_date"`

	DealCommissions []DealCommission `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
}

// Commission returns the deal's commission record, or nil when none has
// been created yet. Deals carry at most one; the slice shape matches the
// wire format.
func (d *Deal) Commission() *DealCommission {
	if len(d.DealCommissions) == 0 {
		return nil
	}
	return &d.DealCommissions[0]
}

// FinancialsLocked reports whether the rep-editable window for the
// financial fields has closed.
func (d *Deal) FinancialsLocked() bool {
	return d.ApprovedDate != nil
}

// DealCommission is the per-deal commission snapshot. Once an amount is
// recorded it is authoritative and never recomputed, so later changes to
// the rep's level or percent cannot drift a payout that was already agreed.
type DealCommission struct {
	BaseModel
	DealID            uuid.UUID        `gorm:"type:uuid;not null;index;column:deal_id"`
	CommissionPercent *decimal.Decimal `gorm:"type:decimal(5,2);column:commission_percent"`
	CommissionAmount  *decimal.Decimal `gorm:"type:decimal(15,2);column:commission_amount"`
	Paid              bool             `gorm:"not null;default:false"`
	PaidDate          *time.Time       `gorm:"column:paid_date"`
}

// TableName overrides the default table name to match the migration
func (DealCommission) TableName() string {
	return "deal_commissions"
}

// TransitionSource identifies what moved a deal forward
type TransitionSource string

const (
	// TransitionSourceSave is a rep save that satisfied the current step
	TransitionSourceSave TransitionSource = "save"
	// TransitionSourceAuto is a shortcut transition (photo upload, second signature)
	TransitionSourceAuto TransitionSource = "auto"
	// TransitionSourceAdmin is an explicit administrative transition
	TransitionSourceAdmin TransitionSource = "admin"
)

// DealStatusHistory tracks status changes for audit purposes
type DealStatusHistory struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	DealID        uuid.UUID        `gorm:"type:uuid;not null;index;column:deal_id"`
	Deal          *Deal            `gorm:"foreignKey:DealID"`
	FromStatus    *DealStatus      `gorm:"type:varchar(50);column:from_status"`
	ToStatus      DealStatus       `gorm:"type:varchar(50);not null;column:to_status"`
	Source        TransitionSource `gorm:"type:varchar(20);not null"`
	ChangedByID   string           `gorm:"type:varchar(100);column:changed_by_id"`
	ChangedByName string           `gorm:"type:varchar(200);column:changed_by_name"`
	ChangedByRole UserRole         `gorm:"type:varchar(20);column:changed_by_role"`
	ChangedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP;column:changed_at"`
}

// TableName overrides the default table name to match the migration
func (DealStatusHistory) TableName() string {
	return "deal_status_history"
}

// BeforeCreate assigns the primary key when it was not set by the caller.
func (h *DealStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// FileCategory classifies an upload and decides which deal field the
// resulting storage key is bound to.
type FileCategory string

const (
	FileCategoryInspectionPhoto              FileCategory = "inspection_photo"
	FileCategoryInstallPhoto                 FileCategory = "install_photo"
	FileCategoryCompletionPhoto              FileCategory = "completion_photo"
	FileCategoryLostStatement                FileCategory = "lost_statement"
	FileCategoryInsuranceAgreement           FileCategory = "insurance_agreement"
	FileCategoryPermit                       FileCategory = "permit"
	FileCategoryACVReceipt                   FileCategory = "acv_receipt"
	FileCategoryDeductibleReceipt            FileCategory = "deductible_receipt"
	FileCategoryDepreciationReceipt          FileCategory = "depreciation_receipt"
	FileCategoryInvoice                      FileCategory = "invoice"
	FileCategoryContractSignature            FileCategory = "contract_signature"
	FileCategoryCompletionRepSignature       FileCategory = "completion_rep_signature"
	FileCategoryCompletionHomeownerSignature FileCategory = "completion_homeowner_signature"
)

func (c FileCategory) IsValid() bool {
	switch c {
	case FileCategoryInspectionPhoto, FileCategoryInstallPhoto, FileCategoryCompletionPhoto,
		FileCategoryLostStatement, FileCategoryInsuranceAgreement, FileCategoryPermit,
		FileCategoryACVReceipt, FileCategoryDeductibleReceipt, FileCategoryDepreciationReceipt,
		FileCategoryInvoice, FileCategoryContractSignature, FileCategoryCompletionRepSignature,
		FileCategoryCompletionHomeownerSignature:
		return true
	}
	return false
}

// DealFile represents an uploaded file attached to a deal
type DealFile struct {
	BaseModel
	DealID         uuid.UUID    `gorm:"type:uuid;not null;index;column:deal_id"`
	Deal           *Deal        `gorm:"foreignKey:DealID"`
	Category       FileCategory `gorm:"type:varchar(50);not null;index"`
	StorageKey     string       `gorm:"type:varchar(500);not null;unique;column:storage_key"`
	Filename       string       `gorm:"type:varchar(255);not null"`
	ContentType    string       `gorm:"type:varchar(100);not null;column:content_type"`
	Size           int64        `gorm:"not null"`
	UploadedByID   string       `gorm:"type:varchar(100);column:uploaded_by_id"`
	UploadedByName string       `gorm:"type:varchar(200);column:uploaded_by_name"`
}

// NotificationType categorizes notifications
type NotificationType string

const (
	NotificationTypeAwaitingAdmin     NotificationType = "deal_awaiting_admin"
	NotificationTypeStatusChanged     NotificationType = "deal_status_changed"
	NotificationTypeStaleDealReminder NotificationType = "stale_deal_reminder"
)

// Notification represents a user notification
type Notification struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(50);not null"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Message    string    `gorm:"type:varchar(500);not null"`
	Read       bool      `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}

// AuditLog represents an audit trail entry for a mutating API request
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     string     `gorm:"type:varchar(100);column:user_id"`
	UserName   string     `gorm:"type:varchar(200);column:user_name"`
	UserRole   UserRole   `gorm:"type:varchar(20);column:user_role"`
	Method     string     `gorm:"type:varchar(10);not null"`
	Path       string     `gorm:"type:varchar(500);not null"`
	EntityType string     `gorm:"type:varchar(50);column:entity_type"`
	EntityID   *uuid.UUID `gorm:"type:uuid;column:entity_id"`
	StatusCode int        `gorm:"column:status_code"`
	RequestID  string     `gorm:"type:varchar(100);column:request_id"`
	IPAddress  string     `gorm:"type:varchar(100);column:ip_address"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key when it was not set by the caller.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

func newEngine() *workflow.Engine {
	return workflow.NewEngine(workflow.DefaultPipeline())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

var testNow = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

// =============================================================================
// AttemptAdvance Tests
// =============================================================================

func TestAttemptAdvance_SatisfiedStepMoves(t *testing.T) {
	deal := newDeal(domain.DealStatusLead)
	inspection := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	patch := &domain.DealPatch{InspectionDate: &inspection}

	out, err := newEngine().AttemptAdvance(deal, patch, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusLead, out.From)
	assert.Equal(t, domain.DealStatusInspectionScheduled, out.To)
	assert.Equal(t, domain.DealStatusInspectionScheduled, out.Deal.Status)
	assert.Empty(t, out.StampField, "rep already set the inspection date; no stamp")
	assert.Equal(t, inspection, *out.Deal.InspectionDate)
}

func TestAttemptAdvance_BlockedStepHolds(t *testing.T) {
	deal := newDeal(domain.DealStatusLead)

	out, err := newEngine().AttemptAdvance(deal, nil, testNow)
	require.NoError(t, err)
	assert.False(t, out.StatusChanged)
	assert.False(t, out.Check.Satisfied)
	require.NotNil(t, out.Check.FirstBlocker())
	assert.Equal(t, "inspection_date", out.Check.FirstBlocker().Field)

	// The input deal is never touched.
	assert.Equal(t, domain.DealStatusLead, deal.Status)
	assert.Nil(t, deal.InspectionDate)
}

func TestAttemptAdvance_Idempotent(t *testing.T) {
	// A blocked attempt returns the same outcome every time and never
	// mutates the deal.
	deal := newDeal(domain.DealStatusClaimFiled)
	deal.RCV = dec(10000)

	engine := newEngine()
	first, err := engine.AttemptAdvance(deal, nil, testNow)
	require.NoError(t, err)
	second, err := engine.AttemptAdvance(deal, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, first.Check, second.Check)
	assert.Equal(t, first.StatusChanged, second.StatusChanged)
	assert.Equal(t, domain.DealStatusClaimFiled, deal.Status)
}

func TestAttemptAdvance_MergesPatchBeforeEvaluating(t *testing.T) {
	// The attempt evaluates deal-with-updates, so one call can both supply
	// the missing data and advance.
	deal := newDeal(domain.DealStatusClaimFiled)
	deal.RCV = dec(10000)
	deal.ACV = dec(8000)
	deal.Deductible = dec(1000)
	deal.Depreciation = dec(2000)
	deal.AdjusterName = "Jane"

	meeting := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	patch := &domain.DealPatch{
		AdjusterMeetingDate: &meeting,
		LostStatementURL:    strPtr("k1"),
	}

	out, err := newEngine().AttemptAdvance(deal, patch, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusAdjusterMet, out.To)
	assert.Equal(t, "adjuster_met_date", out.StampField)
	require.NotNil(t, out.Deal.AdjusterMetDate)
	assert.Equal(t, testNow, *out.Deal.AdjusterMetDate)

	// Merge happened on a copy only.
	assert.Empty(t, deal.LostStatementURL)
	assert.Nil(t, deal.AdjusterMetDate)
}

func TestAttemptAdvance_AdminGateHolds(t *testing.T) {
	// Admin-gated steps never move on a rep attempt, satisfied or not.
	gated := []domain.DealStatus{
		domain.DealStatusAdjusterMet,
		domain.DealStatusMaterialsSelected,
		domain.DealStatusInstallScheduled,
		domain.DealStatusCompletionSigned,
		domain.DealStatusDepreciationCollected,
		domain.DealStatusComplete,
	}

	engine := newEngine()
	for _, status := range gated {
		t.Run(string(status), func(t *testing.T) {
			deal := newDeal(status)
			out, err := engine.AttemptAdvance(deal, &domain.DealPatch{ContractSigned: boolPtr(true)}, testNow)
			require.NoError(t, err)
			assert.True(t, out.AwaitingAdmin)
			assert.False(t, out.StatusChanged)
			assert.Equal(t, status, deal.Status)
			assert.Equal(t, status, out.Deal.Status)
		})
	}
}

func TestAttemptAdvance_ApprovalStampsAndLocksFinancials(t *testing.T) {
	deal := newDeal(domain.DealStatusAwaitingApproval)
	require.False(t, deal.FinancialsLocked())

	out, err := newEngine().AttemptAdvance(deal, nil, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusApproved, out.To)
	assert.Equal(t, "approved_date", out.StampField)
	require.NotNil(t, out.Deal.ApprovedDate)
	assert.True(t, out.Deal.FinancialsLocked())
}

func TestAttemptAdvance_SecondCompletionSignatureAutoAdvances(t *testing.T) {
	deal := newDeal(domain.DealStatusInstalled)
	deal.CompletionRepSignatureURL = "sig-rep"

	patch := &domain.DealPatch{CompletionHomeownerSignatureURL: strPtr("sig-homeowner")}
	out, err := newEngine().AttemptAdvance(deal, patch, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusCompletionSigned, out.To)
	assert.Equal(t, "completion_signed_date", out.StampField)
}

func TestAttemptAdvance_Terminal(t *testing.T) {
	out, err := newEngine().AttemptAdvance(newDeal(domain.DealStatusPaid), nil, testNow)
	require.NoError(t, err)
	assert.True(t, out.Terminal)
	assert.False(t, out.StatusChanged)
}

func TestAttemptAdvance_MalformedDeal(t *testing.T) {
	engine := newEngine()

	_, err := engine.AttemptAdvance(nil, nil, testNow)
	assert.ErrorIs(t, err, workflow.ErrMalformedDeal)

	noID := &domain.Deal{Status: domain.DealStatusLead}
	_, err = engine.AttemptAdvance(noID, nil, testNow)
	assert.ErrorIs(t, err, workflow.ErrMalformedDeal)

	bogus := newDeal(domain.DealStatus("archived"))
	_, err = engine.AttemptAdvance(bogus, nil, testNow)
	assert.ErrorIs(t, err, workflow.ErrUnknownStatus)
}

// =============================================================================
// AdminAdvance Tests
// =============================================================================

func TestAdminAdvance_MovesGatedSteps(t *testing.T) {
	tests := []struct {
		from       domain.DealStatus
		to         domain.DealStatus
		stampField string
	}{
		{domain.DealStatusAdjusterMet, domain.DealStatusAwaitingApproval, ""},
		{domain.DealStatusMaterialsSelected, domain.DealStatusInstallScheduled, ""},
		{domain.DealStatusInstallScheduled, domain.DealStatusInstalled, "install_date"},
		{domain.DealStatusCompletionSigned, domain.DealStatusInvoiceSent, "invoice_sent_date"},
		{domain.DealStatusDepreciationCollected, domain.DealStatusComplete, "completed_date"},
		{domain.DealStatusComplete, domain.DealStatusPaid, "commission_paid_date"},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			out, err := engine.AdminAdvance(newDeal(tt.from), testNow)
			require.NoError(t, err)
			assert.True(t, out.StatusChanged)
			assert.Equal(t, tt.to, out.To)
			assert.Equal(t, tt.stampField, out.StampField)
		})
	}
}

func TestAdminAdvance_RequirementsStillApply(t *testing.T) {
	// Admins skip the gate, not the data. An installed deal without both
	// signatures stays put even for an admin.
	deal := newDeal(domain.DealStatusInstalled)

	out, err := newEngine().AdminAdvance(deal, testNow)
	require.NoError(t, err)
	assert.False(t, out.StatusChanged)
	assert.False(t, out.Check.Satisfied)
	require.Len(t, out.Check.Blockers, 2)

	deal.CompletionRepSignatureURL = "sig-rep"
	deal.CompletionHomeownerSignatureURL = "sig-homeowner"
	out, err = newEngine().AdminAdvance(deal, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusCompletionSigned, out.To)
}

func TestAdminAdvance_Terminal(t *testing.T) {
	out, err := newEngine().AdminAdvance(newDeal(domain.DealStatusPaid), testNow)
	require.NoError(t, err)
	assert.True(t, out.Terminal)
	assert.False(t, out.StatusChanged)
}

// =============================================================================
// Inspection Photo Shortcut Tests
// =============================================================================

func TestApplyInspectionPhoto_LeadAdvancesWithoutDate(t *testing.T) {
	// The first inspection photo proves the inspection happened; the deal
	// moves even though the scheduled-date requirement was never met.
	deal := newDeal(domain.DealStatusLead)

	out, err := newEngine().ApplyInspectionPhoto(deal, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Equal(t, domain.DealStatusLead, out.From)
	assert.Equal(t, domain.DealStatusInspectionScheduled, out.To)
	assert.Equal(t, "inspection_date", out.StampField)
	require.NotNil(t, out.Deal.InspectionDate)
	assert.Equal(t, testNow, *out.Deal.InspectionDate)

	assert.Equal(t, domain.DealStatusLead, deal.Status, "input deal untouched")
}

func TestApplyInspectionPhoto_KeepsPresetDate(t *testing.T) {
	deal := newDeal(domain.DealStatusLead)
	scheduled := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	deal.InspectionDate = &scheduled

	out, err := newEngine().ApplyInspectionPhoto(deal, testNow)
	require.NoError(t, err)
	assert.True(t, out.StatusChanged)
	assert.Empty(t, out.StampField)
	assert.Equal(t, scheduled, *out.Deal.InspectionDate, "first-arrival timestamp is never overwritten")
}

func TestApplyInspectionPhoto_NonLeadIsNoOp(t *testing.T) {
	for _, status := range []domain.DealStatus{
		domain.DealStatusInspectionScheduled,
		domain.DealStatusSigned,
		domain.DealStatusInstalled,
	} {
		t.Run(string(status), func(t *testing.T) {
			out, err := newEngine().ApplyInspectionPhoto(newDeal(status), testNow)
			require.NoError(t, err)
			assert.False(t, out.StatusChanged)
			assert.Equal(t, status, out.Deal.Status)
		})
	}
}

// =============================================================================
// Transition Stamp Tests
// =============================================================================

func TestTransitionStamp_Mapping(t *testing.T) {
	stamped := map[domain.DealStatus]string{
		domain.DealStatusInspectionScheduled:   "inspection_date",
		domain.DealStatusSigned:                "signed_date",
		domain.DealStatusClaimFiled:            "claim_filed_date",
		domain.DealStatusAdjusterMet:           "adjuster_met_date",
		domain.DealStatusApproved:              "approved_date",
		domain.DealStatusACVCollected:          "acv_collected_date",
		domain.DealStatusDeductibleCollected:   "deductible_collected_date",
		domain.DealStatusMaterialsSelected:     "materials_selected_date",
		domain.DealStatusInstalled:             "install_date",
		domain.DealStatusCompletionSigned:      "completion_signed_date",
		domain.DealStatusInvoiceSent:           "invoice_sent_date",
		domain.DealStatusDepreciationCollected: "depreciation_collected_date",
		domain.DealStatusComplete:              "completed_date",
		domain.DealStatusPaid:                  "commission_paid_date",
	}

	for _, status := range domain.DealStatusOrder() {
		t.Run(string(status), func(t *testing.T) {
			assert.Equal(t, stamped[status], workflow.TransitionStamp(status))
		})
	}
}

func TestStampTransition_SetOnce(t *testing.T) {
	deal := newDeal(domain.DealStatusClaimFiled)

	field := workflow.StampTransition(deal, domain.DealStatusAdjusterMet, testNow)
	assert.Equal(t, "adjuster_met_date", field)
	require.NotNil(t, deal.AdjusterMetDate)
	assert.Equal(t, testNow, *deal.AdjusterMetDate)

	later := testNow.Add(48 * time.Hour)
	field = workflow.StampTransition(deal, domain.DealStatusAdjusterMet, later)
	assert.Empty(t, field)
	assert.Equal(t, testNow, *deal.AdjusterMetDate)
}

func TestStampTransition_UntimestampedStops(t *testing.T) {
	deal := newDeal(domain.DealStatusAdjusterMet)
	assert.Empty(t, workflow.StampTransition(deal, domain.DealStatusAwaitingApproval, testNow))
	assert.Empty(t, workflow.StampTransition(deal, domain.DealStatusInstallScheduled, testNow))
}

// =============================================================================
// Full Pipeline Walk
// =============================================================================

func TestEngine_FullPipelineWalk(t *testing.T) {
	// Drive one deal from lead to paid the way the product does: rep
	// attempts where the step allows it, admin transitions where it does
	// not, data filled in just before each gate.
	engine := newEngine()
	deal := newDeal(domain.DealStatusLead)
	now := testNow

	advance := func(patch *domain.DealPatch, admin bool, want domain.DealStatus) {
		t.Helper()
		var (
			out workflow.Outcome
			err error
		)
		if admin {
			out, err = engine.AdminAdvance(deal, now)
		} else {
			out, err = engine.AttemptAdvance(deal, patch, now)
		}
		require.NoError(t, err)
		require.True(t, out.StatusChanged, "expected %s -> %s, blocked on %+v", deal.Status, want, out.Check.Blockers)
		require.Equal(t, want, out.To)
		*deal = *out.Deal
		now = now.Add(24 * time.Hour)
	}

	inspection := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	loss := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	meeting := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	shingle := domain.MaterialCategoryShingle

	advance(&domain.DealPatch{InspectionDate: &inspection}, false, domain.DealStatusInspectionScheduled)
	advance(&domain.DealPatch{ContractSigned: boolPtr(true)}, false, domain.DealStatusSigned)
	advance(&domain.DealPatch{
		InsuranceCompany: strPtr("State Farm"),
		PolicyNumber:     strPtr("POL-1001"),
		ClaimNumber:      strPtr("CLM-2002"),
		DateOfLoss:       &loss,
	}, false, domain.DealStatusClaimFiled)
	advance(&domain.DealPatch{
		RCV:                 dec(10000),
		ACV:                 dec(8000),
		Deductible:          dec(1000),
		Depreciation:        dec(2000),
		AdjusterName:        strPtr("Jane"),
		AdjusterMeetingDate: &meeting,
		LostStatementURL:    strPtr("k1"),
	}, false, domain.DealStatusAdjusterMet)
	advance(nil, true, domain.DealStatusAwaitingApproval)
	advance(nil, false, domain.DealStatusApproved)
	advance(&domain.DealPatch{ACVReceiptURL: strPtr("r-acv")}, false, domain.DealStatusACVCollected)
	advance(&domain.DealPatch{DeductibleReceiptURL: strPtr("r-ded")}, false, domain.DealStatusDeductibleCollected)
	advance(&domain.DealPatch{MaterialCategory: &shingle, Color: strPtr("Weathered Wood")}, false, domain.DealStatusMaterialsSelected)
	advance(nil, true, domain.DealStatusInstallScheduled)
	advance(nil, true, domain.DealStatusInstalled)
	advance(&domain.DealPatch{
		CompletionRepSignatureURL:       strPtr("sig-rep"),
		CompletionHomeownerSignatureURL: strPtr("sig-homeowner"),
	}, false, domain.DealStatusCompletionSigned)
	advance(nil, true, domain.DealStatusInvoiceSent)
	advance(&domain.DealPatch{DepreciationReceiptURL: strPtr("r-dep")}, false, domain.DealStatusDepreciationCollected)
	advance(nil, true, domain.DealStatusComplete)
	advance(nil, true, domain.DealStatusPaid)

	assert.Equal(t, domain.DealStatusPaid, deal.Status)

	// Every stamped milestone got its first-arrival timestamp.
	require.NotNil(t, deal.SignedDate)
	require.NotNil(t, deal.ClaimFiledDate)
	require.NotNil(t, deal.AdjusterMetDate)
	require.NotNil(t, deal.ApprovedDate)
	require.NotNil(t, deal.ACVCollectedDate)
	require.NotNil(t, deal.DeductibleCollectedDate)
	require.NotNil(t, deal.MaterialsSelectedDate)
	require.NotNil(t, deal.InstallDate)
	require.NotNil(t, deal.CompletionSignedDate)
	require.NotNil(t, deal.InvoiceSentDate)
	require.NotNil(t, deal.DepreciationCollectedDate)
	require.NotNil(t, deal.CompletedDate)
	require.NotNil(t, deal.CommissionPaidDate)

	_, ok, err := engine.Pipeline().Next(deal.Status)
	require.NoError(t, err)
	assert.False(t, ok, "paid is the end of the line")
}

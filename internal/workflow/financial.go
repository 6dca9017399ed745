package workflow

import (
	"github.com/shopspring/decimal"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// salesTaxRate is the Texas state+local rate applied to roofing jobs.
var salesTaxRate = decimal.RequireFromString("0.0825")

var oneHundred = decimal.NewFromInt(100)

// RCVSource tells where the RCV used by a calculation came from.
type RCVSource string

const (
	RCVSourceStored        RCVSource = "stored"
	RCVSourceReconstructed RCVSource = "reconstructed"
	RCVSourceUnavailable   RCVSource = "unavailable"
)

// PercentSource tells which rule resolved the commission percentage.
type PercentSource string

const (
	PercentSourceRecord     PercentSource = "record"
	PercentSourceRepDefault PercentSource = "rep_default"
	PercentSourceLevel      PercentSource = "level"
	PercentSourceNone       PercentSource = "none"
)

// RCVDiscrepancy is raised when a stored RCV and the acv+depreciation
// reconstruction both exist and disagree. The stored value still wins for
// calculations; the discrepancy is reported, never reconciled silently.
type RCVDiscrepancy struct {
	Stored        decimal.Decimal `json:"stored"`
	Reconstructed decimal.Decimal `json:"reconstructed"`
	Difference    decimal.Decimal `json:"difference"`
}

// Breakdown is the full commission calculation for one deal. Amount fields
// are nil when the inputs to derive them are missing; a breakdown over an
// empty deal is valid and mostly nil.
type Breakdown struct {
	RCV               *decimal.Decimal `json:"rcv"`
	RCVSource         RCVSource        `json:"rcv_source"`
	SalesTax          *decimal.Decimal `json:"sales_tax"`
	BaseAmount        *decimal.Decimal `json:"base_amount"`
	CommissionPercent decimal.Decimal  `json:"commission_percent"`
	PercentSource     PercentSource    `json:"percent_source"`
	CommissionAmount  *decimal.Decimal `json:"commission_amount"`

	// AmountRecorded marks a commission amount copied from the deal's
	// commission record rather than computed. Recorded amounts are
	// point-in-time snapshots and are never recomputed.
	AmountRecorded bool `json:"amount_recorded"`

	Discrepancy *RCVDiscrepancy `json:"discrepancy,omitempty"`
}

// Calculator derives sales tax, commissionable base and commission payout
// from a deal's claim financials. The level table is fixed at construction;
// there is no ambient global to drift.
type Calculator struct {
	levelPercents map[domain.CommissionLevel]decimal.Decimal
}

// DefaultLevelPercents is the standard commission tier table.
func DefaultLevelPercents() map[domain.CommissionLevel]decimal.Decimal {
	return map[domain.CommissionLevel]decimal.Decimal{
		domain.CommissionLevelJunior:  decimal.NewFromInt(5),
		domain.CommissionLevelSenior:  decimal.NewFromInt(10),
		domain.CommissionLevelManager: decimal.NewFromInt(13),
	}
}

// NewCalculator creates a calculator with the given level table. A nil
// table falls back to DefaultLevelPercents. The table is copied.
func NewCalculator(levelPercents map[domain.CommissionLevel]decimal.Decimal) *Calculator {
	if levelPercents == nil {
		levelPercents = DefaultLevelPercents()
	}
	copied := make(map[domain.CommissionLevel]decimal.Decimal, len(levelPercents))
	for level, pct := range levelPercents {
		copied[level] = pct
	}
	return &Calculator{levelPercents: copied}
}

// SalesTax returns the sales tax on the given RCV, rounded to cents.
func (c *Calculator) SalesTax(rcv decimal.Decimal) decimal.Decimal {
	return rcv.Mul(salesTaxRate).Round(2)
}

// BaseAmount returns the commissionable base: RCV less sales tax. The base
// is derived from the rounded tax so tax and base always reconcile to RCV.
func (c *Calculator) BaseAmount(rcv decimal.Decimal) decimal.Decimal {
	return rcv.Sub(c.SalesTax(rcv)).Round(2)
}

// LevelPercent returns the table percentage for a commission level, zero
// for levels outside the table.
func (c *Calculator) LevelPercent(level domain.CommissionLevel) decimal.Decimal {
	return c.levelPercents[level]
}

// EffectiveCommissionPercent resolves the percentage that applies to a
// deal: the commission record's percent when one is recorded, otherwise the
// rep's default when positive, otherwise the rep's level tier, otherwise
// zero.
func (c *Calculator) EffectiveCommissionPercent(deal *domain.Deal, rep *domain.Rep) (decimal.Decimal, PercentSource) {
	if comm := deal.Commission(); comm != nil && comm.CommissionPercent != nil {
		return *comm.CommissionPercent, PercentSourceRecord
	}
	if rep != nil {
		if rep.DefaultCommissionPercent.IsPositive() {
			return rep.DefaultCommissionPercent, PercentSourceRepDefault
		}
		if pct, ok := c.levelPercents[rep.CommissionLevel]; ok {
			return pct, PercentSourceLevel
		}
	}
	return decimal.Zero, PercentSourceNone
}

// ResolveRCV returns the RCV to calculate with. A stored rcv wins; when it
// is absent the accounting identity acv + depreciation reconstructs it.
// When both a stored value and a complete reconstruction exist and
// disagree, the stored value is used and the disagreement is returned.
func (c *Calculator) ResolveRCV(deal *domain.Deal) (*decimal.Decimal, RCVSource, *RCVDiscrepancy) {
	var reconstructed *decimal.Decimal
	if deal.ACV != nil && deal.Depreciation != nil {
		sum := deal.ACV.Add(*deal.Depreciation)
		reconstructed = &sum
	}

	if deal.RCV != nil {
		stored := *deal.RCV
		var disc *RCVDiscrepancy
		if reconstructed != nil && !reconstructed.Equal(stored) {
			disc = &RCVDiscrepancy{
				Stored:        stored,
				Reconstructed: *reconstructed,
				Difference:    stored.Sub(*reconstructed),
			}
		}
		return &stored, RCVSourceStored, disc
	}

	if reconstructed != nil {
		return reconstructed, RCVSourceReconstructed, nil
	}
	return nil, RCVSourceUnavailable, nil
}

// CommissionBreakdown computes the complete payout picture for a deal. The
// rep may be nil when the association was not loaded; percentage resolution
// then falls through to zero.
func (c *Calculator) CommissionBreakdown(deal *domain.Deal, rep *domain.Rep) Breakdown {
	rcv, source, disc := c.ResolveRCV(deal)
	percent, percentSource := c.EffectiveCommissionPercent(deal, rep)

	b := Breakdown{
		RCV:               rcv,
		RCVSource:         source,
		CommissionPercent: percent,
		PercentSource:     percentSource,
		Discrepancy:       disc,
	}

	if rcv != nil {
		tax := c.SalesTax(*rcv)
		base := c.BaseAmount(*rcv)
		b.SalesTax = &tax
		b.BaseAmount = &base
	}

	if comm := deal.Commission(); comm != nil && comm.CommissionAmount != nil {
		recorded := comm.CommissionAmount.Round(2)
		b.CommissionAmount = &recorded
		b.AmountRecorded = true
		return b
	}

	if b.BaseAmount != nil {
		amount := b.BaseAmount.Mul(percent).Div(oneHundred).Round(2)
		b.CommissionAmount = &amount
	}
	return b
}

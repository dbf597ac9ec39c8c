package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CashFlowRow is one month of the valuation projection, recorded for
// downstream display. All amounts are expected (probability-weighted) values.
type CashFlowRow struct {
	Month int       `json:"month"` // 1-based from the valuation date
	Date  time.Time `json:"date"`

	BeginBalance       float64 `json:"beginBalance"`
	Interest           float64 `json:"interest"`
	ScheduledPrincipal float64 `json:"scheduledPrincipal"`
	Prepayment         float64 `json:"prepayment"`
	Default            float64 `json:"default"`
	Recovery           float64 `json:"recovery"`
	EndBalance         float64 `json:"endBalance"`

	CashFlow           float64 `json:"cashFlow"`
	DiscountedCashFlow float64 `json:"discountedCashFlow"`
	CumulativeLoss     float64 `json:"cumulativeLoss"`
}

// RiskComponents attributes the total risk premium for auditability.
// All values in basis points.
type RiskComponents struct {
	BaseBps         float64 `json:"baseBps"`
	FicoBps         float64 `json:"ficoBps"`
	DegreeBps       float64 `json:"degreeBps"`
	SchoolBps       float64 `json:"schoolBps"`
	YearInSchoolBps float64 `json:"yearInSchoolBps"`
	GraduateBps     float64 `json:"graduateBps"`
	TotalBps        float64 `json:"totalBps"`
	Capped          bool    `json:"capped"`
}

// ValuationResult is derived, recomputed on demand, never persisted. NaN
// marks the unvalued sentinel; DiscountRate is nil in that state.
type ValuationResult struct {
	LoanID     uuid.UUID  `json:"loanId"`
	RiskTier   RiskTier   `json:"riskTier"`
	SchoolTier SchoolTier `json:"schoolTier"`

	DiscountRate *float64 `json:"discountRate"` // annual, nil when unvalued

	CurrentBalance  float64 `json:"currentBalance"`
	RemainingMonths int     `json:"remainingMonths"`

	NPV             float64 `json:"-"`
	NPVRatio        float64 `json:"-"`
	ExpectedLossPct float64 `json:"expectedLossPct"`
	WAL             float64 `json:"wal"` // years
	IRR             float64 `json:"-"`   // annualized percent, NaN if unsolvable

	CashFlows      []CashFlowRow  `json:"cashFlows"`
	RiskComponents RiskComponents `json:"riskComponents"`
}

// Unvalued reports whether this is the sentinel result for a loan that failed
// basic validation.
func (v ValuationResult) Unvalued() bool {
	return v.RiskTier == RiskTier_Unknown && math.IsNaN(v.NPV)
}

// UnvaluedResult is the reporting-friendly sentinel for invalid loans:
// aggregators treat it as contributing zero instead of aborting.
func UnvaluedResult(loanID uuid.UUID) *ValuationResult {
	return &ValuationResult{
		LoanID:   loanID,
		RiskTier: RiskTier_Unknown,
		NPV:      math.NaN(),
		NPVRatio: math.NaN(),
		IRR:      math.NaN(),
	}
}

// ZeroValuation is the closed-form result for a loan with no remaining
// balance or term: nothing left to discount.
func ZeroValuation(loanID uuid.UUID, tier RiskTier, discountRate float64) *ValuationResult {
	return &ValuationResult{
		LoanID:       loanID,
		RiskTier:     tier,
		DiscountRate: &discountRate,
		NPV:          0,
		NPVRatio:     0,
		IRR:          math.NaN(),
	}
}

package domain

import (
	"github.com/google/uuid"
)

type OwnershipMode string

const (
	OwnershipMode_Portfolio OwnershipMode = "portfolio" // loans with user ownership > 0
	OwnershipMode_Market    OwnershipMode = "market"    // loans with market ownership > 0
	OwnershipMode_All       OwnershipMode = "all"
)

// LoanKPI is one prorated line of the portfolio report.
type LoanKPI struct {
	LoanID            uuid.UUID `json:"loanId"`
	RiskTier          RiskTier  `json:"riskTier"`
	OwnershipPct      float64   `json:"ownershipPct"`
	ProratedPrincipal float64   `json:"proratedPrincipal"`
	ProratedNPV       float64   `json:"proratedNpv"`
	ExpectedLossPct   float64   `json:"expectedLossPct"`
	WAL               float64   `json:"wal"`
	IRR               *float64  `json:"irr"` // annualized percent, nil when unsolvable
	Unvalued          bool      `json:"unvalued"`
}

// PortfolioReport aggregates prorated loan valuations into portfolio KPIs.
// Weighted averages use prorated principal as the weight.
type PortfolioReport struct {
	Mode      OwnershipMode `json:"mode"`
	LoanCount int           `json:"loanCount"`
	Skipped   int           `json:"skipped"` // loans that failed valuation

	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalNPV       float64 `json:"totalNpv"`

	WeightedExpectedLossPct float64 `json:"weightedExpectedLossPct"`
	WeightedWAL             float64 `json:"weightedWal"`
	WeightedIRR             float64 `json:"weightedIrr"`

	IRRMedian float64 `json:"irrMedian"`
	IRRStdev  float64 `json:"irrStdev"`

	Loans []LoanKPI `json:"loans"`
}

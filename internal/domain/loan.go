package domain

import (
	"github.com/google/uuid"
)

type LoanEventType string

const (
	LoanEventType_Prepayment LoanEventType = "PREPAYMENT"
	LoanEventType_Deferral   LoanEventType = "DEFERRAL"
	LoanEventType_Default    LoanEventType = "DEFAULT"
)

// LoanEvent is a tagged variant. Prepayment uses Date + Amount, deferral uses
// Date (start) + Months, default uses Date + Amount (gross recovery).
type LoanEvent struct {
	Type   LoanEventType `json:"type"`
	Date   string        `json:"date"`
	Amount float64       `json:"amount,omitempty"`
	Months int           `json:"months,omitempty"`
}

// FeeWaiver is the single waiver taxonomy. The legacy "grace" token waived
// different fee sets depending on the call site; here it means exactly one
// thing: monthly servicing fees are skipped during grace and deferral months.
type FeeWaiver string

const (
	FeeWaiver_None    FeeWaiver = ""
	FeeWaiver_Setup   FeeWaiver = "setup"
	FeeWaiver_Monthly FeeWaiver = "monthly"
	FeeWaiver_Grace   FeeWaiver = "grace"
	FeeWaiver_All     FeeWaiver = "all"
)

func (w FeeWaiver) WaivesSetup() bool {
	return w == FeeWaiver_Setup || w == FeeWaiver_All
}

func (w FeeWaiver) WaivesMonthly(inGraceOrDeferral bool) bool {
	if w == FeeWaiver_Monthly || w == FeeWaiver_All {
		return true
	}
	return w == FeeWaiver_Grace && inGraceOrDeferral
}

type BorrowerRole string

const (
	BorrowerRole_Borrower BorrowerRole = "BORROWER"
	BorrowerRole_Referred BorrowerRole = "REFERRED"
)

// Loan is the immutable input record supplied by the store. Dates stay as raw
// ISO strings until the schedule builder normalizes them, so that malformed
// values can follow the documented fallback rules instead of failing at
// decode time.
type Loan struct {
	LoanID      uuid.UUID `json:"loanId"`
	Principal   float64   `json:"principal"`
	NominalRate float64   `json:"nominalRate"` // annual, as a fraction (0.08 = 8%)
	TermYears   int       `json:"termYears"`
	GraceYears  int       `json:"graceYears"`

	LoanStartDate string `json:"loanStartDate"` // YYYY-MM-DD, required
	PurchaseDate  string `json:"purchaseDate"`  // optional, see PurchaseMonth resolution

	Events        []LoanEvent    `json:"events"`
	OwnershipLots []OwnershipLot `json:"ownershipLots"`

	FeeWaiver FeeWaiver    `json:"feeWaiver"`
	Role      BorrowerRole `json:"role"`
}

func (l Loan) TermMonths() int {
	return l.TermYears * 12
}

func (l Loan) GraceMonths() int {
	return l.GraceYears * 12
}

// Validate checks the financial basics. Date validation is left to the
// schedule builder, which owns the fallback rules.
func (l Loan) Validate() error {
	if l.Principal <= 0 {
		return ValidationErrorf("loan %s: principal must be positive, got %f", l.LoanID, l.Principal)
	}
	if l.NominalRate < 0 {
		return ValidationErrorf("loan %s: rate must be non-negative, got %f", l.LoanID, l.NominalRate)
	}
	if l.TermYears <= 0 {
		return ValidationErrorf("loan %s: term must be positive, got %d years", l.LoanID, l.TermYears)
	}
	return nil
}

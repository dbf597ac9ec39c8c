package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortRow is one calendar month of the canonical ledger. Monetary columns
// are cent-rounded decimals; every downstream consumer (valuation, earnings,
// reporting) derives from this row, never from the raw loan.
type AmortRow struct {
	MonthIndex int       `json:"monthIndex"` // 1-based
	LoanDate   time.Time `json:"loanDate"`   // first of month

	BeginBalance decimal.Decimal `json:"beginBalance"`
	EndBalance   decimal.Decimal `json:"endBalance"`

	Interest   decimal.Decimal `json:"interest"`  // scheduled interest accrued this month
	Principal  decimal.Decimal `json:"principal"` // scheduled principal paid
	Prepayment decimal.Decimal `json:"prepayment"`
	Payment    decimal.Decimal `json:"payment"` // cash received: interest + principal + prepayment + recovery
	Fee        decimal.Decimal `json:"fee"`
	Recovery   decimal.Decimal `json:"recovery"`

	IsOwned    bool `json:"isOwned"`
	InGrace    bool `json:"inGrace"`
	InDeferral bool `json:"inDeferral"`
	IsDefault  bool `json:"isDefault"`
	PaidOff    bool `json:"paidOff"`
	Terminal   bool `json:"terminal"`

	// Cumulative columns accumulate over owned rows only.
	CumPrincipal decimal.Decimal `json:"cumPrincipal"`
	CumInterest  decimal.Decimal `json:"cumInterest"`
	CumPayment   decimal.Decimal `json:"cumPayment"`
}

// RowAsOf returns the most recent row with LoanDate on or before asOf, or nil
// if the schedule starts after asOf. Rows are ordered by month index.
func RowAsOf(rows []AmortRow, asOf time.Time) *AmortRow {
	var found *AmortRow
	for i := range rows {
		if rows[i].LoanDate.After(asOf) {
			break
		}
		found = &rows[i]
	}
	return found
}

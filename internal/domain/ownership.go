package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

// MarketParty implicitly holds whatever fraction of a loan is not held by
// named lots.
const MarketParty = "Market"

// OwnershipLot is an activation-dated stake: it contributes its percentage
// from its purchase month onward and never expires. Lots are append-only.
type OwnershipLot struct {
	LotID        uuid.UUID `json:"lotId"`
	User         string    `json:"user"`
	Percentage   float64   `json:"percentage"` // 0-1
	PricePaid    float64   `json:"pricePaid"`
	PurchaseDate string    `json:"purchaseDate"` // YYYY-MM-DD
}

func samePartyName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// OwnershipPct is the current-state query: the sum of all of the party's lot
// percentages, independent of date. Party match is case and whitespace
// insensitive.
func OwnershipPct(loan Loan, party string) float64 {
	if samePartyName(party, MarketParty) {
		return MarketPct(loan)
	}
	total := 0.0
	for _, lot := range loan.OwnershipLots {
		if samePartyName(lot.User, party) {
			total += lot.Percentage
		}
	}
	return clampPct(total)
}

// OwnershipPctAt is the time-varying query used for earnings attribution: a
// lot counts only once its purchase month is on or before the target month.
// Lots with unparseable purchase dates never activate.
func OwnershipPctAt(loan Loan, party string, month time.Time) float64 {
	target := util.MonthStart(month)
	if samePartyName(party, MarketParty) {
		named := 0.0
		for _, lot := range loan.OwnershipLots {
			if lotActiveAt(lot, target) {
				named += lot.Percentage
			}
		}
		return clampPct(1 - named)
	}
	total := 0.0
	for _, lot := range loan.OwnershipLots {
		if samePartyName(lot.User, party) && lotActiveAt(lot, target) {
			total += lot.Percentage
		}
	}
	return clampPct(total)
}

// MarketPct is the residual not held by named lots, current-state.
func MarketPct(loan Loan) float64 {
	named := 0.0
	for _, lot := range loan.OwnershipLots {
		named += lot.Percentage
	}
	return clampPct(1 - named)
}

// EarliestLotDate returns the earliest parseable lot purchase date, used as
// the purchase-month fallback when the loan record carries none.
func EarliestLotDate(loan Loan) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, lot := range loan.OwnershipLots {
		d, err := util.ParseDate(lot.PurchaseDate)
		if err != nil {
			continue
		}
		if !found || d.Before(earliest) {
			earliest = d
			found = true
		}
	}
	return earliest, found
}

func lotActiveAt(lot OwnershipLot, monthStart time.Time) bool {
	d, err := util.ParseDate(lot.PurchaseDate)
	if err != nil {
		return false
	}
	return !util.MonthStart(d).After(monthStart)
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

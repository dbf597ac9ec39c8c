package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/amort"
	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

// MonthlyEarnings is one party's slice of one calendar month across the
// whole book, prorated by their time-varying ownership percentage.
type MonthlyEarnings struct {
	Month     time.Time       `json:"month"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Fees      decimal.Decimal `json:"fees"`
	Total     decimal.Decimal `json:"total"`
}

type EarningsInput struct {
	Party string
	Today time.Time
	// Assumptions drives the fee schedule the ledger applies.
	Assumptions domain.Assumptions
}

type EarningsService interface {
	ComputeEarnings(ctx context.Context, in EarningsInput) ([]MonthlyEarnings, error)
}

type earningsServiceHandler struct {
	LoanRepository repository.LoanRepository
	Logger         *zap.SugaredLogger
}

func NewEarningsService(loanRepository repository.LoanRepository, logger *zap.SugaredLogger) EarningsService {
	return &earningsServiceHandler{LoanRepository: loanRepository, Logger: logger}
}

// ComputeEarnings attributes ledger interest, principal, and fees to a party
// month by month. A lot only earns from its purchase month onward, so a
// mid-life purchase picks up partway through a loan's schedule.
func (h *earningsServiceHandler) ComputeEarnings(ctx context.Context, in EarningsInput) ([]MonthlyEarnings, error) {
	loans, err := h.LoanRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	cutoff := util.MonthStart(in.Today)
	byMonth := map[time.Time]*MonthlyEarnings{}

	for _, loan := range loans {
		schedule, err := amort.BuildSchedule(loan, amort.Options{
			SetupFee:        in.Assumptions.SetupFee,
			ServicingFeeBps: in.Assumptions.ServicingCostBps,
			Logger:          h.Logger,
		})
		if err != nil {
			h.Logger.Warnw("loan excluded from earnings", "loanId", loan.LoanID, "error", err)
			continue
		}

		for _, row := range schedule {
			if !row.IsOwned || !row.LoanDate.Before(cutoff) {
				continue
			}
			pct := domain.OwnershipPctAt(loan, in.Party, row.LoanDate)
			if pct <= 0 {
				continue
			}
			share := decimal.NewFromFloat(pct)

			entry, ok := byMonth[row.LoanDate]
			if !ok {
				entry = &MonthlyEarnings{Month: row.LoanDate}
				byMonth[row.LoanDate] = entry
			}
			entry.Interest = entry.Interest.Add(row.Interest.Mul(share).Round(2))
			entry.Principal = entry.Principal.Add(row.Principal.Add(row.Prepayment).Mul(share).Round(2))
			entry.Fees = entry.Fees.Add(row.Fee.Mul(share).Round(2))
		}
	}

	out := make([]MonthlyEarnings, 0, len(byMonth))
	for _, entry := range byMonth {
		entry.Total = entry.Interest.Add(entry.Principal).Add(entry.Fees)
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

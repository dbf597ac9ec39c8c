package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

type PortfolioInput struct {
	// User scopes the "portfolio" mode; ignored for mode=market.
	User      string
	Mode      domain.OwnershipMode
	Today     time.Time
	Overrides *domain.AssumptionOverrides
}

type PortfolioService interface {
	ComputePortfolio(ctx context.Context, in PortfolioInput) (*domain.PortfolioReport, error)
}

type portfolioServiceHandler struct {
	LoanRepository     repository.LoanRepository
	BorrowerRepository repository.BorrowerRepository
	ValuationService   ValuationService
	Logger             *zap.SugaredLogger
}

func NewPortfolioService(
	loanRepository repository.LoanRepository,
	borrowerRepository repository.BorrowerRepository,
	valuationService ValuationService,
	logger *zap.SugaredLogger,
) PortfolioService {
	return &portfolioServiceHandler{
		LoanRepository:     loanRepository,
		BorrowerRepository: borrowerRepository,
		ValuationService:   valuationService,
		Logger:             logger,
	}
}

// ComputePortfolio values every loan in scope and reduces to portfolio KPIs.
// A loan that fails valuation contributes zero and bumps the Skipped count;
// one bad loan never aborts the batch.
func (h *portfolioServiceHandler) ComputePortfolio(ctx context.Context, in PortfolioInput) (*domain.PortfolioReport, error) {
	if in.Mode == "" {
		in.Mode = domain.OwnershipMode_All
	}

	loans, err := h.LoanRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	report := &domain.PortfolioReport{
		Mode:  in.Mode,
		Loans: []domain.LoanKPI{},
	}

	weightedLossNumerator := 0.0
	weightedWALNumerator := 0.0
	weightedIRRNumerator := 0.0
	irrWeightTotal := 0.0
	irrSamples := []float64{}

	for _, loan := range loans {
		pct := h.ownershipForMode(loan, in)
		if pct <= 0 {
			continue
		}
		report.LoanCount++

		result, err := h.valueOne(ctx, loan, in)
		if err != nil || result == nil {
			h.Logger.Warnw("loan excluded from portfolio aggregate",
				"loanId", loan.LoanID, "error", err)
			report.Skipped++
			continue
		}
		if result.Unvalued() {
			report.Skipped++
			report.Loans = append(report.Loans, domain.LoanKPI{
				LoanID:       loan.LoanID,
				RiskTier:     result.RiskTier,
				OwnershipPct: pct,
				Unvalued:     true,
			})
			continue
		}

		proratedPrincipal := result.CurrentBalance * pct
		proratedNPV := util.SanitizeFloat(result.NPV) * pct

		report.TotalPrincipal += proratedPrincipal
		report.TotalNPV += proratedNPV
		weightedLossNumerator += result.ExpectedLossPct * proratedPrincipal
		weightedWALNumerator += result.WAL * proratedPrincipal

		kpi := domain.LoanKPI{
			LoanID:            loan.LoanID,
			RiskTier:          result.RiskTier,
			OwnershipPct:      pct,
			ProratedPrincipal: proratedPrincipal,
			ProratedNPV:       proratedNPV,
			ExpectedLossPct:   result.ExpectedLossPct,
			WAL:               result.WAL,
		}
		if !math.IsNaN(result.IRR) {
			kpi.IRR = util.FloatPointer(result.IRR)
			weightedIRRNumerator += result.IRR * proratedPrincipal
			irrWeightTotal += proratedPrincipal
			irrSamples = append(irrSamples, result.IRR)
		}
		report.Loans = append(report.Loans, kpi)
	}

	if report.TotalPrincipal > 0 {
		report.WeightedExpectedLossPct = weightedLossNumerator / report.TotalPrincipal
		report.WeightedWAL = weightedWALNumerator / report.TotalPrincipal
	}
	if irrWeightTotal > 0 {
		report.WeightedIRR = weightedIRRNumerator / irrWeightTotal
	}

	if len(irrSamples) >= 2 {
		if median, err := stats.Median(irrSamples); err == nil {
			report.IRRMedian = util.SanitizeFloat(median)
		}
		if stdev, err := stats.StandardDeviationSample(irrSamples); err == nil {
			report.IRRStdev = util.SanitizeFloat(stdev)
		}
	} else if len(irrSamples) == 1 {
		report.IRRMedian = irrSamples[0]
	}

	return report, nil
}

func (h *portfolioServiceHandler) ownershipForMode(loan domain.Loan, in PortfolioInput) float64 {
	switch in.Mode {
	case domain.OwnershipMode_Portfolio:
		return domain.OwnershipPct(loan, in.User)
	case domain.OwnershipMode_Market:
		return domain.MarketPct(loan)
	default:
		// union: prorate by the caller's stake when they have one,
		// otherwise the full loan
		if in.User != "" {
			if pct := domain.OwnershipPct(loan, in.User); pct > 0 {
				return pct
			}
		}
		return 1.0
	}
}

func (h *portfolioServiceHandler) valueOne(ctx context.Context, loan domain.Loan, in PortfolioInput) (*domain.ValuationResult, error) {
	borrower, err := h.BorrowerRepository.GetByLoanID(ctx, loan.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load borrower: %w", err)
	}
	return h.ValuationService.ValueLoan(ctx, ValueLoanInput{
		Loan:      loan,
		Borrower:  *borrower,
		Today:     in.Today,
		Overrides: in.Overrides,
	})
}

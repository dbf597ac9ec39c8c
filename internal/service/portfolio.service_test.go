package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	mock_repository "github.com/jeff-stratofied/reporting-phase2/internal/repository/mocks"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

type portfolioFixture struct {
	loans     *repository.InMemoryLoanRepository
	borrowers *repository.InMemoryBorrowerRepository
	svc       PortfolioService
}

func newPortfolioFixture(t *testing.T) portfolioFixture {
	t.Helper()
	loans := repository.NewInMemoryLoanRepository()
	borrowers := repository.NewInMemoryBorrowerRepository()
	valuation := newTestValuationService(testCurves(nil, nil, 0, 0), nil)
	return portfolioFixture{
		loans:     loans,
		borrowers: borrowers,
		svc:       NewPortfolioService(loans, borrowers, valuation, zap.NewNop().Sugar()),
	}
}

func (f portfolioFixture) addLoan(t *testing.T, loan domain.Loan) {
	t.Helper()
	require.NoError(t, f.loans.Add(context.Background(), loan))
	f.borrowers.Set(loan.LoanID, mediumBorrower())
}

func TestComputePortfolio(t *testing.T) {
	ctx := context.Background()
	today := util.NewDate(2023, 1, 1)

	t.Run("aggregates every loan in mode all", func(t *testing.T) {
		f := newPortfolioFixture(t)
		f.addLoan(t, cleanLoan())
		f.addLoan(t, cleanLoan())

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{Today: today})
		require.NoError(t, err)

		require.Equal(t, domain.OwnershipMode_All, report.Mode)
		require.Equal(t, 2, report.LoanCount)
		require.Zero(t, report.Skipped)
		require.InDelta(t, 20_000.0, report.TotalPrincipal, 0.01)
		require.InDelta(t, 20_000.0, report.TotalNPV, 0.02)
		require.Len(t, report.Loans, 2)
		// two identical 8% loans: the median is the common IRR
		require.InDelta(t, 8.0, report.IRRMedian, 0.05)
		require.InDelta(t, 0.0, report.IRRStdev, 1e-6)
	})

	t.Run("portfolio mode prorates by the caller's stake", func(t *testing.T) {
		f := newPortfolioFixture(t)
		held := cleanLoan()
		held.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 0.40, PurchaseDate: "2023-01-01"},
		}
		f.addLoan(t, held)
		f.addLoan(t, cleanLoan()) // no alice stake

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{
			User: "alice", Mode: domain.OwnershipMode_Portfolio, Today: today,
		})
		require.NoError(t, err)

		require.Equal(t, 1, report.LoanCount)
		require.InDelta(t, 4_000.0, report.TotalPrincipal, 0.01)
		require.Len(t, report.Loans, 1)
		require.InDelta(t, 0.40, report.Loans[0].OwnershipPct, 1e-9)
	})

	t.Run("market mode holds the residual", func(t *testing.T) {
		f := newPortfolioFixture(t)
		held := cleanLoan()
		held.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 0.40, PurchaseDate: "2023-01-01"},
		}
		f.addLoan(t, held)

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{
			Mode: domain.OwnershipMode_Market, Today: today,
		})
		require.NoError(t, err)

		require.InDelta(t, 6_000.0, report.TotalPrincipal, 0.01)
	})

	t.Run("one bad loan never aborts the batch", func(t *testing.T) {
		f := newPortfolioFixture(t)
		f.addLoan(t, cleanLoan())

		bad := cleanLoan()
		bad.Principal = -1
		f.addLoan(t, bad)

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{Today: today})
		require.NoError(t, err)

		require.Equal(t, 2, report.LoanCount)
		require.Equal(t, 1, report.Skipped)
		require.InDelta(t, 10_000.0, report.TotalPrincipal, 0.01)

		var unvalued *domain.LoanKPI
		for i := range report.Loans {
			if report.Loans[i].Unvalued {
				unvalued = &report.Loans[i]
			}
		}
		require.NotNil(t, unvalued)
		require.Equal(t, bad.LoanID, unvalued.LoanID)
		require.Zero(t, unvalued.ProratedPrincipal)
	})

	t.Run("missing borrower skips the loan", func(t *testing.T) {
		f := newPortfolioFixture(t)
		loan := cleanLoan()
		require.NoError(t, f.loans.Add(ctx, loan)) // no borrower record

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{Today: today})
		require.NoError(t, err)

		require.Equal(t, 1, report.Skipped)
		require.Zero(t, report.TotalPrincipal)
	})

	t.Run("weighted KPIs use prorated principal as weight", func(t *testing.T) {
		f := newPortfolioFixture(t)
		big := cleanLoan()
		big.Principal = 90_000
		f.addLoan(t, big)

		small := cleanLoan()
		small.Principal = 10_000
		f.addLoan(t, small)

		report, err := f.svc.ComputePortfolio(ctx, PortfolioInput{Today: today})
		require.NoError(t, err)

		require.InDelta(t, 100_000.0, report.TotalPrincipal, 0.01)
		// same rate and term: weighting collapses to the common values
		require.InDelta(t, 8.0, report.WeightedIRR, 0.05)
		require.InDelta(t, report.Loans[0].WAL, report.WeightedWAL, 1e-6)
	})

	t.Run("store failure surfaces as an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loans := mock_repository.NewMockLoanRepository(ctrl)
		borrowers := mock_repository.NewMockBorrowerRepository(ctrl)
		loans.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

		svc := NewPortfolioService(loans, borrowers,
			newTestValuationService(testCurves(nil, nil, 0, 0), nil), zap.NewNop().Sugar())

		_, err := svc.ComputePortfolio(ctx, PortfolioInput{Today: today})
		require.ErrorContains(t, err, "failed to list loans")
	})
}

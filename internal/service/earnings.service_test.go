package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

func TestComputeEarnings(t *testing.T) {
	ctx := context.Background()

	addLoan := func(t *testing.T, repo *repository.InMemoryLoanRepository, loan domain.Loan) {
		t.Helper()
		require.NoError(t, repo.Add(ctx, loan))
	}

	newSvc := func(repo *repository.InMemoryLoanRepository) EarningsService {
		return NewEarningsService(repo, zap.NewNop().Sugar())
	}

	t.Run("full owner collects the whole ledger", func(t *testing.T) {
		repo := repository.NewInMemoryLoanRepository()
		loan := cleanLoan()
		loan.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 1.0, PurchaseDate: "2023-01-01"},
		}
		addLoan(t, repo, loan)

		earnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party:       "alice",
			Today:       util.NewDate(2024, 1, 1),
			Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)

		// Jan through Dec 2023 have fully elapsed
		require.Len(t, earnings, 12)
		require.Equal(t, util.NewDate(2023, 1, 1), earnings[0].Month)
		require.Equal(t, util.NewDate(2023, 12, 1), earnings[11].Month)

		// first month: 10,000 at 8% accrues 66.67 interest, plus the setup
		// fee and the monthly servicing fee
		require.True(t, earnings[0].Interest.Equal(decimal.NewFromFloat(66.67)),
			"got %s", earnings[0].Interest)
		require.True(t, earnings[0].Fees.GreaterThan(decimal.NewFromInt(100)))
		require.True(t, earnings[0].Total.Equal(
			earnings[0].Interest.Add(earnings[0].Principal).Add(earnings[0].Fees)))
	})

	t.Run("mid-life purchase earns only from its lot month", func(t *testing.T) {
		repo := repository.NewInMemoryLoanRepository()
		loan := cleanLoan()
		loan.PurchaseDate = "2023-01-01"
		loan.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "bob", Percentage: 0.5, PurchaseDate: "2023-07-01"},
		}
		addLoan(t, repo, loan)

		earnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party:       "bob",
			Today:       util.NewDate(2024, 1, 1),
			Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)

		require.Len(t, earnings, 6)
		require.Equal(t, util.NewDate(2023, 7, 1), earnings[0].Month)
	})

	t.Run("market collects the residual share", func(t *testing.T) {
		repo := repository.NewInMemoryLoanRepository()
		loan := cleanLoan()
		loan.PurchaseDate = "2023-01-01"
		loan.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 0.25, PurchaseDate: "2023-01-01"},
		}
		addLoan(t, repo, loan)

		aliceEarnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party: "alice", Today: util.NewDate(2023, 3, 1), Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)
		marketEarnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party: domain.MarketParty, Today: util.NewDate(2023, 3, 1), Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)

		require.Len(t, aliceEarnings, 2)
		require.Len(t, marketEarnings, 2)
		// 25/75 split of the same 66.67 interest row
		require.True(t, aliceEarnings[0].Interest.Equal(decimal.NewFromFloat(16.67)),
			"got %s", aliceEarnings[0].Interest)
		total := aliceEarnings[0].Interest.Add(marketEarnings[0].Interest)
		require.True(t, total.Equal(decimal.NewFromFloat(66.67)), "got %s", total)
	})

	t.Run("party with no stake earns nothing", func(t *testing.T) {
		repo := repository.NewInMemoryLoanRepository()
		addLoan(t, repo, cleanLoan())

		earnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party:       "nobody",
			Today:       util.NewDate(2024, 1, 1),
			Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)
		require.Empty(t, earnings)
	})

	t.Run("unbuildable loans are excluded, not fatal", func(t *testing.T) {
		repo := repository.NewInMemoryLoanRepository()
		good := cleanLoan()
		good.OwnershipLots = []domain.OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 1.0, PurchaseDate: "2023-01-01"},
		}
		addLoan(t, repo, good)

		bad := cleanLoan()
		bad.LoanStartDate = ""
		bad.OwnershipLots = good.OwnershipLots
		addLoan(t, repo, bad)

		earnings, err := newSvc(repo).ComputeEarnings(ctx, EarningsInput{
			Party:       "alice",
			Today:       util.NewDate(2024, 1, 1),
			Assumptions: flatAssumptions(),
		})
		require.NoError(t, err)
		require.Len(t, earnings, 12)
	})
}

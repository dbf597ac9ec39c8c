package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func lotsLoan() Loan {
	return Loan{
		LoanID: uuid.New(),
		OwnershipLots: []OwnershipLot{
			{LotID: uuid.New(), User: "alice", Percentage: 0.30, PurchaseDate: "2023-02-01"},
			{LotID: uuid.New(), User: "Alice ", Percentage: 0.10, PurchaseDate: "2023-06-01"},
			{LotID: uuid.New(), User: "bob", Percentage: 0.25, PurchaseDate: "2023-04-01"},
		},
	}
}

func TestOwnershipPct(t *testing.T) {
	loan := lotsLoan()

	t.Run("sums lots per party, case and whitespace insensitive", func(t *testing.T) {
		require.InDelta(t, 0.40, OwnershipPct(loan, "ALICE"), 1e-9)
		require.InDelta(t, 0.25, OwnershipPct(loan, "bob"), 1e-9)
	})

	t.Run("unknown party holds nothing", func(t *testing.T) {
		require.Zero(t, OwnershipPct(loan, "carol"))
	})

	t.Run("market holds the residual", func(t *testing.T) {
		require.InDelta(t, 0.35, OwnershipPct(loan, "Market"), 1e-9)
		require.InDelta(t, 0.35, MarketPct(loan), 1e-9)
	})

	t.Run("market never goes negative", func(t *testing.T) {
		over := lotsLoan()
		over.OwnershipLots = append(over.OwnershipLots, OwnershipLot{
			User: "dave", Percentage: 0.50, PurchaseDate: "2023-08-01",
		})

		require.Zero(t, MarketPct(over))
	})
}

func TestOwnershipPctAt(t *testing.T) {
	loan := lotsLoan()

	t.Run("lots activate from their purchase month", func(t *testing.T) {
		jan := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
		mar := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
		jul := time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)

		require.Zero(t, OwnershipPctAt(loan, "alice", jan))
		require.InDelta(t, 0.30, OwnershipPctAt(loan, "alice", mar), 1e-9)
		require.InDelta(t, 0.40, OwnershipPctAt(loan, "alice", jul), 1e-9)
	})

	t.Run("stake is monotone non-decreasing over time", func(t *testing.T) {
		prev := 0.0
		for m := 0; m < 12; m++ {
			month := time.Date(2023, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
			pct := OwnershipPctAt(loan, "alice", month)
			require.GreaterOrEqual(t, pct, prev, "month %d", m+1)
			prev = pct
		}
	})

	t.Run("market residual shrinks as lots activate", func(t *testing.T) {
		jan := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		dec := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

		require.InDelta(t, 1.0, OwnershipPctAt(loan, "Market", jan), 1e-9)
		require.InDelta(t, 0.35, OwnershipPctAt(loan, "market", dec), 1e-9)
	})

	t.Run("lots with unparseable dates never activate", func(t *testing.T) {
		bad := Loan{OwnershipLots: []OwnershipLot{
			{User: "alice", Percentage: 0.5, PurchaseDate: "02/01/2023"},
		}}
		dec := time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC)

		require.Zero(t, OwnershipPctAt(bad, "alice", dec))
	})
}

func TestEarliestLotDate(t *testing.T) {
	t.Run("picks the earliest parseable date", func(t *testing.T) {
		d, ok := EarliestLotDate(lotsLoan())

		require.True(t, ok)
		require.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("no parseable lots reports not found", func(t *testing.T) {
		_, ok := EarliestLotDate(Loan{OwnershipLots: []OwnershipLot{
			{User: "alice", Percentage: 0.5, PurchaseDate: "bogus"},
		}})

		require.False(t, ok)
	})
}

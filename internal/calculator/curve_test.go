package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonthlyDefaultRates(t *testing.T) {
	t.Run("output length matches the horizon exactly", func(t *testing.T) {
		curve := []float64{2, 5, 8}

		require.Len(t, MonthlyDefaultRates(curve, 60), 60)
		require.Len(t, MonthlyDefaultRates(curve, 7), 7)
		require.Len(t, MonthlyDefaultRates(curve, 36), 36)
		require.Empty(t, MonthlyDefaultRates(curve, 0))
	})

	t.Run("de-cumulates year over year", func(t *testing.T) {
		rates := MonthlyDefaultRates([]float64{2, 5}, 24)

		year1 := 1 - math.Pow(1-0.02, 1.0/12.0)
		year2 := 1 - math.Pow(1-0.03, 1.0/12.0)
		require.InDelta(t, year1, rates[0], 1e-12)
		require.InDelta(t, year1, rates[11], 1e-12)
		require.InDelta(t, year2, rates[12], 1e-12)
	})

	t.Run("last rate repeats past the curve", func(t *testing.T) {
		rates := MonthlyDefaultRates([]float64{2, 5}, 48)

		require.Equal(t, rates[23], rates[24])
		require.Equal(t, rates[23], rates[47])
	})

	t.Run("non-monotone cumulative curve floors at zero", func(t *testing.T) {
		rates := MonthlyDefaultRates([]float64{5, 3}, 24)

		require.Zero(t, rates[12])
	})

	t.Run("rates stay inside the unit interval", func(t *testing.T) {
		rates := MonthlyDefaultRates([]float64{10, 50, 100, 120}, 60)

		for i, r := range rates {
			require.GreaterOrEqual(t, r, 0.0, "month %d", i+1)
			require.Less(t, r, 1.0, "month %d", i+1)
		}
	})

	t.Run("empty curve means zero hazard", func(t *testing.T) {
		rates := MonthlyDefaultRates(nil, 12)

		require.Len(t, rates, 12)
		for _, r := range rates {
			require.Zero(t, r)
		}
	})
}

func TestMonthlySMM(t *testing.T) {
	t.Run("CPR values are taken as marginal", func(t *testing.T) {
		rates := MonthlySMM([]float64{12, 12}, 24)

		expected := 1 - math.Pow(1-0.12, 1.0/12.0)
		require.InDelta(t, expected, rates[0], 1e-12)
		require.InDelta(t, expected, rates[13], 1e-12)
	})

	t.Run("output length matches the horizon exactly", func(t *testing.T) {
		require.Len(t, MonthlySMM([]float64{5}, 120), 120)
		require.Len(t, MonthlySMM([]float64{5, 8, 10}, 5), 5)
	})
}

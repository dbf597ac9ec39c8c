package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateIRR(t *testing.T) {
	t.Run("single period identity", func(t *testing.T) {
		// 1000 out, 1010 back one month later: 1% monthly, 12% annualized
		irr := CalculateIRR([]float64{1010}, 1000)

		require.InDelta(t, 12.0, irr, 1e-3)
	})

	t.Run("principal repaid exactly yields zero", func(t *testing.T) {
		irr := CalculateIRR([]float64{1000}, 1000)

		require.Zero(t, irr)
	})

	t.Run("level annuity recovers the contract rate", func(t *testing.T) {
		// 120 payments of 121.33 against 10,000 is an 8% loan
		cashFlows := make([]float64, 120)
		for i := range cashFlows {
			cashFlows[i] = 121.33
		}

		irr := CalculateIRR(cashFlows, 10_000)

		require.InDelta(t, 8.0, irr, 0.05)
	})

	t.Run("slightly underwater flows solve to a negative rate", func(t *testing.T) {
		irr := CalculateIRR([]float64{998}, 1000)

		require.False(t, math.IsNaN(irr))
		require.Negative(t, irr)
	})

	t.Run("deeply underwater flows return NaN", func(t *testing.T) {
		irr := CalculateIRR([]float64{500}, 1000)

		require.True(t, math.IsNaN(irr))
	})

	t.Run("rate above the solver bound returns NaN", func(t *testing.T) {
		irr := CalculateIRR([]float64{5000}, 1000)

		require.True(t, math.IsNaN(irr))
	})

	t.Run("degenerate inputs return NaN", func(t *testing.T) {
		require.True(t, math.IsNaN(CalculateIRR(nil, 1000)))
		require.True(t, math.IsNaN(CalculateIRR([]float64{100}, 0)))
	})
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

func TestAssumptionsApply(t *testing.T) {
	t.Run("nil overrides leave the profile unchanged", func(t *testing.T) {
		base := DefaultAssumptions()

		merged := base.Apply(nil)

		require.Equal(t, base, merged)
	})

	t.Run("set fields win, unset fields fall through", func(t *testing.T) {
		base := DefaultAssumptions()
		merged := base.Apply(&AssumptionOverrides{
			ServicingCostBps: util.FloatPointer(75),
			BaseRiskFreeRate: util.FloatPointer(0.05),
		})

		require.Equal(t, 75.0, merged.ServicingCostBps)
		require.Equal(t, 0.05, merged.BaseRiskFreeRate)
		require.Equal(t, base.SetupFee, merged.SetupFee)
		require.Equal(t, base.PrepaymentMultiplier, merged.PrepaymentMultiplier)
	})

	t.Run("explicit zero is distinguishable from unset", func(t *testing.T) {
		merged := DefaultAssumptions().Apply(&AssumptionOverrides{
			SetupFee: util.FloatPointer(0),
		})

		require.Zero(t, merged.SetupFee)
	})

	t.Run("map entries merge key-wise", func(t *testing.T) {
		merged := DefaultAssumptions().Apply(&AssumptionOverrides{
			DegreeAdjustmentsBps: map[string]float64{"STEM": -50},
			RiskPremiumBps:       map[RiskTier]float64{RiskTier_Low: 150},
		})

		require.Equal(t, -50.0, merged.DegreeAdjustmentsBps["STEM"])
		require.Equal(t, 25.0, merged.DegreeAdjustmentsBps["OTHER"])
		require.Equal(t, 150.0, merged.RiskPremiumBps[RiskTier_Low])
	})

	t.Run("merging does not mutate the base layer", func(t *testing.T) {
		base := DefaultAssumptions()
		_ = base.Apply(&AssumptionOverrides{
			DegreeAdjustmentsBps: map[string]float64{"STEM": -999},
		})

		require.Equal(t, -25.0, base.DegreeAdjustmentsBps["STEM"])
	})

	t.Run("layers stack left to right", func(t *testing.T) {
		system := &AssumptionOverrides{
			ServicingCostBps: util.FloatPointer(60),
			SetupFee:         util.FloatPointer(150),
		}
		request := &AssumptionOverrides{
			SetupFee: util.FloatPointer(0),
		}

		merged := DefaultAssumptions().Apply(system).Apply(request)

		require.Equal(t, 60.0, merged.ServicingCostBps)
		require.Zero(t, merged.SetupFee)
	})
}

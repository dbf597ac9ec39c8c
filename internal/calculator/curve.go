package calculator

import (
	"math"
)

// MonthlyDefaultRates converts an annual cumulative default curve (percent,
// one entry per loan year) into a monthly marginal probability-of-default
// vector of exactly `months` entries.
//
// The annual curve is de-cumulated into year-over-year marginal percentages,
// each converted to an equivalent monthly hazard via 1-(1-annual)^(1/12) and
// repeated for that year's 12 months. Past the end of the curve the last
// monthly rate repeats.
func MonthlyDefaultRates(cumulativeDefaultPct []float64, months int) []float64 {
	if months <= 0 {
		return []float64{}
	}

	out := make([]float64, 0, months)
	prevCumulative := 0.0
	lastMonthly := 0.0

	for _, cumulative := range cumulativeDefaultPct {
		marginal := cumulative - prevCumulative
		if marginal < 0 {
			marginal = 0
		}
		prevCumulative = cumulative

		lastMonthly = annualToMonthly(marginal / 100)
		for i := 0; i < 12 && len(out) < months; i++ {
			out = append(out, lastMonthly)
		}
		if len(out) >= months {
			return out
		}
	}

	for len(out) < months {
		out = append(out, lastMonthly)
	}
	return out
}

// MonthlySMM converts an annual CPR curve (percent, one entry per loan year)
// into monthly single-monthly-mortality rates, same shape rules as
// MonthlyDefaultRates except CPR values are already marginal.
func MonthlySMM(annualCPRPct []float64, months int) []float64 {
	if months <= 0 {
		return []float64{}
	}

	out := make([]float64, 0, months)
	lastMonthly := 0.0

	for _, cpr := range annualCPRPct {
		lastMonthly = annualToMonthly(cpr / 100)
		for i := 0; i < 12 && len(out) < months; i++ {
			out = append(out, lastMonthly)
		}
		if len(out) >= months {
			return out
		}
	}

	for len(out) < months {
		out = append(out, lastMonthly)
	}
	return out
}

func annualToMonthly(annualRate float64) float64 {
	if annualRate <= 0 {
		return 0
	}
	if annualRate >= 1 {
		// cumulative curves hitting 100% would otherwise produce 1.0,
		// outside the guaranteed [0,1) range
		annualRate = 0.9999
	}
	return 1 - math.Pow(1-annualRate, 1.0/12.0)
}

package calculator

import (
	"math"
)

const (
	irrMaxIterations = 100
	irrTolerance     = 1e-6 // absolute NPV residual

	// bisection bounds on the monthly rate: 0 to 1200% annualized, with a
	// floor extension to -5% annualized for slightly underwater flows
	irrMonthlyUpperBound = 1.0
	irrAnnualFloor       = -0.05
)

// CalculateIRR solves for the annualized internal rate of return, in
// percent, of a cash-flow vector via bounded bisection. cashFlows[i] is the
// inflow at month i+1; the implicit month-0 outflow is principal.
//
// Returns NaN when the solver cannot converge within bounds or when the
// implied rate is below -5% annualized, which this asset class treats as
// unsolvable rather than a usable yield.
func CalculateIRR(cashFlows []float64, principal float64) float64 {
	if len(cashFlows) == 0 || principal <= 0 {
		return math.NaN()
	}

	lo := 0.0
	hi := irrMonthlyUpperBound

	npvAtLo := npvResidual(cashFlows, principal, lo)
	if math.Abs(npvAtLo) < irrTolerance {
		return 0
	}
	if npvAtLo < 0 {
		// total inflows fall short of principal: the rate is negative.
		// Accept it only down to the -5% annualized floor.
		lo = irrAnnualFloor / 12
		hi = 0
		if npvResidual(cashFlows, principal, lo) < 0 {
			return math.NaN()
		}
	} else if npvResidual(cashFlows, principal, hi) > 0 {
		return math.NaN()
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		residual := npvResidual(cashFlows, principal, mid)
		if math.Abs(residual) < irrTolerance {
			return annualize(mid)
		}
		if residual > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	// converged in rate but not in residual: good enough if the bracket
	// collapsed, otherwise report failure
	mid := (lo + hi) / 2
	if math.Abs(npvResidual(cashFlows, principal, mid)) < 1 {
		return annualize(mid)
	}
	return math.NaN()
}

// npvResidual is the discounted value of the inflows minus principal at the
// given monthly rate. Positive means the rate is too low.
func npvResidual(cashFlows []float64, principal float64, monthlyRate float64) float64 {
	npv := -principal
	for i, cf := range cashFlows {
		npv += cf / math.Pow(1+monthlyRate, float64(i+1))
	}
	return npv
}

func annualize(monthlyRate float64) float64 {
	annual := monthlyRate * 12 * 100
	if annual < irrAnnualFloor*100 {
		return math.NaN()
	}
	return annual
}

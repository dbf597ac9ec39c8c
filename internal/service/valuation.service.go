package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/amort"
	"github.com/jeff-stratofied/reporting-phase2/internal/calculator"
	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/repository"
	"github.com/jeff-stratofied/reporting-phase2/internal/risk"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

// riskPremiumCapBps bounds the total risk premium regardless of how many
// adjustments stack up.
const riskPremiumCapBps = 500.0

// seasoningDampening is the fraction of the prepayment multiplier applied
// before the seasoning threshold. Pre-seasoned borrowers rarely refinance;
// full prepayment behavior only kicks in after the ramp.
const seasoningDampening = 0.10

type ValueLoanInput struct {
	Loan     domain.Loan
	Borrower domain.Borrower
	// Today anchors the valuation; injecting it keeps results deterministic
	// for identical inputs.
	Today     time.Time
	Overrides *domain.AssumptionOverrides
}

type ValuationService interface {
	ValueLoan(ctx context.Context, in ValueLoanInput) (*domain.ValuationResult, error)
}

type valuationServiceHandler struct {
	CurveProvider   repository.CurveProvider
	SchoolDirectory repository.SchoolDirectory
	// Cache is optional; nil disables memoization
	Cache repository.ValuationCache
	// BaseAssumptions is the defaults+system layer; per-request overrides
	// stack on top
	BaseAssumptions domain.Assumptions
	Logger          *zap.SugaredLogger
}

func NewValuationService(
	curveProvider repository.CurveProvider,
	schoolDirectory repository.SchoolDirectory,
	cache repository.ValuationCache,
	baseAssumptions domain.Assumptions,
	logger *zap.SugaredLogger,
) ValuationService {
	return &valuationServiceHandler{
		CurveProvider:   curveProvider,
		SchoolDirectory: schoolDirectory,
		Cache:           cache,
		BaseAssumptions: baseAssumptions,
		Logger:          logger,
	}
}

// ValueLoan prices the remaining cash flows of a loan from Today. Loans that
// fail basic validation return the unvalued sentinel rather than an error so
// aggregation stays uniform; missing reference data is a real error the
// caller must defer on.
func (h *valuationServiceHandler) ValueLoan(ctx context.Context, in ValueLoanInput) (*domain.ValuationResult, error) {
	if err := in.Loan.Validate(); err != nil {
		h.Logger.Infow("loan failed validation, returning unvalued sentinel",
			"loanId", in.Loan.LoanID, "error", err)
		return domain.UnvaluedResult(in.Loan.LoanID), nil
	}

	assumptions := h.BaseAssumptions.Apply(in.Overrides)

	cacheKey := valuationCacheKey(in, assumptions)
	if h.Cache != nil {
		if cached, ok := h.Cache.Fetch(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	result, err := h.value(in, assumptions)
	if err != nil {
		return nil, err
	}

	if h.Cache != nil {
		h.Cache.Store(ctx, cacheKey, result)
	}
	return result, nil
}

func (h *valuationServiceHandler) value(in ValueLoanInput, a domain.Assumptions) (*domain.ValuationResult, error) {
	loan := in.Loan

	schedule, err := amort.BuildSchedule(loan, amort.Options{
		SetupFee:        a.SetupFee,
		ServicingFeeBps: a.ServicingCostBps,
		Logger:          h.Logger,
	})
	if err != nil {
		h.Logger.Infow("schedule build failed, returning unvalued sentinel",
			"loanId", loan.LoanID, "error", err)
		return domain.UnvaluedResult(loan.LoanID), nil
	}

	tier := risk.DeriveRiskTier(in.Borrower, a)
	schoolRecord := h.SchoolDirectory.Lookup(in.Borrower.OPEID)
	schoolTier := risk.SchoolTier(schoolRecord, a)

	// re-derive the current position from the ledger, not from scratch:
	// only months that have fully elapsed count
	currentBalance, elapsedMonths, closed := currentPosition(schedule, loan, in.Today)
	totalMonths := loan.GraceMonths() + loan.TermMonths()
	remainingMonths := totalMonths - elapsedMonths

	components := h.riskComponents(in.Borrower, tier, schoolTier, a)
	discountAnnual := a.BaseRiskFreeRate + components.TotalBps/10000
	monthlyDiscount := discountAnnual / 12

	if closed != nil {
		closed.RiskTier = tier
		closed.SchoolTier = schoolTier
		closed.DiscountRate = util.FloatPointer(discountAnnual)
		closed.RiskComponents = components
		return closed, nil
	}
	if currentBalance <= 0 || remainingMonths <= 0 {
		result := domain.ZeroValuation(loan.LoanID, tier, discountAnnual)
		result.SchoolTier = schoolTier
		result.RiskComponents = components
		return result, nil
	}

	curve, err := h.CurveProvider.GetCurve(tier)
	if err != nil {
		return nil, fmt.Errorf("cannot value loan %s: %w", loan.LoanID, err)
	}

	recoveryRate := curve.Recovery.GrossRecoveryPct / 100
	if override, ok := a.RecoveryRate[tier]; ok {
		recoveryRate = override
	}

	pd := calculator.MonthlyDefaultRates(curve.DefaultCurve.CumulativeDefaultPct, remainingMonths)
	smm := calculator.MonthlySMM(curve.PrepaymentCurve.ValuesPct, remainingMonths)

	sim := h.simulate(simulationInput{
		loan:            loan,
		balance:         currentBalance,
		elapsedMonths:   elapsedMonths,
		remainingMonths: remainingMonths,
		graceRemaining:  maxInt(0, loan.GraceMonths()-elapsedMonths),
		monthlyDiscount: monthlyDiscount,
		pd:              pd,
		smm:             smm,
		recoveryRate:    recoveryRate,
		recoveryLag:     curve.Recovery.RecoveryLagMonths,
		assumptions:     a,
		today:           in.Today,
	})

	result := &domain.ValuationResult{
		LoanID:          loan.LoanID,
		RiskTier:        tier,
		SchoolTier:      schoolTier,
		DiscountRate:    util.FloatPointer(discountAnnual),
		CurrentBalance:  currentBalance,
		RemainingMonths: remainingMonths,
		NPV:             sim.npv,
		NPVRatio:        util.SanitizeFloat(sim.npv/currentBalance - 1),
		ExpectedLossPct: sim.expectedLossPct(currentBalance),
		WAL:             sim.wal(),
		IRR:             calculator.CalculateIRR(sim.cashFlows, currentBalance),
		CashFlows:       sim.rows,
		RiskComponents:  components,
	}
	return result, nil
}

// currentPosition finds the last fully elapsed ledger row before Today's
// month. A terminal row yields a closed result: zero NPV, and for defaults
// the realized loss.
func currentPosition(schedule []domain.AmortRow, loan domain.Loan, today time.Time) (float64, int, *domain.ValuationResult) {
	cutoff := util.MonthStart(today)
	var last *domain.AmortRow
	for i := range schedule {
		if !schedule[i].LoanDate.Before(cutoff) {
			break
		}
		last = &schedule[i]
	}

	if last == nil {
		return loan.Principal, 0, nil
	}
	if last.Terminal {
		result := domain.ZeroValuation(loan.LoanID, domain.RiskTier_Unknown, 0)
		if last.IsDefault {
			realized := last.BeginBalance.Sub(last.Recovery).InexactFloat64()
			if realized < 0 {
				realized = 0
			}
			result.ExpectedLossPct = util.SanitizeFloat(realized / loan.Principal * 100)
		}
		return 0, last.MonthIndex, result
	}
	return last.EndBalance.InexactFloat64(), last.MonthIndex, nil
}

func (h *valuationServiceHandler) riskComponents(
	b domain.Borrower,
	tier domain.RiskTier,
	schoolTier domain.SchoolTier,
	a domain.Assumptions,
) domain.RiskComponents {
	base := 0.0
	if override, ok := a.RiskPremiumBps[tier]; ok {
		base = override
	} else if curve, err := h.CurveProvider.GetCurve(tier); err == nil {
		base = curve.RiskPremiumBps
	}

	fico := 0.0
	if b.BorrowerFico > 0 {
		fico += a.FicoBorrowerAdjustmentBps
	}
	if b.CosignerFico > 0 {
		fico += a.FicoCosignerAdjustmentBps
	}

	degreeKey := strings.ToUpper(strings.TrimSpace(b.DegreeType))
	degree, ok := a.DegreeAdjustmentsBps[degreeKey]
	if !ok {
		degree = a.DegreeAdjustmentsBps["OTHER"]
	}

	school := a.SchoolAdjustmentsBps[schoolTier] * a.SchoolTierMultiplier
	year := a.YearInSchoolAdjustmentsBps[risk.YearInSchool(b.YearInSchool)]

	graduate := 0.0
	if b.IsGraduateStudent {
		graduate = a.GraduateAdjustmentBps
	}

	total := base + fico + degree + school + year + graduate
	capped := false
	if total > riskPremiumCapBps {
		total = riskPremiumCapBps
		capped = true
	}
	if total < 0 {
		total = 0
	}

	return domain.RiskComponents{
		BaseBps:         base,
		FicoBps:         fico,
		DegreeBps:       degree,
		SchoolBps:       school,
		YearInSchoolBps: year,
		GraduateBps:     graduate,
		TotalBps:        total,
		Capped:          capped,
	}
}

type simulationInput struct {
	loan            domain.Loan
	balance         float64
	elapsedMonths   int
	remainingMonths int
	graceRemaining  int
	monthlyDiscount float64
	pd              []float64
	smm             []float64
	recoveryRate    float64
	recoveryLag     int
	assumptions     domain.Assumptions
	today           time.Time
}

type simulationResult struct {
	npv             float64
	walNumerator    float64
	totalDiscounted float64
	totalDefaults   float64
	totalRecoveries float64
	cashFlows       []float64
	rows            []domain.CashFlowRow
}

// simulate runs the monthly expected cash-flow projection over the remaining
// term. Defaulted amounts enter a recovery queue recoveryLag months out;
// recoveries landing past the horizon discount straight into NPV at the
// default month instead.
func (h *valuationServiceHandler) simulate(in simulationInput) simulationResult {
	out := simulationResult{
		cashFlows: make([]float64, 0, in.remainingMonths),
		rows:      make([]domain.CashFlowRow, 0, in.remainingMonths),
	}

	monthlyRate := in.loan.NominalRate / 12
	amortizingMonths := in.remainingMonths - in.graceRemaining
	payment := monthlyPayment(in.balance, monthlyRate, amortizingMonths)

	seasoningMonths := int(in.assumptions.PrepaySeasoningYears * 12)
	pendingRecoveries := make([]float64, in.remainingMonths+1)

	balance := in.balance
	monthAnchor := util.MonthStart(in.today)

	for m := 1; m <= in.remainingMonths; m++ {
		interest := balance * monthlyRate

		scheduledPrincipal := 0.0
		if m > in.graceRemaining {
			scheduledPrincipal = payment - interest
			if scheduledPrincipal < 0 {
				scheduledPrincipal = 0
			}
			if scheduledPrincipal > balance {
				scheduledPrincipal = balance
			}
		}
		afterScheduled := balance - scheduledPrincipal

		// seasoning ramp: a single formula, applied to the SMM the cash
		// flows actually use. Loan age counts from origination.
		multiplier := in.assumptions.PrepaymentMultiplier
		if in.elapsedMonths+m < seasoningMonths {
			multiplier *= seasoningDampening
		}
		prepay := afterScheduled * in.smm[m-1] * multiplier
		afterPrepay := afterScheduled - prepay

		defaulted := afterPrepay * in.pd[m-1]
		endBalance := afterPrepay - defaulted
		out.totalDefaults += defaulted

		discount := math.Pow(1+in.monthlyDiscount, float64(m))

		if recovery := defaulted * in.recoveryRate; recovery > 0 {
			if m+in.recoveryLag <= in.remainingMonths {
				pendingRecoveries[m+in.recoveryLag] += recovery
			} else {
				out.npv += recovery / discount
				out.totalRecoveries += recovery
			}
		}

		recoveryReceived := pendingRecoveries[m]
		out.totalRecoveries += recoveryReceived

		cashFlow := interest + scheduledPrincipal + prepay + recoveryReceived
		discounted := cashFlow / discount

		out.npv += discounted
		out.walNumerator += discounted * float64(m)
		out.totalDiscounted += discounted
		out.cashFlows = append(out.cashFlows, cashFlow)

		cumulativeLoss := out.totalDefaults - out.totalRecoveries
		if cumulativeLoss < 0 {
			cumulativeLoss = 0
		}

		out.rows = append(out.rows, domain.CashFlowRow{
			Month:              m,
			Date:               monthAnchor.AddDate(0, m, 0),
			BeginBalance:       balance,
			Interest:           interest,
			ScheduledPrincipal: scheduledPrincipal,
			Prepayment:         prepay,
			Default:            defaulted,
			Recovery:           recoveryReceived,
			EndBalance:         endBalance,
			CashFlow:           cashFlow,
			DiscountedCashFlow: discounted,
			CumulativeLoss:     cumulativeLoss,
		})

		balance = endBalance
	}

	return out
}

func (r simulationResult) expectedLossPct(principal float64) float64 {
	loss := (r.totalDefaults - r.totalRecoveries) / principal * 100
	if loss < 0 {
		return 0
	}
	return util.SanitizeFloat(loss)
}

func (r simulationResult) wal() float64 {
	if r.totalDiscounted == 0 {
		return 0
	}
	return util.SanitizeFloat(r.walNumerator / r.totalDiscounted / 12)
}

// monthlyPayment re-derives a level payment for the remaining balance and
// amortizing term. This is the valuation-side payment; the ledger keeps the
// contractual one.
func monthlyPayment(balance, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return balance / float64(months)
	}
	return balance * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(months)))
}

// valuationCacheKey hashes everything the computation depends on, including
// the injected Today, so stale entries can never alias fresh inputs.
func valuationCacheKey(in ValueLoanInput, a domain.Assumptions) string {
	payload := struct {
		Loan        domain.Loan        `json:"loan"`
		Borrower    domain.Borrower    `json:"borrower"`
		Assumptions domain.Assumptions `json:"assumptions"`
		Today       string             `json:"today"`
	}{in.Loan, in.Borrower, a, in.Today.Format(time.DateOnly)}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("valuation:%s:%s", in.Loan.LoanID, in.Today.Format(time.DateOnly))
	}
	sum := sha256.Sum256(bytes)
	return "valuation:" + hex.EncodeToString(sum[:])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Package amort builds the canonical monthly ledger for a loan. Every
// downstream consumer (valuation, earnings, reporting) reads these rows
// rather than re-deriving balances from the raw loan.
package amort

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

// Options carries the fee schedule the ledger applies to owned months. Fees
// are configuration data, not loan terms, so they ride in here rather than on
// the loan.
type Options struct {
	SetupFee        float64 // one-time, first owned month
	ServicingFeeBps float64 // annual bps on begin balance, accrued monthly
	Logger          *zap.SugaredLogger
}

var centThreshold = decimal.NewFromFloat(0.01)

// BuildSchedule turns a loan's static terms and event history into the
// ordered monthly ledger. The schedule is contractual: the level payment is
// computed once against the original principal and term, never re-derived
// after events.
//
// Rows stop at the first terminal month: payoff, or a default event, which is
// honored at most once and closes the loan.
func BuildSchedule(loan domain.Loan, opts Options) ([]domain.AmortRow, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.S()
	}

	if loan.LoanStartDate == "" {
		return nil, domain.ValidationErrorf("loan %s: missing start date", loan.LoanID)
	}
	startDate, err := util.ParseDate(loan.LoanStartDate)
	if err != nil {
		return nil, domain.ValidationErrorf("loan %s: %v", loan.LoanID, err)
	}
	start := util.MonthStart(startDate)
	purchaseMonth := resolvePurchaseMonth(loan, start, logger)

	prepayments, deferralStarts, defaultEvent := indexEvents(loan, logger)

	termMonths := loan.TermMonths()
	graceMonths := loan.GraceMonths()
	totalMonths := graceMonths + termMonths

	monthlyRate := decimal.NewFromFloat(loan.NominalRate).Div(decimal.NewFromInt(12))
	payment := levelPayment(loan.Principal, loan.NominalRate, termMonths)

	balance := decimal.NewFromFloat(loan.Principal).Round(2)
	deferralRemaining := 0
	setupFeeApplied := false

	rows := make([]domain.AmortRow, 0, totalMonths)

	for m := 1; m <= totalMonths; m++ {
		loanDate := start.AddDate(0, m-1, 0)
		key := util.MonthKey(loanDate)

		row := domain.AmortRow{
			MonthIndex:   m,
			LoanDate:     loanDate,
			BeginBalance: balance,
			IsOwned:      !loanDate.Before(purchaseMonth),
		}

		if defaultEvent != nil && key == defaultEvent.monthKey {
			recovery := decimal.NewFromFloat(defaultEvent.recoveryAmount).Round(2)
			if recovery.GreaterThan(balance) {
				recovery = balance
			}
			row.Recovery = recovery
			row.Payment = recovery
			row.IsDefault = true
			row.Terminal = true
			row.EndBalance = decimal.Zero
			rows = append(rows, row)
			break
		}

		if months, ok := deferralStarts[key]; ok && months > deferralRemaining {
			deferralRemaining = months
		}

		interest := balance.Mul(monthlyRate).Round(2)
		row.Interest = interest

		switch {
		case deferralRemaining > 0:
			row.InDeferral = true
			balance = balance.Add(interest)
			deferralRemaining--
		case m <= graceMonths:
			row.InGrace = true
			balance = balance.Add(interest)
		default:
			principalDue := payment.Sub(interest)
			if principalDue.IsNegative() {
				principalDue = decimal.Zero
			}
			// the last scheduled month trues up whatever rounding (or grace
			// capitalization) left on the balance
			if m == totalMonths || principalDue.GreaterThan(balance) {
				principalDue = balance
			}
			row.Principal = principalDue
			row.Payment = interest.Add(principalDue)
			balance = balance.Sub(principalDue)
		}

		// prepayments key on calendar month and reduce the balance after
		// scheduled principal (or after capitalization in grace/deferral)
		if amount, ok := prepayments[key]; ok {
			prepay := decimal.NewFromFloat(amount).Round(2)
			if prepay.GreaterThan(balance) {
				prepay = balance
			}
			row.Prepayment = prepay
			row.Payment = row.Payment.Add(prepay)
			balance = balance.Sub(prepay)
		}

		// sub-cent residue folds into scheduled principal
		if balance.IsPositive() && balance.LessThan(centThreshold) {
			row.Principal = row.Principal.Add(balance)
			row.Payment = row.Payment.Add(balance)
			balance = decimal.Zero
		}

		row.Fee = monthFee(loan, row, opts, &setupFeeApplied)
		row.EndBalance = balance

		if balance.IsZero() {
			row.Terminal = true
			row.PaidOff = true
		}

		rows = append(rows, row)
		if row.Terminal {
			break
		}
	}

	accumulateOwned(rows)

	return rows, nil
}

// resolvePurchaseMonth picks the month ownership becomes active: the loan's
// explicit purchase date, else the earliest ownership lot date, else the loan
// start. A present-but-unparseable purchase date logs a diagnostic before
// falling back; a missing one does not.
func resolvePurchaseMonth(loan domain.Loan, start time.Time, logger *zap.SugaredLogger) time.Time {
	if loan.PurchaseDate != "" {
		d, err := util.ParseDate(loan.PurchaseDate)
		if err == nil {
			return util.MonthStart(d)
		}
		logger.Warnw("malformed purchase date, falling back to loan start",
			"loanId", loan.LoanID, "purchaseDate", loan.PurchaseDate)
	} else if d, ok := domain.EarliestLotDate(loan); ok {
		return util.MonthStart(d)
	}
	return start
}

type defaultEventInfo struct {
	monthKey       string
	date           time.Time
	recoveryAmount float64
}

// indexEvents buckets events by calendar month. Prepayments in the same
// month sum; overlapping deferrals extend the counter; only the earliest
// default is honored.
func indexEvents(loan domain.Loan, logger *zap.SugaredLogger) (map[string]float64, map[string]int, *defaultEventInfo) {
	prepayments := map[string]float64{}
	deferralStarts := map[string]int{}
	var defaultEvent *defaultEventInfo

	for _, ev := range loan.Events {
		d, err := util.ParseDate(ev.Date)
		if err != nil {
			logger.Warnw("skipping event with malformed date",
				"loanId", loan.LoanID, "type", ev.Type, "date", ev.Date)
			continue
		}
		key := util.MonthKey(d)

		switch ev.Type {
		case domain.LoanEventType_Prepayment:
			prepayments[key] += ev.Amount
		case domain.LoanEventType_Deferral:
			if ev.Months > deferralStarts[key] {
				deferralStarts[key] = ev.Months
			}
		case domain.LoanEventType_Default:
			if defaultEvent == nil || d.Before(defaultEvent.date) {
				defaultEvent = &defaultEventInfo{
					monthKey:       key,
					date:           d,
					recoveryAmount: ev.Amount,
				}
			}
		default:
			logger.Warnw("skipping unknown event type",
				"loanId", loan.LoanID, "type", ev.Type)
		}
	}

	return prepayments, deferralStarts, defaultEvent
}

// levelPayment is the standard amortization payment: principal * r / (1 -
// (1+r)^-n), computed once against the contractual term.
func levelPayment(principal, annualRate float64, termMonths int) decimal.Decimal {
	p := decimal.NewFromFloat(principal)
	n := decimal.NewFromInt(int64(termMonths))
	if annualRate == 0 {
		return p.Div(n).Round(2)
	}
	r := annualRate / 12
	one := decimal.NewFromInt(1)
	rDec := decimal.NewFromFloat(r)
	denominator := one.Sub(one.Div(one.Add(rDec).Pow(n)))
	return p.Mul(rDec).Div(denominator).Round(2)
}

func monthFee(loan domain.Loan, row domain.AmortRow, opts Options, setupFeeApplied *bool) decimal.Decimal {
	if !row.IsOwned {
		return decimal.Zero
	}
	fee := decimal.Zero

	if !*setupFeeApplied {
		*setupFeeApplied = true
		if loan.Role != domain.BorrowerRole_Referred && !loan.FeeWaiver.WaivesSetup() {
			fee = fee.Add(decimal.NewFromFloat(opts.SetupFee).Round(2))
		}
	}

	inGraceOrDeferral := row.InGrace || row.InDeferral
	if opts.ServicingFeeBps > 0 && !loan.FeeWaiver.WaivesMonthly(inGraceOrDeferral) {
		monthly := row.BeginBalance.
			Mul(decimal.NewFromFloat(opts.ServicingFeeBps)).
			Div(decimal.NewFromInt(10000 * 12)).
			Round(2)
		fee = fee.Add(monthly)
	}

	return fee
}

// accumulateOwned fills the cumulative columns over owned rows only.
func accumulateOwned(rows []domain.AmortRow) {
	cumPrincipal := decimal.Zero
	cumInterest := decimal.Zero
	cumPayment := decimal.Zero
	for i := range rows {
		if rows[i].IsOwned {
			cumPrincipal = cumPrincipal.Add(rows[i].Principal).Add(rows[i].Prepayment)
			cumInterest = cumInterest.Add(rows[i].Interest)
			cumPayment = cumPayment.Add(rows[i].Payment)
		}
		rows[i].CumPrincipal = cumPrincipal
		rows[i].CumInterest = cumInterest
		rows[i].CumPayment = cumPayment
	}
}

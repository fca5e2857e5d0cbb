package finance

import (
	"iter"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"fincalc/domain"
)

var monthsPerYearPercent = decimal.NewFromInt(1200)

// ScheduleIterator yields amortization entries one period at a time. It is
// single-use: once drained it stays drained. It never yields more than
// termYears*12 entries.
type ScheduleIterator struct {
	balance       decimal.Decimal
	rate          decimal.Decimal
	payment       decimal.Decimal
	totalInterest decimal.Decimal
	maxPeriods    int
	month         int
	done          bool
}

// GenerateAmortizationSchedule returns an iterator over the payment periods
// of a fixed-payment loan. A payment that does not exceed the first month's
// interest is rejected with ErrNonAmortizingPayment.
func GenerateAmortizationSchedule(loanAmount, annualRate float64, termYears int, monthlyPayment float64) (*ScheduleIterator, error) {
	err := firstError(
		checkNonNegative("loanAmount", loanAmount),
		checkRate("interestRate", annualRate, MaxInterestRate),
		checkYears("termYears", termYears, MinTermYears, MaxMortgageTermYears),
		checkNonNegative("monthlyPayment", monthlyPayment),
	)
	if err != nil {
		return nil, err
	}

	it := newScheduleIterator(loanAmount, annualRate, termYears*12, monthlyPayment)
	if !it.amortizes() {
		return nil, wrapInvalid("monthlyPayment", ErrNonAmortizingPayment,
			"payment of %s does not cover the first month's interest of %s",
			it.payment.StringFixed(2), it.balance.Mul(it.rate).Round(2).StringFixed(2))
	}
	return it, nil
}

func newScheduleIterator(loanAmount, annualRate float64, periods int, monthlyPayment float64) *ScheduleIterator {
	return &ScheduleIterator{
		balance:    decimal.NewFromFloat(loanAmount).Round(2),
		rate:       decimal.NewFromFloat(annualRate).Div(monthsPerYearPercent),
		payment:    decimal.NewFromFloat(monthlyPayment).Round(2),
		maxPeriods: periods,
	}
}

// amortizes reports whether the payment exceeds the first month's interest.
func (it *ScheduleIterator) amortizes() bool {
	if !it.balance.IsPositive() {
		return true
	}
	return it.payment.GreaterThan(it.balance.Mul(it.rate).Round(2))
}

// settles runs the schedule to completion and reports whether the balance
// reaches zero within the term.
func settles(loanAmount, annualRate float64, periods int, payment float64) bool {
	it := newScheduleIterator(loanAmount, annualRate, periods, payment)
	if !it.amortizes() {
		return false
	}
	for {
		if _, ok := it.Next(); !ok {
			break
		}
	}
	return !it.balance.IsPositive()
}

// levelPayment is the smallest whole-cent payment, starting from the rounded
// annuity payment, whose schedule retires the loan within n periods. At high
// rates over long terms the rounded annuity payment can fall to the first
// month's interest, or leave a residue the last payment cannot absorb.
func levelPayment(principal, annualRate float64, n int) float64 {
	payment := RoundCents(annuityPayment(principal, annualRate, n))
	if n <= 0 || settles(principal, annualRate, n, payment) {
		return payment
	}

	// hi pays more than principal/n above the largest monthly interest,
	// so it always retires the loan within n periods.
	lo := int64(math.Round(payment * 100))
	hi := int64(math.Ceil((principal*monthlyRate(annualRate)+principal/float64(n))*100)) + 2
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if settles(principal, annualRate, n, float64(mid)/100) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return float64(hi) / 100
}

// Next returns the next period, or false once the loan is repaid or the
// nominal term is exhausted.
func (it *ScheduleIterator) Next() (domain.AmortizationEntry, bool) {
	if it.done || it.month >= it.maxPeriods || !it.balance.IsPositive() {
		it.done = true
		return domain.AmortizationEntry{}, false
	}
	it.month++

	interest := it.balance.Mul(it.rate).Round(2)
	payment := it.payment
	principal := payment.Sub(interest)

	switch {
	case principal.GreaterThanOrEqual(it.balance):
		// final installment would overshoot
		principal = it.balance
		payment = principal.Add(interest)
	case it.month == it.maxPeriods && it.balance.Sub(principal).LessThan(it.payment):
		// rounding residue on the last scheduled payment
		principal = it.balance
		payment = principal.Add(interest)
	}

	it.balance = it.balance.Sub(principal)
	it.totalInterest = it.totalInterest.Add(interest)

	return domain.AmortizationEntry{
		Month:         it.month,
		Payment:       payment.InexactFloat64(),
		Principal:     principal.InexactFloat64(),
		Interest:      interest.InexactFloat64(),
		Balance:       it.balance.InexactFloat64(),
		TotalInterest: it.totalInterest.InexactFloat64(),
	}, true
}

// All adapts the remaining periods to a range-over-func sequence.
func (it *ScheduleIterator) All() iter.Seq[domain.AmortizationEntry] {
	return func(yield func(domain.AmortizationEntry) bool) {
		for {
			entry, ok := it.Next()
			if !ok || !yield(entry) {
				return
			}
		}
	}
}

func (it *ScheduleIterator) Collect() []domain.AmortizationEntry {
	return slices.Collect(it.All())
}

// AmortizationSchedule materializes the full schedule for a request.
func AmortizationSchedule(req domain.AmortizationRequest) ([]domain.AmortizationEntry, error) {
	it, err := GenerateAmortizationSchedule(req.LoanAmount, req.InterestRate, req.TermYears, req.MonthlyPayment)
	if err != nil {
		return nil, err
	}
	return it.Collect(), nil
}

package finance

import (
	"math"

	"fincalc/domain"
)

// CalculateBreakEvenPoint compares the current loan with a refinance offer
// and reports how many months of savings repay the closing costs.
func CalculateBreakEvenPoint(in domain.BreakEvenInputs) (domain.BreakEvenCalculation, error) {
	err := firstError(
		checkPositive("currentBalance", in.CurrentBalance),
		checkRate("currentRate", in.CurrentRate, MaxInterestRate),
		checkYears("remainingTermYears", in.RemainingTermYears, MinTermYears, MaxMortgageTermYears),
		checkRate("newRate", in.NewRate, MaxInterestRate),
		checkYears("newTermYears", in.NewTermYears, MinTermYears, MaxMortgageTermYears),
		checkNonNegative("closingCosts", in.ClosingCosts),
	)
	if err != nil {
		return domain.BreakEvenCalculation{}, err
	}

	currentN := in.RemainingTermYears * 12
	newN := in.NewTermYears * 12
	current := RoundCents(annuityPayment(in.CurrentBalance, in.CurrentRate, currentN))
	next := RoundCents(annuityPayment(in.CurrentBalance, in.NewRate, newN))
	savings := RoundCents(current - next)

	result := domain.BreakEvenCalculation{
		CurrentPayment:  current,
		NewPayment:      next,
		MonthlySavings:  savings,
		InterestSavings: RoundCents(current*float64(currentN) - next*float64(newN)),
	}
	if savings > 0 {
		result.Reachable = true
		result.BreakEvenMonths = int(math.Ceil(in.ClosingCosts / savings))
	}
	return result, nil
}

package finance

import (
	"math"

	"fincalc/domain"
)

// futureValue compounds a starting balance and a monthly contribution over
// months periods at monthly rate r.
func futureValue(initial, contribution, r float64, months int) float64 {
	if r == 0 {
		return initial + contribution*float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return initial*growth + contribution*(growth-1)/r
}

// CalculateInvestment projects compound growth with monthly contributions.
func CalculateInvestment(in domain.InvestmentInputs) (domain.InvestmentCalculation, error) {
	err := firstError(
		checkNonNegative("initialAmount", in.InitialAmount),
		checkNonNegative("monthlyContribution", in.MonthlyContribution),
		checkRate("annualReturnRate", in.AnnualReturnRate, MaxInterestRate),
		checkYears("years", in.Years, MinTermYears, MaxPlanningYears),
	)
	if err != nil {
		return domain.InvestmentCalculation{}, err
	}
	if in.InitialAmount == 0 && in.MonthlyContribution == 0 {
		return domain.InvestmentCalculation{}, invalid("initialAmount", "an initial amount or a monthly contribution is required")
	}

	r := monthlyRate(in.AnnualReturnRate)
	growth := make([]domain.YearlyGrowth, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		months := year * 12
		balance := RoundCents(futureValue(in.InitialAmount, in.MonthlyContribution, r, months))
		contributed := RoundCents(in.InitialAmount + in.MonthlyContribution*float64(months))
		growth = append(growth, domain.YearlyGrowth{
			Year:          year,
			Balance:       balance,
			Contributions: contributed,
			Earnings:      RoundCents(balance - contributed),
		})
	}

	last := growth[len(growth)-1]
	return domain.InvestmentCalculation{
		FutureValue:        last.Balance,
		TotalContributions: last.Contributions,
		TotalEarnings:      last.Earnings,
		YearlyGrowth:       growth,
	}, nil
}

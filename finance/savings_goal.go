package finance

import (
	"math"

	"fincalc/domain"
)

// CalculateSavingsGoal solves for the number of months needed to reach a
// target, and optionally the contribution needed to reach it by TargetYears.
func CalculateSavingsGoal(in domain.SavingsGoalInputs) (domain.SavingsGoalCalculation, error) {
	err := firstError(
		checkPositive("targetAmount", in.TargetAmount),
		checkNonNegative("currentSavings", in.CurrentSavings),
		checkNonNegative("monthlyContribution", in.MonthlyContribution),
		checkRate("annualReturnRate", in.AnnualReturnRate, MaxInterestRate),
	)
	if err != nil {
		return domain.SavingsGoalCalculation{}, err
	}
	if in.TargetYears < 0 || in.TargetYears > MaxPlanningYears {
		return domain.SavingsGoalCalculation{}, invalid("targetYears", "must be between 0 and %d years", MaxPlanningYears)
	}

	r := monthlyRate(in.AnnualReturnRate)
	months, err := monthsToGoal(in.TargetAmount, in.CurrentSavings, in.MonthlyContribution, r)
	if err != nil {
		return domain.SavingsGoalCalculation{}, err
	}

	contributed := in.CurrentSavings + in.MonthlyContribution*float64(months)
	balance := futureValue(in.CurrentSavings, in.MonthlyContribution, r, months)

	result := domain.SavingsGoalCalculation{
		MonthsToGoal:       months,
		YearsToGoal:        RoundCents(float64(months) / 12),
		TotalContributions: RoundCents(contributed),
		InterestEarned:     math.Max(0, RoundCents(balance-contributed)),
	}
	if in.TargetYears > 0 {
		result.RequiredMonthlyContribution = requiredContribution(in.TargetAmount, in.CurrentSavings, r, in.TargetYears*12)
	}
	return result, nil
}

// monthsToGoal inverts the annuity-growth equation
// T = S(1+r)^n + C((1+r)^n - 1)/r for n. Goals beyond the planning horizon
// are reported as unreachable.
func monthsToGoal(target, savings, contribution, r float64) (int, error) {
	if savings >= target {
		return 0, nil
	}
	var n float64
	switch {
	case r == 0 && contribution == 0, savings == 0 && contribution == 0:
		return 0, wrapInvalid("monthlyContribution", ErrGoalUnreachable,
			"a monthly contribution is required to reach the goal")
	case r == 0:
		n = (target - savings) / contribution
	case contribution == 0:
		n = math.Log(target/savings) / math.Log(1+r)
	default:
		k := contribution / r
		n = math.Log((target+k)/(savings+k)) / math.Log(1+r)
	}
	if math.IsNaN(n) || n > MaxPlanningYears*12 {
		return 0, wrapInvalid("monthlyContribution", ErrGoalUnreachable,
			"the goal takes longer than %d years to reach", MaxPlanningYears)
	}
	return ceilMonths(n), nil
}

func requiredContribution(target, savings, r float64, months int) float64 {
	growth := math.Pow(1+r, float64(months))
	need := target - savings*growth
	if need <= 0 {
		return 0
	}
	if r == 0 {
		return RoundCents(need / float64(months))
	}
	return RoundCents(need * r / (growth - 1))
}

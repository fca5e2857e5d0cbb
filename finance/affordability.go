package finance

import (
	"math"

	"fincalc/domain"
)

// CalculateLoanAffordability finds the largest home price whose principal,
// interest, tax and insurance fit inside the debt-to-income budget.
func CalculateLoanAffordability(in domain.AffordabilityInputs) (domain.AffordabilityCalculation, error) {
	dti := in.DebtToIncomeRatio
	if dti == 0 {
		dti = DefaultDebtToIncomeRatio
	}
	err := firstError(
		checkPositive("monthlyIncome", in.MonthlyIncome),
		checkNonNegative("monthlyDebts", in.MonthlyDebts),
		checkNonNegative("downPayment", in.DownPayment),
		checkRate("interestRate", in.InterestRate, MaxInterestRate),
		checkYears("loanTermYears", in.LoanTermYears, MinTermYears, MaxMortgageTermYears),
		checkRate("propertyTaxRate", in.PropertyTaxRate, MaxPropertyTaxRate),
		checkRate("homeInsuranceRate", in.HomeInsuranceRate, MaxHomeInsuranceRate),
	)
	if err != nil {
		return domain.AffordabilityCalculation{}, err
	}
	if math.IsNaN(dti) || dti < 0 || dti > 100 {
		return domain.AffordabilityCalculation{}, invalid("debtToIncomeRatio", "must be between 0 and 100 percent")
	}

	budget := RoundCents(in.MonthlyIncome*dti/100 - in.MonthlyDebts)
	if budget <= 0 {
		return domain.AffordabilityCalculation{MaxHomePrice: RoundCents(in.DownPayment)}, nil
	}

	// Payment per dollar borrowed, and escrow per dollar of price.
	k := annuityPayment(1, in.InterestRate, in.LoanTermYears*12)
	e := (in.PropertyTaxRate + in.HomeInsuranceRate) / 1200

	loan := math.Max(0, (budget-e*in.DownPayment)/(k+e))
	loan = RoundCents(loan)

	return domain.AffordabilityCalculation{
		MaxMonthlyPayment:    budget,
		PrincipalAndInterest: RoundCents(loan * k),
		MaxLoanAmount:        loan,
		MaxHomePrice:         RoundCents(loan + in.DownPayment),
	}, nil
}

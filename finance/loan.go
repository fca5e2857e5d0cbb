package finance

import "fincalc/domain"

// CalculateLoan prices a plain amortizing loan quoted in months.
func CalculateLoan(input domain.LoanInput) (domain.LoanResult, error) {
	err := firstError(
		checkPositive("amount", input.Amount),
		checkRate("interestRate", input.InterestRate, MaxInterestRate),
	)
	if err != nil {
		return domain.LoanResult{}, err
	}
	if input.TermMonths < MinTermMonths || input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, invalid("termMonths", "must be between %d and %d months", MinTermMonths, MaxTermMonths)
	}

	payment := levelPayment(input.Amount, input.InterestRate, input.TermMonths)
	total := RoundCents(payment * float64(input.TermMonths))

	result := domain.LoanResult{
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  totalInterest(payment, input.TermMonths, input.Amount),
	}
	if input.InterestRate == 0 {
		result.TotalInterest = 0
	}
	return result, nil
}

package finance

import "fincalc/domain"

func validateMortgage(in domain.MortgageInputs) error {
	if err := checkPositive("homePrice", in.HomePrice); err != nil {
		return err
	}
	if err := checkNonNegative("downPayment", in.DownPayment); err != nil {
		return err
	}
	if in.DownPayment >= in.HomePrice {
		return invalid("downPayment", "must be less than the home price")
	}
	return firstError(
		checkRate("interestRate", in.InterestRate, MaxInterestRate),
		checkYears("loanTerm", in.LoanTerm, MinTermYears, MaxMortgageTermYears),
		checkRate("propertyTaxRate", in.PropertyTaxRate, MaxPropertyTaxRate),
		checkRate("homeInsuranceRate", in.HomeInsuranceRate, MaxHomeInsuranceRate),
		checkRate("pmiRate", in.PMIRate, MaxPMIRate),
		checkNonNegative("hoaFees", in.HOAFees),
	)
}

// CalculateMortgage derives the payment and cost picture for a home loan.
// Every monthly component is rounded to cents before it is summed, so the
// total monthly payment is exactly the sum of the breakdown.
func CalculateMortgage(in domain.MortgageInputs) (domain.MortgageCalculation, error) {
	if err := validateMortgage(in); err != nil {
		return domain.MortgageCalculation{}, err
	}

	n := in.LoanTerm * 12
	loan := RoundCents(in.HomePrice - in.DownPayment)
	ltv := RoundCents(loan * 100 / in.HomePrice)

	payment := levelPayment(loan, in.InterestRate, n)
	firstInterest := RoundCents(loan * monthlyRate(in.InterestRate))
	firstPrincipal := RoundCents(payment - firstInterest)

	taxes := monthlyCharge(in.PropertyTaxRate, in.HomePrice)
	insurance := monthlyCharge(in.HomeInsuranceRate, in.HomePrice)
	hoa := RoundCents(in.HOAFees)

	requiresPMI := ltv > PMIThresholdLTV
	pmi := 0.0
	if requiresPMI {
		pmi = monthlyCharge(in.PMIRate, loan)
	}

	monthly := RoundCents(payment + taxes + insurance + pmi + hoa)
	interest := totalInterest(payment, n, loan)
	if in.InterestRate == 0 {
		interest = 0
	}

	return domain.MortgageCalculation{
		LoanAmount:          loan,
		LoanToValue:         ltv,
		NumPayments:         n,
		MonthlyPayment:      payment,
		TotalMonthlyPayment: monthly,
		TotalInterest:       interest,
		TotalCost:           RoundCents(in.DownPayment + monthly*float64(n)),
		RequiresPMI:         requiresPMI,
		Breakdown: domain.MortgageBreakdown{
			Principal: firstPrincipal,
			Interest:  firstInterest,
			Taxes:     taxes,
			Insurance: insurance,
			PMI:       pmi,
			HOA:       hoa,
		},
	}, nil
}

package finance

import "fincalc/domain"

func validateCarLoan(in domain.CarLoanInputs) error {
	err := firstError(
		checkPositive("vehiclePrice", in.VehiclePrice),
		checkNonNegative("downPayment", in.DownPayment),
		checkNonNegative("tradeInValue", in.TradeInValue),
	)
	if err != nil {
		return err
	}
	if in.DownPayment+in.TradeInValue >= in.VehiclePrice {
		return invalid("downPayment", "down payment plus trade-in must be less than the vehicle price")
	}
	return firstError(
		checkRate("interestRate", in.InterestRate, MaxInterestRate),
		checkYears("loanTerm", in.LoanTerm, MinTermYears, MaxCarLoanTermYears),
		checkRate("salesTaxRate", in.SalesTaxRate, MaxSalesTaxRate),
		checkNonNegative("fees", in.Fees),
	)
}

// CalculateCarLoan prices an auto loan. Sales tax is charged on the price
// net of trade-in; fees are financed. A non-positive loan amount means the
// vehicle is paid in cash and no payment schedule exists.
func CalculateCarLoan(in domain.CarLoanInputs) (domain.CarLoanCalculation, error) {
	if err := validateCarLoan(in); err != nil {
		return domain.CarLoanCalculation{}, err
	}

	taxable := RoundCents(in.VehiclePrice - in.TradeInValue)
	salesTax := RoundCents(taxable * in.SalesTaxRate / 100)
	total := RoundCents(in.VehiclePrice + salesTax + in.Fees)
	loan := RoundCents(total - in.DownPayment - in.TradeInValue)

	result := domain.CarLoanCalculation{
		TaxableAmount: taxable,
		SalesTax:      salesTax,
		TotalAmount:   total,
	}
	if loan <= 0 {
		result.PaidInCash = true
		result.TotalCost = total
		return result, nil
	}

	n := in.LoanTerm * 12
	payment := levelPayment(loan, in.InterestRate, n)
	firstInterest := RoundCents(loan * monthlyRate(in.InterestRate))
	interest := totalInterest(payment, n, loan)
	if in.InterestRate == 0 {
		interest = 0
	}

	result.LoanAmount = loan
	result.NumPayments = n
	result.MonthlyPayment = payment
	result.TotalInterest = interest
	result.TotalCost = RoundCents(total + interest)
	result.Breakdown = domain.PaymentSplit{
		Principal: RoundCents(payment - firstInterest),
		Interest:  firstInterest,
	}
	return result, nil
}

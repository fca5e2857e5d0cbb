package domain

// LoanInput describes a plain amortizing loan quoted in months.
type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// PaymentSplit is the principal/interest split of a single payment.
type PaymentSplit struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

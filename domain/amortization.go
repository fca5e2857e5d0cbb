package domain

// AmortizationEntry is one payment period of a schedule. Month is 1-based.
type AmortizationEntry struct {
	Month         int     `json:"month"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	Balance       float64 `json:"balance"`
	TotalInterest float64 `json:"totalInterest"`
}

type AmortizationRequest struct {
	LoanAmount     float64 `json:"loanAmount"`
	InterestRate   float64 `json:"interestRate"`
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

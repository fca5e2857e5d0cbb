package domain

// MortgageInputs are the user-entered values for a home loan. Rates are
// annual percentages, LoanTerm is in years and HOAFees is a monthly amount.
type MortgageInputs struct {
	HomePrice         float64 `json:"homePrice"`
	DownPayment       float64 `json:"downPayment"`
	InterestRate      float64 `json:"interestRate"`
	LoanTerm          int     `json:"loanTerm"`
	PropertyTaxRate   float64 `json:"propertyTaxRate"`
	HomeInsuranceRate float64 `json:"homeInsuranceRate"`
	PMIRate           float64 `json:"pmiRate"`
	HOAFees           float64 `json:"hoaFees"`
}

// MortgageBreakdown is the first month's cost split. Principal and Interest
// come from the first amortization period, the rest are flat monthly charges.
type MortgageBreakdown struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Taxes     float64 `json:"taxes"`
	Insurance float64 `json:"insurance"`
	PMI       float64 `json:"pmi"`
	HOA       float64 `json:"hoa"`
}

// MortgageCalculation is derived from MortgageInputs. MonthlyPayment is
// principal and interest only; TotalMonthlyPayment adds escrow, PMI and HOA.
type MortgageCalculation struct {
	LoanAmount          float64           `json:"loanAmount"`
	LoanToValue         float64           `json:"loanToValue"`
	NumPayments         int               `json:"numPayments"`
	MonthlyPayment      float64           `json:"monthlyPayment"`
	TotalMonthlyPayment float64           `json:"totalMonthlyPayment"`
	TotalInterest       float64           `json:"totalInterest"`
	TotalCost           float64           `json:"totalCost"`
	RequiresPMI         bool              `json:"requiresPmi"`
	Breakdown           MortgageBreakdown `json:"breakdown"`
}

package domain

type CarLoanInputs struct {
	VehiclePrice float64 `json:"vehiclePrice"`
	DownPayment  float64 `json:"downPayment"`
	TradeInValue float64 `json:"tradeInValue"`
	InterestRate float64 `json:"interestRate"`
	LoanTerm     int     `json:"loanTerm"`
	SalesTaxRate float64 `json:"salesTaxRate"`
	Fees         float64 `json:"fees"`
}

// CarLoanCalculation is derived from CarLoanInputs. TotalAmount is the
// out-the-door price (vehicle + sales tax + fees) before any money down.
type CarLoanCalculation struct {
	TaxableAmount  float64      `json:"taxableAmount"`
	SalesTax       float64      `json:"salesTax"`
	TotalAmount    float64      `json:"totalAmount"`
	LoanAmount     float64      `json:"loanAmount"`
	NumPayments    int          `json:"numPayments"`
	MonthlyPayment float64      `json:"monthlyPayment"`
	TotalInterest  float64      `json:"totalInterest"`
	TotalCost      float64      `json:"totalCost"`
	PaidInCash     bool         `json:"paidInCash"`
	Breakdown      PaymentSplit `json:"breakdown"`
}

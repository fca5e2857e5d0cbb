package finance

// Input bounds. Rates are annual percentages.
const (
	MaxInterestRate      = 50.0
	MaxPropertyTaxRate   = 10.0
	MaxHomeInsuranceRate = 5.0
	MaxPMIRate           = 5.0
	MaxSalesTaxRate      = 15.0

	MinTermYears         = 1
	MaxMortgageTermYears = 50
	MaxCarLoanTermYears  = 10
	MaxPlanningYears     = 50

	MinTermMonths = 1
	MaxTermMonths = 600

	// PMI applies only above this loan-to-value percentage.
	PMIThresholdLTV = 80.0

	DefaultDebtToIncomeRatio = 36.0
)

package domain

type InvestmentInputs struct {
	InitialAmount       float64 `json:"initialAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualReturnRate    float64 `json:"annualReturnRate"`
	Years               int     `json:"years"`
}

// YearlyGrowth is the investment position at the end of a year.
type YearlyGrowth struct {
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"`
	Earnings      float64 `json:"earnings"`
}

type InvestmentCalculation struct {
	FutureValue        float64        `json:"futureValue"`
	TotalContributions float64        `json:"totalContributions"`
	TotalEarnings      float64        `json:"totalEarnings"`
	YearlyGrowth       []YearlyGrowth `json:"yearlyGrowth"`
}

type SavingsGoalInputs struct {
	TargetAmount        float64 `json:"targetAmount"`
	CurrentSavings      float64 `json:"currentSavings"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualReturnRate    float64 `json:"annualReturnRate"`
	TargetYears         int     `json:"targetYears,omitempty"`
}

type SavingsGoalCalculation struct {
	MonthsToGoal                int     `json:"monthsToGoal"`
	YearsToGoal                 float64 `json:"yearsToGoal"`
	TotalContributions          float64 `json:"totalContributions"`
	InterestEarned              float64 `json:"interestEarned"`
	RequiredMonthlyContribution float64 `json:"requiredMonthlyContribution,omitempty"`
}

type AffordabilityInputs struct {
	MonthlyIncome     float64 `json:"monthlyIncome"`
	MonthlyDebts      float64 `json:"monthlyDebts"`
	DownPayment       float64 `json:"downPayment"`
	InterestRate      float64 `json:"interestRate"`
	LoanTermYears     int     `json:"loanTermYears"`
	PropertyTaxRate   float64 `json:"propertyTaxRate"`
	HomeInsuranceRate float64 `json:"homeInsuranceRate"`
	DebtToIncomeRatio float64 `json:"debtToIncomeRatio,omitempty"`
}

type AffordabilityCalculation struct {
	MaxMonthlyPayment    float64 `json:"maxMonthlyPayment"`
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	MaxLoanAmount        float64 `json:"maxLoanAmount"`
	MaxHomePrice         float64 `json:"maxHomePrice"`
}

// BreakEvenInputs compare an existing loan against a refinance offer.
type BreakEvenInputs struct {
	CurrentBalance     float64 `json:"currentBalance"`
	CurrentRate        float64 `json:"currentRate"`
	RemainingTermYears int     `json:"remainingTermYears"`
	NewRate            float64 `json:"newRate"`
	NewTermYears       int     `json:"newTermYears"`
	ClosingCosts       float64 `json:"closingCosts"`
}

type BreakEvenCalculation struct {
	CurrentPayment  float64 `json:"currentPayment"`
	NewPayment      float64 `json:"newPayment"`
	MonthlySavings  float64 `json:"monthlySavings"`
	BreakEvenMonths int     `json:"breakEvenMonths"`
	Reachable       bool    `json:"reachable"`
	InterestSavings float64 `json:"interestSavings"`
}

type TermPreference string

const (
	PreferMinimizeInterest TermPreference = "minimize_interest"
	PreferMinimizePayment  TermPreference = "minimize_payment"
	PreferBalanced         TermPreference = "balanced"
)

type TermComparisonInputs struct {
	LoanAmount        float64        `json:"loanAmount"`
	InterestRate      float64        `json:"interestRate"`
	TermsYears        []int          `json:"termsYears"`
	MaxMonthlyPayment float64        `json:"maxMonthlyPayment,omitempty"`
	Preference        TermPreference `json:"preference,omitempty"`
}

type TermOption struct {
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
	Score          float64 `json:"score"`
}

type TermComparison struct {
	RecommendedTerm int          `json:"recommendedTerm"`
	Options         []TermOption `json:"options"`
}

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fincalc/domain"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Loan", "$1.00"},
			{separatorRow},
			{"Total", "$100.00"},
		},
	})

	assert.Contains(t, out, "Loan")
	assert.Contains(t, out, "$100.00")
	assert.Equal(t, 7, strings.Count(out, "\n"))
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderMortgage(t *testing.T) {
	out := RenderMortgage(domain.MortgageCalculation{
		LoanAmount:          360000,
		LoanToValue:         80,
		NumPayments:         360,
		MonthlyPayment:      2455.83,
		TotalMonthlyPayment: 3093.33,
		Breakdown:           domain.MortgageBreakdown{Principal: 280.83, Interest: 2175, Taxes: 450, Insurance: 187.5},
	})

	assert.Contains(t, out, "$360,000.00")
	assert.Contains(t, out, "80.00%")
	assert.Contains(t, out, "30y")
	assert.Contains(t, out, "$3,093.33")
	assert.Contains(t, out, "not required")
}

func TestRenderCarLoan_PaidInCash(t *testing.T) {
	out := RenderCarLoan(domain.CarLoanCalculation{TotalAmount: 20000, PaidInCash: true})
	assert.Contains(t, out, "Paid in full")
	assert.NotContains(t, out, "Monthly payment")
}

func TestRenderSchedule_Step(t *testing.T) {
	entries := make([]domain.AmortizationEntry, 24)
	for i := range entries {
		entries[i] = domain.AmortizationEntry{Month: i + 1, Payment: 100}
	}

	out := RenderSchedule(entries, 12)

	// two data rows plus title, header, and three rules
	assert.Equal(t, 7, strings.Count(out, "\n"))
	assert.Contains(t, out, " 24 ")
}

func TestRenderQuota(t *testing.T) {
	assert.Equal(t, "2 of 3", RenderQuota(domain.UsageQuota{DailyCount: 2, DailyLimit: 3}))
	assert.Equal(t, "5 (unlimited)", RenderQuota(domain.UsageQuota{DailyCount: 5, Unlimited: true}))
}

func TestRenderEntitlement_Trial(t *testing.T) {
	out := RenderEntitlement(domain.EntitlementStatus{
		EntitlementState: domain.EntitlementState{IsTrialActive: true, SubscriptionType: domain.SubscriptionTrial},
		DaysLeft:         4,
		Quota:            domain.UsageQuota{DailyCount: 1, DailyLimit: 10},
	})
	assert.Contains(t, out, "trial (4 days left)")
	assert.Contains(t, out, "1 of 10")
}

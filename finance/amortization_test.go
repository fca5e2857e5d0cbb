package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

func TestGenerateAmortizationSchedule_PaysOffExactly(t *testing.T) {
	it, err := GenerateAmortizationSchedule(360000, 7.25, 30, 2455.83)
	require.NoError(t, err)

	entries := it.Collect()
	require.Len(t, entries, 360)

	first := entries[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 2175.0, first.Interest)
	assert.InDelta(t, 280.83, first.Principal, 1e-9)

	last := entries[len(entries)-1]
	assert.Zero(t, last.Balance)
	assert.Equal(t, 360, last.Month)

	var principal float64
	for i, e := range entries {
		assert.GreaterOrEqual(t, e.Balance, 0.0, "month %d", e.Month)
		assert.InDelta(t, e.Payment, e.Principal+e.Interest, 1e-6)
		if i > 0 {
			assert.InDelta(t, entries[i-1].TotalInterest+e.Interest, e.TotalInterest, 1e-6)
		}
		principal += e.Principal
	}
	assert.InDelta(t, 360000, principal, 0.01)
}

func TestGenerateAmortizationSchedule_TerminatesEarlyOnOverpayment(t *testing.T) {
	it, err := GenerateAmortizationSchedule(10000, 6, 5, 1000)
	require.NoError(t, err)

	entries := it.Collect()
	require.NotEmpty(t, entries)
	assert.Less(t, len(entries), 60)

	last := entries[len(entries)-1]
	assert.Zero(t, last.Balance)
	assert.LessOrEqual(t, last.Payment, 1000.0)
}

func TestGenerateAmortizationSchedule_NeverExceedsTerm(t *testing.T) {
	// barely above interest: the term runs out with a balance left over
	it, err := GenerateAmortizationSchedule(100000, 12, 1, 1000.01)
	require.NoError(t, err)

	entries := it.Collect()
	assert.Len(t, entries, 12)
	assert.Greater(t, entries[11].Balance, 0.0)
}

func TestGenerateAmortizationSchedule_NonAmortizingPayment(t *testing.T) {
	_, err := GenerateAmortizationSchedule(100000, 12, 30, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonAmortizingPayment)

	_, err = GenerateAmortizationSchedule(5000, 0, 2, 0)
	assert.ErrorIs(t, err, ErrNonAmortizingPayment)
}

func TestGenerateAmortizationSchedule_IsSingleUse(t *testing.T) {
	it, err := GenerateAmortizationSchedule(1200, 0, 1, 100)
	require.NoError(t, err)

	var months []int
	for e := range it.All() {
		months = append(months, e.Month)
		if e.Month == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, months)

	next, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 4, next.Month)

	rest := it.Collect()
	assert.Len(t, rest, 8)
	assert.Zero(t, rest[len(rest)-1].Balance)

	_, ok = it.Next()
	assert.False(t, ok)
	assert.Empty(t, it.Collect())
}

func TestGenerateAmortizationSchedule_ZeroLoanIsEmpty(t *testing.T) {
	it, err := GenerateAmortizationSchedule(0, 5, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, it.Collect())
}

func TestAmortizationSchedule_MatchesCarLoan(t *testing.T) {
	calc, err := CalculateCarLoan(baseCarLoan())
	require.NoError(t, err)

	entries, err := AmortizationSchedule(domain.AmortizationRequest{
		LoanAmount:     calc.LoanAmount,
		InterestRate:   6.75,
		TermYears:      5,
		MonthlyPayment: calc.MonthlyPayment,
	})
	require.NoError(t, err)
	require.Len(t, entries, 60)
	assert.Zero(t, entries[59].Balance)
	assert.Equal(t, calc.Breakdown.Interest, entries[0].Interest)
	assert.Equal(t, calc.Breakdown.Principal, entries[0].Principal)
}

func TestAmortizationSchedule_Validation(t *testing.T) {
	_, err := AmortizationSchedule(domain.AmortizationRequest{LoanAmount: -1, TermYears: 1, MonthlyPayment: 10})
	assert.Error(t, err)
	_, err = AmortizationSchedule(domain.AmortizationRequest{LoanAmount: 100, TermYears: 0, MonthlyPayment: 10})
	assert.Error(t, err)
}

func TestLevelPayment_RetiresLoanAcrossBounds(t *testing.T) {
	rates := []float64{0, 0.01, 3, 7.25, 12, 20, 30, 40, MaxInterestRate}
	terms := []int{MinTermYears, 5, 15, 30, 40, MaxMortgageTermYears}
	loans := []float64{1, 360000, 5000000}

	for _, loan := range loans {
		for _, rate := range rates {
			for _, term := range terms {
				calc, err := CalculateMortgage(domain.MortgageInputs{
					HomePrice:    loan + 1,
					DownPayment:  1,
					InterestRate: rate,
					LoanTerm:     term,
				})
				require.NoError(t, err)

				entries, err := AmortizationSchedule(domain.AmortizationRequest{
					LoanAmount:     calc.LoanAmount,
					InterestRate:   rate,
					TermYears:      term,
					MonthlyPayment: calc.MonthlyPayment,
				})
				require.NoError(t, err, "loan %.2f at %.2f%% over %d years", loan, rate, term)
				require.NotEmpty(t, entries)
				assert.Zero(t, entries[len(entries)-1].Balance, "loan %.2f at %.2f%% over %d years", loan, rate, term)
				assert.LessOrEqual(t, len(entries), term*12)
			}
		}
	}
}

func TestLevelPayment_CarLoanAcrossBounds(t *testing.T) {
	for _, rate := range []float64{0, 4.5, 18, 35, MaxInterestRate} {
		for term := MinTermYears; term <= MaxCarLoanTermYears; term++ {
			in := baseCarLoan()
			in.InterestRate = rate
			in.LoanTerm = term
			calc, err := CalculateCarLoan(in)
			require.NoError(t, err)

			entries, err := AmortizationSchedule(domain.AmortizationRequest{
				LoanAmount:     calc.LoanAmount,
				InterestRate:   rate,
				TermYears:      term,
				MonthlyPayment: calc.MonthlyPayment,
			})
			require.NoError(t, err)
			assert.Zero(t, entries[len(entries)-1].Balance, "%.2f%% over %d years", rate, term)
		}
	}
}

func TestCalculateMortgage_HighRateLongTermStillAmortizes(t *testing.T) {
	in := baseMortgage()
	in.InterestRate = 30
	in.LoanTerm = 50

	got, err := CalculateMortgage(in)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, got.Breakdown.Interest)
	assert.Greater(t, got.MonthlyPayment, got.Breakdown.Interest)
	assert.Positive(t, got.Breakdown.Principal)
}

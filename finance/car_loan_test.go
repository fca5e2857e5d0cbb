package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

func baseCarLoan() domain.CarLoanInputs {
	return domain.CarLoanInputs{
		VehiclePrice: 42000,
		DownPayment:  8400,
		InterestRate: 6.75,
		LoanTerm:     5,
		SalesTaxRate: 8.25,
		Fees:         1200,
	}
}

func TestCalculateCarLoan_Example(t *testing.T) {
	got, err := CalculateCarLoan(baseCarLoan())
	require.NoError(t, err)

	assert.Equal(t, 42000.0, got.TaxableAmount)
	assert.Equal(t, 3465.0, got.SalesTax)
	assert.Equal(t, 46665.0, got.TotalAmount)
	assert.Equal(t, 38265.0, got.LoanAmount)
	assert.Equal(t, 60, got.NumPayments)

	r := 6.75 / 1200
	f := math.Pow(1+r, 60)
	assert.InDelta(t, 38265*r*f/(f-1), got.MonthlyPayment, 0.005)
	assert.Equal(t, 753.19, got.MonthlyPayment)
	assert.InDelta(t, got.MonthlyPayment*60-got.LoanAmount, got.TotalInterest, 0.6)
	assert.Equal(t, RoundCents(got.TotalAmount+got.TotalInterest), got.TotalCost)
	assert.False(t, got.PaidInCash)
}

func TestCalculateCarLoan_TradeInReducesTaxableAmount(t *testing.T) {
	in := baseCarLoan()
	in.TradeInValue = 10000
	got, err := CalculateCarLoan(in)
	require.NoError(t, err)

	assert.Equal(t, 32000.0, got.TaxableAmount)
	assert.Equal(t, 2640.0, got.SalesTax)
	assert.Equal(t, RoundCents(42000+2640+1200-8400-10000), got.LoanAmount)
}

func TestCalculateCarLoan_ZeroRate(t *testing.T) {
	in := domain.CarLoanInputs{VehiclePrice: 30000, DownPayment: 6000, LoanTerm: 4}
	got, err := CalculateCarLoan(in)
	require.NoError(t, err)

	assert.Equal(t, 24000.0, got.LoanAmount)
	assert.Equal(t, 500.0, got.MonthlyPayment)
	assert.Zero(t, got.TotalInterest)
}

func TestCalculateCarLoan_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.CarLoanInputs)
		field string
	}{
		{"zero price", func(in *domain.CarLoanInputs) { in.VehiclePrice = 0 }, "vehiclePrice"},
		{"negative trade-in", func(in *domain.CarLoanInputs) { in.TradeInValue = -1 }, "tradeInValue"},
		{"covered by down and trade-in", func(in *domain.CarLoanInputs) { in.TradeInValue = 33600 }, "downPayment"},
		{"term too long", func(in *domain.CarLoanInputs) { in.LoanTerm = 11 }, "loanTerm"},
		{"sales tax too high", func(in *domain.CarLoanInputs) { in.SalesTaxRate = 15.5 }, "salesTaxRate"},
		{"negative fees", func(in *domain.CarLoanInputs) { in.Fees = -5 }, "fees"},
		{"not a number", func(in *domain.CarLoanInputs) { in.InterestRate = math.NaN() }, "interestRate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseCarLoan()
			tt.edit(&in)
			_, err := CalculateCarLoan(in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCalculateCarLoan_PaidInCash(t *testing.T) {
	got, err := CalculateCarLoan(domain.CarLoanInputs{
		VehiclePrice: 20000,
		DownPayment:  19999.996,
		InterestRate: 5,
		LoanTerm:     3,
	})
	require.NoError(t, err)

	assert.True(t, got.PaidInCash)
	assert.Zero(t, got.LoanAmount)
	assert.Zero(t, got.MonthlyPayment)
	assert.Zero(t, got.NumPayments)
	assert.Equal(t, 20000.0, got.TotalCost)
}

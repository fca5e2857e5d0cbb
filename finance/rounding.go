package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCents rounds half away from zero to two decimal places using the
// shortest decimal form of v, so 1.005 becomes 1.01.
func RoundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func monthlyRate(annualRate float64) float64 {
	return annualRate / 12 / 100
}

// annuityPayment is the fixed payment that retires principal over n months:
// P * r(1+r)^n / ((1+r)^n - 1), or P/n when r is zero.
func annuityPayment(principal, annualRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	r := monthlyRate(annualRate)
	if r == 0 {
		return principal / float64(n)
	}
	f := math.Pow(1+r, float64(n))
	return principal * r * f / (f - 1)
}

// monthlyCharge converts an annual percentage of base into a monthly amount.
func monthlyCharge(annualRate, base float64) float64 {
	return RoundCents(annualRate / 100 * base / 12)
}

func totalInterest(payment float64, n int, principal float64) float64 {
	return math.Max(0, RoundCents(payment*float64(n)-principal))
}

// ceilMonths rounds a fractional month count up, ignoring float noise.
func ceilMonths(n float64) int {
	return int(math.Ceil(n - 1e-9))
}

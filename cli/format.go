// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a currency amount with cents and comma separators.
// e.g., 2455.829 -> "$2,455.83", -12 -> "-$12.00"
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg().InexactFloat64())
	}
	s := d.StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "$" + s
	}
	return "$" + FormatNumber(n) + "." + cents
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value that is already a percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// FormatTerm formats a number of monthly payments as years and months.
// e.g., 360 -> "30y", 63 -> "5y 3m", 7 -> "7m"
func FormatTerm(months int) string {
	if months <= 0 {
		return "0m"
	}
	y, m := months/12, months%12
	switch {
	case y == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dy", y)
	default:
		return fmt.Sprintf("%dy %dm", y, m)
	}
}

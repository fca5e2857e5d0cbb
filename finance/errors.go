package finance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrNonAmortizingPayment means the payment does not cover the first
	// month's interest, so the balance would never shrink.
	ErrNonAmortizingPayment = errors.New("payment does not cover monthly interest")
	// ErrGoalUnreachable means a savings target cannot be reached with no
	// contributions and no growth, or not within MaxPlanningYears.
	ErrGoalUnreachable = errors.New("savings goal is unreachable")
)

// ValidationError reports the first input that violates a documented bound.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func wrapInvalid(field string, err error, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

// firstError returns the first non-nil error, preserving check order.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalid(field, "must be greater than 0")
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func checkRate(field string, v, limit float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 || v > limit {
		return invalid(field, "must be between 0 and %s percent", formatBound(limit))
	}
	return nil
}

func checkYears(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return invalid(field, "must be between %d and %d years", lo, hi)
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

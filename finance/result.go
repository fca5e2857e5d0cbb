package finance

import "errors"

// Result holds either a calculation value or the validation failure that
// prevented it. Callers that cannot fail use Fallback to get a zero value.
type Result[T any] struct {
	Value T
	Err   *ValidationError
}

// NewResult adapts a (value, error) pair. Errors that are not validation
// errors are wrapped so the failure path stays uniform.
func NewResult[T any](v T, err error) Result[T] {
	if err == nil {
		return Result[T]{Value: v}
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = &ValidationError{Message: err.Error(), Err: err}
	}
	return Result[T]{Err: verr}
}

func (r Result[T]) OK() bool { return r.Err == nil }

// Fallback returns the value, or the zero value when the calculation failed.
func (r Result[T]) Fallback() T {
	if r.Err != nil {
		var zero T
		return zero
	}
	return r.Value
}

func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		return r.Value, r.Err
	}
	return r.Value, nil
}

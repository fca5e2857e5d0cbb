package repository

import (
	"context"

	"fincalc/domain"
)

// KeyValueStore is a string-to-string persistent store. A missing key is
// reported as ok=false with a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// CalculationRepository keeps a history of calculations, newest first.
type CalculationRepository interface {
	SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error
	ListCalculations(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}

// DefaultHistoryLimit caps list queries that pass a non-positive limit.
const DefaultHistoryLimit = 50

package repository

import (
	"context"
	"sync"

	"fincalc/domain"
)

// MemoryStore keeps keys and calculation history in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string]string
	history []domain.CalculationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// SaveCalculation appends to the in-memory history.
func (m *MemoryStore) SaveCalculation(_ context.Context, rec domain.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, rec)
	return nil
}

func (m *MemoryStore) ListCalculations(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.CalculationRecord, 0, min(limit, len(m.history)))
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.history[i])
	}
	return out, nil
}

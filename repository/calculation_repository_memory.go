package repository

import (
	"context"
	"strings"
	"sync"

	"career-roi/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.CalculationRecord
}

func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.CalculationRecord{},
	}
}

func (r *CalculationRepositoryMemory) Save(_ context.Context, record domain.CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *CalculationRepositoryMemory) Recent(_ context.Context, careerID string, limit int) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.CalculationRecord{}
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		if careerID != "" && !strings.EqualFold(r.data[i].CareerID, careerID) {
			continue
		}
		out = append(out, r.data[i])
	}
	return out, nil
}

package repository

import (
	"context"

	"career-roi/domain"
)

// CalculationRepository keeps the history of ROI calculations.
type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	// Recent returns up to limit records, newest first. An empty careerID matches all careers.
	Recent(ctx context.Context, careerID string, limit int) ([]domain.CalculationRecord, error)
}

package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"career-roi/domain"
)

func TestCalculationRepositoryMemory_RecentNewestFirst(t *testing.T) {
	repo := NewCalculationRepositoryMemory()
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 4)
	for _, careerID := range []string{"registered-nurse", "electrician", "registered-nurse", "registered-nurse"} {
		id := uuid.New()
		ids = append(ids, id)
		if err := repo.Save(ctx, domain.CalculationRecord{ID: id, CareerID: careerID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all, err := repo.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 || all[0].ID != ids[3] {
		t.Fatalf("expected 4 records newest first, got %d", len(all))
	}

	nurses, _ := repo.Recent(ctx, "Registered-Nurse", 2)
	if len(nurses) != 2 {
		t.Fatalf("expected 2 records, got %d", len(nurses))
	}
	if nurses[0].ID != ids[3] || nurses[1].ID != ids[2] {
		t.Errorf("unexpected order: %v, %v", nurses[0].ID, nurses[1].ID)
	}
}

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"career-roi/domain"
)

func TestInsertCalculationQuery(t *testing.T) {
	record := domain.CalculationRecord{
		ID:            uuid.New(),
		CareerID:      "electrician",
		EducationType: domain.EducationApprenticeship,
		Result:        domain.ROICalculation{TimeToBreakeven: domain.BreakevenAt(4)},
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	sql, args, err := insertCalculationQuery(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO calculations (id,career_id,education_type,input,result,created_at) VALUES ($1,$2,$3,$4,$5,$6)"
	if sql != want {
		t.Errorf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
	if args[2] != "apprenticeship" {
		t.Errorf("expected education type arg, got %v", args[2])
	}
	if result, ok := args[4].([]byte); !ok || !strings.Contains(string(result), `"years":4`) {
		t.Errorf("expected encoded result, got %v", args[4])
	}
}

func TestInsertCalculationQuery_RequiresID(t *testing.T) {
	if _, _, err := insertCalculationQuery(domain.CalculationRecord{}); err == nil {
		t.Fatal("expected error for nil id")
	}
}

func TestRecentCalculationsQuery(t *testing.T) {
	sql, args, err := recentCalculationsQuery("electrician", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT id, career_id, education_type, input, result, created_at FROM calculations WHERE career_id = $1 ORDER BY created_at desc LIMIT 5"
	if sql != want {
		t.Errorf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 1 || args[0] != "electrician" {
		t.Errorf("unexpected args %v", args)
	}

	sql, _, err = recentCalculationsQuery("", 5)
	if err != nil || strings.Contains(sql, "WHERE") {
		t.Errorf("expected unfiltered query, got %s (%v)", sql, err)
	}

	if _, _, err := recentCalculationsQuery("", 0); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestSeedCatalogQueries(t *testing.T) {
	catalog, err := NewYAMLCatalogRepository("").LoadCatalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	queries, err := seedCatalogQueries(catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 careers and 7 education paths
	if len(queries) != 10 {
		t.Fatalf("expected 10 statements, got %d", len(queries))
	}
	sql, _, err := queries[0].ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sql, "INSERT INTO careers") || !strings.HasSuffix(sql, "on conflict (career_id) do nothing") {
		t.Errorf("unexpected career insert: %s", sql)
	}
}

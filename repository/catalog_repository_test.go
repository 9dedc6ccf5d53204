package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"career-roi/domain"
)

func TestYAMLCatalogRepository_Default(t *testing.T) {
	catalog, err := NewYAMLCatalogRepository("").LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catalog.Len() != 3 {
		t.Fatalf("expected 3 careers, got %d", catalog.Len())
	}
	if got := catalog.Careers()[0].CareerID; got != "registered-nurse" {
		t.Errorf("expected registered-nurse first, got %s", got)
	}

	nursing, ok := catalog.EducationOption("registered-nurse", domain.EducationAssociate)
	if !ok {
		t.Fatal("expected associate path for registered-nurse")
	}
	if nursing.TuitionCost != 15000 || len(nursing.Certifications) != 2 {
		t.Errorf("unexpected associate path: %+v", nursing)
	}
	if nursing.Certifications[0].RenewalPeriodYears != 2 {
		t.Errorf("expected 2 year renewal, got %d", nursing.Certifications[0].RenewalPeriodYears)
	}

	apprenticeship, ok := catalog.EducationOption("electrician", domain.EducationApprenticeship)
	if !ok || apprenticeship.OpportunityCost >= 0 {
		t.Errorf("expected negative opportunity cost for apprenticeship, got %+v", apprenticeship)
	}

	nurse, _ := catalog.Career("REGISTERED-NURSE")
	if len(nurse.GeographicFactors) != 3 || nurse.AverageSalary.Entry != 62000 {
		t.Errorf("unexpected nurse profile: %+v", nurse)
	}
}

func TestYAMLCatalogRepository_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte(`careers:
  - career_id: welder
    title: Welder
    average_salary: {entry: 40000, mid: 50000, senior: 60000, executive: 70000}
    salary_growth_rate: 0.02
    job_security: 7
    ai_resistance_score: 9
    education:
      - type: certificate
        duration_months: 6
        tuition_cost: 5000
`)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := NewYAMLCatalogRepository(path).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.EducationOptions("welder")) != 1 {
		t.Errorf("expected one education path for welder")
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "careers:\n  - career_id: x\n    salary: 1\n"},
		{"missing id", "careers:\n  - title: Nameless\n"},
		{"not yaml", "careers: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.doc)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestYAMLCatalogRepository_MissingFile(t *testing.T) {
	_, err := NewYAMLCatalogRepository(filepath.Join(t.TempDir(), "nope.yaml")).LoadCatalog(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

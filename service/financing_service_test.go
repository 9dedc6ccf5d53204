package service

import (
	"context"
	"errors"
	"testing"

	"career-roi/domain"
)

func TestFinancingService_WithInterest(t *testing.T) {
	svc := NewFinancingService(domain.Catalog{})

	result, err := svc.Calculate(context.Background(), domain.FinancingInput{
		Principal:  10000,
		AnnualRate: 12,
		TermMonths: 24,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 470.73 {
		t.Errorf("expected 470.73, got %.2f", result.MonthlyPayment)
	}
	if result.TotalInterest <= 0 || result.TotalPayment <= 10000 {
		t.Errorf("expected interest to be charged, got %+v", result)
	}
}

func TestFinancingService_ZeroInterest(t *testing.T) {
	svc := NewFinancingService(domain.Catalog{})

	result, err := svc.Calculate(context.Background(), domain.FinancingInput{
		Principal:  1200,
		AnnualRate: 0,
		TermMonths: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 100 || result.TotalPayment != 1200 || result.TotalInterest != 0 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestFinancingService_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input domain.FinancingInput
		field string
	}{
		{"zero principal", domain.FinancingInput{Principal: 0, AnnualRate: 5, TermMonths: 12}, "principal"},
		{"huge principal", domain.FinancingInput{Principal: MaxPrincipal + 1, AnnualRate: 5, TermMonths: 12}, "principal"},
		{"negative rate", domain.FinancingInput{Principal: 1000, AnnualRate: -1, TermMonths: 12}, "annualRate"},
		{"zero term", domain.FinancingInput{Principal: 1000, AnnualRate: 5, TermMonths: 0}, "termMonths"},
		{"long term", domain.FinancingInput{Principal: 1000, AnnualRate: 5, TermMonths: MaxTermMonths + 1}, "termMonths"},
	}

	svc := NewFinancingService(domain.Catalog{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Calculate(context.Background(), tt.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestFinancingService_FinanceEducation(t *testing.T) {
	svc := NewFinancingService(testCatalog(t))

	in, result, err := svc.FinanceEducation(context.Background(), "registered-nurse", domain.EducationAssociate, 0, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Principal != 127250 {
		t.Errorf("expected principal 127250, got %.2f", in.Principal)
	}
	if result.MonthlyPayment != 1060.42 {
		t.Errorf("expected 1060.42, got %.2f", result.MonthlyPayment)
	}

	if _, _, err := svc.FinanceEducation(context.Background(), "astronaut", domain.EducationBachelor, 5, 120); !errors.Is(err, domain.ErrCareerNotFound) {
		t.Errorf("expected ErrCareerNotFound, got %v", err)
	}
	if _, _, err := svc.FinanceEducation(context.Background(), "electrician", domain.EducationMaster, 5, 120); !errors.Is(err, domain.ErrEducationNotFound) {
		t.Errorf("expected ErrEducationNotFound, got %v", err)
	}
}

func TestFinancingService_ApprenticeshipHasNothingToFinance(t *testing.T) {
	svc := NewFinancingService(testCatalog(t))

	_, _, err := svc.FinanceEducation(context.Background(), "electrician", domain.EducationApprenticeship, 5, 60)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error for a zero principal, got %v", err)
	}
}

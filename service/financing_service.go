package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"career-roi/domain"
	"career-roi/logger"
)

// FinancingService amortizes a loan taken to pay for an education path.
type FinancingService struct {
	catalog domain.Catalog
}

func NewFinancingService(catalog domain.Catalog) *FinancingService {
	return &FinancingService{catalog: catalog}
}

// Calculate returns the fixed monthly payment and totals of a fully amortized loan.
func (s *FinancingService) Calculate(ctx context.Context, in domain.FinancingInput) (domain.FinancingResult, error) {
	if err := validateFinancing(in); err != nil {
		return domain.FinancingResult{}, err
	}

	principal := decimal.NewFromFloat(in.Principal)
	months := decimal.NewFromInt(int64(in.TermMonths))

	var payment decimal.Decimal
	if in.AnnualRate == 0 {
		payment = principal.Div(months)
	} else {
		monthlyRate := in.AnnualRate / 100 / 12
		factor := monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(in.TermMonths)))
		payment = principal.Mul(decimal.NewFromFloat(factor))
	}

	total := payment.Mul(months)
	result := domain.FinancingResult{
		MonthlyPayment: payment.Round(2).InexactFloat64(),
		TotalPayment:   total.Round(2).InexactFloat64(),
		TotalInterest:  total.Sub(principal).Round(2).InexactFloat64(),
	}

	logger.Debugf(ctx, "financed %.2f over %d months at %.2f%%: %.2f/month", in.Principal, in.TermMonths, in.AnnualRate, result.MonthlyPayment)
	return result, nil
}

// FinanceEducation borrows the total cost of a catalog education path.
func (s *FinancingService) FinanceEducation(
	ctx context.Context,
	careerID string,
	educationType domain.EducationType,
	annualRate float64,
	termMonths int,
) (domain.FinancingInput, domain.FinancingResult, error) {
	if _, ok := s.catalog.Career(careerID); !ok {
		return domain.FinancingInput{}, domain.FinancingResult{}, fmt.Errorf("career %q: %w", careerID, domain.ErrCareerNotFound)
	}
	education, ok := s.catalog.EducationOption(careerID, educationType)
	if !ok {
		return domain.FinancingInput{}, domain.FinancingResult{}, fmt.Errorf("%s path for %q: %w", educationType, careerID, domain.ErrEducationNotFound)
	}

	in := domain.FinancingInput{
		Principal:  TotalEducationCost(education),
		AnnualRate: annualRate,
		TermMonths: termMonths,
	}
	result, err := s.Calculate(ctx, in)
	if err != nil {
		return domain.FinancingInput{}, domain.FinancingResult{}, err
	}
	return in, result, nil
}

func validateFinancing(in domain.FinancingInput) error {
	switch {
	case in.Principal <= 0:
		return domain.NewValidationError("principal", "must be greater than 0")
	case in.Principal > MaxPrincipal:
		return domain.NewValidationError("principal", fmt.Sprintf("must not exceed %.2f", MaxPrincipal))
	case in.AnnualRate < 0:
		return domain.NewValidationError("annualRate", "must not be negative")
	case in.AnnualRate > MaxInterestRate:
		return domain.NewValidationError("annualRate", fmt.Sprintf("must not exceed %.2f%%", MaxInterestRate))
	case in.TermMonths < MinTermMonths || in.TermMonths > MaxTermMonths:
		return domain.NewValidationError("termMonths", fmt.Sprintf("must be between %d and %d", MinTermMonths, MaxTermMonths))
	}
	return nil
}

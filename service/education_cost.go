package service

import (
	"github.com/shopspring/decimal"

	"career-roi/domain"
)

// TotalEducationCost sums the direct and opportunity costs of an education path plus its
// certifications. Renewals are costed over a fixed RenewalWindowYears window that is
// independent of the caller's time horizon. The total is floored at zero: a paid
// apprenticeship can offset tuition but never yields a negative cost of entry.
func TotalEducationCost(education domain.EducationCost) float64 {
	total := decimal.NewFromFloat(education.TuitionCost).
		Add(decimal.NewFromFloat(education.MaterialsAndFees)).
		Add(decimal.NewFromFloat(education.LivingExpenses)).
		Add(decimal.NewFromFloat(education.OpportunityCost))

	for _, cert := range education.Certifications {
		total = total.Add(decimal.NewFromFloat(cert.Cost))
		if cert.RenewalCost > 0 && cert.RenewalPeriodYears > 0 {
			renewals := int64(RenewalWindowYears / cert.RenewalPeriodYears)
			total = total.Add(decimal.NewFromFloat(cert.RenewalCost).Mul(decimal.NewFromInt(renewals)))
		}
	}

	if total.IsNegative() {
		return 0
	}
	return total.InexactFloat64()
}

package domain

// SalaryBands holds the base salary of each seniority tier.
type SalaryBands struct {
	Entry     float64 `json:"entry" yaml:"entry" validate:"gt=0"`
	Mid       float64 `json:"mid" yaml:"mid" validate:"gt=0"`
	Senior    float64 `json:"senior" yaml:"senior" validate:"gt=0"`
	Executive float64 `json:"executive" yaml:"executive" validate:"gt=0"`
}

// Scale returns a copy of the bands multiplied by factor.
func (b SalaryBands) Scale(factor float64) SalaryBands {
	return SalaryBands{
		Entry:     b.Entry * factor,
		Mid:       b.Mid * factor,
		Senior:    b.Senior * factor,
		Executive: b.Executive * factor,
	}
}

type GeographicFactor struct {
	Location          string  `json:"location" yaml:"location"`
	SalaryMultiplier  float64 `json:"salaryMultiplier" yaml:"salary_multiplier" validate:"gt=0"`
	CostOfLivingIndex float64 `json:"costOfLivingIndex" yaml:"cost_of_living_index"`
}

// NationalAverage is the neutral factor used when a location is not listed for a career.
var NationalAverage = GeographicFactor{
	Location:          "National Average",
	SalaryMultiplier:  1.0,
	CostOfLivingIndex: 1.0,
}

// CareerProfile describes a target career's salary trajectory and risk scores.
// IndustryGrowth is informational and not used by the ROI formulas.
type CareerProfile struct {
	CareerID          string             `json:"careerId" yaml:"career_id"`
	Title             string             `json:"title" yaml:"title"`
	AverageSalary     SalaryBands        `json:"averageSalary" yaml:"average_salary"`
	SalaryGrowthRate  float64            `json:"salaryGrowthRate" yaml:"salary_growth_rate" validate:"gt=-1"`
	JobSecurity       int                `json:"jobSecurity" yaml:"job_security"`
	AIResistanceScore int                `json:"aiResistanceScore" yaml:"ai_resistance_score"`
	GeographicFactors []GeographicFactor `json:"geographicFactors,omitempty" yaml:"geographic_factors" validate:"dive"`
	IndustryGrowth    float64            `json:"industryGrowth,omitempty" yaml:"industry_growth"`
}

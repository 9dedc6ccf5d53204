package domain

type EducationType string

const (
	EducationCertificate    EducationType = "certificate"
	EducationAssociate      EducationType = "associate"
	EducationBachelor       EducationType = "bachelor"
	EducationMaster         EducationType = "master"
	EducationDoctorate      EducationType = "doctorate"
	EducationBootcamp       EducationType = "bootcamp"
	EducationApprenticeship EducationType = "apprenticeship"
)

// Certification is a credential bought once and optionally renewed on a fixed cadence.
// A zero RenewalCost or RenewalPeriodYears means the certification never renews.
type Certification struct {
	Name               string  `json:"name" yaml:"name"`
	Cost               float64 `json:"cost" yaml:"cost"`
	RenewalCost        float64 `json:"renewalCost,omitempty" yaml:"renewal_cost"`
	RenewalPeriodYears int     `json:"renewalPeriodYears,omitempty" yaml:"renewal_period_years" validate:"gte=0"`
}

// EducationCost describes the cost structure of one training path into a career.
// OpportunityCost may be negative for paid programs such as apprenticeships.
type EducationCost struct {
	Type             EducationType   `json:"type" yaml:"type" validate:"omitempty,oneof=certificate associate bachelor master doctorate bootcamp apprenticeship"`
	DurationMonths   int             `json:"durationMonths" yaml:"duration_months" validate:"gt=0"`
	TuitionCost      float64         `json:"tuitionCost" yaml:"tuition_cost"`
	MaterialsAndFees float64         `json:"materialsAndFees" yaml:"materials_and_fees"`
	LivingExpenses   float64         `json:"livingExpenses" yaml:"living_expenses"`
	OpportunityCost  float64         `json:"opportunityCost" yaml:"opportunity_cost"`
	Certifications   []Certification `json:"certifications,omitempty" yaml:"certifications" validate:"dive"`
}

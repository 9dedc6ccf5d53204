package domain

type PathComparisonInput struct {
	CareerID         string
	CurrentSalary    float64
	Location         string
	TimeHorizonYears int
}

type PathOption struct {
	Education EducationCost `json:"education"`
	Report    ROIReport     `json:"report"`
	Score     float64       `json:"score"`
	Reason    string        `json:"reason"`
}

type PathComparisonResult struct {
	CareerID        string        `json:"careerId"`
	CareerTitle     string        `json:"careerTitle"`
	RecommendedType EducationType `json:"recommendedType"`
	Options         []PathOption  `json:"options"`
	Explanation     string        `json:"explanation,omitempty"` // narrative for the top option
}

package domain

// FinancingInput describes a loan taken to pay for an education path.
// AnnualRate is a percentage (6.5 = 6.5% per year).
type FinancingInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	TermMonths int     `json:"termMonths"`
}

type FinancingResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

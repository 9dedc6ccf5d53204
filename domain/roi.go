package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Ratio is a return expressed as a fraction (2.0 = 200%). Zero-cost paths produce
// an infinite ratio, which marshals to JSON as "Infinity" or "-Infinity".
type Ratio float64

func (r Ratio) Float64() float64 { return float64(r) }

func (r Ratio) IsInfinite() bool { return math.IsInf(float64(r), 0) }

func (r Ratio) MarshalJSON() ([]byte, error) {
	v := float64(r)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return nil, fmt.Errorf("ratio is NaN")
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*r = Ratio(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*r = Ratio(math.Inf(-1))
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %s: %w", data, err)
	}
	*r = Ratio(v)
	return nil
}

// Breakeven is the 1-based career year in which cumulative benefit first covers
// cumulative cost, or the "never" outcome when that does not happen within 40 years.
type Breakeven struct {
	years   int
	reached bool
}

func BreakevenAt(years int) Breakeven { return Breakeven{years: years, reached: true} }

func NeverBreaksEven() Breakeven { return Breakeven{} }

func (b Breakeven) Reached() bool { return b.reached }

// Years returns the breakeven year and whether it was reached.
func (b Breakeven) Years() (int, bool) { return b.years, b.reached }

// Value returns the legacy numeric form: the year, or -1 when never reached.
func (b Breakeven) Value() int {
	if !b.reached {
		return -1
	}
	return b.years
}

type breakevenJSON struct {
	Reached bool `json:"reached"`
	Years   *int `json:"years,omitempty"`
}

func (b Breakeven) MarshalJSON() ([]byte, error) {
	out := breakevenJSON{Reached: b.reached}
	if b.reached {
		years := b.years
		out.Years = &years
	}
	return json.Marshal(out)
}

func (b *Breakeven) UnmarshalJSON(data []byte) error {
	var in breakevenJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Reached || in.Years == nil {
		*b = NeverBreaksEven()
		return nil
	}
	*b = BreakevenAt(*in.Years)
	return nil
}

type ComparisonMetrics struct {
	VsCurrentSalary float64 `json:"vsCurrentSalary"`
	VsStockMarket   Ratio   `json:"vsStockMarket"`
}

// ROICalculation is the immutable result of one education path evaluated against one career.
type ROICalculation struct {
	TotalEducationCost float64           `json:"totalEducationCost"`
	TimeToBreakeven    Breakeven         `json:"timeToBreakeven"`
	LifetimeROI        Ratio             `json:"lifetimeROI"`
	NetPresentValue    float64           `json:"netPresentValue"`
	AnnualizedReturn   Ratio             `json:"annualizedReturn"`
	PaybackPeriod      Breakeven         `json:"paybackPeriod"`
	RiskAdjustedReturn Ratio             `json:"riskAdjustedReturn"`
	ComparisonMetrics  ComparisonMetrics `json:"comparisonMetrics"`
}

// ROIInput captures every argument of an ROI calculation.
type ROIInput struct {
	Education        EducationCost `json:"education"`
	Career           CareerProfile `json:"career"`
	CurrentSalary    float64       `json:"currentSalary"`
	Location         string        `json:"location"`
	TimeHorizonYears int           `json:"timeHorizonYears"`
}

type RecommendationTier string

const (
	TierExcellent RecommendationTier = "Excellent Investment"
	TierGood      RecommendationTier = "Good Investment"
	TierFair      RecommendationTier = "Fair Investment"
	TierRisky     RecommendationTier = "Risky Investment"
	TierPoor      RecommendationTier = "Poor Investment"
)

// FormattedROI is the display-ready rendition of an ROICalculation.
type FormattedROI struct {
	TotalEducationCost string             `json:"totalEducationCost"`
	TimeToBreakeven    string             `json:"timeToBreakeven"`
	LifetimeROI        string             `json:"lifetimeROI"`
	NetPresentValue    string             `json:"netPresentValue"`
	AnnualizedReturn   string             `json:"annualizedReturn"`
	RiskAdjustedReturn string             `json:"riskAdjustedReturn"`
	VsCurrentSalary    string             `json:"vsCurrentSalary"`
	VsStockMarket      string             `json:"vsStockMarket"`
	Recommendation     RecommendationTier `json:"recommendation"`
}

type ROIReport struct {
	Result    ROICalculation `json:"result"`
	Formatted FormattedROI   `json:"formatted"`
}

// CalculationRecord is a saved calculation.
type CalculationRecord struct {
	ID            uuid.UUID      `json:"id"`
	CareerID      string         `json:"careerId"`
	EducationType EducationType  `json:"educationType"`
	Input         ROIInput       `json:"input"`
	Result        ROICalculation `json:"result"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// CareerROIRequest selects an education path of a catalog career by type.
// An empty EducationType selects the first path listed for the career.
type CareerROIRequest struct {
	CareerID         string        `json:"careerId"`
	EducationType    EducationType `json:"educationType,omitempty"`
	CurrentSalary    float64       `json:"currentSalary"`
	Location         string        `json:"location"`
	TimeHorizonYears int           `json:"timeHorizonYears"`
}

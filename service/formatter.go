package service

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"career-roi/domain"
)

// Formatter renders ROI results for one locale. Currency has no decimals, percentages one.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

func (f *Formatter) Currency(amount float64) string {
	whole := f.printer.Sprintf("%d", int64(math.Round(math.Abs(amount))))
	if amount < 0 && whole != "0" {
		return "-$" + whole
	}
	return "$" + whole
}

func (f *Formatter) Percent(r domain.Ratio) string {
	switch {
	case math.IsInf(r.Float64(), 1):
		return "Unlimited"
	case math.IsInf(r.Float64(), -1):
		return "Unlimited loss"
	}
	return f.printer.Sprintf("%.1f%%", r.Float64()*100)
}

func (f *Formatter) Years(b domain.Breakeven) string {
	years, ok := b.Years()
	if !ok {
		return "Never"
	}
	if years == 1 {
		return "1 year"
	}
	return f.printer.Sprintf("%d years", years)
}

func (f *Formatter) Format(calc domain.ROICalculation) domain.FormattedROI {
	return domain.FormattedROI{
		TotalEducationCost: f.Currency(calc.TotalEducationCost),
		TimeToBreakeven:    f.Years(calc.TimeToBreakeven),
		LifetimeROI:        f.Percent(calc.LifetimeROI),
		NetPresentValue:    f.Currency(calc.NetPresentValue),
		AnnualizedReturn:   f.Percent(calc.AnnualizedReturn),
		RiskAdjustedReturn: f.Percent(calc.RiskAdjustedReturn),
		VsCurrentSalary:    f.Currency(calc.ComparisonMetrics.VsCurrentSalary),
		VsStockMarket:      f.Percent(calc.ComparisonMetrics.VsStockMarket),
		Recommendation:     RecommendationFor(calc.PaybackPeriod, calc.AnnualizedReturn),
	}
}

func (f *Formatter) Report(calc domain.ROICalculation) domain.ROIReport {
	return domain.ROIReport{Result: calc, Formatted: f.Format(calc)}
}

// RecommendationFor maps payback period and annualized return to a qualitative tier.
func RecommendationFor(payback domain.Breakeven, annualized domain.Ratio) domain.RecommendationTier {
	years, reached := payback.Years()
	r := annualized.Float64()

	switch {
	case !reached:
		return domain.TierPoor
	case years <= 5 && r > 0.10:
		return domain.TierExcellent
	case years <= 8 && r > 0.07:
		return domain.TierGood
	case years <= 12:
		return domain.TierFair
	default:
		return domain.TierRisky
	}
}

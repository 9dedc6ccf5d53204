package service

import (
	"math"
	"strings"

	"career-roi/domain"
)

// CalculateROI evaluates one education path against one career.
//
// Lifetime ROI always covers the full CareerYears career while the annualized return
// spreads it over the caller's horizon.
func CalculateROI(
	education domain.EducationCost,
	career domain.CareerProfile,
	currentSalary float64,
	location string,
	timeHorizonYears int,
) (domain.ROICalculation, error) {
	if err := validateROIArgs(education, career, currentSalary, timeHorizonYears); err != nil {
		return domain.ROICalculation{}, err
	}

	totalCost := TotalEducationCost(education)
	bands := career.AverageSalary.Scale(LocationFactor(career, location).SalaryMultiplier)
	progression := ProjectCareer(bands, career.SalaryGrowthRate)
	eduYears := educationYears(education.DurationMonths)

	breakeven := breakevenYear(totalCost, progression, currentSalary, eduYears)
	lifetime := lifetimeROI(totalCost, progression, currentSalary, eduYears)
	annualized := annualizedReturn(lifetime, timeHorizonYears)

	return domain.ROICalculation{
		TotalEducationCost: totalCost,
		TimeToBreakeven:    breakeven,
		LifetimeROI:        lifetime,
		NetPresentValue:    netPresentValue(totalCost, progression, currentSalary, eduYears, timeHorizonYears),
		AnnualizedReturn:   annualized,
		PaybackPeriod:      breakeven,
		RiskAdjustedReturn: riskAdjustedReturn(annualized, career),
		ComparisonMetrics:  comparisonMetrics(bands.Entry, currentSalary, annualized),
	}, nil
}

// LocationFactor finds the career's factor for location by case-insensitive name,
// falling back to the neutral national average.
func LocationFactor(career domain.CareerProfile, location string) domain.GeographicFactor {
	location = strings.TrimSpace(location)
	for _, factor := range career.GeographicFactors {
		if strings.EqualFold(factor.Location, location) {
			return factor
		}
	}
	return domain.NationalAverage
}

func educationYears(durationMonths int) int {
	return (durationMonths + 11) / 12
}

func discount(amount float64, year int) float64 {
	return amount / math.Pow(1+DiscountRate, float64(year+1))
}

// netPresentValue starts at -totalCost, subtracts the discounted income forgone while
// studying and adds the discounted incremental income up to the horizon.
func netPresentValue(totalCost float64, progression []float64, currentSalary float64, eduYears, horizon int) float64 {
	npv := -totalCost
	for year := 0; year < eduYears; year++ {
		npv -= discount(currentIncome(currentSalary, year), year)
	}
	for year := eduYears; year < horizon; year++ {
		incremental := progression[year-eduYears] - currentIncome(currentSalary, year)
		npv += discount(incremental, year)
	}
	return npv
}

// breakevenYear returns the first 1-based career year in which the positive income
// increments cover the education cost plus the income forgone while studying.
func breakevenYear(totalCost float64, progression []float64, currentSalary float64, eduYears int) domain.Breakeven {
	cost := totalCost
	for year := 0; year < eduYears; year++ {
		cost += currentIncome(currentSalary, year)
	}

	benefit := 0.0
	for year := eduYears; year < CareerYears; year++ {
		if incremental := progression[year-eduYears] - currentIncome(currentSalary, year); incremental > 0 {
			benefit += incremental
		}
		if benefit >= cost {
			return domain.BreakevenAt(year + 1)
		}
	}
	return domain.NeverBreaksEven()
}

// lifetimeROI compares total earnings of both careers over CareerYears. The new career
// earns nothing while studying. A zero-cost path has an unbounded ratio.
func lifetimeROI(totalCost float64, progression []float64, currentSalary float64, eduYears int) domain.Ratio {
	var totalNew, totalCurrent float64
	for year := 0; year < CareerYears; year++ {
		totalCurrent += currentIncome(currentSalary, year)
		if year >= eduYears {
			totalNew += progression[year-eduYears]
		}
	}

	net := totalNew - totalCurrent - totalCost
	if totalCost == 0 {
		switch {
		case net > 0:
			return domain.Ratio(math.Inf(1))
		case net < 0:
			return domain.Ratio(math.Inf(-1))
		}
		return 0
	}
	return domain.Ratio(net / totalCost)
}

// annualizedReturn spreads the lifetime ROI over the horizon. A total loss (or worse)
// annualizes to -100%; a zero horizon has no return.
func annualizedReturn(lifetime domain.Ratio, horizon int) domain.Ratio {
	if horizon <= 0 {
		return 0
	}
	growth := 1 + lifetime.Float64()
	if growth <= 0 {
		return -1
	}
	return domain.Ratio(math.Pow(growth, 1/float64(horizon)) - 1)
}

func riskFactor(career domain.CareerProfile) float64 {
	return float64(career.JobSecurity) / 10 * float64(career.AIResistanceScore) / 10
}

func riskAdjustedReturn(annualized domain.Ratio, career domain.CareerProfile) domain.Ratio {
	factor := riskFactor(career)
	if factor == 0 {
		return 0
	}
	return domain.Ratio(annualized.Float64() * factor)
}

func comparisonMetrics(adjustedEntrySalary, currentSalary float64, annualized domain.Ratio) domain.ComparisonMetrics {
	return domain.ComparisonMetrics{
		VsCurrentSalary: adjustedEntrySalary - currentSalary,
		VsStockMarket:   annualized - StockMarketBenchmark,
	}
}

package service

import (
	"math"

	"career-roi/domain"
)

// ProjectCareer expands salary bands into CareerYears nominal annual salaries.
// Growth compounds on the absolute career year, so each band starts with the
// multiplier accumulated so far.
func ProjectCareer(bands domain.SalaryBands, growthRate float64) []float64 {
	salaries := make([]float64, CareerYears)
	for year := range salaries {
		salaries[year] = bandBase(bands, year) * math.Pow(1+growthRate, float64(year))
	}
	return salaries
}

func bandBase(bands domain.SalaryBands, year int) float64 {
	switch {
	case year <= EntryBandLastYear:
		return bands.Entry
	case year <= MidBandLastYear:
		return bands.Mid
	case year <= SeniorBandLastYear:
		return bands.Senior
	default:
		return bands.Executive
	}
}

// currentIncome is the salary of the current job in a given year.
func currentIncome(currentSalary float64, year int) float64 {
	return currentSalary * math.Pow(1+BaselineSalaryGrowth, float64(year))
}

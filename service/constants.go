package service

const (
	DiscountRate         = 0.04 // annual NPV discount rate
	BaselineSalaryGrowth = 0.03 // growth of the current job's salary
	StockMarketBenchmark = 0.07 // annual return used for vsStockMarket
	CareerYears          = 40   // length of every projected career
	RenewalWindowYears   = 10   // certification renewals are costed over this window only

	// Last career year (0-based, inclusive) of each band.
	EntryBandLastYear  = 3
	MidBandLastYear    = 10
	SeniorBandLastYear = 20

	DefaultCurrentSalary    = 35000.0
	DefaultLocation         = "National Average"
	DefaultTimeHorizonYears = 20
	MaxTimeHorizonYears     = CareerYears

	// Financing limits
	MaxPrincipal    = 10_000_000.0
	MaxInterestRate = 100.0 // percent per year
	MaxTermMonths   = 360   // 30 years
	MinTermMonths   = 1
)

package model

// GrowthScheduleEntry is the assumed price growth for one projection year.
// Rate is a percent rounded to 2 decimals.
type GrowthScheduleEntry struct {
	Year int     `json:"year"`
	Rate float64 `json:"rate"`
}

// YearSnapshot is one row of projection output.
// Money fields are rounded to whole currency units; LTVRatio is a whole percent.
// LTVRatio is measured against start-of-year collateral while PortfolioValue uses
// the end-of-year price.
type YearSnapshot struct {
	Year                   int     `json:"year"`
	GrowthRate             float64 `json:"growth_rate"`
	BitcoinPriceStart      float64 `json:"bitcoin_price_start"`
	BitcoinPriceEnd        float64 `json:"bitcoin_price_end"`
	PortfolioValue         float64 `json:"portfolio_value"`
	TotalBorrowed          float64 `json:"total_borrowed"`
	TotalInterest          float64 `json:"total_interest"`
	TotalDebt              float64 `json:"total_debt"`
	NetWorth               float64 `json:"net_worth"`
	LTVRatio               float64 `json:"ltv_ratio"`
	AnnualExpensesThisYear float64 `json:"annual_expenses_this_year"`
}

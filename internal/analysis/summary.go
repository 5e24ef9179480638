package analysis

import (
	"math"

	"btc-ltv-planner/internal/model"
)

// Summary condenses a projection ledger into the figures a planner looks at first.
type Summary struct {
	Years int

	FinalPrice          float64
	FinalPortfolioValue float64
	FinalDebt           float64
	FinalNetWorth       float64
	TotalBorrowed       float64
	TotalInterest       float64

	PeakLTV     float64
	PeakLTVYear int
	FinalLTV    float64

	// PriceCAGR is the compound annual price growth over the horizon, in percent.
	PriceCAGR float64

	// InsolventYear is the first year net worth goes negative; 0 if it never does.
	InsolventYear int
}

func Summarize(ledger []model.YearSnapshot) Summary {
	s := Summary{}
	if len(ledger) == 0 {
		return s
	}
	first := ledger[0]
	last := ledger[len(ledger)-1]

	s.Years = len(ledger)
	s.FinalPrice = last.BitcoinPriceEnd
	s.FinalPortfolioValue = last.PortfolioValue
	s.FinalDebt = last.TotalDebt
	s.FinalNetWorth = last.NetWorth
	s.TotalBorrowed = last.TotalBorrowed
	s.TotalInterest = last.TotalInterest
	s.FinalLTV = last.LTVRatio

	s.PeakLTV = math.Inf(-1)
	for _, row := range ledger {
		if row.LTVRatio > s.PeakLTV {
			s.PeakLTV = row.LTVRatio
			s.PeakLTVYear = row.Year
		}
		if s.InsolventYear == 0 && row.NetWorth < 0 {
			s.InsolventYear = row.Year
		}
	}

	if first.BitcoinPriceStart > 0 {
		growth := last.BitcoinPriceEnd / first.BitcoinPriceStart
		s.PriceCAGR = (math.Pow(growth, 1/float64(len(ledger))) - 1) * 100
	}
	return s
}

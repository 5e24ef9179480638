package analysis

import (
	"testing"

	"btc-ltv-planner/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	ledger := []model.YearSnapshot{
		{Year: 1, BitcoinPriceStart: 100, BitcoinPriceEnd: 200, PortfolioValue: 200, TotalBorrowed: 50, TotalDebt: 50, NetWorth: 150, LTVRatio: 50},
		{Year: 2, BitcoinPriceStart: 200, BitcoinPriceEnd: 100, PortfolioValue: 100, TotalBorrowed: 100, TotalInterest: 5, TotalDebt: 105, NetWorth: -5, LTVRatio: 53},
		{Year: 3, BitcoinPriceStart: 100, BitcoinPriceEnd: 800, PortfolioValue: 800, TotalBorrowed: 150, TotalInterest: 15, TotalDebt: 165, NetWorth: 635, LTVRatio: 165},
	}

	s := Summarize(ledger)
	assert.Equal(t, 3, s.Years)
	assert.Equal(t, 800.0, s.FinalPrice)
	assert.Equal(t, 635.0, s.FinalNetWorth)
	assert.Equal(t, 165.0, s.FinalDebt)
	assert.Equal(t, 15.0, s.TotalInterest)
	assert.Equal(t, 165.0, s.PeakLTV)
	assert.Equal(t, 3, s.PeakLTVYear)
	assert.Equal(t, 2, s.InsolventYear)
	assert.InDelta(t, 100.0, s.PriceCAGR, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestRankScenarios(t *testing.T) {
	ranked := RankScenarios([]Scenario{
		{Name: "low", Expenses: 10, Summary: Summary{FinalNetWorth: 5}},
		{Name: "high", Expenses: 30},
		{Name: "tie-rich", Expenses: 10, Summary: Summary{FinalNetWorth: 9}},
	})

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"high", "tie-rich", "low"}, names)
}

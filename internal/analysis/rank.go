package analysis

import "sort"

// Scenario is one named projection outcome.
type Scenario struct {
	Name     string
	Expenses float64
	Summary  Summary
}

type RankedScenario struct {
	Rank int
	Scenario
}

// RankScenarios sorts by sustainable expenses, highest first, breaking ties on final
// net worth. Input order is kept for full ties.
func RankScenarios(scenarios []Scenario) []RankedScenario {
	sorted := make([]Scenario, len(scenarios))
	copy(sorted, scenarios)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Expenses != sorted[j].Expenses {
			return sorted[i].Expenses > sorted[j].Expenses
		}
		return sorted[i].Summary.FinalNetWorth > sorted[j].Summary.FinalNetWorth
	})

	out := make([]RankedScenario, len(sorted))
	for i, s := range sorted {
		out[i] = RankedScenario{Rank: i + 1, Scenario: s}
	}
	return out
}

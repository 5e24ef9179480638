package strategy

import (
	"btc-ltv-planner/internal/model"
	"btc-ltv-planner/internal/projection"
)

// OptimalStrategy spends the largest amount that keeps every year's LTV at or
// below MaxLTV.
type OptimalStrategy struct{}

func (OptimalStrategy) Name() string { return NameOptimal }

func (OptimalStrategy) Expenses(in model.SimulationInputs, schedule []model.GrowthScheduleEntry) (float64, error) {
	return projection.FindOptimalExpenses(in, schedule)
}

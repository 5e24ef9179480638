package projection

import "btc-ltv-planner/internal/model"

// SearchPrecision is the absolute currency width at which the expense search stops.
const SearchPrecision = 100.0

// Optimum is the outcome of an expense search.
type Optimum struct {
	// Expenses is the largest feasible first-year draw, rounded to whole currency units.
	Expenses   float64
	Iterations int
	// Result is the projection run at Expenses.
	Result *Result
}

// FindOptimalExpenses returns the largest starting annual expense, to within
// SearchPrecision, whose projection keeps LTVRatio at or below inputs.MaxLTV. It returns
// 0 when no positive level is feasible.
//
// The feasible level found by the search is rounded to whole currency units, so with a
// fractional MaxLTV the returned amount can sit up to half a unit above the last feasible
// level and report a peak LTV one percent over the target. One unit less is always feasible.
func FindOptimalExpenses(in model.SimulationInputs, schedule []model.GrowthScheduleEntry) (float64, error) {
	opt, err := New().Optimize(in, schedule)
	if err != nil {
		return 0, err
	}
	return opt.Expenses, nil
}

// Optimize binary-searches expenses in [0, initial portfolio value]. low always holds a
// feasible level (or 0) and high an infeasible one (or the initial bound); the search stops
// once they are within SearchPrecision of each other.
func (e *Engine) Optimize(in model.SimulationInputs, schedule []model.GrowthScheduleEntry) (*Optimum, error) {
	if err := in.ValidateTarget(); err != nil {
		return nil, err
	}

	low, high := 0.0, in.InitialPortfolioValue()
	optimal := 0.0
	iterations := 0
	for high-low > SearchPrecision {
		iterations++
		mid := (low + high) / 2
		res, err := e.Run(in.WithExpenses(mid), schedule)
		if err != nil {
			return nil, err
		}
		if res.MaxLTV <= in.MaxLTV {
			optimal = mid
			low = mid
		} else {
			high = mid
		}
	}

	expenses := roundMoney(optimal)
	res, err := e.Run(in.WithExpenses(expenses), schedule)
	if err != nil {
		return nil, err
	}
	return &Optimum{Expenses: expenses, Iterations: iterations, Result: res}, nil
}

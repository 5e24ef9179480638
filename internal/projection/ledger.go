package projection

import "btc-ltv-planner/internal/model"

// Result is the output of one projection run.
// Ledger holds one snapshot per year, in year order.
type Result struct {
	Ledger []model.YearSnapshot

	// MaxLTV is the largest emitted (rounded) LTVRatio, the value the optimizer constrains.
	MaxLTV        float64
	MaxLTVYear    int
	FinalNetWorth float64
}

// Final returns the last snapshot.
func (r *Result) Final() model.YearSnapshot {
	return r.Ledger[len(r.Ledger)-1]
}

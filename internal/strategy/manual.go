package strategy

import "btc-ltv-planner/internal/model"

// ManualStrategy uses the caller's AnnualExpenses unchanged.
type ManualStrategy struct{}

func (ManualStrategy) Name() string { return NameManual }

func (ManualStrategy) Expenses(in model.SimulationInputs, _ []model.GrowthScheduleEntry) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return in.AnnualExpenses, nil
}

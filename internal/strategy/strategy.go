package strategy

import (
	"fmt"
	"strings"

	"btc-ltv-planner/internal/model"
	"btc-ltv-planner/internal/projection"
)

// Strategy picks the first-year expense level a projection is run with.
type Strategy interface {
	Name() string
	Expenses(in model.SimulationInputs, schedule []model.GrowthScheduleEntry) (float64, error)
}

const (
	NameManual  = "manual"
	NameOptimal = "optimal"
)

// ByName resolves a strategy name; an empty name means manual.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameManual:
		return ManualStrategy{}, nil
	case NameOptimal:
		return OptimalStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported strategy %q", model.ErrInvalidArgument, name)
	}
}

// Plan is a projection together with the schedule and expense level that produced it.
type Plan struct {
	Strategy string
	Expenses float64
	Schedule []model.GrowthScheduleEntry
	Result   *projection.Result
}

// Apply generates the schedule, asks s for the expense level and runs the projection.
func Apply(engine *projection.Engine, s Strategy, in model.SimulationInputs) (*Plan, error) {
	schedule, err := projection.ScheduleFor(in)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Expenses(in, schedule)
	if err != nil {
		return nil, err
	}
	res, err := engine.Run(in.WithExpenses(expenses), schedule)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Strategy: s.Name(),
		Expenses: expenses,
		Schedule: schedule,
		Result:   res,
	}, nil
}

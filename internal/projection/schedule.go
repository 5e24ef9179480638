package projection

import (
	"fmt"
	"math"

	"btc-ltv-planner/internal/model"
)

// transitionYears is the number of decay steps between the initial and terminal rate.
// From year transitionYears+1 onward the rate is pinned at the terminal rate.
const transitionYears = 9

// GenerateGrowthRates builds a linearly decaying growth schedule for years 1..years.
//
// rate(y) = max(terminal, initial - decay*(y-1)) for y <= 9, terminal afterwards,
// where decay = (initial-terminal)/9. Rates are rounded to 2 decimals.
// When initial < terminal the clamp pins every year to terminal.
func GenerateGrowthRates(initialRate, terminalRate float64, years int) ([]model.GrowthScheduleEntry, error) {
	if years < 0 || years > model.MaxYears {
		return nil, fmt.Errorf("%w: years must be in [0, %d], got %d", model.ErrInvalidArgument, model.MaxYears, years)
	}
	if math.IsNaN(initialRate) || math.IsInf(initialRate, 0) || math.IsNaN(terminalRate) || math.IsInf(terminalRate, 0) {
		return nil, fmt.Errorf("%w: growth rates must be finite", model.ErrInvalidArgument)
	}

	decay := (initialRate - terminalRate) / transitionYears
	out := make([]model.GrowthScheduleEntry, 0, years)
	for y := 1; y <= years; y++ {
		rate := terminalRate
		if y <= transitionYears {
			rate = math.Max(terminalRate, initialRate-decay*float64(y-1))
		}
		out = append(out, model.GrowthScheduleEntry{Year: y, Rate: roundTo(rate, 2)})
	}
	return out, nil
}

// ScheduleFor is GenerateGrowthRates driven by the inputs' own rates and horizon.
func ScheduleFor(in model.SimulationInputs) ([]model.GrowthScheduleEntry, error) {
	return GenerateGrowthRates(in.InitialGrowthRate, in.TerminalGrowthRate, in.Years)
}

// rateFor returns the schedule rate for year, falling back to the last entry.
func rateFor(schedule []model.GrowthScheduleEntry, year int) float64 {
	if i := year - 1; i >= 0 && i < len(schedule) && schedule[i].Year == year {
		return schedule[i].Rate
	}
	for _, e := range schedule {
		if e.Year == year {
			return e.Rate
		}
	}
	return schedule[len(schedule)-1].Rate
}

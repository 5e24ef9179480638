package model

import (
	"fmt"
	"math"
)

// MaxYears caps the projection horizon. Realistic plans stay under a century.
const MaxYears = 1000

// SimulationInputs is the full set of scalar assumptions for one projection run.
// Units:
// - BitcoinAmount: BTC
// - BitcoinPriceStart, AnnualExpenses: currency units (USD)
// - InterestRate, InflationRate, growth rates, MaxLTV: percent (10 means 10%)
type SimulationInputs struct {
	BitcoinAmount      float64 `json:"bitcoin_amount" yaml:"bitcoin_amount" toml:"bitcoin_amount"`
	BitcoinPriceStart  float64 `json:"bitcoin_price_start" yaml:"bitcoin_price_start" toml:"bitcoin_price_start"`
	Years              int     `json:"years" yaml:"years" toml:"years"`
	InterestRate       float64 `json:"interest_rate" yaml:"interest_rate" toml:"interest_rate"`
	InflationRate      float64 `json:"inflation_rate" yaml:"inflation_rate" toml:"inflation_rate"`
	InitialGrowthRate  float64 `json:"initial_growth_rate" yaml:"initial_growth_rate" toml:"initial_growth_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate" yaml:"terminal_growth_rate" toml:"terminal_growth_rate"`
	MaxLTV             float64 `json:"max_ltv" yaml:"max_ltv" toml:"max_ltv"`

	// AnnualExpenses is the first-year draw; only used in manual mode.
	AnnualExpenses float64 `json:"annual_expenses" yaml:"annual_expenses" toml:"annual_expenses"`
}

// Validate checks the fields a projection needs. MaxLTV is not checked here;
// see ValidateTarget.
func (in SimulationInputs) Validate() error {
	if !finite(in.BitcoinAmount, in.BitcoinPriceStart, in.InterestRate, in.InflationRate,
		in.InitialGrowthRate, in.TerminalGrowthRate, in.AnnualExpenses) {
		return fmt.Errorf("%w: inputs must be finite numbers", ErrInvalidArgument)
	}
	if in.BitcoinAmount <= 0 {
		return fmt.Errorf("%w: bitcoin_amount must be > 0", ErrInvalidArgument)
	}
	if in.BitcoinPriceStart <= 0 {
		return fmt.Errorf("%w: bitcoin_price_start must be > 0", ErrInvalidArgument)
	}
	if in.Years < 1 || in.Years > MaxYears {
		return fmt.Errorf("%w: years must be in [1, %d]", ErrInvalidArgument, MaxYears)
	}
	if in.InterestRate < 0 {
		return fmt.Errorf("%w: interest_rate must be >= 0", ErrInvalidArgument)
	}
	if in.InflationRate < 0 {
		return fmt.Errorf("%w: inflation_rate must be >= 0", ErrInvalidArgument)
	}
	if in.AnnualExpenses < 0 {
		return fmt.Errorf("%w: annual_expenses must be >= 0", ErrInvalidArgument)
	}
	return nil
}

// ValidateTarget checks the optimizer's LTV ceiling in addition to Validate.
func (in SimulationInputs) ValidateTarget() error {
	if err := in.Validate(); err != nil {
		return err
	}
	if math.IsNaN(in.MaxLTV) || in.MaxLTV <= 0 || in.MaxLTV > 100 {
		return fmt.Errorf("%w: max_ltv must be in (0, 100]", ErrInvalidArgument)
	}
	return nil
}

// InitialPortfolioValue is the collateral value at year 0.
func (in SimulationInputs) InitialPortfolioValue() float64 {
	return in.BitcoinAmount * in.BitcoinPriceStart
}

// WithExpenses returns a copy with AnnualExpenses replaced.
func (in SimulationInputs) WithExpenses(expenses float64) SimulationInputs {
	in.AnnualExpenses = expenses
	return in
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

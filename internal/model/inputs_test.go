package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func valid() SimulationInputs {
	return SimulationInputs{
		BitcoinAmount:      1,
		BitcoinPriceStart:  100000,
		Years:              20,
		InterestRate:       8,
		InflationRate:      3,
		InitialGrowthRate:  50,
		TerminalGrowthRate: 10,
		MaxLTV:             40,
		AnnualExpenses:     30000,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationInputs)
	}{
		{"zero amount", func(in *SimulationInputs) { in.BitcoinAmount = 0 }},
		{"negative price", func(in *SimulationInputs) { in.BitcoinPriceStart = -1 }},
		{"zero years", func(in *SimulationInputs) { in.Years = 0 }},
		{"years over cap", func(in *SimulationInputs) { in.Years = MaxYears + 1 }},
		{"negative interest", func(in *SimulationInputs) { in.InterestRate = -0.1 }},
		{"negative inflation", func(in *SimulationInputs) { in.InflationRate = -3 }},
		{"negative expenses", func(in *SimulationInputs) { in.AnnualExpenses = -1 }},
		{"nan growth", func(in *SimulationInputs) { in.InitialGrowthRate = math.NaN() }},
		{"inf price", func(in *SimulationInputs) { in.BitcoinPriceStart = math.Inf(1) }},
	}
	assert.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			err := in.Validate()
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestValidate_IgnoresMaxLTV(t *testing.T) {
	in := valid()
	in.MaxLTV = 0
	assert.NoError(t, in.Validate())
	assert.ErrorIs(t, in.ValidateTarget(), ErrInvalidArgument)
}

func TestValidateTarget(t *testing.T) {
	for _, ltv := range []float64{0.5, 40, 100} {
		in := valid()
		in.MaxLTV = ltv
		assert.NoError(t, in.ValidateTarget(), "max_ltv=%v", ltv)
	}
	for _, ltv := range []float64{0, -1, 100.01, math.NaN()} {
		in := valid()
		in.MaxLTV = ltv
		assert.ErrorIs(t, in.ValidateTarget(), ErrInvalidArgument, "max_ltv=%v", ltv)
	}
}

func TestWithExpenses_Copies(t *testing.T) {
	in := valid()
	out := in.WithExpenses(1)
	assert.Equal(t, 30000.0, in.AnnualExpenses)
	assert.Equal(t, 1.0, out.AnnualExpenses)
	assert.Equal(t, 100000.0, in.InitialPortfolioValue())
}

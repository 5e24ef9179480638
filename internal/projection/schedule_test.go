package projection

import (
	"math"
	"testing"

	"btc-ltv-planner/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGrowthRates_LinearDecayThenTerminal(t *testing.T) {
	sched, err := GenerateGrowthRates(60, 15, 20)
	require.NoError(t, err)
	require.Len(t, sched, 20)

	want := []float64{60, 55, 50, 45, 40, 35, 30, 25, 20, 15}
	for i, r := range want {
		assert.Equal(t, i+1, sched[i].Year)
		assert.InDelta(t, r, sched[i].Rate, 1e-9, "year %d", i+1)
	}
	for _, e := range sched[10:] {
		assert.InDelta(t, 15.0, e.Rate, 1e-9, "year %d", e.Year)
	}
}

func TestGenerateGrowthRates_RoundsToTwoDecimals(t *testing.T) {
	sched, err := GenerateGrowthRates(50, 10, 4)
	require.NoError(t, err)

	// decay = 40/9 = 4.444...
	assert.Equal(t, 50.0, sched[0].Rate)
	assert.Equal(t, 45.56, sched[1].Rate)
	assert.Equal(t, 41.11, sched[2].Rate)
	assert.Equal(t, 36.67, sched[3].Rate)
}

func TestGenerateGrowthRates_ConstantWhenEqual(t *testing.T) {
	sched, err := GenerateGrowthRates(12.5, 12.5, 15)
	require.NoError(t, err)
	require.Len(t, sched, 15)
	for _, e := range sched {
		assert.Equal(t, 12.5, e.Rate)
	}
}

func TestGenerateGrowthRates_UpwardRequestPinsToTerminal(t *testing.T) {
	sched, err := GenerateGrowthRates(5, 20, 12)
	require.NoError(t, err)
	for _, e := range sched {
		assert.Equal(t, 20.0, e.Rate, "year %d", e.Year)
	}
}

func TestGenerateGrowthRates_Bounds(t *testing.T) {
	sched, err := GenerateGrowthRates(60, 15, 0)
	require.NoError(t, err)
	assert.Empty(t, sched)

	one, err := GenerateGrowthRates(60, 15, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.GrowthScheduleEntry{{Year: 1, Rate: 60}}, one)

	_, err = GenerateGrowthRates(60, 15, -1)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = GenerateGrowthRates(math.NaN(), 15, 3)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	longest, err := GenerateGrowthRates(60, 15, model.MaxYears)
	require.NoError(t, err)
	assert.Len(t, longest, model.MaxYears)

	for _, years := range []int{model.MaxYears + 1, 1 << 62} {
		sched, err := GenerateGrowthRates(60, 15, years)
		assert.Nil(t, sched)
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "years=%d", years)
	}
}

func TestRateFor_FallsBackToLastEntry(t *testing.T) {
	sched := []model.GrowthScheduleEntry{{Year: 1, Rate: 30}, {Year: 2, Rate: 20}}
	assert.Equal(t, 30.0, rateFor(sched, 1))
	assert.Equal(t, 20.0, rateFor(sched, 2))
	assert.Equal(t, 20.0, rateFor(sched, 7))

	shuffled := []model.GrowthScheduleEntry{{Year: 2, Rate: 20}, {Year: 1, Rate: 30}}
	assert.Equal(t, 30.0, rateFor(shuffled, 1))
}

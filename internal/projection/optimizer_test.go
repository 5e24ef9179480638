package projection

import (
	"testing"

	"btc-ltv-planner/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxLTV(t *testing.T, in model.SimulationInputs, sched []model.GrowthScheduleEntry) float64 {
	t.Helper()
	res, err := New().Run(in, sched)
	require.NoError(t, err)
	return res.MaxLTV
}

func TestFindOptimalExpenses_SingleYear(t *testing.T) {
	in := model.SimulationInputs{BitcoinAmount: 1, BitcoinPriceStart: 100000, Years: 1, MaxLTV: 40}
	sched := constantSchedule(0, 1)

	e, err := FindOptimalExpenses(in, sched)
	require.NoError(t, err)
	assert.InDelta(t, 40430, e, SearchPrecision)
	assert.Equal(t, e, float64(int64(e)), "result is a whole currency amount")

	assert.LessOrEqual(t, maxLTV(t, in.WithExpenses(e), sched), in.MaxLTV)
	assert.Greater(t, maxLTV(t, in.WithExpenses(e+1000), sched), in.MaxLTV)
}

func TestFindOptimalExpenses_BoundAndTightness(t *testing.T) {
	in := baseInputs()
	sched, err := ScheduleFor(in)
	require.NoError(t, err)

	e, err := FindOptimalExpenses(in, sched)
	require.NoError(t, err)
	assert.InDelta(t, 42931, e, SearchPrecision)

	assert.LessOrEqual(t, maxLTV(t, in.WithExpenses(e), sched), in.MaxLTV)
	assert.Greater(t, maxLTV(t, in.WithExpenses(e+1000), sched), in.MaxLTV)
}

func TestFindOptimalExpenses_FlatPriceDecade(t *testing.T) {
	in := model.SimulationInputs{BitcoinAmount: 1, BitcoinPriceStart: 100000, Years: 10, MaxLTV: 50}
	sched := constantSchedule(0, 10)

	e, err := FindOptimalExpenses(in, sched)
	require.NoError(t, err)
	assert.InDelta(t, 4980, e, SearchPrecision)
	assert.Equal(t, 50.0, maxLTV(t, in.WithExpenses(e), sched))
	assert.Greater(t, maxLTV(t, in.WithExpenses(e+1000), sched), 50.0)
}

func TestFindOptimalExpenses_IgnoresManualExpenses(t *testing.T) {
	in := baseInputs()
	sched, err := ScheduleFor(in)
	require.NoError(t, err)

	a, err := FindOptimalExpenses(in.WithExpenses(0), sched)
	require.NoError(t, err)
	b, err := FindOptimalExpenses(in.WithExpenses(1e6), sched)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFindOptimalExpenses_TinyPortfolioReturnsZero(t *testing.T) {
	in := model.SimulationInputs{BitcoinAmount: 0.001, BitcoinPriceStart: 50000, Years: 5, MaxLTV: 50}
	e, err := FindOptimalExpenses(in, constantSchedule(10, 5))
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)
}

func TestFindOptimalExpenses_InvalidTarget(t *testing.T) {
	sched := constantSchedule(10, 20)
	for _, ltv := range []float64{0, -5, 100.5} {
		in := baseInputs()
		in.MaxLTV = ltv
		_, err := FindOptimalExpenses(in, sched)
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "max_ltv=%v", ltv)
	}

	in := baseInputs()
	in.MaxLTV = 100
	_, err := FindOptimalExpenses(in, sched)
	assert.NoError(t, err)
}

func TestFindOptimalExpenses_FractionalTarget(t *testing.T) {
	for _, target := range []float64{25.5, 33.3, 40.5, 60.25} {
		in := baseInputs()
		in.MaxLTV = target
		sched, err := ScheduleFor(in)
		require.NoError(t, err)

		e, err := FindOptimalExpenses(in, sched)
		require.NoError(t, err)
		require.Greater(t, e, 0.0)

		// Rounding may lift e just past the last feasible level, never further than a unit.
		assert.LessOrEqual(t, maxLTV(t, in.WithExpenses(e-1), sched), target, "target=%v", target)
		assert.Greater(t, maxLTV(t, in.WithExpenses(e+SearchPrecision+1), sched), target, "target=%v", target)
	}
}

func TestEngine_Optimize_ReportsRunAtOptimum(t *testing.T) {
	in := baseInputs()
	sched, err := ScheduleFor(in)
	require.NoError(t, err)

	opt, err := New().Optimize(in, sched)
	require.NoError(t, err)
	assert.Greater(t, opt.Iterations, 0)
	require.NotNil(t, opt.Result)
	assert.Equal(t, opt.Expenses, opt.Result.Ledger[0].AnnualExpensesThisYear)
	assert.LessOrEqual(t, opt.Result.MaxLTV, in.MaxLTV)
}

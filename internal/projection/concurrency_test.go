package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestEngine_SharedAcrossGoroutines(t *testing.T) {
	engine := New()
	in := baseInputs()
	sched, err := ScheduleFor(in)
	require.NoError(t, err)

	wantRun, err := engine.Run(in, sched)
	require.NoError(t, err)
	wantOpt, err := engine.Optimize(in, sched)
	require.NoError(t, err)

	const workers = 8
	runs := make([]*Result, workers)
	opts := make([]*Optimum, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			res, err := engine.Run(in, sched)
			if err != nil {
				return err
			}
			runs[i] = res
			opt, err := engine.Optimize(in, sched)
			if err != nil {
				return err
			}
			opts[i] = opt
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < workers; i++ {
		assert.Equal(t, wantRun.Ledger, runs[i].Ledger)
		assert.Equal(t, wantOpt.Expenses, opts[i].Expenses)
		assert.Equal(t, wantOpt.Iterations, opts[i].Iterations)
	}
}

package main

import (
	"fmt"

	"btc-ltv-planner/internal/analysis"
	"btc-ltv-planner/internal/cli"
	"btc-ltv-planner/internal/projection"

	"github.com/spf13/cobra"
)

var optimizeFlags inputFlags

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the largest first-year expense that keeps LTV under --max-ltv",
	RunE:  runOptimize,
}

func init() {
	bindInputFlags(optimizeCmd.Flags(), &optimizeFlags)
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	in, _, err := resolveInputs(cmd, optimizeFlags)
	if err != nil {
		return err
	}
	schedule, err := projection.ScheduleFor(in)
	if err != nil {
		return err
	}
	opt, err := projection.New().Optimize(in, schedule)
	if err != nil {
		return err
	}
	logger.Debug().Int("iterations", opt.Iterations).Float64("expenses", opt.Expenses).Msg("search complete")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("SUSTAINABLE EXPENSES AT %g%% LTV", in.MaxLTV)))
	fmt.Fprintf(out, "  %s per year, growing %.2f%% annually\n\n", cli.FormatMoney(opt.Expenses), in.InflationRate)
	fmt.Fprint(out, cli.RenderSummary(opt.Expenses, analysis.Summarize(opt.Result.Ledger)))
	return nil
}

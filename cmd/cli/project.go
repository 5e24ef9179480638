package main

import (
	"fmt"

	"btc-ltv-planner/internal/analysis"
	"btc-ltv-planner/internal/cli"
	"btc-ltv-planner/internal/projection"
	"btc-ltv-planner/internal/strategy"

	"github.com/spf13/cobra"
)

var (
	projectFlags   inputFlags
	projectOut     string
	projectSummary bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a year-by-year projection",
	Example: `  planner project --amount 1.5 --price 95000 --expenses 40000
  planner project --config scenarios/base.yaml --strategy optimal --out results/ledger.csv`,
	RunE: runProject,
}

func init() {
	bindInputFlags(projectCmd.Flags(), &projectFlags)
	projectCmd.Flags().StringVarP(&projectOut, "out", "o", "", "Also write the ledger to this CSV path")
	projectCmd.Flags().BoolVar(&projectSummary, "summary-only", false, "Skip the ledger table")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	in, name, err := resolveInputs(cmd, projectFlags)
	if err != nil {
		return err
	}
	s, err := strategy.ByName(name)
	if err != nil {
		return err
	}
	plan, err := strategy.Apply(projection.New(), s, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("BTC LOAN PROJECTION (%s, %d years)", plan.Strategy, in.Years)))
	if !projectSummary {
		fmt.Fprintln(out, cli.RenderLedger(plan.Result.Ledger, in.MaxLTV))
	}
	fmt.Fprint(out, cli.RenderSummary(plan.Expenses, analysis.Summarize(plan.Result.Ledger)))

	if projectOut != "" {
		if err := projection.WriteLedgerCSVFile(projectOut, plan.Result.Ledger); err != nil {
			return err
		}
		statusf(out, "\nWrote %d rows to %s\n", len(plan.Result.Ledger), projectOut)
	}
	return nil
}

package main

import (
	"fmt"

	"btc-ltv-planner/internal/cli"
	"btc-ltv-planner/internal/projection"

	"github.com/spf13/cobra"
)

var (
	scheduleInitial  float64
	scheduleTerminal float64
	scheduleYears    int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the growth-rate schedule",
	RunE: func(cmd *cobra.Command, _ []string) error {
		schedule, err := projection.GenerateGrowthRates(scheduleInitial, scheduleTerminal, scheduleYears)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSchedule(schedule))
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Float64Var(&scheduleInitial, "initial-growth", 50, "Growth in year 1, percent")
	scheduleCmd.Flags().Float64Var(&scheduleTerminal, "terminal-growth", 10, "Growth from year 10 on, percent")
	scheduleCmd.Flags().IntVar(&scheduleYears, "years", 20, "Number of years")
	rootCmd.AddCommand(scheduleCmd)
}

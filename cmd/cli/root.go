package main

import (
	"fmt"
	"io"
	"os"

	"btc-ltv-planner/internal/config"
	"btc-ltv-planner/internal/logging"
	"btc-ltv-planner/internal/model"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagConfig   string
	flagLogLevel string
	flagQuiet    bool

	logger zerolog.Logger
)

// inputFlags are the scenario assumptions settable from the command line. They
// override values loaded from --config when given explicitly.
type inputFlags struct {
	amount         float64
	price          float64
	years          int
	interest       float64
	inflation      float64
	initialGrowth  float64
	terminalGrowth float64
	maxLTV         float64
	expenses       float64
	strategy       string
}

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Bitcoin-collateralised loan projection",
	Long:  "Project portfolio value, debt and LTV for living off loans against BTC, and solve for sustainable spending.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger = logging.Setup(flagLogLevel, true)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Scenario file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress status lines such as the CSV confirmation")
}

func bindInputFlags(fs *pflag.FlagSet, f *inputFlags) {
	fs.Float64Var(&f.amount, "amount", 1, "BTC held")
	fs.Float64Var(&f.price, "price", 100000, "BTC price at the start")
	fs.IntVar(&f.years, "years", 20, "Projection horizon in years")
	fs.Float64Var(&f.interest, "interest", 8, "Loan interest rate, percent per year")
	fs.Float64Var(&f.inflation, "inflation", 3, "Expense inflation, percent per year")
	fs.Float64Var(&f.initialGrowth, "initial-growth", 50, "BTC growth in year 1, percent")
	fs.Float64Var(&f.terminalGrowth, "terminal-growth", 10, "BTC growth from year 10 on, percent")
	fs.Float64Var(&f.maxLTV, "max-ltv", 40, "LTV ceiling for the optimal strategy, percent")
	fs.Float64Var(&f.expenses, "expenses", 50000, "First-year expenses for the manual strategy")
	fs.StringVar(&f.strategy, "strategy", "manual", "Expense strategy: manual or optimal")
}

// resolveInputs merges --config (if any) with explicitly set flags.
func resolveInputs(cmd *cobra.Command, f inputFlags) (model.SimulationInputs, string, error) {
	fromFlags := model.SimulationInputs{
		BitcoinAmount:      f.amount,
		BitcoinPriceStart:  f.price,
		Years:              f.years,
		InterestRate:       f.interest,
		InflationRate:      f.inflation,
		InitialGrowthRate:  f.initialGrowth,
		TerminalGrowthRate: f.terminalGrowth,
		MaxLTV:             f.maxLTV,
		AnnualExpenses:     f.expenses,
	}
	if flagConfig == "" {
		return fromFlags, f.strategy, nil
	}

	cfg, err := config.LoadUnchecked(flagConfig)
	if err != nil {
		return model.SimulationInputs{}, "", fmt.Errorf("load config: %w", err)
	}
	in := cfg.Assumptions.ToModelInputs()
	strategyName := cfg.Strategy.Name

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("amount", func() { in.BitcoinAmount = f.amount })
	set("price", func() { in.BitcoinPriceStart = f.price })
	set("years", func() { in.Years = f.years })
	set("interest", func() { in.InterestRate = f.interest })
	set("inflation", func() { in.InflationRate = f.inflation })
	set("initial-growth", func() { in.InitialGrowthRate = f.initialGrowth })
	set("terminal-growth", func() { in.TerminalGrowthRate = f.terminalGrowth })
	set("max-ltv", func() { in.MaxLTV = f.maxLTV })
	set("expenses", func() { in.AnnualExpenses = f.expenses })
	set("strategy", func() { strategyName = f.strategy })

	logger.Debug().Str("config", flagConfig).Str("strategy", strategyName).Msg("loaded scenario")
	return in, strategyName, nil
}

// statusf prints progress and confirmation lines that --quiet suppresses.
func statusf(w io.Writer, format string, args ...interface{}) {
	if !flagQuiet {
		fmt.Fprintf(w, format, args...)
	}
}

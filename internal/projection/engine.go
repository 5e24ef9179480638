package projection

import (
	"fmt"
	"math"

	"btc-ltv-planner/internal/model"
)

// Engine runs the year-by-year loan projection. It holds no state between runs
// and is safe for concurrent use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run projects inputs.Years years against the given growth schedule.
//
// Each year: interest accrues on the borrowed principal carried in from last year,
// then this year's expenses are borrowed, then the price moves by the year's growth rate.
// PortfolioValue uses the end-of-year price; LTVRatio divides debt by the start-of-year
// collateral value. Accumulators keep full precision; only emitted figures are rounded.
func (e *Engine) Run(in model.SimulationInputs, schedule []model.GrowthScheduleEntry) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		return nil, fmt.Errorf("%w: growth schedule is empty", model.ErrInvalidArgument)
	}

	ledger := make([]model.YearSnapshot, 0, in.Years)
	var (
		borrowed float64
		interest float64
		expenses = in.AnnualExpenses
		price    = in.BitcoinPriceStart
		maxLTV   = math.Inf(-1)
		maxYear  int
	)

	for year := 1; year <= in.Years; year++ {
		interest += borrowed * in.InterestRate / 100
		borrowed += expenses

		rate := rateFor(schedule, year)
		priceEnd := price * (1 + rate/100)
		portfolio := priceEnd * in.BitcoinAmount

		debt := borrowed + interest
		net := portfolio - debt

		collateral := price * in.BitcoinAmount
		if collateral <= 0 || math.IsNaN(collateral) {
			return nil, fmt.Errorf("%w: year %d collateral value is %v", model.ErrArithmeticDegenerate, year, collateral)
		}
		if priceEnd < 0 {
			return nil, fmt.Errorf("%w: year %d end price is negative (growth rate %v%%)", model.ErrArithmeticDegenerate, year, rate)
		}
		ltv := debt / collateral * 100

		if !finite(priceEnd, portfolio, borrowed, interest, debt, net, ltv, expenses) {
			return nil, fmt.Errorf("%w: year %d produced a non-finite value", model.ErrArithmeticDegenerate, year)
		}

		snap := model.YearSnapshot{
			Year:                   year,
			GrowthRate:             rate,
			BitcoinPriceStart:      roundMoney(price),
			BitcoinPriceEnd:        roundMoney(priceEnd),
			PortfolioValue:         roundMoney(portfolio),
			TotalBorrowed:          roundMoney(borrowed),
			TotalInterest:          roundMoney(interest),
			TotalDebt:              roundMoney(debt),
			NetWorth:               roundMoney(net),
			LTVRatio:               roundPercent(ltv),
			AnnualExpensesThisYear: roundMoney(expenses),
		}
		ledger = append(ledger, snap)
		if snap.LTVRatio > maxLTV {
			maxLTV = snap.LTVRatio
			maxYear = year
		}

		price = priceEnd
		expenses *= 1 + in.InflationRate/100
	}

	return &Result{
		Ledger:        ledger,
		MaxLTV:        maxLTV,
		MaxLTVYear:    maxYear,
		FinalNetWorth: ledger[len(ledger)-1].NetWorth,
	}, nil
}

// Project generates the inputs' growth schedule and runs it.
func (e *Engine) Project(in model.SimulationInputs) (*Result, error) {
	schedule, err := ScheduleFor(in)
	if err != nil {
		return nil, err
	}
	return e.Run(in, schedule)
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

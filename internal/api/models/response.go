package models

import (
	"time"

	"btc-ltv-planner/internal/analysis"
	"btc-ltv-planner/internal/model"
)

// ProjectionResponse represents the response from a projection run
type ProjectionResponse struct {
	ID             string                      `json:"id"`
	Status         string                      `json:"status"`
	Strategy       string                      `json:"strategy"`
	AnnualExpenses float64                     `json:"annual_expenses"`
	Inputs         model.SimulationInputs      `json:"inputs"`
	Summary        Summary                     `json:"summary"`
	Schedule       []model.GrowthScheduleEntry `json:"schedule"`
	Ledger         []model.YearSnapshot        `json:"ledger,omitempty"`
}

// OptimalResponse is returned by POST /api/v1/projection/optimal.
type OptimalResponse struct {
	ID              string  `json:"id"`
	OptimalExpenses float64 `json:"optimal_expenses"`
	MaxLTV          float64 `json:"max_ltv"`
	Iterations      int     `json:"iterations"`
	Summary         Summary `json:"summary"`
}

// Summary contains aggregated projection results
type Summary struct {
	Years               int     `json:"years"`
	FinalPrice          float64 `json:"final_price"`
	FinalPortfolioValue float64 `json:"final_portfolio_value"`
	FinalDebt           float64 `json:"final_debt"`
	FinalNetWorth       float64 `json:"final_net_worth"`
	TotalBorrowed       float64 `json:"total_borrowed"`
	TotalInterest       float64 `json:"total_interest"`
	PeakLTV             float64 `json:"peak_ltv"`
	PeakLTVYear         int     `json:"peak_ltv_year"`
	FinalLTV            float64 `json:"final_ltv"`
	PriceCAGR           float64 `json:"price_cagr"`
	InsolventYear       int     `json:"insolvent_year,omitempty"`
}

func NewSummary(s analysis.Summary) Summary {
	return Summary{
		Years:               s.Years,
		FinalPrice:          s.FinalPrice,
		FinalPortfolioValue: s.FinalPortfolioValue,
		FinalDebt:           s.FinalDebt,
		FinalNetWorth:       s.FinalNetWorth,
		TotalBorrowed:       s.TotalBorrowed,
		TotalInterest:       s.TotalInterest,
		PeakLTV:             s.PeakLTV,
		PeakLTVYear:         s.PeakLTVYear,
		FinalLTV:            s.FinalLTV,
		PriceCAGR:           s.PriceCAGR,
		InsolventYear:       s.InsolventYear,
	}
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Failed variations carry Error and Rank 0.
type ComparisonResult struct {
	Rank           int          `json:"rank,omitempty"`
	Name           string       `json:"name"`
	AnnualExpenses float64      `json:"annual_expenses"`
	Summary        *Summary     `json:"summary,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
}

// ScheduleResponse wraps a growth schedule
type ScheduleResponse struct {
	Schedule []model.GrowthScheduleEntry `json:"schedule"`
}

// PriceResponse is a live spot quote
type PriceResponse struct {
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PresetInfo represents information about a scenario preset
type PresetInfo struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	File     string                 `json:"file"`
	Strategy string                 `json:"strategy,omitempty"`
	Inputs   model.SimulationInputs `json:"inputs"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "string"
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

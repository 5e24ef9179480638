package models

import "btc-ltv-planner/internal/model"

// ProjectionRequest is the body for POST /api/v1/projection, /optimal and /ledger.csv.
type ProjectionRequest struct {
	// Preset optionally names a scenario file in the presets dir; non-zero Inputs override it.
	Preset   string                 `json:"preset,omitempty"`
	Inputs   model.SimulationInputs `json:"inputs"`
	Strategy string                 `json:"strategy,omitempty"` // "manual" (default) or "optimal"
	Options  ProjectionOptions      `json:"options,omitempty"`
}

// ProjectionOptions contains optional response shaping.
type ProjectionOptions struct {
	IncludeLedger *bool `json:"include_ledger,omitempty"` // default: true
}

// WantLedger reports whether the ledger should be returned.
func (o ProjectionOptions) WantLedger() bool {
	return o.IncludeLedger == nil || *o.IncludeLedger
}

// CompareRequest represents a request to compare several assumption sets
type CompareRequest struct {
	Base       model.SimulationInputs `json:"base"`
	Strategy   string                 `json:"strategy,omitempty"`
	Variations []Variation            `json:"variations" binding:"required,min=1,dive"`
}

// Variation overrides the non-zero fields of the base inputs.
type Variation struct {
	Name   string                 `json:"name" binding:"required"`
	Inputs model.SimulationInputs `json:"inputs"`
}

// ScheduleQuery is the query string for GET /api/v1/schedule.
type ScheduleQuery struct {
	Initial  float64 `form:"initial"`
	Terminal float64 `form:"terminal"`
	Years    int     `form:"years" binding:"min=0,max=1000"` // model.MaxYears
}

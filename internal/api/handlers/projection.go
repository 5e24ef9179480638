package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"btc-ltv-planner/internal/analysis"
	"btc-ltv-planner/internal/api/models"
	"btc-ltv-planner/internal/config"
	"btc-ltv-planner/internal/metrics"
	"btc-ltv-planner/internal/model"
	"btc-ltv-planner/internal/projection"
	"btc-ltv-planner/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var presetExts = []string{".yaml", ".yml", ".toml"}

// ProjectionHandler serves projection, optimisation and comparison requests.
type ProjectionHandler struct {
	engine     *projection.Engine
	presetsDir string
	metrics    *metrics.Registry
	log        zerolog.Logger
}

// NewProjectionHandler creates a new projection handler. reg may be nil.
func NewProjectionHandler(presetsDir string, reg *metrics.Registry, logger zerolog.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		engine:     projection.New(),
		presetsDir: presetsDir,
		metrics:    reg,
		log:        logger.With().Str("component", "projection").Logger(),
	}
}

// RunProjection handles POST /api/v1/projection
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in, name, err := h.resolve(req)
	if err != nil {
		writeError(c, err)
		return
	}
	plan, err := h.plan(name, in)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ProjectionResponse{
		ID:             uuid.NewString(),
		Status:         "completed",
		Strategy:       plan.Strategy,
		AnnualExpenses: plan.Expenses,
		Inputs:         in.WithExpenses(plan.Expenses),
		Summary:        models.NewSummary(analysis.Summarize(plan.Result.Ledger)),
		Schedule:       plan.Schedule,
	}
	if req.Options.WantLedger() {
		resp.Ledger = plan.Result.Ledger
	}
	c.JSON(http.StatusOK, resp)
}

// FindOptimal handles POST /api/v1/projection/optimal
func (h *ProjectionHandler) FindOptimal(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in, _, err := h.resolve(req)
	if err != nil {
		writeError(c, err)
		return
	}
	schedule, err := projection.ScheduleFor(in)
	if err != nil {
		writeError(c, err)
		return
	}
	opt, err := h.engine.Optimize(in, schedule)
	h.observe(strategy.NameOptimal, err)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.OptimizerIterations.Observe(float64(opt.Iterations))
	}

	c.JSON(http.StatusOK, models.OptimalResponse{
		ID:              uuid.NewString(),
		OptimalExpenses: opt.Expenses,
		MaxLTV:          in.MaxLTV,
		Iterations:      opt.Iterations,
		Summary:         models.NewSummary(analysis.Summarize(opt.Result.Ledger)),
	})
}

type variationOutcome struct {
	name string
	plan *strategy.Plan
	err  error
}

// CompareProjections handles POST /api/v1/projection/compare. Variations run
// concurrently; the strategy defaults to optimal so the ranking compares
// sustainable spending.
func (h *ProjectionHandler) CompareProjections(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	name := req.Strategy
	if name == "" {
		name = strategy.NameOptimal
	}
	if _, err := strategy.ByName(name); err != nil {
		writeError(c, err)
		return
	}

	base := config.FromModelInputs(req.Base)
	outcomes := make([]variationOutcome, len(req.Variations))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range req.Variations {
		i, v := i, v
		g.Go(func() error {
			in := config.MergeAssumptions(base, config.FromModelInputs(v.Inputs)).ToModelInputs()
			plan, err := h.plan(name, in)
			outcomes[i] = variationOutcome{name: v.Name, plan: plan, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var scenarios []analysis.Scenario
	var failed []models.ComparisonResult
	for _, o := range outcomes {
		if o.err != nil {
			_, detail := errorDetail(o.err)
			failed = append(failed, models.ComparisonResult{Name: o.name, Error: &detail})
			continue
		}
		scenarios = append(scenarios, analysis.Scenario{
			Name:     o.name,
			Expenses: o.plan.Expenses,
			Summary:  analysis.Summarize(o.plan.Result.Ledger),
		})
	}

	comparison := make([]models.ComparisonResult, 0, len(outcomes))
	for _, r := range analysis.RankScenarios(scenarios) {
		summary := models.NewSummary(r.Summary)
		comparison = append(comparison, models.ComparisonResult{
			Rank:           r.Rank,
			Name:           r.Name,
			AnnualExpenses: r.Expenses,
			Summary:        &summary,
		})
	}
	comparison = append(comparison, failed...)

	h.log.Debug().Int("variations", len(outcomes)).Int("failed", len(failed)).Msg("comparison complete")
	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// ExportLedgerCSV handles POST /api/v1/projection/ledger.csv
func (h *ProjectionHandler) ExportLedgerCSV(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	in, name, err := h.resolve(req)
	if err != nil {
		writeError(c, err)
		return
	}
	plan, err := h.plan(name, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="projection.csv"`)
	c.Status(http.StatusOK)
	if err := projection.WriteLedgerCSV(c.Writer, plan.Result.Ledger); err != nil {
		h.log.Error().Err(err).Msg("write ledger csv")
	}
}

// GetSchedule handles GET /api/v1/schedule
func (h *ProjectionHandler) GetSchedule(c *gin.Context) {
	var q models.ScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	schedule, err := projection.GenerateGrowthRates(q.Initial, q.Terminal, q.Years)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ScheduleResponse{Schedule: schedule})
}

func (h *ProjectionHandler) plan(name string, in model.SimulationInputs) (*strategy.Plan, error) {
	s, err := strategy.ByName(name)
	if err != nil {
		return nil, err
	}
	plan, err := strategy.Apply(h.engine, s, in)
	h.observe(s.Name(), err)
	return plan, err
}

func (h *ProjectionHandler) observe(name string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveProjection(name, err)
	}
}

// resolve overlays the request inputs on the named preset, if any. The request's
// strategy wins over the preset's.
func (h *ProjectionHandler) resolve(req models.ProjectionRequest) (model.SimulationInputs, string, error) {
	if req.Preset == "" {
		return req.Inputs, req.Strategy, nil
	}
	path, err := h.presetPath(req.Preset)
	if err != nil {
		return model.SimulationInputs{}, "", err
	}
	cfg, err := config.LoadUnchecked(path)
	if err != nil {
		return model.SimulationInputs{}, "", fmt.Errorf("%w: preset %s: %v", model.ErrInvalidArgument, req.Preset, err)
	}
	merged := config.MergeAssumptions(cfg.Assumptions, config.FromModelInputs(req.Inputs))
	name := req.Strategy
	if name == "" {
		name = cfg.Strategy.Name
	}
	return merged.ToModelInputs(), name, nil
}

func (h *ProjectionHandler) presetPath(id string) (string, error) {
	if id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: invalid preset id %q", model.ErrInvalidArgument, id)
	}
	candidates := []string{filepath.Join(h.presetsDir, id)}
	if filepath.Ext(id) == "" {
		candidates = candidates[:0]
		for _, ext := range presetExts {
			candidates = append(candidates, filepath.Join(h.presetsDir, id+ext))
		}
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", errPresetNotFound, id)
}

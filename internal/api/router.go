// Package api wires the HTTP routes of the planner service.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"btc-ltv-planner/internal/api/handlers"
	"btc-ltv-planner/internal/api/middleware"
	"btc-ltv-planner/internal/api/models"
	"btc-ltv-planner/internal/metrics"
	"btc-ltv-planner/internal/pricefeed"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the router needs.
type Deps struct {
	PresetsDir     string
	StaticDir      string
	AllowedOrigins []string
	// PriceClient may be nil, in which case /api/v1/price is not registered.
	PriceClient *pricefeed.Client
	Metrics     *metrics.Registry
	Logger      zerolog.Logger
}

// NewRouter builds the gin engine with middleware, API routes and optional SPA serving.
func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.ErrorHandler(d.Logger))

	projectionHandler := handlers.NewProjectionHandler(d.PresetsDir, d.Metrics, d.Logger)
	presetHandler := handlers.NewPresetHandler(d.PresetsDir, d.Logger)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/projection", projectionHandler.RunProjection)
		v1.POST("/projection/optimal", projectionHandler.FindOptimal)
		v1.POST("/projection/compare", projectionHandler.CompareProjections)
		v1.POST("/projection/ledger.csv", projectionHandler.ExportLedgerCSV)
		v1.GET("/schedule", projectionHandler.GetSchedule)

		v1.GET("/strategies", strategyHandler.ListStrategies)
		v1.GET("/presets", presetHandler.ListPresets)

		if d.PriceClient != nil {
			priceHandler := handlers.NewPriceHandler(d.PriceClient, d.Metrics, d.Logger)
			v1.GET("/price", priceHandler.GetSpot)
		}
	}

	serveStatic(router, d.StaticDir, d.Logger)
	return router
}

// serveStatic serves a built SPA from dir, falling back to index.html for non-API paths.
func serveStatic(router *gin.Engine, dir string, logger zerolog.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	}

	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(dir); err != nil {
		logger.Info().Str("dir", dir).Msg("static directory not found, skipping static file serving")
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info().Str("dir", dir).Msg("serving static files")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btc-ltv-planner/internal/api"
	"btc-ltv-planner/internal/config"
	"btc-ltv-planner/internal/logging"
	"btc-ltv-planner/internal/metrics"
	"btc-ltv-planner/internal/pricefeed"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

func main() {
	cfgPath := flag.String("config", "", "Optional server settings file (yaml/toml/json)")
	flag.Parse()

	cfg, err := config.LoadServer(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogPretty)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, closeCache := newQuoteCache(ctx, cfg, logger)
	defer closeCache()

	router := api.NewRouter(api.Deps{
		PresetsDir:     cfg.PresetsDir,
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.AllowedOrigins,
		PriceClient: pricefeed.NewClient(pricefeed.Options{
			BaseURL:  cfg.PriceFeedURL,
			Timeout:  cfg.PriceTimeout,
			Cooldown: cfg.PriceCooldown,
			Retries:  cfg.PriceRetries,
			Cache:    cache,
			Logger:   logger,
		}),
		Metrics: metrics.New(),
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newQuoteCache picks redis when configured and reachable, else an in-memory cache
// with a background sweeper.
func newQuoteCache(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger) (pricefeed.QuoteCache, func()) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis quote cache")
			return pricefeed.NewRedisCache(rdb, cfg.PriceCacheTTL), func() { _ = rdb.Close() }
		}
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, falling back to memory cache")
		_ = rdb.Close()
	}

	mem := pricefeed.NewMemoryCache(cfg.PriceCacheTTL)
	go mem.RunJanitor(ctx, time.Minute)
	return mem, func() {}
}

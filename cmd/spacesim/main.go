package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tcgarvin/spacesim2/internal/config"
	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/handler"
	"github.com/tcgarvin/spacesim2/internal/sim"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running monitor")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			os.Exit(1)
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Commodity definitions.
	registry := domain.NewRegistry()
	if err := registry.LoadFile(cfg.CommoditiesFile); err != nil {
		logger.Error("failed to load commodities", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Single seeded randomness source: the same seed reproduces a run.
	rng := rand.New(rand.NewSource(cfg.Seed))

	simulation := sim.New(registry, rng, logger)
	if err := simulation.SetupSimple(cfg.Planets, cfg.Colonists, cfg.MarketMakers); err != nil {
		logger.Error("failed to set up simulation", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("simulation starting",
		slog.Int("turns", cfg.Turns),
		slog.Int64("seed", cfg.Seed),
		slog.Int("planets", cfg.Planets),
		slog.Int("colonists", cfg.Colonists),
		slog.Int("market_makers", cfg.MarketMakers),
	)

	// Optional read-only monitor API.
	var srv *http.Server
	if cfg.Port > 0 {
		router := handler.NewRouter(simulation, logger)
		srv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router,
		}
		go func() {
			logger.Info("monitor starting", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("monitor error", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}()
	}

	// Run the turn loop in a goroutine so signals stay responsive.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < cfg.Turns; i++ {
			simulation.RunTurn()
			if cfg.TurnDelay > 0 {
				time.Sleep(cfg.TurnDelay)
			}
		}
	}()

	// Wait for completion or SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-done:
		logger.Info("simulation complete", slog.Int64("turn", simulation.CurrentTurn()))
		logFinalState(logger, simulation)
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("monitor shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("stopped")
}

// logFinalState emits one summary line per planet and commodity.
func logFinalState(logger *slog.Logger, s *sim.Simulation) {
	for _, p := range s.Planets() {
		for _, c := range s.Registry().All() {
			logger.Info("market summary",
				slog.String("planet", p.Name),
				slog.String("commodity", string(c.ID)),
				slog.Int64("spot_price", p.Market.AvgPrice(c.ID)),
				slog.Int64("avg_volume_30", p.Market.ThirtyDayAverageVolume(c.ID)),
				slog.Bool("has_history", p.Market.HasHistory(c.ID)),
				slog.Int("transactions", len(p.Market.Transactions(c.ID))),
			)
		}
	}
}

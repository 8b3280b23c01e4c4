package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kalender/config"
	_ "kalender/docs"
	httpdelivery "kalender/internal/delivery/http"
	"kalender/internal/delivery/http/controllers"
	"kalender/internal/delivery/http/middleware"
	"kalender/internal/services"
)

// @title Kalender API
// @version 1.0
// @description Community calendar events and participation headcounts.
// @BasePath /api
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Stores are closed only after the server
// has drained.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, err := openStores(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if cerr := repos.close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	eventService := services.NewEventService(repos.events, repos.participations, logger, cfg.RequestTimeout)
	participationService := services.NewParticipationService(repos.events, repos.participations, cfg.AllowResubmission, logger, cfg.RequestTimeout)
	statisticsService := services.NewStatisticsService(repos.events, repos.participations, cfg.RequestTimeout)

	participateLimiter := middleware.NewRateLimiter(cfg.ParticipateRatePerMinute, cfg.ParticipateRateBurst).
		TrustProxies(cfg.TrustedProxies)
	go pruneLimiter(ctx, participateLimiter)

	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewParticipationController(logger, participationService),
		controllers.NewStatisticsController(logger, statisticsService),
		participateLimiter,
	)
	handler := middleware.LoggingMiddleware(logger,
		middleware.Recover(logger,
			middleware.CORS(cfg.CORSAllowedOrigins,
				middleware.SecurityHeaders(router))))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	logger.Info("kalender API listening", "addr", server.Addr, "store", cfg.StoreDriver)
	return serve(ctx, server, ln, logger, 10*time.Second)
}

func pruneLimiter(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(10 * time.Minute)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SMOLagents/raydium-cp-swap/internal/config"
	"github.com/SMOLagents/raydium-cp-swap/internal/eth"
	"github.com/SMOLagents/raydium-cp-swap/internal/handler"
	"github.com/SMOLagents/raydium-cp-swap/internal/logging"
	"github.com/SMOLagents/raydium-cp-swap/internal/middleware"
	"github.com/SMOLagents/raydium-cp-swap/internal/reserves"
	"github.com/SMOLagents/raydium-cp-swap/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	fallbackRates, err := service.ParseFallbackRates(cfg.FallbackRates)
	if err != nil {
		return err
	}
	var estimator *service.Estimator
	if len(fallbackRates) > 0 {
		estimator = service.NewEstimator(fallbackRates)
		logger.Info("fallback estimates enabled", "pairs", len(fallbackRates))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ethereumClient, err := eth.Dial(ctx, cfg.RPCEndpoint, cfg.RPCDialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}
	defer ethereumClient.Close()

	reader, err := reserves.NewPairReader(logger, ethereumClient, cfg.TokenCacheSize)
	if err != nil {
		return err
	}

	quoteService := service.NewQuoteService(logger, reader, cfg.PoolFeeBps, estimator)
	quoteHandler := handler.NewQuoteHandler(logger, quoteService, cfg.DefaultSlippageBps)

	app := fiber.New()
	app.Use(middleware.Instrument())
	app.Get("/quote", quoteHandler.Quote())
	app.Get("/execution-params", quoteHandler.ExecutionParams())
	app.Get("/healthz", handler.Health())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()
	logger.Info("quoter started", "addr", cfg.Addr, "fee_bps", cfg.PoolFeeBps, "default_slippage_bps", cfg.DefaultSlippageBps)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "err", err)
	}
	return nil
}

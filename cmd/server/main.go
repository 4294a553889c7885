package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/quotelab/stock-quote-backend/internal/api"
	"github.com/quotelab/stock-quote-backend/internal/config"
	"github.com/quotelab/stock-quote-backend/internal/httpx"
	"github.com/quotelab/stock-quote-backend/internal/logging"
	"github.com/quotelab/stock-quote-backend/internal/quote"
	"github.com/quotelab/stock-quote-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build logger
	logger, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	// Create the Yahoo Finance client and quote service
	financeClient := yahoo.NewFinanceClient(
		logger.Named("yahoo"),
		yahoo.WithHTTPClient(httpx.New(cfg.HTTP.Timeout)),
	)
	quoteService := quote.NewService(financeClient, logger.Named("quote"))

	// Create router
	router := api.NewRouter(quoteService, cfg, logger.Named("http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/quotelab/stock-quote-backend/internal/api/handlers"
	custommiddleware "github.com/quotelab/stock-quote-backend/internal/api/middleware"
	"github.com/quotelab/stock-quote-backend/internal/config"
	"github.com/quotelab/stock-quote-backend/internal/quote"
)

// NewRouter creates and configures the HTTP router
func NewRouter(quoteService *quote.Service, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.RequestID)
	r.Use(custommiddleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler()
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/stocks", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(quoteService)
			r.Get("/", stockHandler.GetQuote)
			r.Post("/", stockHandler.GetQuote)
			r.Get("/batch", stockHandler.GetQuotes)
		})
	})

	return r
}

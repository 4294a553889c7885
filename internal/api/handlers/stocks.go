package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/quotelab/stock-quote-backend/internal/api/response"
	"github.com/quotelab/stock-quote-backend/internal/apperrors"
	"github.com/quotelab/stock-quote-backend/internal/quote"
)

const (
	// maxBatchSymbols bounds a single batch lookup.
	maxBatchSymbols = 20
	// batchConcurrency bounds concurrent upstream fetches within one batch.
	batchConcurrency = 4
)

// StockHandler handles stock quote HTTP requests
type StockHandler struct {
	quoteService *quote.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(quoteService *quote.Service) *StockHandler {
	return &StockHandler{
		quoteService: quoteService,
	}
}

// fetchErrorResponse is the error record returned when a quote cannot be
// fetched. Symbol is omitted when it is unknown.
type fetchErrorResponse struct {
	Error   string `json:"error"`
	Symbol  string `json:"symbol,omitempty"`
	Message string `json:"message"`
}

// GetQuote handles GET (and POST) requests for a single normalized quote.
//
// Endpoint: GET /api/stocks?symbol=AAPL
// Response: 200 OK with the flat quote record
// Errors: 400 when the symbol parameter is missing,
//
//	500 when the price resource is unreachable or empty
func (h *StockHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")

	q, err := h.quoteService.Normalize(r.Context(), symbol)
	if err != nil {
		h.respondQuoteError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, q)
}

// GetQuotes handles batch lookups for several symbols at once. Symbols are
// fetched concurrently with a bounded worker count; a failing symbol becomes
// an inline error record and never fails the rest of the batch.
//
// Endpoint: GET /api/stocks/batch?symbols=AAPL,MSFT,GOOG
// Response: 200 OK with {"quotes": [...], "errors": [...]}
// Errors: 400 when the symbols parameter is missing or the batch is too large
func (h *StockHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	symbols := splitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		response.RespondError(w, http.StatusBadRequest, "Symbols parameter is required", nil)
		return
	}
	if len(symbols) > maxBatchSymbols {
		response.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many symbols: maximum is %d", maxBatchSymbols), nil)
		return
	}

	quotes := make([]*quote.Quote, len(symbols))
	failures := make([]*fetchErrorResponse, len(symbols))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			q, err := h.quoteService.Normalize(r.Context(), symbol)
			if err != nil {
				record := quoteErrorRecord(err)
				failures[i] = &record
				return nil
			}
			quotes[i] = &q
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	result := struct {
		Quotes []quote.Quote        `json:"quotes"`
		Errors []fetchErrorResponse `json:"errors"`
	}{
		Quotes: []quote.Quote{},
		Errors: []fetchErrorResponse{},
	}
	for i := range symbols {
		if quotes[i] != nil {
			result.Quotes = append(result.Quotes, *quotes[i])
		}
		if failures[i] != nil {
			result.Errors = append(result.Errors, *failures[i])
		}
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// respondQuoteError maps normalizer errors onto the HTTP contract.
func (h *StockHandler) respondQuoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrSymbolRequired) {
		response.RespondError(w, http.StatusBadRequest, "Symbol parameter is required", nil)
		return
	}

	response.RespondJSON(w, http.StatusInternalServerError, quoteErrorRecord(err))
}

// quoteErrorRecord builds the fixed-category error record for a failed fetch.
func quoteErrorRecord(err error) fetchErrorResponse {
	record := fetchErrorResponse{
		Error:   "Failed to fetch stock data",
		Message: err.Error(),
	}

	var upstream *apperrors.UpstreamError
	if errors.As(err, &upstream) {
		record.Symbol = upstream.Symbol
		record.Message = upstream.Unwrap().Error()
	}

	return record
}

// splitSymbols splits a comma-separated symbol list, dropping empty entries.
func splitSymbols(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

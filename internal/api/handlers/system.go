package handlers

import (
	"net/http"

	"github.com/quotelab/stock-quote-backend/internal/api/response"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness. The service holds no state and no connections of
// its own, so a responding process is a healthy one; the upstream provider is
// deliberately not probed here to avoid burning quota on health checks.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

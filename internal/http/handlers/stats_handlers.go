package handlers

import (
	"net/http"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
)

// AdminStats handles GET /admin-stats (admin only). Counts are estimates;
// this is a dashboard figure, not a financial statement.
func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.AdminStats(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to compute admin stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// OrderStats handles GET /order-stats
func (h *Handlers) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.OrderStats(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to compute order stats")
		return
	}
	if stats == nil {
		stats = []domain.CategoryStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

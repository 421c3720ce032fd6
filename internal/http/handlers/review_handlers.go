package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
)

// ListReviews handles GET /reviews
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to retrieve reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// AddReview handles POST /reviews
func (h *Handlers) AddReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if review.Name == "" || review.Details == "" {
		response.BadRequest(w, "name and details are required")
		return
	}

	created, err := h.reviews.Insert(r.Context(), &review)
	if err != nil {
		response.InternalError(w, "Failed to add review")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

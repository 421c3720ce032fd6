package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
)

// AddCartEntry handles POST /carts
func (h *Handlers) AddCartEntry(w http.ResponseWriter, r *http.Request) {
	var entry domain.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if err := entry.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	created, err := h.carts.Insert(r.Context(), &entry)
	if err != nil {
		response.InternalError(w, "Failed to add cart entry")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListCart handles GET /carts?email=
func (h *Handlers) ListCart(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	entries, err := h.carts.ListByEmail(r.Context(), email)
	if err != nil {
		response.InternalError(w, "Failed to retrieve cart")
		return
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteCartEntry handles DELETE /carts/{id}
func (h *Handlers) DeleteCartEntry(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.carts.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid cart entry ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to delete cart entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

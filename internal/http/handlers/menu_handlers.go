package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
)

// ListMenu handles GET /menu
func (h *Handlers) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to retrieve menu")
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetMenuItem handles GET /menu/{id}
func (h *Handlers) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.menu.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid menu item ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to retrieve menu item")
		return
	}
	if item == nil {
		response.NotFound(w, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateMenuItem handles POST /menu (admin only)
func (h *Handlers) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.menu.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create menu item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateMenuItem handles PATCH /menu/{id}
func (h *Handlers) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if err := patch.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.menu.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid menu item ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to update menu item")
		return
	}
	if item == nil {
		response.NotFound(w, "Menu item not found")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /menu/{id} (admin only)
func (h *Handlers) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.menu.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid menu item ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to delete menu item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

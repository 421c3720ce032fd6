package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
	"github.com/pearlbistro/ordering-api/pkg/events"
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

// CreateUser handles POST /users. Creation is upsert-by-email: a second call
// with the same email stores nothing and reports insertedId null.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		response.InternalError(w, "Failed to check existing user")
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "User Already Exists",
			"insertedId": nil,
		})
		return
	}

	user, err := h.users.Insert(r.Context(), &domain.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.RoleGuest,
	})
	if err != nil {
		response.InternalError(w, "Failed to create user")
		return
	}

	if err := h.eventBus.Publish(r.Context(), events.UserCreated, events.UserCreatedEvent{
		Email:     user.Email,
		CreatedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(r.Context(), "Failed to publish user created event", "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId": user.ID.Hex(),
	})
}

// ListUsers handles GET /users
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to retrieve users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /users/{id} (admin only)
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid user ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

// PromoteUser handles PATCH /users/admin/{id} (admin only). The only role
// transition exposed is guest to admin.
func (h *Handlers) PromoteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	modified, err := h.users.PromoteToAdmin(r.Context(), id)
	if errors.Is(err, domain.ErrInvalidID) {
		response.BadRequest(w, "Invalid user ID")
		return
	}
	if err != nil {
		response.InternalError(w, "Failed to promote user")
		return
	}

	if modified > 0 {
		if err := h.eventBus.Publish(r.Context(), events.UserPromoted, events.UserPromotedEvent{
			UserID:     id,
			PromotedAt: time.Now(),
		}); err != nil {
			logger.WarnContext(r.Context(), "Failed to publish user promoted event", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

// CheckAdmin handles GET /users/admin/{email} (authenticated, self only)
func (h *Handlers) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	isAdmin, err := h.users.IsAdmin(r.Context(), email)
	if err != nil {
		response.InternalError(w, "Failed to check admin status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

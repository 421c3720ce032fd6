package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pearlbistro/ordering-api/internal/http/response"
	"github.com/pearlbistro/ordering-api/pkg/auth"
)

type issueTokenRequest struct {
	Email string `json:"email"`
}

// IssueToken handles POST /jwt: signs a 1-hour bearer token for the given
// identity payload. There is no refresh flow; clients re-authenticate after
// expiry.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	token, err := auth.NewAccessToken(req.Email, "", h.config.Auth.JWTSecret, h.config.Auth.AccessTokenTTL)
	if err != nil {
		response.InternalError(w, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/http/response"
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

type createIntentRequest struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.Price <= 0 {
		response.BadRequest(w, "price must be positive")
		return
	}

	clientSecret, err := h.intents.CreateIntent(req.Price, req.Currency)
	if err != nil {
		logger.ErrorContext(r.Context(), "Payment intent creation failed", "error", err)
		response.InternalError(w, "Failed to create payment intent")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// FinalizeOrder handles POST /payments (authenticated). The response always
// reflects success once the payment record is durable; cart cleanup is
// reported in the body, not the status code.
func (h *Handlers) FinalizeOrder(w http.ResponseWriter, r *http.Request) {
	var payment domain.PaymentRecord
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if err := payment.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.orders.Finalize(r.Context(), &payment)
	if err != nil {
		logger.ErrorContext(r.Context(), "Order finalization failed", "error", err,
			"transaction_id", payment.TransactionID)
		response.InternalError(w, "Failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ListPayments handles GET /payments/{email}
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.InternalError(w, "Failed to retrieve payments")
		return
	}
	if payments == nil {
		payments = []domain.PaymentRecord{}
	}
	writeJSON(w, http.StatusOK, payments)
}

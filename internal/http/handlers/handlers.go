package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pearlbistro/ordering-api/internal/platform/payments"
	"github.com/pearlbistro/ordering-api/internal/repo/mongodb"
	"github.com/pearlbistro/ordering-api/internal/service"
	"github.com/pearlbistro/ordering-api/pkg/config"
	"github.com/pearlbistro/ordering-api/pkg/events"
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

type Handlers struct {
	menu     mongodb.MenuRepository
	carts    mongodb.CartRepository
	users    mongodb.UserRepository
	reviews  mongodb.ReviewRepository
	payments mongodb.PaymentRepository
	orders   service.OrderService
	intents  payments.IntentCreator
	eventBus events.Publisher
	config   *config.Config
}

func New(
	menu mongodb.MenuRepository,
	carts mongodb.CartRepository,
	users mongodb.UserRepository,
	reviews mongodb.ReviewRepository,
	paymentRepo mongodb.PaymentRepository,
	orders service.OrderService,
	intents payments.IntentCreator,
	eventBus events.Publisher,
	config *config.Config,
) *Handlers {
	return &Handlers{
		menu:     menu,
		carts:    carts,
		users:    users,
		reviews:  reviews,
		payments: paymentRepo,
		orders:   orders,
		intents:  intents,
		eventBus: eventBus,
		config:   config,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

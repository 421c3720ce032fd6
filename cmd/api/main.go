package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pearlbistro/ordering-api/internal/http/handlers"
	appmw "github.com/pearlbistro/ordering-api/internal/http/middleware"
	"github.com/pearlbistro/ordering-api/internal/platform/mailer"
	"github.com/pearlbistro/ordering-api/internal/platform/payments"
	"github.com/pearlbistro/ordering-api/internal/repo/mongodb"
	"github.com/pearlbistro/ordering-api/internal/service"
	"github.com/pearlbistro/ordering-api/pkg/config"
	"github.com/pearlbistro/ordering-api/pkg/database"
	"github.com/pearlbistro/ordering-api/pkg/events"
	"github.com/pearlbistro/ordering-api/pkg/logger"
	mw "github.com/pearlbistro/ordering-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to MongoDB
	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)

	// Connect to Redis (rate limiting)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Initialize repositories
	menuRepo := mongodb.NewMenuRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	// Initialize platform clients
	var mailService mailer.Service
	if cfg.Email.DevMode {
		mailService = mailer.NewDevMailer()
	} else {
		mailService = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey)

	// Initialize services
	orderService := service.NewOrderService(paymentRepo, cartRepo, menuRepo, userRepo, mailService, eventBus)

	// Initialize handlers and gates
	h := handlers.New(menuRepo, cartRepo, userRepo, reviewRepo, paymentRepo, orderService, stripeClient, eventBus, cfg)
	guard := appmw.NewGuard(userRepo, cfg.Auth.JWTSecret)
	limiter := appmw.NewRateLimiter(rdb, appmw.RateLimitConfig{
		Requests: 20,
		Window:   time.Minute,
		KeyFunc:  appmw.ClientIPKeyFunc,
	})

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("ordering-api"))
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Mount("/", h.Router(guard, limiter.Middleware()))

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down ordering API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting ordering API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

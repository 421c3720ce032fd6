package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server Server
	Mongo  Mongo
	Redis  Redis
	NATS   NATS
	Auth   Auth
	Stripe Stripe
	Email  Email
}

type Server struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Mongo struct {
	URI      string
	Database string
}

type Redis struct {
	URL string
}

type NATS struct {
	URL string
}

type Auth struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type Stripe struct {
	SecretKey string
}

type Email struct {
	MailerSendKey string
	FromEmail     string
	FromName      string
	DevMode       bool // print emails to logs instead of sending
}

func Load() *Config {
	return &Config{
		Server: Server{
			Port:         getEnv("PORT", "5000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Mongo: Mongo{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DB", "pearl_bistro"),
		},
		Redis: Redis{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		NATS: NATS{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Auth: Auth{
			JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret-change-in-prod"),
			AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", time.Hour),
		},
		Stripe: Stripe{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
		Email: Email{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromEmail:     getEnv("MAIL_FROM_EMAIL", "orders@pearlbistro.local"),
			FromName:      getEnv("MAIL_FROM_NAME", "Pearl Bistro"),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

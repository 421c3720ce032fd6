package payments

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentCreator creates a provider payment intent for a checkout total.
type IntentCreator interface {
	CreateIntent(price float64, currency string) (clientSecret string, err error)
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent converts the decimal price to the provider's smallest currency
// unit and returns the client secret the frontend confirms against.
func (s *StripeClient) CreateIntent(price float64, currency string) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be positive")
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	amount := int64(math.Round(price * 100))

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}

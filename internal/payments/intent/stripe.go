package intent

import (
	"context"

	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// Creator starts a card charge with the payment provider and returns the
// client secret the frontend needs to complete it.
type Creator interface {
	Create(ctx context.Context, price int64) (string, error)
}

type stripeCreator struct {
	client *paymentintent.Client
	log    *logger.Logger
}

func NewStripeCreator(secretKey string, log *logger.Logger) Creator {
	return &stripeCreator{
		client: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		log: log,
	}
}

// Create opens a payment intent for the given price. Prices are stored in
// whole currency units; Stripe expects the smallest unit, so USD cents.
func (c *stripeCreator) Create(ctx context.Context, price int64) (string, error) {
	if price <= 0 {
		return "", apperrors.InvalidInput("Price must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(price * 100),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := c.client.New(params)
	if err != nil {
		c.log.Error("Failed to create payment intent", "error", err)
		return "", apperrors.Internal("Failed to create payment intent", err)
	}

	return pi.ClientSecret, nil
}

// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/config"
)

type PaymentService struct {
	config *config.Config
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

func NewPaymentService(config *config.Config) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{config: config}
}

// CreatePaymentIntent opens a Stripe intent for an order total. Amounts are
// converted to the smallest currency unit as Stripe requires.
func (s *PaymentService) CreatePaymentIntent(userID, orderID uuid.UUID, amount float64, currency string) (*PaymentIntentResponse, error) {
	if currency == "" {
		currency = "usd"
	}
	amountInCents := int64(amount * 100)
	if amountInCents <= 0 {
		return nil, apperrors.BadRequest("payment amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("order_id", orderID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// VerifyPayment checks that the referenced intent actually succeeded before an
// order is marked paid.
func (s *PaymentService) VerifyPayment(paymentIntentID string) error {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to get payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return apperrors.BadRequest("payment not completed, status: %s", pi.Status)
	}
	return nil
}

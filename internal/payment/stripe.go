// internal/payment/stripe.go
package payment

import (
	"context"
	"strings"

	"legal-marketplace/internal/common/errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway maps orders onto PaymentIntents. The intent id is the order
// id and verification checks the intent has succeeded.
type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway builds a client for key. Nil backends use Stripe's API.
func NewStripeGateway(key string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{sc: client.New(key, backends)}
}

func (g *StripeGateway) Name() string { return ProviderStripe }

func (g *StripeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, errors.NewValidationError("amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(amount)),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(receipt),
	}
	params.Context = ctx
	params.AddMetadata("receipt", receipt)

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, errors.NewPaymentFailedError(err)
	}
	return &Order{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Receipt:      receipt,
		Status:       string(pi.Status),
		CreatedAt:    pi.Created,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) VerifyPayment(ctx context.Context, orderID, paymentID, _ string) (*Verification, error) {
	if orderID == "" {
		return nil, errors.NewPaymentVerificationFailedError("orderId is required")
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.sc.PaymentIntents.Get(orderID, params)
	if err != nil {
		return nil, errors.NewPaymentFailedError(err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, errors.NewPaymentVerificationFailedError("payment intent status " + string(pi.Status))
	}
	if paymentID == "" {
		paymentID = pi.ID
	}
	return &Verification{Success: true, OrderID: pi.ID, PaymentID: paymentID}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, paymentID string, amount int64) (*Refund, error) {
	if paymentID == "" {
		return nil, errors.NewValidationError("paymentId is required")
	}
	params := &stripe.RefundParams{PaymentIntent: stripe.String(paymentID)}
	if amount > 0 {
		params.Amount = stripe.Int64(toMinorUnits(amount))
	}
	params.Context = ctx

	r, err := g.sc.Refunds.New(params)
	if err != nil {
		return nil, errors.NewPaymentFailedError(err)
	}
	return &Refund{
		ID:        r.ID,
		PaymentID: paymentID,
		Amount:    r.Amount,
		Status:    string(r.Status),
		CreatedAt: r.Created,
	}, nil
}

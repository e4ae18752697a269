// internal/payment/gateway.go
package payment

import (
	"context"
	"fmt"

	"legal-marketplace/internal/common/config"
)

const (
	ProviderMock   = "mock"
	ProviderStripe = "stripe"
)

// Order is a payment order. Amount is in minor units (paise for INR).
type Order struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Receipt      string `json:"receipt"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type Verification struct {
	Success   bool   `json:"success"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// Gateway takes amounts in major units and reports them in minor units.
type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*Verification, error)
	// Refund returns money for a payment; an amount of 0 refunds in full.
	Refund(ctx context.Context, paymentID string, amount int64) (*Refund, error)
}

func New(cfg config.PaymentConfig) (Gateway, error) {
	switch cfg.Provider {
	case ProviderMock, "":
		return NewMockGateway(cfg.MockSecret), nil
	case ProviderStripe:
		return NewStripeGateway(cfg.StripeKey, nil), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

func toMinorUnits(amount int64) int64 {
	return amount * 100
}

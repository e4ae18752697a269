// internal/payment/mock.go
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"legal-marketplace/internal/common/errors"

	"github.com/google/uuid"
)

// MockGateway issues local orders and checks Razorpay-style signatures:
// hex HMAC-SHA256 of "orderID|paymentID" keyed by the shared secret.
type MockGateway struct {
	secret []byte
	now    func() time.Time
}

func NewMockGateway(secret string) *MockGateway {
	return &MockGateway{secret: []byte(secret), now: time.Now}
}

func (g *MockGateway) Name() string { return ProviderMock }

func (g *MockGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, errors.NewValidationError("amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}
	now := g.now()
	if receipt == "" {
		receipt = "receipt_" + now.Format("20060102150405")
	}
	return &Order{
		ID:        "order_" + shortID(),
		Amount:    toMinorUnits(amount),
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: now.Unix(),
	}, nil
}

func (g *MockGateway) VerifyPayment(_ context.Context, orderID, paymentID, signature string) (*Verification, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, errors.NewPaymentVerificationFailedError("orderId, paymentId and signature are required")
	}
	expected := g.Sign(orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return nil, errors.NewPaymentVerificationFailedError("signature mismatch")
	}
	return &Verification{Success: true, OrderID: orderID, PaymentID: paymentID}, nil
}

func (g *MockGateway) Refund(_ context.Context, paymentID string, amount int64) (*Refund, error) {
	if paymentID == "" {
		return nil, errors.NewValidationError("paymentId is required")
	}
	return &Refund{
		ID:        "rfnd_" + shortID(),
		PaymentID: paymentID,
		Amount:    toMinorUnits(amount),
		Status:    "processed",
		CreatedAt: g.now().Unix(),
	}, nil
}

// Sign returns the signature a checkout would present for the pair.
func (g *MockGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:14]
}

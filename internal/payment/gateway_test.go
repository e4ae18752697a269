// internal/payment/gateway_test.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

// ==========================
// Mock gateway
// ==========================

func TestMockGateway_CreateOrder(t *testing.T) {
	g := NewMockGateway("secret")
	order, err := g.CreateOrder(context.Background(), 2500, "", "consultation_c-1")
	require.NoError(t, err)

	assert.Contains(t, order.ID, "order_")
	assert.Equal(t, int64(250000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "consultation_c-1", order.Receipt)
	assert.Equal(t, "created", order.Status)

	_, err = g.CreateOrder(context.Background(), 0, "INR", "")
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
}

func TestMockGateway_VerifyPayment(t *testing.T) {
	g := NewMockGateway("secret")
	good := g.Sign("order_1", "pay_1")
	assert.Len(t, good, 64)

	flipped := byte('0')
	if good[63] == '0' {
		flipped = '1'
	}
	tampered := good[:63] + string(flipped)

	tests := []struct {
		name      string
		signature string
		wantErr   bool
	}{
		{"valid signature", good, false},
		{"tampered signature", tampered, true},
		{"uppercase hex accepted", strings.ToUpper(good), false},
		{"empty signature", "", true},
		{"other secret", NewMockGateway("other").Sign("order_1", "pay_1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := g.VerifyPayment(context.Background(), "order_1", "pay_1", tt.signature)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodePaymentVerificationFailed, errors.AsStandardError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.True(t, v.Success)
		})
	}
}

func TestMockGateway_Refund(t *testing.T) {
	r, err := NewMockGateway("s").Refund(context.Background(), "pay_1", 500)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", r.PaymentID)
	assert.Equal(t, int64(50000), r.Amount)
	assert.Equal(t, "processed", r.Status)
}

func TestNew(t *testing.T) {
	g, err := New(config.PaymentConfig{Provider: "mock", MockSecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, g.Name())

	g, err = New(config.PaymentConfig{Provider: "stripe", StripeKey: "sk_test_123"})
	require.NoError(t, err)
	assert.Equal(t, ProviderStripe, g.Name())

	_, err = New(config.PaymentConfig{Provider: "razorpay"})
	assert.Error(t, err)
}

// ==========================
// Stripe gateway
// ==========================

func fakeStripe(t *testing.T, intentStatus string) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/payment_intents":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "250000", r.PostForm.Get("amount"))
			assert.Equal(t, "inr", r.PostForm.Get("currency"))
			assert.Equal(t, "consultation_c-1", r.PostForm.Get("metadata[receipt]"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "pi_123", "object": "payment_intent", "amount": 250000, "currency": "inr",
				"status": "requires_payment_method", "client_secret": "pi_123_secret", "created": 1700000000,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payment_intents/pi_123":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "pi_123", "object": "payment_intent", "amount": 250000, "currency": "inr", "status": intentStatus,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/refunds":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "pi_123", r.PostForm.Get("payment_intent"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "re_1", "object": "refund", "amount": 250000, "status": "succeeded",
				"payment_intent": "pi_123", "created": 1700000100,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"no such route"}}`))
		}
	}))
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGateway("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeGateway_CreateOrder(t *testing.T) {
	order, err := fakeStripe(t, "succeeded").CreateOrder(context.Background(), 2500, "INR", "consultation_c-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", order.ID)
	assert.Equal(t, int64(250000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "pi_123_secret", order.ClientSecret)
}

func TestStripeGateway_VerifyPayment(t *testing.T) {
	v, err := fakeStripe(t, "succeeded").VerifyPayment(context.Background(), "pi_123", "", "")
	require.NoError(t, err)
	assert.True(t, v.Success)
	assert.Equal(t, "pi_123", v.PaymentID)

	_, err = fakeStripe(t, "processing").VerifyPayment(context.Background(), "pi_123", "", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePaymentVerificationFailed, errors.AsStandardError(err).Code)
}

func TestStripeGateway_Refund(t *testing.T) {
	r, err := fakeStripe(t, "succeeded").Refund(context.Background(), "pi_123", 0)
	require.NoError(t, err)
	assert.Equal(t, "re_1", r.ID)
	assert.Equal(t, int64(250000), r.Amount)
	assert.Equal(t, "succeeded", r.Status)
}

func TestStripeGateway_APIError(t *testing.T) {
	_, err := fakeStripe(t, "succeeded").VerifyPayment(context.Background(), "pi_missing", "", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePaymentFailed, errors.AsStandardError(err).Code)
}

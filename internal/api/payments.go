// internal/api/payments.go
package api

import (
	"net/http"
	"strings"

	"legal-marketplace/internal/common/validation"
	"legal-marketplace/internal/notification"

	"github.com/gin-gonic/gin"
)

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	ConsultationID string `json:"consultationId"`
	LawyerID       string `json:"lawyerId"`
	UserID         string `json:"userId"`
	UserEmail      string `json:"userEmail"`
}

type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone"`
}

type refundRequest struct {
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req orderRequest
	if !bindValidated(c, validation.SchemaPaymentOrder, &req) {
		return
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.deps.Currency
	}

	order, err := s.deps.Payments.CreateOrder(c.Request.Context(), req.Amount, currency, "consultation_"+req.ConsultationID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.logger.Info("payment order created", map[string]interface{}{
		"orderId":        order.ID,
		"consultationId": req.ConsultationID,
		"provider":       s.deps.Payments.Name(),
	})
	respond(c, http.StatusCreated, gin.H{"order": order, "provider": s.deps.Payments.Name()})
}

// verifyPayment confirms a payment and, when contact details are present,
// sends a receipt. Receipt failures do not fail the verification.
func (s *Server) verifyPayment(c *gin.Context) {
	var req verifyRequest
	if !bindValidated(c, validation.SchemaPaymentVerify, &req) {
		return
	}
	ctx := c.Request.Context()

	verification, err := s.deps.Payments.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if s.deps.Notifier != nil && (req.UserEmail != "" || req.UserPhone != "") {
		currency := req.Currency
		if currency == "" {
			currency = s.deps.Currency
		}
		receipt := notification.Receipt{
			Email:     req.UserEmail,
			Phone:     req.UserPhone,
			OrderID:   req.OrderID,
			PaymentID: req.PaymentID,
			Amount:    req.Amount,
			Currency:  currency,
		}
		if err := s.deps.Notifier.PaymentReceipt(ctx, receipt); err != nil {
			s.logger.Warn("payment receipt failed", map[string]interface{}{"orderId": req.OrderID, "error": err})
		}
	}
	respond(c, http.StatusOK, verification)
}

func (s *Server) refundPayment(c *gin.Context) {
	var req refundRequest
	if !bindValidated(c, validation.SchemaPaymentRefund, &req) {
		return
	}

	refund, err := s.deps.Payments.Refund(c.Request.Context(), req.PaymentID, req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, refund)
}

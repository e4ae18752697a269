// internal/notification/notifier.go
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

const (
	TypeConsultationBooked    = "consultation_booked"
	TypeConsultationCancelled = "consultation_cancelled"
	TypePaymentReceipt        = "payment_receipt"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

const PriorityHigh = "high"

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type template struct {
	subject string
	body    string
}

var templates = map[string]template{
	TypeConsultationBooked: {
		subject: "Consultation confirmed with {{lawyerName}}",
		body:    "Your {{type}} consultation with {{lawyerName}} is confirmed for {{scheduledAt}}. Join: {{meetingLink}}. Booking ID: {{consultationId}}.",
	},
	TypeConsultationCancelled: {
		subject: "Consultation cancelled",
		body:    "Your consultation {{consultationId}} with {{lawyerName}} has been cancelled.",
	},
	TypePaymentReceipt: {
		subject: "Payment received",
		body:    "We received your payment of {{amount}} {{currency}} for order {{orderId}}. Payment ID: {{paymentId}}.",
	},
}

// Message is one notification to one recipient.
type Message struct {
	Type     string                 `json:"notificationType"`
	Email    string                 `json:"email,omitempty"`
	Phone    string                 `json:"phone,omitempty"`
	Priority string                 `json:"priority,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type Result struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"sentAt"`
}

type Receipt struct {
	Email     string
	Phone     string
	OrderID   string
	PaymentID string
	Amount    int64
	Currency  string
}

// Notifier delivers templated messages by SES email and, for high priority
// messages, SNS SMS.
type Notifier struct {
	cfg    config.NotificationConfig
	ses    SESService
	sns    SNSService
	logger logger.Logger
}

func NewNotifier(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		ses:    sesClient,
		sns:    snsClient,
		logger: logger.ForComponent(log, "notification"),
	}
}

// Send renders and delivers a message. A delivery failure returns both a
// failed Result and a NOTIFICATION_SEND_FAILED error.
func (n *Notifier) Send(ctx context.Context, msg Message) (*Result, error) {
	tmpl, ok := templates[msg.Type]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown notification type %q", msg.Type))
	}

	subject := renderTemplate(tmpl.subject, msg.Data)
	body := renderTemplate(tmpl.body, msg.Data)

	result := &Result{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if n.cfg.Email.Enabled && n.ses != nil && msg.Email != "" {
		if err := n.sendEmail(ctx, msg.Email, subject, body); err != nil {
			n.logger.Error("email send failed", map[string]interface{}{"error": err, "type": msg.Type})
			result.Status = StatusFailed
			return result, errors.NewNotificationSendFailedError("email", err)
		}
		result.EmailSent = true
	}

	if n.cfg.SMS.Enabled && n.sns != nil && msg.Phone != "" && msg.Priority == PriorityHigh {
		if err := n.sendSMS(ctx, msg.Phone, body); err != nil {
			n.logger.Error("SMS send failed", map[string]interface{}{"error": err, "type": msg.Type})
			result.Status = StatusFailed
			return result, errors.NewNotificationSendFailedError("sms", err)
		}
		result.SMSSent = true
	}

	if result.EmailSent || result.SMSSent {
		result.Status = StatusSent
	}
	n.logger.Info("notification processed", map[string]interface{}{
		"notificationId": result.NotificationID,
		"type":           msg.Type,
		"status":         result.Status,
	})
	return result, nil
}

// ConsultationBooked sends the booking confirmation to the client.
func (n *Notifier) ConsultationBooked(ctx context.Context, c *models.Consultation) error {
	_, err := n.Send(ctx, ConsultationMessage(TypeConsultationBooked, c))
	return err
}

func (n *Notifier) ConsultationCancelled(ctx context.Context, c *models.Consultation) error {
	_, err := n.Send(ctx, ConsultationMessage(TypeConsultationCancelled, c))
	return err
}

func (n *Notifier) PaymentReceipt(ctx context.Context, r Receipt) error {
	_, err := n.Send(ctx, Message{
		Type:  TypePaymentReceipt,
		Email: r.Email,
		Phone: r.Phone,
		Data: map[string]interface{}{
			"orderId":   r.OrderID,
			"paymentId": r.PaymentID,
			"amount":    r.Amount,
			"currency":  r.Currency,
		},
	})
	return err
}

// ConsultationMessage builds a high priority message about a consultation.
func ConsultationMessage(notificationType string, c *models.Consultation) Message {
	return Message{
		Type:     notificationType,
		Email:    c.UserEmail,
		Phone:    c.UserPhone,
		Priority: PriorityHigh,
		Data: map[string]interface{}{
			"consultationId": c.ID,
			"lawyerName":     c.LawyerName,
			"type":           string(c.Type),
			"scheduledAt":    c.ScheduledAt.Format("02 Jan 2006 15:04 MST"),
			"meetingLink":    c.MeetingLink,
		},
	}
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if n.cfg.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(n.cfg.SMS.SenderID)},
		}
	}
	_, err := n.sns.Publish(ctx, input)
	return err
}

// renderTemplate substitutes {{key}} placeholders and drops any left unresolved.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}

// internal/notification/notifier_test.go
package notification

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func testConfig(email, sms bool) config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.AWSRegion = "ap-south-1"
	cfg.Email.Enabled = email
	cfg.Email.FromEmail = "noreply@legalassistant.com"
	cfg.SMS.Enabled = sms
	cfg.SMS.SenderID = "LEGALAI"
	return cfg
}

func testConsultation() *models.Consultation {
	return &models.Consultation{
		ID:          "c-1",
		UserEmail:   "client@example.com",
		UserPhone:   "+919800000000",
		LawyerName:  "Adv. Priya Sharma",
		Type:        models.ConsultationVideo,
		ScheduledAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		MeetingLink: "https://meet.legalassistant.com/room/c-1",
	}
}

// ==========================
// Tests
// ==========================

func TestConsultationBooked_EmailAndSMS(t *testing.T) {
	var subject, body, phone string
	sesMock := &MockSESService{SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		subject = aws.ToString(params.Message.Subject.Data)
		body = aws.ToString(params.Message.Body.Text.Data)
		assert.Equal(t, "noreply@legalassistant.com", aws.ToString(params.Source))
		return &ses.SendEmailOutput{}, nil
	}}
	snsMock := &MockSNSService{PublishFunc: func(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
		phone = aws.ToString(params.PhoneNumber)
		assert.Contains(t, params.MessageAttributes, "AWS.SNS.SMS.SenderID")
		return &sns.PublishOutput{}, nil
	}}

	n := NewNotifier(testConfig(true, true), sesMock, snsMock, logger.NewTestLogger(t))
	require.NoError(t, n.ConsultationBooked(context.Background(), testConsultation()))

	assert.Equal(t, "Consultation confirmed with Adv. Priya Sharma", subject)
	assert.Contains(t, body, "video consultation")
	assert.Contains(t, body, "05 Mar 2024 10:30 UTC")
	assert.Contains(t, body, "https://meet.legalassistant.com/room/c-1")
	assert.Equal(t, "+919800000000", phone)
}

func TestSend_Statuses(t *testing.T) {
	okSES := func() *MockSESService {
		return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		}}
	}
	okSNS := func() *MockSNSService {
		return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{}, nil
		}}
	}

	tests := []struct {
		name       string
		cfg        config.NotificationConfig
		msg        Message
		wantStatus string
		wantEmail  bool
		wantSMS    bool
	}{
		{
			name:       "all channels disabled",
			cfg:        testConfig(false, false),
			msg:        ConsultationMessage(TypeConsultationBooked, testConsultation()),
			wantStatus: StatusDisabled,
		},
		{
			name:       "sms skipped for normal priority",
			cfg:        testConfig(true, true),
			msg:        Message{Type: TypePaymentReceipt, Email: "a@b.c", Phone: "+91"},
			wantStatus: StatusSent,
			wantEmail:  true,
		},
		{
			name:       "sms only",
			cfg:        testConfig(false, true),
			msg:        ConsultationMessage(TypeConsultationCancelled, testConsultation()),
			wantStatus: StatusSent,
			wantSMS:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesMock, snsMock := okSES(), okSNS()
			n := NewNotifier(tt.cfg, sesMock, snsMock, logger.NewTestLogger(t))

			res, err := n.Send(context.Background(), tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantEmail, res.EmailSent)
			assert.Equal(t, tt.wantSMS, res.SMSSent)
			assert.NotEmpty(t, res.NotificationID)
		})
	}
}

func TestSend_EmailFailure(t *testing.T) {
	sesMock := &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, stderrors.New("throttled")
	}}
	snsMock := &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return &sns.PublishOutput{}, nil
	}}

	n := NewNotifier(testConfig(true, true), sesMock, snsMock, logger.NewTestLogger(t))
	res, err := n.Send(context.Background(), ConsultationMessage(TypeConsultationBooked, testConsultation()))

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, errors.AsStandardError(err).Code)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 0, snsMock.calls)
}

func TestSend_UnknownType(t *testing.T) {
	n := NewNotifier(testConfig(true, false), nil, nil, logger.NewNoOpLogger())
	_, err := n.Send(context.Background(), Message{Type: "newsletter"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		tmpl string
		data map[string]interface{}
		want string
	}{
		{"Hello {{name}}", map[string]interface{}{"name": "Asha"}, "Hello Asha"},
		{"Paid {{amount}} {{currency}}", map[string]interface{}{"amount": int64(2500), "currency": "INR"}, "Paid 2500 INR"},
		{"Hi {{missing}}there", nil, "Hi there"},
		{"Broken {{tag", nil, "Broken {{tag"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderTemplate(tt.tmpl, tt.data))
	}
}

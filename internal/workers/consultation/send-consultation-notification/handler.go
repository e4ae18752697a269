// internal/workers/consultation/send-consultation-notification/handler.go
package sendconsultationnotification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/models"
	"legal-marketplace/internal/notification"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-consultation-notification"
)

// ConsultationSource loads the consultation a notification is about.
type ConsultationSource interface {
	Get(ctx context.Context, id string) (*models.Consultation, error)
}

type Handler struct {
	config        *Config
	consultations ConsultationSource
	notifier      *notification.Notifier
	jobErrors     *errors.ErrorHandler
	logger        logger.Logger
}

func NewHandler(config *Config, source ConsultationSource, notifier *notification.Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		consultations: source,
		notifier:      notifier,
		jobErrors:     errors.NewErrorHandler(log),
		logger:        log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		metrics.ObserveJob(TaskType, "PARSE_ERROR", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.jobErrors.HandleJobError(context.Background(), client, job, err)
		metrics.ObserveJob(TaskType, string(errors.AsStandardError(err).Code), start)
		return
	}

	h.completeJob(client, job, output)
	metrics.ObserveJob(TaskType, "", start)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ConsultationID == "" {
		return nil, errors.NewValidationError("consultationId is required")
	}
	notificationType := input.NotificationType
	if notificationType == "" {
		notificationType = notification.TypeConsultationBooked
	}

	c, err := h.consultations.Get(ctx, input.ConsultationID)
	if err != nil {
		return nil, err
	}

	result, err := h.notifier.Send(ctx, notification.ConsultationMessage(notificationType, c))
	if err != nil {
		return nil, err
	}

	return &Output{
		NotificationID:     result.NotificationID,
		NotificationStatus: result.Status,
		EmailSent:          result.EmailSent,
		SMSSent:            result.SMSSent,
		SentAt:             result.SentAt,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/consultation/book-consultation/handler.go
package bookconsultation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "book-consultation"
)

type Handler struct {
	config    *Config
	service   *consultations.Service
	jobErrors *errors.ErrorHandler
	logger    logger.Logger
}

// NewHandler takes a service built without a notifier; confirmation is the
// send-consultation-notification task's job in the process model.
func NewHandler(config *Config, service *consultations.Service, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		service:   service,
		jobErrors: errors.NewErrorHandler(log),
		logger:    log,
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
		// Storage failures go back to Zeebe with retries; validation errors are thrown.
		h.jobErrors.HandleJobError(context.Background(), client, job, err)
		metrics.ObserveJob(TaskType, string(errors.AsStandardError(err).Code), start)
		return
	}

	h.completeJob(client, job, output)
	metrics.ObserveJob(TaskType, "", start)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	c, err := h.service.Book(ctx, consultations.BookingRequest{
		UserID:      input.UserID,
		UserEmail:   input.UserEmail,
		UserPhone:   input.UserPhone,
		LawyerID:    input.LawyerID,
		Type:        models.ConsultationType(input.Type),
		ScheduledAt: input.ScheduledAt,
		Description: input.Description,
		PaymentID:   input.PaymentID,
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		ConsultationID: c.ID,
		Status:         c.Status,
		MeetingLink:    c.MeetingLink,
		LawyerName:     c.LawyerName,
		Fee:            c.Fee,
		ScheduledAt:    c.ScheduledAt,
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

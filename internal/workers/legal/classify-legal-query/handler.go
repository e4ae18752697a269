// internal/workers/legal/classify-legal-query/handler.go
package classifylegalquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "classify-legal-query"
)

var (
	ErrEmptyQuery = errors.New("EMPTY_QUERY")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, ErrEmptyQuery.Error(), err.Error())
		metrics.ObserveJob(TaskType, ErrEmptyQuery.Error(), start)
		return
	}

	h.completeJob(client, job, output)
	metrics.ObserveJob(TaskType, "", start)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrEmptyQuery)
	}

	category := matching.Classify(input.Query)
	metrics.QueriesClassified.WithLabelValues(string(category)).Inc()

	output := &Output{CaseType: category}
	if spec, ok := matching.SpecializationFor(category); ok {
		output.Specialization = spec
	}

	h.logger.Debug("query classified", map[string]interface{}{
		"caseType": category,
	})
	return output, nil
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

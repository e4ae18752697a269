// internal/workers/legal/analyze-case-complexity/handler.go
package analyzecasecomplexity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/directory"
	"legal-marketplace/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-case-complexity"
)

var (
	ErrEmptyDescription = errors.New("EMPTY_CASE_DESCRIPTION")
	ErrLawyerLookup     = errors.New("LAWYER_LOOKUP_FAILED")
)

type Handler struct {
	config    *Config
	directory directory.Directory
	logger    logger.Logger
}

func NewHandler(config *Config, dir directory.Directory, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		directory: dir,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		code := ErrLawyerLookup.Error()
		if errors.Is(err, ErrEmptyDescription) {
			code = ErrEmptyDescription.Error()
		}
		h.failJob(client, job, code, err.Error())
		metrics.ObserveJob(TaskType, code, start)
		return
	}

	h.completeJob(client, job, output)
	metrics.ObserveJob(TaskType, "", start)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.CaseDescription) == "" {
		return nil, fmt.Errorf("%w: caseDescription is required", ErrEmptyDescription)
	}

	complexity := matching.AnalyzeComplexity(input.CaseDescription)
	output := &Output{
		Complexity: complexity.Level,
		Indicators: complexity.Indicators,
	}

	if input.LawyerID != "" && h.directory != nil {
		profile, err := h.directory.GetByID(ctx, input.LawyerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLawyerLookup, err)
		}
		rec := matching.Recommend(matching.FromProfile(*profile), complexity)
		output.Recommendation = &rec
	}

	h.logger.Info("case complexity analyzed", map[string]interface{}{
		"complexity": complexity.Level,
		"indicators": len(complexity.Indicators),
		"lawyerId":   input.LawyerID,
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

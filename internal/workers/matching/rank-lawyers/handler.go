// internal/workers/matching/rank-lawyers/handler.go
package ranklawyers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/common/observability"
	"legal-marketplace/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "rank-lawyers"
)

var (
	ErrInvalidInput  = errors.New("INVALID_MATCH_INPUT")
	ErrRankingFailed = errors.New("RANKING_FAILED")
)

type Handler struct {
	config    *Config
	engine    *matching.Engine
	directory matching.ProfileSource
	obs       *observability.Observability
	logger    logger.Logger
}

// NewHandler builds the handler. obs may be nil, in which case no spans or
// OpenTelemetry metrics are recorded.
func NewHandler(config *Config, engine *matching.Engine, directory matching.ProfileSource, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		engine:    engine,
		directory: directory,
		obs:       obs,
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
		code := ErrRankingFailed.Error()
		if errors.Is(err, ErrInvalidInput) {
			code = ErrInvalidInput.Error()
		}
		h.failJob(client, job, code, err.Error())
		metrics.ObserveJob(TaskType, code, start)
		h.recordJob(ctx, "failed", start)
		return
	}

	h.completeJob(client, job, output)
	metrics.ObserveJob(TaskType, "", start)
	h.recordJob(ctx, "completed", start)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if _, ok := matching.ParseCategory(input.CaseType); !ok {
		h.logger.Warn("case type outside taxonomy, using default weights", map[string]interface{}{
			"caseType": input.CaseType,
		})
	}

	start := time.Now()
	category := matching.EffectiveCategory(&matching.MatchCriteria{
		Query:    input.Query,
		CaseType: input.CaseType,
	})

	span := trace.SpanFromContext(ctx)
	if h.obs != nil {
		ctx, span = h.obs.StartSpan(ctx, "rank-lawyers",
			attribute.String("category", string(category)),
			attribute.String("location", input.UserLocation),
		)
		defer span.End()
	}

	output, err := h.rank(ctx, input, category, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("matches", len(output.Matches)))
	return output, nil
}

func (h *Handler) rank(ctx context.Context, input *Input, category matching.Category, start time.Time) (*Output, error) {
	resp, err := h.engine.RankLawyers(ctx, input.Query, input.UserLocation, input.CaseType, input.Budget, h.directory)
	metrics.ObserveMatch(category.MetricLabel(), err, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
	}

	output := &Output{
		Matches:        resp.Matches,
		TotalLawyers:   resp.TotalLawyers,
		SearchCriteria: resp.SearchCriteria,
	}
	if len(resp.Matches) > 0 {
		top := resp.Matches[0]
		output.TopLawyerID = top.Lawyer.ID
		if h.obs != nil {
			h.obs.RecordTopScore(ctx, string(category), top.Score.TotalScore)
		}
	}

	elapsed := time.Since(start)
	fields := map[string]interface{}{
		"category":     category,
		"matches":      len(output.Matches),
		"totalLawyers": output.TotalLawyers,
		"durationMs":   elapsed.Milliseconds(),
	}
	if h.config.SlowThreshold > 0 && elapsed > h.config.SlowThreshold {
		h.logger.Warn("slow lawyer ranking", fields)
	} else {
		h.logger.Info("lawyers ranked", fields)
	}
	return output, nil
}

func (h *Handler) recordJob(ctx context.Context, status string, start time.Time) {
	if h.obs == nil {
		return
	}
	h.obs.RecordJobProcessed(ctx, status)
	h.obs.RecordJobDuration(ctx, time.Since(start), status)
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

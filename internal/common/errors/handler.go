// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Logger is the subset of logger.Logger the job error handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler fails or throws Zeebe jobs according to the error's retry policy.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError retries retryable errors while the job still has retries left
// and throws a BPMN error otherwise.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)

	if bpmnErr.Retries > 0 && job.Retries > 1 {
		h.failJob(ctx, client, job, bpmnErr)
		return
	}
	h.throwError(ctx, client, job, bpmnErr)
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	retries := bpmnErr.Retries
	if int(job.Retries)-1 < retries {
		retries = int(job.Retries) - 1
	}

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if payload, ok := encodeVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(payload); err == nil {
			if _, err := withVars.Send(ctx); err != nil {
				h.logger.Error("failed to fail job", map[string]interface{}{"jobKey": job.Key, "error": err})
			}
			return
		}
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{"jobKey": job.Key, "error": err})
	}
}

func (h *ErrorHandler) throwError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if payload, ok := encodeVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(payload); err == nil {
			if _, err := withVars.Send(ctx); err != nil {
				h.logger.Error("failed to throw job error", map[string]interface{}{"jobKey": job.Key, "error": err})
			}
			return
		}
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to throw job error", map[string]interface{}{"jobKey": job.Key, "error": err})
	}
}

func encodeVariables(bpmnErr *BPMNError) (string, bool) {
	data, err := json.Marshal(bpmnErr.ToErrorVariables())
	if err != nil || string(data) == "null" {
		return "", false
	}
	return string(data), true
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          bpmnErr.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}

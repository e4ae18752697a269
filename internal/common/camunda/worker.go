// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType and tracks in-flight jobs.
func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	timeout time.Duration,
	handler JobHandler,
	log logger.Logger,
) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(c worker.JobClient, job entities.Job) {
			active := metrics.WorkerJobsActive.WithLabelValues(taskType)
			active.Inc()
			defer active.Dec()
			handler.Handle(c, job)
		}).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

func (w *CamundaWorker) Start() {
	w.logger.Info("worker started", nil)
}

// Stop closes the job worker. The shared Zeebe client is closed by its owner.
func (w *CamundaWorker) Stop(_ context.Context) {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
}

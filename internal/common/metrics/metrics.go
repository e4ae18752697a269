// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lawyer_match_requests_total",
			Help: "Lawyer ranking requests by effective category and outcome",
		},
		[]string{"category", "outcome"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lawyer_match_duration_seconds",
			Help:    "Time spent ranking a lawyer pool",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	QueriesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legal_queries_classified_total",
			Help: "Queries classified per legal category",
		},
		[]string{"category"},
	)

	AdviceResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legal_advice_responses_total",
			Help: "Advice responses by source (model or fallback)",
		},
		[]string{"source"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency by route",
		},
		[]string{"route", "method"},
	)
)

// ObserveJob records one finished worker job. An empty errorCode means success.
func ObserveJob(taskType, errorCode string, started time.Time) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

func ObserveMatch(category string, err error, started time.Time) {
	MatchDuration.Observe(time.Since(started).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MatchRequests.WithLabelValues(category, outcome).Inc()
}

func ObserveHTTP(route, method string, status int, started time.Time) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(time.Since(started).Seconds())
}

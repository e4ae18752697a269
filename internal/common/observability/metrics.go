// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers for one binary.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider shutdowner
	tracer         trace.Tracer
	meter          otelmetric.Meter
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	matchScore     otelmetric.Float64Histogram
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// New wires the Prometheus-backed meter provider and, when an endpoint is
// set, a Jaeger tracer provider. Failures degrade to no-op instruments.
func New(serviceName, jaegerEndpoint string, sampleRatio float64) *Observability {
	o := &Observability{tracer: otel.Tracer(serviceName)}

	if tp, err := newTracerProvider(serviceName, jaegerEndpoint, sampleRatio); err != nil {
		log.Printf("Failed to create Jaeger exporter: %v", err)
	} else if tp != nil {
		otel.SetTracerProvider(tp)
		o.tracerProvider = tp
		o.tracer = tp.Tracer(serviceName)
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	matchScore, _ := meter.Float64Histogram(
		"match.top_score",
		otelmetric.WithDescription("Score of the best ranked lawyer per request"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.jobCounter = jobCounter
	o.jobDuration = jobDuration
	o.matchScore = matchScore
	return o
}

// StartSpan starts a span on the configured tracer. Callers must End it.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := o.tracer
	if tracer == nil {
		tracer = otel.Tracer("legal-marketplace")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordTopScore(ctx context.Context, category string, score float64) {
	if o.matchScore != nil {
		o.matchScore.Record(ctx, score, otelmetric.WithAttributes(
			attribute.String("category", category),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}

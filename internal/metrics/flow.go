package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FlowMetrics records checkout flow operations: tokenization submissions,
// payment option fetches and wallet authorization steps.
type FlowMetrics interface {
	// RecordOperation counts one flow operation.
	// Flow examples: "tokenization", "wallet". Operation examples:
	// "tokenize", "payment_options", "login". Status is "success" or "error".
	RecordOperation(ctx context.Context, flow, operation, status string)

	// RecordDuration records how long a flow operation took. Durations are
	// recorded in seconds as a histogram.
	RecordDuration(ctx context.Context, flow, operation string, duration time.Duration, status string)
}

type flowMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewFlowMetrics creates a FlowMetrics implementation on the given meter
// provider. The namespace prefixes the metric names.
func NewFlowMetrics(meterProvider metric.MeterProvider, namespace string) (FlowMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of checkout flow operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of checkout flow operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &flowMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func (f *flowMetrics) RecordOperation(ctx context.Context, flow, operation, status string) {
	f.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("flow", flow),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (f *flowMetrics) RecordDuration(
	ctx context.Context,
	flow, operation string,
	duration time.Duration,
	status string,
) {
	f.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("flow", flow),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// NoOpFlowMetrics is used when metrics are disabled.
type NoOpFlowMetrics struct{}

// NewNoOpFlowMetrics creates a FlowMetrics that records nothing.
func NewNoOpFlowMetrics() FlowMetrics {
	return &NoOpFlowMetrics{}
}

// RecordOperation does nothing.
func (n *NoOpFlowMetrics) RecordOperation(ctx context.Context, flow, operation, status string) {}

// RecordDuration does nothing.
func (n *NoOpFlowMetrics) RecordDuration(
	ctx context.Context,
	flow, operation string,
	duration time.Duration,
	status string,
) {
}

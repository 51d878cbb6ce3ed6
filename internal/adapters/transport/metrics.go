package transport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type transportMetricsCollection struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

var metrics transportMetricsCollection

func init() {
	const name = "nametag/transport"
	meter := otel.Meter(name)

	requestCount, err := meter.Int64Counter(
		"transport/request_count",
		metric.WithDescription("Total number of directory requests sent"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request count metric: %w", err))
	}

	requestDuration, err := meter.Float64Histogram(
		"transport/request_duration_seconds",
		metric.WithDescription("Round trip time for directory requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request duration metric: %w", err))
	}

	metrics = transportMetricsCollection{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}
}

func recordRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	status := "<none>"
	if statusCode != 0 {
		status = strconv.Itoa(statusCode)
	}

	// NOTE: Potentially high cardinality label (lookup paths embed usernames)
	attributes := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", status),
	}

	attributesOption := metric.WithAttributes(attributes...)

	metrics.requestCount.Add(ctx, 1, attributesOption)
	metrics.requestDuration.Record(ctx, duration.Seconds(), attributesOption)
}

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter metric.Meter

// HTTP metrics
var (
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter
)

// Batch job metrics (sweep / leaderboard refresh)
var (
	SweepTotal    metric.Int64Counter
	SweepDeleted  metric.Int64Counter
	SweepErrors   metric.Int64Counter
	SweepDuration metric.Float64Histogram

	RefreshTotal    metric.Int64Counter
	RefreshErrors   metric.Int64Counter
	RefreshDuration metric.Float64Histogram
)

// initHTTPMetrics creates HTTP-related metrics instruments
func initHTTPMetrics() error {
	var err error

	HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return err
	}

	HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// initJobMetrics creates batch-job metrics instruments
func initJobMetrics() error {
	var err error

	SweepTotal, err = meter.Int64Counter(
		"sweep_runs_total",
		metric.WithDescription("Total number of retention sweep runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	SweepDeleted, err = meter.Int64Counter(
		"sweep_deleted_total",
		metric.WithDescription("Total number of rows deleted by retention sweeps"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return err
	}

	SweepErrors, err = meter.Int64Counter(
		"sweep_errors_total",
		metric.WithDescription("Total number of failed retention sweeps"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	SweepDuration, err = meter.Float64Histogram(
		"sweep_duration_seconds",
		metric.WithDescription("Retention sweep duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	RefreshTotal, err = meter.Int64Counter(
		"leaderboard_refresh_total",
		metric.WithDescription("Total number of leaderboard refresh runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	RefreshErrors, err = meter.Int64Counter(
		"leaderboard_refresh_errors_total",
		metric.WithDescription("Total number of failed leaderboard refreshes"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	RefreshDuration, err = meter.Float64Histogram(
		"leaderboard_refresh_duration_seconds",
		metric.WithDescription("Leaderboard refresh duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordSweep 스위프 1회 실행 결과를 기록한다 (nil-safe)
func RecordSweep(ctx context.Context, class string, deleted int64, d time.Duration, failed bool) {
	attrs := metric.WithAttributes(attribute.String("class", class))
	if SweepTotal != nil {
		SweepTotal.Add(ctx, 1, attrs)
	}
	if SweepDeleted != nil && deleted > 0 {
		SweepDeleted.Add(ctx, deleted, attrs)
	}
	if failed && SweepErrors != nil {
		SweepErrors.Add(ctx, 1, attrs)
	}
	if SweepDuration != nil {
		SweepDuration.Record(ctx, d.Seconds(), attrs)
	}
}

// RecordRefresh 랭킹 갱신 1회 실행 결과를 기록한다 (nil-safe)
func RecordRefresh(ctx context.Context, d time.Duration, failed bool) {
	if RefreshTotal != nil {
		RefreshTotal.Add(ctx, 1)
	}
	if failed && RefreshErrors != nil {
		RefreshErrors.Add(ctx, 1)
	}
	if RefreshDuration != nil {
		RefreshDuration.Record(ctx, d.Seconds())
	}
}

// Meter returns the global meter
func Meter() metric.Meter {
	return meter
}

package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.engine"
)

type ReminderMetrics struct {
	installs          metric.Int64Counter
	dispatches        metric.Int64Counter
	fallbackChecks    metric.Int64Counter
	reconcileDuration metric.Float64Histogram
	reconcileItems    metric.Int64Counter
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	installs, err := meter.Int64Counter(
		"reminder_installs_total",
		metric.WithDescription("Total number of wakeup installations"),
		metric.WithUnit("{install}"),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter(
		"reminder_dispatches_total",
		metric.WithDescription("Total number of wakeup dispatches by outcome"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, err
	}

	fallbackChecks, err := meter.Int64Counter(
		"reminder_fallback_checks_total",
		metric.WithDescription("Total number of fallback did-you-write checks by result"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	reconcileDuration, err := meter.Float64Histogram(
		"reminder_reconcile_duration_seconds",
		metric.WithDescription("Duration of full reconciliation runs"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	reconcileItems, err := meter.Int64Counter(
		"reminder_reconcile_items_total",
		metric.WithDescription("Definitions processed by reconciliation runs"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		installs:          installs,
		dispatches:        dispatches,
		fallbackChecks:    fallbackChecks,
		reconcileDuration: reconcileDuration,
		reconcileItems:    reconcileItems,
	}, nil
}

func (m *ReminderMetrics) RecordInstall(ctx context.Context, kind, mode string) {
	m.installs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("mode", mode),
	))
}

func (m *ReminderMetrics) RecordDispatch(ctx context.Context, kind, outcome string) {
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordFallbackCheck(ctx context.Context, result string) {
	m.fallbackChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *ReminderMetrics) RecordReconcile(ctx context.Context, duration time.Duration, installed, failed int) {
	m.reconcileDuration.Record(ctx, duration.Seconds())
	m.reconcileItems.Add(ctx, int64(installed), metric.WithAttributes(
		attribute.String("outcome", "installed"),
	))
	if failed > 0 {
		m.reconcileItems.Add(ctx, int64(failed), metric.WithAttributes(
			attribute.String("outcome", "failed"),
		))
	}
}

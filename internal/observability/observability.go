package observability

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/logging"
)

type Config struct {
	ServiceInfo logging.ServiceInfo
	Environment logging.Environment
	LogLevel    slog.Level
}

// Resources holds the process-wide telemetry handles. Shutdown flushes and
// releases them.
type Resources struct {
	logger        *slog.Logger
	meterProvider *sdkmetric.MeterProvider
}

// Init wires the slog handler and, when an OTLP endpoint is configured, a
// periodic metric exporter. Without an endpoint metrics stay in-process and
// Init still succeeds.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := slog.New(logging.NewHandler(cfg.Environment, cfg.LogLevel, cfg.ServiceInfo))

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceInfo.Name),
		attribute.String("service.version", cfg.ServiceInfo.Version),
		attribute.String("deployment.environment", string(cfg.Environment)),
	)

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		exporter, err := otlpmetrichttp.New(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	meterProvider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(meterProvider)

	return &Resources{
		logger:        logger,
		meterProvider: meterProvider,
	}, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	if r.meterProvider == nil {
		return nil
	}
	return r.meterProvider.Shutdown(ctx)
}

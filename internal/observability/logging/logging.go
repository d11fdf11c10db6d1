package logging

import (
	"log/slog"
	"os"
)

// Environment selects the log output format. Dev gets human-readable text,
// everything else structured JSON.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo identifies the running service in logs and telemetry.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

func NewHandler(env Environment, level slog.Level, info ServiceInfo) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == EnvDev {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	attrs := []slog.Attr{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return handler.WithAttrs(attrs)
}

package config

import (
	"os"
	"strconv"
	"time"
)

const (
	fallbackOffsetMinutesEnv  = "FALLBACK_OFFSET_MINUTES"
	verifyTimeoutSecondsEnv   = "VERIFY_TIMEOUT_SECONDS"
	snoozeDefaultMinutesEnv   = "SNOOZE_DEFAULT_MINUTES"
	reconcileIntervalMinsEnv  = "RECONCILE_INTERVAL_MINUTES"
	bestEffortGranularitySecs = "BEST_EFFORT_GRANULARITY_SECONDS"

	defaultFallbackOffsetMinutes = 30
	defaultVerifyTimeoutSeconds  = 15
	defaultSnoozeMinutes         = 10
	defaultReconcileMinutes      = 60
)

type SchedulerConfig struct {
	FallbackOffset        time.Duration
	VerifyTimeout         time.Duration
	SnoozeDefault         time.Duration
	ReconcileInterval     time.Duration
	BestEffortGranularity time.Duration
}

func LoadSchedulerConfig() *SchedulerConfig {
	cfg := &SchedulerConfig{
		FallbackOffset:        defaultFallbackOffsetMinutes * time.Minute,
		VerifyTimeout:         defaultVerifyTimeoutSeconds * time.Second,
		SnoozeDefault:         defaultSnoozeMinutes * time.Minute,
		ReconcileInterval:     defaultReconcileMinutes * time.Minute,
		BestEffortGranularity: time.Minute,
	}

	if v := os.Getenv(fallbackOffsetMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.FallbackOffset = time.Duration(parsed) * time.Minute
		}
	}
	if v := os.Getenv(verifyTimeoutSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.VerifyTimeout = time.Duration(parsed) * time.Second
		}
	}
	if v := os.Getenv(snoozeDefaultMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.SnoozeDefault = time.Duration(parsed) * time.Minute
		}
	}
	if v := os.Getenv(reconcileIntervalMinsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.ReconcileInterval = time.Duration(parsed) * time.Minute
		}
	}
	if v := os.Getenv(bestEffortGranularitySecs); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.BestEffortGranularity = time.Duration(parsed) * time.Second
		}
	}

	return cfg
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          string
	LogLevel      slog.Level
	JournalDBPath string

	PushGatewayURL   string
	StreakServiceURL string
	PushMaxRetries   int

	Redis     *RedisConfig
	Scheduler *SchedulerConfig

	// Permission grants at boot. Both can be flipped at runtime through the
	// permissions endpoint.
	ExactWakeupsGranted  bool
	NotificationsGranted bool
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxRetries := 3
	if v := os.Getenv("PUSH_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          port,
		LogLevel:      ParseLogLevel(os.Getenv("LOG_LEVEL")),
		JournalDBPath: os.Getenv("JOURNAL_DB_PATH"),

		PushGatewayURL:   os.Getenv("PUSH_GATEWAY_URL"),
		StreakServiceURL: os.Getenv("STREAK_SERVICE_URL"),
		PushMaxRetries:   maxRetries,

		Redis:     redisConfig,
		Scheduler: LoadSchedulerConfig(),

		ExactWakeupsGranted:  os.Getenv("EXACT_WAKEUPS_GRANTED") != "false",
		NotificationsGranted: os.Getenv("NOTIFICATIONS_GRANTED") != "false",
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

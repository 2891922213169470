// Package config loads runtime settings from the environment, in the
// same shape as the teacher project's config.Load but generalized: a
// .env file is loaded first (the way fastygo-backend's config package
// does), then individual fields fall back to os.Getenv defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates every setting the server needs at startup.
type Config struct {
	GinMode string

	DBDialect  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	OpenAIAPIKey string
	OpenAIModel  string

	LogLevel    string
	LogEncoding string

	// SchedulingZone is the IANA time zone name used to interpret dates
	// and working windows that arrive without an explicit offset.
	SchedulingZone string

	// DefaultWindowStart/EndMinutes are the default daily working
	// window bounds, expressed as minutes since midnight. Only the end is
	// read by the server: the scheduler handler uses it as the window end
	// for break-reflow warnings. Generate requests always carry their
	// own window.
	DefaultWindowStartMinutes int
	DefaultWindowEndMinutes   int

	MetricsEnabled bool
}

// Load reads configuration from the environment, applying a .env file
// first if one is present in the working directory.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDialect:  getEnv("DB_DIALECT", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskforge"),
		DBPassword: getEnv("DB_PASSWORD", "taskforge"),
		DBName:     getEnv("DB_NAME", "taskforge"),
		DBDSN:      getEnv("DB_DSN", ""),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", ""),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),

		SchedulingZone: getEnv("SCHEDULING_ZONE", "UTC"),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	startMin, err := getEnvInt("DEFAULT_WINDOW_START_MINUTES", 9*60)
	if err != nil {
		return nil, err
	}
	endMin, err := getEnvInt("DEFAULT_WINDOW_END_MINUTES", 17*60)
	if err != nil {
		return nil, err
	}
	cfg.DefaultWindowStartMinutes = startMin
	cfg.DefaultWindowEndMinutes = endMin

	if _, err := time.LoadLocation(cfg.SchedulingZone); err != nil {
		return nil, fmt.Errorf("config: invalid SCHEDULING_ZONE %q: %w", cfg.SchedulingZone, err)
	}

	return cfg, nil
}

// Location resolves the configured scheduling zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.SchedulingZone)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid integer for %s: %w", key, err)
	}
	return n, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	// NATSURL empty disables event publishing entirely.
	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`

	HistoryLimit   int   `yaml:"history_limit"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	APIRateLimitRPS       int `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst     int `yaml:"api_rate_limit_burst"`
	APIMaxInFlight        int `yaml:"api_max_in_flight"`
	APIBackpressureWaitMS int `yaml:"api_backpressure_wait_ms"`

	WorkerMetricsPort string `yaml:"worker_metrics_port"`
}

// Load reads configuration from the environment with defaults. When
// CONFIG_FILE points at a YAML file, its values are applied first and the
// environment overrides them.
func Load() (Config, error) {
	cfg := Config{
		APIPort:  "8080",
		LogLevel: "info",

		NATSURL:     "",
		NATSSubject: "documents.processed",

		HistoryLimit:   20,
		MaxUploadBytes: 10 << 20,

		APIRateLimitRPS:       50,
		APIRateLimitBurst:     100,
		APIMaxInFlight:        64,
		APIBackpressureWaitMS: 200,

		WorkerMetricsPort: "9090",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.APIPort = envString("API_PORT", cfg.APIPort)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.NATSURL = envString("NATS_URL", cfg.NATSURL)
	cfg.NATSSubject = envString("NATS_SUBJECT", cfg.NATSSubject)
	cfg.HistoryLimit = envInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.APIRateLimitRPS = envInt("API_RATE_LIMIT_RPS", cfg.APIRateLimitRPS)
	cfg.APIRateLimitBurst = envInt("API_RATE_LIMIT_BURST", cfg.APIRateLimitBurst)
	cfg.APIMaxInFlight = envInt("API_MAX_IN_FLIGHT", cfg.APIMaxInFlight)
	cfg.APIBackpressureWaitMS = envInt("API_BACKPRESSURE_WAIT_MS", cfg.APIBackpressureWaitMS)
	cfg.WorkerMetricsPort = envString("WORKER_METRICS_PORT", cfg.WorkerMetricsPort)

	return cfg, nil
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

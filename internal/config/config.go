package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Flow document with the questionnaire definition.
	FlowPath string

	// Session persistence.
	DBPath string

	// Optional external enrichment rule table (YAML). Empty selects the
	// built-in table.
	RulesPath string

	// Optional bearer token for mutating endpoints. Empty disables auth.
	APIKey string

	// HTTP timeouts.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Rolling window for evaluation latency stats.
	StatsWindow time.Duration

	// Request body limit for POST /evaluate and /sessions.
	MaxBodyBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		FlowPath: envOr("FLOW_PATH", "flujo.txt"),
		DBPath:   envOr("DB_PATH", "data.db"),

		RulesPath: os.Getenv("RULES_PATH"),
		APIKey:    os.Getenv("STACKADVISOR_API_KEY"),

		ReadTimeout:  envDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  envDuration("IDLE_TIMEOUT", 60*time.Second),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 1048576), // 1MB
	}

	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1048576
	}

	return cfg
}

func (c Config) Validate() error {
	if c.FlowPath == "" {
		return fmt.Errorf("FLOW_PATH is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

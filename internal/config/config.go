package config

import (
	"fmt"
	"os"
	"strconv"

	"reqaudit/internal/logger"
)

// Config collects every environment-driven setting. Nothing here is
// required at load time: the extraction service validates its own key
// when a command actually needs it, so offline commands (edit, export)
// work without any environment.
type Config struct {
	// OpenAI Configuration
	OpenAIAPIKey string
	OpenAIModel  string
	MaxRetries   int
	Temperature  float32

	// Audit Configuration
	AuditTolerance float64

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		MaxRetries:     getEnvInt("SCAN_MAX_RETRIES", 3),
		Temperature:    float32(getEnvFloat("OPENAI_TEMPERATURE", 0.1)),
		AuditTolerance: getEnvFloat("AUDIT_TOLERANCE", 0.01),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.AuditTolerance <= 0 {
		return fmt.Errorf("AUDIT_TOLERANCE must be positive, got %v", c.AuditTolerance)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("SCAN_MAX_RETRIES must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

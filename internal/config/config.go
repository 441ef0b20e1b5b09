// Package config provides configuration management for Hoofprint.
// It loads settings from environment variables with the HOOFPRINT_ prefix
// and provides sensible defaults for all configuration options.
//
// Discovery targets (segments, locations, event months and countries) live in
// a YAML file loaded separately via LoadTargets.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration settings for the Hoofprint application.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Security SecurityConfig
	Mail     MailConfig
	Pipeline PipelineConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    // Server port (default: 6380)
	Host string // Server host (default: 127.0.0.1)
}

// StorageConfig contains database and storage configuration.
type StorageConfig struct {
	StorageEngine string // Storage engine type: sqlite, postgres, memory (default: sqlite)
	DataPath      string // Path to data directory (default: ./data)
	PostgresDSN   string // Postgres connection string (required for engine=postgres)
}

// LLMConfig contains AI gateway configuration.
type LLMConfig struct {
	BaseURL        string // OpenAI-compatible API base URL (default: https://api.openai.com/v1)
	APIKey         string // API key sent as a Bearer token
	Model          string // Model name (default: gpt-4o-mini)
	TimeoutSeconds int    // Per-request timeout (default: 60)
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string // Security mode: development, production (default: development)
	APIToken     string // API authentication token
}

// MailConfig contains outbound SMTP settings.
type MailConfig struct {
	SMTPHost string // SMTP server host
	SMTPPort int    // SMTP server port (default: 587)
	Username string // SMTP auth username
	Password string // SMTP auth password
	From     string // From address on outgoing mail
}

// PipelineConfig bounds the background discovery pipeline.
type PipelineConfig struct {
	TargetsPath      string // Path to the discovery targets YAML (default: ./targets.yaml)
	MaxCompanies     int    // Companies qualified per target per run (default: 3)
	MaxInboxForBrief int    // Inbox leads fed into mission synthesis (default: 20)
	MissionReminders bool   // Attach a follow-up reminder on mission promotion (default: true)
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the HOOFPRINT_ prefix.
func LoadConfig() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("HOOFPRINT_PORT", 6380),
			Host: getEnv("HOOFPRINT_HOST", "127.0.0.1"),
		},
		Storage: StorageConfig{
			StorageEngine: getEnv("HOOFPRINT_STORAGE_ENGINE", "sqlite"),
			DataPath:      getEnv("HOOFPRINT_DATA_PATH", "./data"),
			PostgresDSN:   getEnv("HOOFPRINT_POSTGRES_DSN", ""),
		},
		LLM: LLMConfig{
			BaseURL:        getEnv("HOOFPRINT_LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:         getEnv("HOOFPRINT_LLM_API_KEY", ""),
			Model:          getEnv("HOOFPRINT_LLM_MODEL", "gpt-4o-mini"),
			TimeoutSeconds: getEnvInt("HOOFPRINT_LLM_TIMEOUT_SECONDS", 60),
		},
		Security: SecurityConfig{
			SecurityMode: getEnv("HOOFPRINT_SECURITY_MODE", "development"),
			APIToken:     getEnv("HOOFPRINT_API_TOKEN", ""),
		},
		Mail: MailConfig{
			SMTPHost: getEnv("HOOFPRINT_SMTP_HOST", ""),
			SMTPPort: getEnvInt("HOOFPRINT_SMTP_PORT", 587),
			Username: getEnv("HOOFPRINT_SMTP_USERNAME", ""),
			Password: getEnv("HOOFPRINT_SMTP_PASSWORD", ""),
			From:     getEnv("HOOFPRINT_SMTP_FROM", ""),
		},
		Pipeline: PipelineConfig{
			TargetsPath:      getEnv("HOOFPRINT_TARGETS_PATH", "./targets.yaml"),
			MaxCompanies:     getEnvInt("HOOFPRINT_PIPELINE_MAX_COMPANIES", 3),
			MaxInboxForBrief: getEnvInt("HOOFPRINT_PIPELINE_MAX_INBOX", 20),
			MissionReminders: getEnvBool("HOOFPRINT_MISSION_REMINDERS", true),
		},
	}, nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. If the environment variable exists but cannot be parsed as an
// integer, it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default
// value. Accepts the forms strconv.ParseBool accepts.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

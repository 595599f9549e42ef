package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends for rectified and overlay artifacts
const (
	StorageLocal = "local"
	StorageAzure = "azure"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	// Grading pipeline inputs and outputs
	TemplatePath   string
	AnswerKeyPath  string
	OutputDir      string
	ArtifactFormat string

	// Artifact storage
	StorageBackend string
	AzureAccount   string
	AzureKey       string
	AzureContainer string

	CORSAllowedOrigins []string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8000"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 20*1024*1024), // 20MB
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		TemplatePath:       getEnvOrDefault("TEMPLATE_PATH", "sample_data/template.json"),
		AnswerKeyPath:      getEnvOrDefault("ANSWER_KEY_PATH", "sample_data/answer_key.json"),
		OutputDir:          getEnvOrDefault("OUTPUT_DIR", "outputs"),
		ArtifactFormat:     strings.ToLower(getEnvOrDefault("ARTIFACT_FORMAT", "png")),
		StorageBackend:     strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", StorageLocal)),
		AzureAccount:       os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureKey:           os.Getenv("AZURE_STORAGE_KEY"),
		AzureContainer:     getEnvOrDefault("AZURE_STORAGE_CONTAINER", "omr-artifacts"),
		CORSAllowedOrigins: parseListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8000",
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late, on the first upload
func (c *Config) Validate() error {
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", c.RequestTimeout)
	}
	if strings.TrimSpace(c.TemplatePath) == "" || strings.TrimSpace(c.AnswerKeyPath) == "" {
		return fmt.Errorf("TEMPLATE_PATH and ANSWER_KEY_PATH must be set")
	}
	switch c.ArtifactFormat {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("unsupported ARTIFACT_FORMAT: %q", c.ArtifactFormat)
	}
	switch c.StorageBackend {
	case StorageLocal:
		if strings.TrimSpace(c.OutputDir) == "" {
			return fmt.Errorf("OUTPUT_DIR must be set for local storage")
		}
	case StorageAzure:
		if c.AzureAccount == "" || c.AzureKey == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY are required for azure storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND: %q", c.StorageBackend)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

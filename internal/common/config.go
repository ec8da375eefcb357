package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// Config holds all application configuration
type Config struct {
	Model    ModelConfig
	Pipeline PipelineConfig
	Export   ExportConfig
	History  HistoryConfig
	LogLevel string
}

// ModelConfig holds vision-model client configuration
type ModelConfig struct {
	BaseURL string
	Name    string
	Timeout time.Duration
}

// PipelineConfig holds rasterization and normalization configuration
type PipelineConfig struct {
	MaxDimension int
	RenderScale  float64
	Pdftoppm     string
}

// ExportConfig holds export output configuration
type ExportConfig struct {
	OutDir string
}

// HistoryConfig holds the optional run-history database configuration
type HistoryConfig struct {
	DSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Model: ModelConfig{
			BaseURL: getEnv("OLLAMA_HOST", constants.DefaultBaseURL),
			Name:    getEnv("OLLAMA_MODEL", constants.DefaultModel),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", constants.DefaultInvokeTimeout),
		},
		Pipeline: PipelineConfig{
			MaxDimension: getEnvAsInt("MAX_DIMENSION", constants.DefaultMaxDimension),
			RenderScale:  getEnvAsFloat64("RENDER_SCALE", constants.DefaultRenderScale),
			Pdftoppm:     getEnv("PDFTOPPM_PATH", "pdftoppm"),
		},
		Export: ExportConfig{
			OutDir: getEnv("OUT_DIR", "."),
		},
		History: HistoryConfig{
			DSN: getEnv("HISTORY_DB_URL", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Model.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_HOST is required", ErrInvalidInput)
	}
	if c.Model.Name == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_MODEL is required", ErrInvalidInput)
	}
	if c.Pipeline.MaxDimension <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_DIMENSION must be positive", ErrInvalidInput)
	}
	if c.Pipeline.RenderScale <= 0 {
		return NewAppError("CONFIG_ERROR", "RENDER_SCALE must be positive", ErrInvalidInput)
	}
	return nil
}

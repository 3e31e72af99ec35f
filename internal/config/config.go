package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/resume-detector/internal/models"
)

type Config struct {
	Server    ServerConfig
	Endpoints EndpointsConfig
	Documents DocumentsConfig
	Report    ReportConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// EndpointsConfig holds the three externally owned service addresses.
type EndpointsConfig struct {
	SubmissionURL string
	ReportURL     string
	EventsURL     string
}

type DocumentsConfig struct {
	AcceptedType string
	MaxFileSize  int64
}

type ReportConfig struct {
	StrictLabels bool
	Schema       string
}

type TelemetryConfig struct {
	Workers      int
	QueueSize    int
	DrainTimeout time.Duration
}

type Endpoint string

const (
	EndpointSubmission Endpoint = "PROCESS_RESUME_API_URL"
	EndpointReport     Endpoint = "FETCH_RESULTS_API_URL"
	EndpointEvents     Endpoint = "EVENTS_API_URL"
)

const (
	SchemaCurrent = "current"
	SchemaLegacy  = "legacy"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	env := getEnv("ENV", "development")

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  env,
		},
		Endpoints: EndpointsConfig{
			SubmissionURL: getEnv(string(EndpointSubmission), ""),
			ReportURL:     getEnv(string(EndpointReport), ""),
			EventsURL:     getEnv(string(EndpointEvents), ""),
		},
		Documents: DocumentsConfig{
			AcceptedType: getEnv("ACCEPTED_DOCUMENT_TYPE", "application/pdf"),
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Report: ReportConfig{
			StrictLabels: getEnvAsBool("STRICT_LABELS", false),
			Schema:       strings.ToLower(getEnv("REPORT_SCHEMA", SchemaCurrent)),
		},
		Telemetry: TelemetryConfig{
			Workers:      getEnvAsInt("TELEMETRY_WORKERS", 2),
			QueueSize:    getEnvAsInt("TELEMETRY_QUEUE_SIZE", 32),
			DrainTimeout: getEnvAsDuration("TELEMETRY_DRAIN_TIMEOUT", 2*time.Second),
		},
	}
}

// Resolve returns the address configured for an endpoint, or a
// ConfigurationError when it was never set.
func (e EndpointsConfig) Resolve(endpoint Endpoint) (string, error) {
	var value string
	switch endpoint {
	case EndpointSubmission:
		value = e.SubmissionURL
	case EndpointReport:
		value = e.ReportURL
	case EndpointEvents:
		value = e.EventsURL
	}

	if strings.TrimSpace(value) == "" {
		return "", &models.ConfigurationError{Setting: string(endpoint)}
	}
	return value, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

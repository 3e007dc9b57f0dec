package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Simulation API Configuration
	ServerURL  string
	APITimeout time.Duration

	// Poll Loop Configuration
	PollInterval time.Duration

	// Report Synthesis Configuration
	AnalyzeTimeout time.Duration

	// Export Configuration
	OutputDir string

	// Logging Configuration
	LogLevel  string
	LogFormat string

	// Stub Server Configuration
	StubPort         string
	StubStepInterval time.Duration
	StubWorkers      int

	// CORS Configuration (stub server)
	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// Simulation API
		ServerURL:  getEnv("ORACULUM_SERVER_URL", "http://localhost:8080"),
		APITimeout: getDurationEnv("ORACULUM_API_TIMEOUT_SEC", 30) * time.Second,

		// Poll Loop
		PollInterval: getDurationEnv("ORACULUM_POLL_INTERVAL_MS", 1000) * time.Millisecond,

		// Report synthesis is slow; give it more room than ordinary calls
		AnalyzeTimeout: getDurationEnv("ORACULUM_ANALYZE_TIMEOUT_SEC", 120) * time.Second,

		// Export
		OutputDir: getEnv("ORACULUM_OUTPUT_DIR", "."),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		// Stub Server
		StubPort:         getEnv("SIMSTUB_PORT", "8080"),
		StubStepInterval: getDurationEnv("SIMSTUB_STEP_INTERVAL_MS", 1500) * time.Millisecond,
		StubWorkers:      getIntEnv("SIMSTUB_WORKERS", 4),

		// CORS
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, OPTIONS"),
		CORSAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "*"),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
		log.Printf("Warning: Invalid duration value for %s, using default %d", key, defaultValue)
	}
	return time.Duration(defaultValue)
}

// Package config provides configuration management for the reconciliation service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Reconcile ReconcileConfig
	Database  DatabaseConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	CORSOrigins    []string
	RequestTimeout time.Duration
	// SwaggerUser and SwaggerPass protect /swagger with basic auth when both are set.
	SwaggerUser string
	SwaggerPass string
}

// ReconcileConfig holds the engine defaults applied to requests that omit a parameter.
type ReconcileConfig struct {
	DefaultTolerance      decimal.Decimal
	BacktrackingThreshold int
	SolutionLimit         int
	MaxSolutionLimit      int
	// SearchTimeout bounds the exhaustive search. Zero disables the deadline.
	SearchTimeout time.Duration
	// GreedyOnEmpty also runs the greedy selector when the search finds nothing.
	GreedyOnEmpty bool
}

// DatabaseConfig holds MongoDB configuration for the request-log store.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

var defaultTolerance = decimal.New(200, -2)

// Load reads an optional .env file from the working directory and builds a Config from
// environment variables. Variables already set take precedence over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv creates a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			CORSOrigins:    parseList(os.Getenv("CORS_ORIGINS")),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Reconcile: ReconcileConfig{
			DefaultTolerance:      getEnvDecimal("RECONCILE_DEFAULT_TOLERANCE", defaultTolerance),
			BacktrackingThreshold: getEnvInt("RECONCILE_BACKTRACKING_THRESHOLD", 40),
			SolutionLimit:         getEnvInt("RECONCILE_SOLUTION_LIMIT", 10),
			MaxSolutionLimit:      getEnvInt("RECONCILE_MAX_SOLUTION_LIMIT", 100),
			SearchTimeout:         getEnvDuration("RECONCILE_SEARCH_TIMEOUT", 10*time.Second),
			GreedyOnEmpty:         getEnvBool("RECONCILE_GREEDY_ON_EMPTY", false),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "reconciliation_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the sandbox server will bind to.
	ServerHost string
	// ServerPort is the port number the sandbox server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// APIBaseURL is the payments API endpoint used by the tokenize command.
	APIBaseURL string
	// APITimeout is the per-request timeout of the payments API client.
	APITimeout time.Duration
	// ClientApplicationKey authenticates the merchant against the payments API.
	ClientApplicationKey string
	// GatewayID scopes payment option lookups when a merchant has several gateways.
	GatewayID string

	// RedirectURL is the 3-D Secure return URL the redirect watcher matches against.
	RedirectURL string

	// ChargeValue is the decimal value of the charge served by the checkout API.
	ChargeValue string
	// ChargeCurrency is the ISO 4217 currency code of the charge.
	ChargeCurrency string

	// StorePath is the file path of the encrypted token store. Empty selects
	// the in-memory store.
	StorePath string
	// StoreKey is the hex-encoded 32-byte key of the encrypted token store.
	StoreKey string

	// ProfilingTimeout bounds a single device-profiling session fetch.
	ProfilingTimeout time.Duration

	// RateLimitEnabled indicates whether rate limiting for the tokens endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client key.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for tokens endpoint rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled on the sandbox server.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Payments API client
		APIBaseURL:           env.GetString("API_BASE_URL", "http://localhost:8080"),
		APITimeout:           env.GetDuration("API_TIMEOUT_SECONDS", 30, time.Second),
		ClientApplicationKey: env.GetString("CLIENT_APPLICATION_KEY", "test_client_key"),
		GatewayID:            env.GetString("GATEWAY_ID", ""),

		// 3-D Secure
		RedirectURL: env.GetString("REDIRECT_URL", "https://checkout.local/redirect"),

		// Checkout charge
		ChargeValue:    env.GetString("CHARGE_VALUE", "100.00"),
		ChargeCurrency: env.GetString("CHARGE_CURRENCY", "RUB"),

		// Token store
		StorePath: env.GetString("STORE_PATH", ""),
		StoreKey:  env.GetString("STORE_KEY", ""),

		// Device profiling
		ProfilingTimeout: env.GetDuration("PROFILING_TIMEOUT_SECONDS", 10, time.Second),

		// Rate Limiting for the tokens endpoint (per client key)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "checkout"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}

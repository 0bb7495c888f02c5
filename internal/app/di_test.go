package app

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoomoney/checkout/internal/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "info",
		APIBaseURL:              "http://localhost:8080",
		APITimeout:              time.Second,
		ClientApplicationKey:    "test_client_key",
		ChargeValue:             "100.00",
		ChargeCurrency:          "RUB",
		ProfilingTimeout:        time.Second,
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 10,
		RateLimitBurst:          20,
		MetricsNamespace:        "checkout",
		MetricsPort:             8081,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "debug",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerTokenStore verifies store selection based on configuration.
func TestContainerTokenStore(t *testing.T) {
	t.Run("memory store when no path is configured", func(t *testing.T) {
		container := NewContainer(testConfig())

		store, err := container.TokenStore()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store == nil {
			t.Fatal("expected non-nil store")
		}
	})

	t.Run("file store when a path is configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorePath = filepath.Join(t.TempDir(), "tokens.db")
		cfg.StoreKey = hex.EncodeToString(make([]byte, 32))

		container := NewContainer(cfg)

		store, err := container.TokenStore()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store == nil {
			t.Fatal("expected non-nil store")
		}
	})

	t.Run("invalid store key", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorePath = filepath.Join(t.TempDir(), "tokens.db")
		cfg.StoreKey = "not-hex"

		container := NewContainer(cfg)

		if _, err := container.TokenStore(); err == nil {
			t.Fatal("expected an error for a malformed store key")
		}

		// The error must be sticky on subsequent accesses.
		if _, err := container.TokenStore(); err == nil {
			t.Fatal("expected the stored error on repeated access")
		}
	})
}

// TestContainerTokenizationUseCase verifies that the coordinator can be assembled.
func TestContainerTokenizationUseCase(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	container := NewContainer(cfg)

	useCase, err := container.TokenizationUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil use case")
	}

	useCase2, err := container.TokenizationUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase != useCase2 {
		t.Error("expected same use case instance on multiple calls")
	}
}

// TestContainerMetricsDisabled verifies the metrics surface when metrics are off.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil metrics provider with metrics disabled")
	}

	flowMetrics, err := container.FlowMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flowMetrics == nil {
		t.Error("expected a no-op flow metrics recorder with metrics disabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer != nil {
		t.Error("expected nil metrics server with metrics disabled")
	}
}

// TestContainerMetricsEnabled verifies the metrics surface when metrics are on.
func TestContainerMetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true

	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected non-nil metrics provider")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer == nil {
		t.Fatal("expected non-nil metrics server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := container.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

// TestContainerHTTPServer verifies that the HTTP server can be assembled.
func TestContainerHTTPServer(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	container := NewContainer(cfg)

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
	if server.GetHandler() == nil {
		t.Error("expected a registered handler")
	}
}

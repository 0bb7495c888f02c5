// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/metric"

	authService "github.com/yoomoney/checkout/internal/auth/service"
	"github.com/yoomoney/checkout/internal/config"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/http"
	"github.com/yoomoney/checkout/internal/keyvalue"
	"github.com/yoomoney/checkout/internal/metrics"
	paymentsDomain "github.com/yoomoney/checkout/internal/payments/domain"
	checkoutHTTP "github.com/yoomoney/checkout/internal/payments/http"
	paymentsService "github.com/yoomoney/checkout/internal/payments/service"
	paymentsUsecase "github.com/yoomoney/checkout/internal/payments/usecase"
	"github.com/yoomoney/checkout/internal/profiling"
	"github.com/yoomoney/checkout/internal/sandbox"
	sandboxHTTP "github.com/yoomoney/checkout/internal/sandbox/http"
	"github.com/yoomoney/checkout/internal/webview"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	flowMetrics     metrics.FlowMetrics
	tokenStore      keyvalue.Store

	// Services
	profilingService *profiling.Service
	paymentService   paymentsService.PaymentService
	authorization    *authService.AuthorizationService

	// Use Cases
	tokenizationUseCase paymentsUsecase.TokenizationUseCase

	// Sandbox
	gateway *sandbox.Gateway

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	metricsProviderInit     sync.Once
	flowMetricsInit         sync.Once
	tokenStoreInit          sync.Once
	profilingServiceInit    sync.Once
	paymentServiceInit      sync.Once
	authorizationInit       sync.Once
	tokenizationUseCaseInit sync.Once
	gatewayInit             sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// FlowMetrics returns the checkout flow metrics recorder. A no-op recorder
// is returned when metrics are disabled.
func (c *Container) FlowMetrics() (metrics.FlowMetrics, error) {
	var err error
	c.flowMetricsInit.Do(func() {
		c.flowMetrics, err = c.initFlowMetrics()
		if err != nil {
			c.initErrors["flowMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["flowMetrics"]; exists {
		return nil, storedErr
	}
	return c.flowMetrics, nil
}

// TokenStore returns the key-value store holding wallet tokens.
func (c *Container) TokenStore() (keyvalue.Store, error) {
	var err error
	c.tokenStoreInit.Do(func() {
		c.tokenStore, err = c.initTokenStore()
		if err != nil {
			c.initErrors["tokenStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenStore"]; exists {
		return nil, storedErr
	}
	return c.tokenStore, nil
}

// ProfilingService returns the device profiling session service.
func (c *Container) ProfilingService() *profiling.Service {
	c.profilingServiceInit.Do(func() {
		c.profilingService = profiling.NewService(profiling.LocalFetch, c.config.ProfilingTimeout)
	})
	return c.profilingService
}

// PaymentService returns the payments API client.
func (c *Container) PaymentService() paymentsService.PaymentService {
	c.paymentServiceInit.Do(func() {
		c.paymentService = paymentsService.NewHTTPPaymentService(
			c.config.APIBaseURL,
			c.config.ClientApplicationKey,
			c.config.GatewayID,
			c.config.APITimeout,
			c.Logger(),
		)
	})
	return c.paymentService
}

// AuthorizationService returns the wallet authorization service.
func (c *Container) AuthorizationService() (*authService.AuthorizationService, error) {
	var err error
	c.authorizationInit.Do(func() {
		c.authorization, err = c.initAuthorizationService()
		if err != nil {
			c.initErrors["authorization"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorization"]; exists {
		return nil, storedErr
	}
	return c.authorization, nil
}

// TokenizationUseCase returns the tokenization coordinator for the configured
// charge, decorated with metrics when they are enabled.
func (c *Container) TokenizationUseCase() (paymentsUsecase.TokenizationUseCase, error) {
	var err error
	c.tokenizationUseCaseInit.Do(func() {
		c.tokenizationUseCase, err = c.initTokenizationUseCase()
		if err != nil {
			c.initErrors["tokenizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenizationUseCase, nil
}

// Gateway returns the sandbox payments gateway.
func (c *Container) Gateway() *sandbox.Gateway {
	c.gatewayInit.Do(func() {
		c.gateway = sandbox.NewGateway(c.Logger())
	})
	return c.gateway
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initFlowMetrics() (metrics.FlowMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for flow metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpFlowMetrics(), nil
	}

	flowMetrics, err := metrics.NewFlowMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create flow metrics: %w", err)
	}
	return flowMetrics, nil
}

// initTokenStore selects the encrypted file store when a path is configured
// and falls back to the in-memory store otherwise.
func (c *Container) initTokenStore() (keyvalue.Store, error) {
	if c.config.StorePath == "" {
		return keyvalue.NewMemoryStore(), nil
	}

	key, err := hex.DecodeString(c.config.StoreKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode store key")
	}

	store, err := keyvalue.NewFileStore(c.config.StorePath, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return store, nil
}

func (c *Container) initAuthorizationService() (*authService.AuthorizationService, error) {
	store, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for authorization service: %w", err)
	}

	loginClient := authService.NewHTTPWalletLoginClient(
		c.config.APIBaseURL,
		c.config.ClientApplicationKey,
		c.config.APITimeout,
		c.Logger(),
	)

	instanceName, err := os.Hostname()
	if err != nil || instanceName == "" {
		instanceName = "checkout-app"
	}

	return authService.NewAuthorizationService(store, loginClient, instanceName, c.Logger()), nil
}

func (c *Container) initTokenizationUseCase() (paymentsUsecase.TokenizationUseCase, error) {
	authorization, err := c.AuthorizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization service for coordinator: %w", err)
	}

	amount := paymentsDomain.MonetaryAmount{
		Value:    c.config.ChargeValue,
		Currency: c.config.ChargeCurrency,
	}

	coordinator := paymentsUsecase.NewTokenizationCoordinator(
		c.PaymentService(),
		authorization,
		c.ProfilingService(),
		amount,
		c.Logger(),
	)

	flowMetrics, err := c.FlowMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get flow metrics for coordinator: %w", err)
	}

	return paymentsUsecase.NewTokenizationUseCaseWithMetrics(coordinator, flowMetrics), nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	useCase, err := c.TokenizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenization use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	gatewayHandler := sandboxHTTP.NewGatewayHandler(c.Gateway(), c.Logger())
	checkoutHandler := checkoutHTTP.NewCheckoutHandler(useCase, c.Logger())
	watcher := webview.NewWatcher(webview.NewPolicy(c.config.RedirectURL), nil)
	confirmationHandler := checkoutHTTP.NewConfirmationHandler(watcher, c.Logger())

	serverConfig := http.Config{
		Host:                 c.config.ServerHost,
		Port:                 c.config.ServerPort,
		ClientApplicationKey: c.config.ClientApplicationKey,
		RateLimitEnabled:     c.config.RateLimitEnabled,
		RateLimitRPS:         c.config.RateLimitRequestsPerSec,
		RateLimitBurst:       c.config.RateLimitBurst,
		CORSEnabled:          c.config.CORSEnabled,
		CORSAllowOrigins:     c.config.CORSAllowOrigins,
		MetricsNamespace:     c.config.MetricsNamespace,
	}

	var meterProvider metric.MeterProvider
	if provider != nil {
		meterProvider = provider.MeterProvider()
	}

	return http.NewServer(serverConfig, gatewayHandler, checkoutHandler, confirmationHandler, meterProvider, c.Logger()), nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

// Package http provides the HTTP server hosting the sandbox gateway and the
// checkout API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/yoomoney/checkout/internal/metrics"
	checkoutHTTP "github.com/yoomoney/checkout/internal/payments/http"
	sandboxHTTP "github.com/yoomoney/checkout/internal/sandbox/http"
)

// Config carries the server settings.
type Config struct {
	Host                 string
	Port                 int
	ClientApplicationKey string
	RateLimitEnabled     bool
	RateLimitRPS         float64
	RateLimitBurst       int
	CORSEnabled          bool
	CORSAllowOrigins     string
	MetricsNamespace     string
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the HTTP server and registers all routes. meterProvider
// may be nil to disable HTTP metrics.
func NewServer(
	cfg Config,
	gatewayHandler *sandboxHTTP.GatewayHandler,
	checkoutHandler *checkoutHTTP.CheckoutHandler,
	confirmationHandler *checkoutHTTP.ConfirmationHandler,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", healthHandler)

	// Sandbox gateway API, authenticated by the client application key.
	api := router.Group("/api/v1")
	api.Use(sandboxHTTP.ClientKeyMiddleware(cfg.ClientApplicationKey, logger))
	api.POST("/payment_options", gatewayHandler.PaymentOptionsHandler)
	tokensHandlers := []gin.HandlerFunc{gatewayHandler.TokensHandler}
	if cfg.RateLimitEnabled {
		tokensHandlers = []gin.HandlerFunc{
			sandboxHTTP.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
			gatewayHandler.TokensHandler,
		}
	}
	api.POST("/tokens", tokensHandlers...)
	api.POST("/wallet/login", gatewayHandler.WalletLoginHandler)
	api.POST("/wallet/resend_code", gatewayHandler.ResendCodeHandler)
	api.POST("/wallet/check_user_answer", gatewayHandler.CheckUserAnswerHandler)

	// Checkout API over the tokenization coordinator.
	checkout := router.Group("/v1/checkout")
	checkout.GET("/payment_options", checkoutHandler.PaymentOptionsHandler)
	checkout.POST("/tokenize", checkoutHandler.TokenizeHandler)
	checkout.POST("/wallet/login", checkoutHandler.WalletLoginHandler)
	checkout.POST("/wallet/resend_code", checkoutHandler.ResendCodeHandler)
	checkout.POST("/wallet/check_user_answer", checkoutHandler.CheckUserAnswerHandler)
	checkout.GET("/state", checkoutHandler.StateHandler)
	checkout.GET("/confirmation", confirmationHandler.StateHandler)
	checkout.POST("/confirmation/navigations", confirmationHandler.NavigationHandler)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

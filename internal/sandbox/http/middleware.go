// Package http provides the HTTP surface of the sandbox gateway: the
// payments API endpoints the checkout clients talk to.
package http

import (
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/httputil"
)

// Request headers carrying per-call credentials, mirrored from the client.
const (
	HeaderWalletAuthorization = "Wallet-Authorization"
	HeaderProfilingSession    = "X-Profiling-Session-Id"
)

// ClientKeyMiddleware authenticates requests by the merchant's client
// application key, sent as a Basic Authorization header.
func ClientKeyMiddleware(clientApplicationKey string, logger *slog.Logger) gin.HandlerFunc {
	expected := base64.StdEncoding.EncodeToString([]byte(clientApplicationKey))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expected)) != 1 {
			logger.Debug("authentication failed: wrong client application key")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// walletToken extracts the wallet bearer token from a request, empty when
// absent.
func walletToken(c *gin.Context) string {
	header := c.GetHeader(HeaderWalletAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

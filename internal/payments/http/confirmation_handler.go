package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoomoney/checkout/internal/httputil"
	"github.com/yoomoney/checkout/internal/payments/http/dto"
	"github.com/yoomoney/checkout/internal/validation"
	"github.com/yoomoney/checkout/internal/webview"
)

// ConfirmationHandler tracks the 3-D Secure confirmation of the current
// checkout session. The embedded browser reports every navigation request
// here; a navigation matching the return URL ends the challenge.
type ConfirmationHandler struct {
	watcher *webview.Watcher
	logger  *slog.Logger
}

// NewConfirmationHandler creates a confirmation handler watching for the
// given return URLs.
func NewConfirmationHandler(watcher *webview.Watcher, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{
		watcher: watcher,
		logger:  logger,
	}
}

// NavigationHandler decides whether a navigation request terminates the
// bank authentication page. The caller must cancel the navigation when the
// response reports completion.
// POST /v1/checkout/confirmation/navigations
func (h *ConfirmationHandler) NavigationHandler(c *gin.Context) {
	var request dto.NavigationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, validation.WrapValidationError(err), h.logger)
		return
	}

	completed := h.watcher.ShouldProcessRequest(request.URL)
	if completed {
		h.logger.Info("confirmation redirect reached", slog.String("url", request.URL))
	}

	c.JSON(http.StatusOK, dto.NewNavigationResponse(completed, h.watcher.State()))
}

// StateHandler reports whether the confirmation challenge has finished.
// GET /v1/checkout/confirmation
func (h *ConfirmationHandler) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewConfirmationStateResponse(h.watcher.State()))
}

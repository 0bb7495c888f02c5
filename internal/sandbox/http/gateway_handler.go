package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/httputil"
	"github.com/yoomoney/checkout/internal/payments/domain"
	"github.com/yoomoney/checkout/internal/sandbox"
	customValidation "github.com/yoomoney/checkout/internal/validation"
)

// GatewayHandler handles the sandbox gateway endpoints.
type GatewayHandler struct {
	gateway *sandbox.Gateway
	logger  *slog.Logger
}

// NewGatewayHandler creates a new gateway handler with required dependencies.
func NewGatewayHandler(gateway *sandbox.Gateway, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// PaymentOptionsHandler lists the sandbox funding sources for a charge.
// POST /api/v1/payment_options
func (h *GatewayHandler) PaymentOptionsHandler(c *gin.Context) {
	var req paymentOptionsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	walletAuthorized := walletToken(c) != ""
	options := h.gateway.PaymentOptions(req.Amount, walletAuthorized, req.SavePaymentMethod)

	c.JSON(http.StatusOK, paymentOptionsResponse{Items: options})
}

// TokensHandler issues a payment token for an instrument.
// POST /api/v1/tokens
// Returns 200 OK with the payment token.
func (h *GatewayHandler) TokensHandler(c *gin.Context) {
	var req tokensRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	method := domain.PaymentMethodType(req.PaymentMethodData.Type)

	// Wallet-funded instruments need a wallet authorization.
	if method == domain.MethodWallet && walletToken(c) == "" {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrUnauthorized, "wallet authorization required"),
			h.logger)
		return
	}

	var cardNumber string
	if req.PaymentMethodData.Card != nil {
		cardNumber = req.PaymentMethodData.Card.Number
	}

	tokens, err := h.gateway.IssueToken(method, cardNumber)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// WalletLoginHandler starts a scripted wallet login.
// POST /api/v1/wallet/login
func (h *GatewayHandler) WalletLoginHandler(c *gin.Context) {
	var req walletLoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, h.gateway.WalletLogin())
}

// ResendCodeHandler replaces a pending challenge with a fresh one.
// POST /api/v1/wallet/resend_code
func (h *GatewayHandler) ResendCodeHandler(c *gin.Context) {
	var req resendCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	state, err := h.gateway.ResendCode(req.AuthContextID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, state)
}

// CheckUserAnswerHandler verifies a challenge answer.
// POST /api/v1/wallet/check_user_answer
func (h *GatewayHandler) CheckUserAnswerHandler(c *gin.Context) {
	var req checkUserAnswerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	response, err := h.gateway.CheckUserAnswer(req.AuthContextID, req.Answer, req.ProcessID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

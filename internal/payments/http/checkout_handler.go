// Package http provides HTTP handlers exposing the checkout flow: payment
// option discovery, tokenization and wallet authorization.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/httputil"
	"github.com/yoomoney/checkout/internal/payments/http/dto"
	paymentsUseCase "github.com/yoomoney/checkout/internal/payments/usecase"
	customValidation "github.com/yoomoney/checkout/internal/validation"
)

// CheckoutHandler handles HTTP requests for the checkout flow. It coordinates
// submissions with the TokenizationUseCase.
type CheckoutHandler struct {
	useCase paymentsUseCase.TokenizationUseCase
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler with required dependencies.
func NewCheckoutHandler(
	useCase paymentsUseCase.TokenizationUseCase,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// PaymentOptionsHandler lists the funding sources for the session's charge.
// GET /v1/checkout/payment_options?save_payment_method=true
func (h *CheckoutHandler) PaymentOptionsHandler(c *gin.Context) {
	savePaymentMethod := false
	if raw := c.Query("save_payment_method"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				apperrors.New("invalid save_payment_method parameter: must be a boolean"),
				h.logger)
			return
		}
		savePaymentMethod = parsed
	}

	options, err := h.useCase.FetchPaymentOptions(c.Request.Context(), savePaymentMethod)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentOptionsResponse{Items: options})
}

// TokenizeHandler runs one tokenization submission.
// POST /v1/checkout/tokenize
// Returns 201 Created with the payment token.
func (h *CheckoutHandler) TokenizeHandler(c *gin.Context) {
	var req dto.TokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req.Normalize()

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := req.ToDomain()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tokens, err := h.useCase.Tokenize(c.Request.Context(), data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenizeResponse{PaymentToken: tokens.PaymentToken})
}

// WalletLoginHandler starts a wallet authorization for the session.
// POST /v1/checkout/wallet/login
func (h *CheckoutHandler) WalletLoginHandler(c *gin.Context) {
	var req dto.WalletLoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	response, err := h.useCase.LoginInWallet(c.Request.Context(), req.ReusableToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewWalletLoginResponse(response))
}

// ResendCodeHandler requests a fresh challenge code for a pending login.
// POST /v1/checkout/wallet/resend_code
func (h *CheckoutHandler) ResendCodeHandler(c *gin.Context) {
	var req dto.ResendCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	state, err := h.useCase.ResendCode(
		c.Request.Context(),
		req.AuthContextID,
		authDomain.AuthType(req.AuthType),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ChallengeResponse{
		Type:               string(state.Type),
		AuthContextID:      state.AuthContextID,
		ProcessID:          state.ProcessID,
		CodeLength:         state.CodeLength,
		NextSessionSeconds: state.NextSessionSeconds,
	})
}

// CheckUserAnswerHandler verifies the payer's challenge answer.
// POST /v1/checkout/wallet/check_user_answer
func (h *CheckoutHandler) CheckUserAnswerHandler(c *gin.Context) {
	var req dto.CheckUserAnswerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	response, err := h.useCase.CheckUserAnswer(
		c.Request.Context(),
		req.AuthContextID,
		authDomain.AuthType(req.AuthType),
		req.Answer,
		req.ProcessID,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewWalletLoginResponse(response))
}

// StateHandler reports the coordinator state of the current session.
// GET /v1/checkout/state
func (h *CheckoutHandler) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StateResponse{State: string(h.useCase.State())})
}

// Package httputil provides HTTP utility functions for request and response
// handling in the sandbox backend.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yoomoney/checkout/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON
// response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Code:    "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Code:    "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrAuthTypeUnsupported):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Code:    "auth_type_unsupported",
			Message: "None of the offered authentication types is supported",
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Code:    "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrNetworkUnavailable):
		statusCode = http.StatusBadGateway
		errorResponse = ErrorResponse{
			Code:    "network_unavailable",
			Message: "An upstream service was unreachable",
		}

	case apperrors.Is(err, apperrors.ErrRemoteRejected):
		statusCode = http.StatusPaymentRequired
		errorResponse = ErrorResponse{
			Code:    "rejected",
			Message: "The payment gateway rejected the request",
		}

	case apperrors.Is(err, apperrors.ErrSubmissionInFlight):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Code:    "submission_in_flight",
			Message: "Another submission is already running",
		}

	default:
		// Unknown errors stay opaque to the client.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Code:    "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON
// or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for
// validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code:    "validation_error",
		Message: err.Error(),
	})
}

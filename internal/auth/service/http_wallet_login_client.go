package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	paymentsDomain "github.com/yoomoney/checkout/internal/payments/domain"
)

type httpWalletLoginClient struct {
	client               *http.Client
	baseURL              string
	clientApplicationKey string
	logger               *slog.Logger
}

// NewHTTPWalletLoginClient creates a WalletLoginClient backed by the wallet
// login HTTP API at baseURL.
func NewHTTPWalletLoginClient(
	baseURL string,
	clientApplicationKey string,
	timeout time.Duration,
	logger *slog.Logger,
) WalletLoginClient {
	return &httpWalletLoginClient{
		client:               &http.Client{Timeout: timeout},
		baseURL:              strings.TrimSuffix(baseURL, "/"),
		clientApplicationKey: clientApplicationKey,
		logger:               logger,
	}
}

type walletLoginRequest struct {
	InstanceName       string                         `json:"instance_name"`
	Amount             *paymentsDomain.MonetaryAmount `json:"amount,omitempty"`
	ReusableToken      bool                           `json:"reusable_token"`
	ProfilingSessionID string                         `json:"profiling_session_id"`
}

type resendCodeRequest struct {
	AuthContextID string              `json:"auth_context_id"`
	AuthType      authDomain.AuthType `json:"auth_type"`
}

type checkUserAnswerRequest struct {
	AuthContextID string              `json:"auth_context_id"`
	AuthType      authDomain.AuthType `json:"auth_type"`
	Answer        string              `json:"answer"`
	ProcessID     string              `json:"process_id"`
}

func (c *httpWalletLoginClient) Login(
	ctx context.Context,
	instanceName string,
	amount *paymentsDomain.MonetaryAmount,
	reusableToken bool,
	profilingSessionID string,
) (*authDomain.WalletLoginResponse, error) {
	request := walletLoginRequest{
		InstanceName:       instanceName,
		Amount:             amount,
		ReusableToken:      reusableToken,
		ProfilingSessionID: profilingSessionID,
	}
	var response authDomain.WalletLoginResponse
	if err := c.post(ctx, "/api/v1/wallet/login", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *httpWalletLoginClient) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	request := resendCodeRequest{AuthContextID: authContextID, AuthType: authType}
	var state authDomain.AuthTypeState
	if err := c.post(ctx, "/api/v1/wallet/resend_code", request, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *httpWalletLoginClient) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	request := checkUserAnswerRequest{
		AuthContextID: authContextID,
		AuthType:      authType,
		Answer:        answer,
		ProcessID:     processID,
	}
	var response authDomain.WalletLoginResponse
	if err := c.post(ctx, "/api/v1/wallet/check_user_answer", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *httpWalletLoginClient) post(ctx context.Context, path string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode request body")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.clientApplicationKey)))

	response, err := c.client.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Warn("wallet API unreachable",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperrors.Wrapf(apperrors.ErrNetworkUnavailable, "POST %s: %v", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return c.decodeError(path, response)
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return apperrors.Wrap(err, "failed to decode response body")
	}
	return nil
}

func (c *httpWalletLoginClient) decodeError(path string, response *http.Response) error {
	var apiError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, readErr := io.ReadAll(io.LimitReader(response.Body, 1<<16))
	if readErr == nil {
		_ = json.Unmarshal(raw, &apiError)
	}
	message := apiError.Message
	if message == "" {
		message = fmt.Sprintf("wallet API returned status %d", response.StatusCode)
	}

	c.logger.Warn("wallet API request failed",
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.String("code", apiError.Code),
	)

	switch response.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "%s", message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "%s", message)
	default:
		return apperrors.Wrapf(apperrors.ErrRemoteRejected, "%s", message)
	}
}

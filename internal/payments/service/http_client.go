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

	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

// Request headers carrying per-call credentials.
const (
	HeaderWalletAuthorization = "Wallet-Authorization"
	HeaderProfilingSession    = "X-Profiling-Session-Id"
)

type httpPaymentService struct {
	client               *http.Client
	baseURL              string
	clientApplicationKey string
	gatewayID            string
	logger               *slog.Logger
}

// NewHTTPPaymentService creates a PaymentService backed by the payments HTTP
// API at baseURL. Every request authenticates with the merchant's client
// application key. gatewayID may be empty; when set it scopes payment
// option lookups for merchants with several gateways.
func NewHTTPPaymentService(
	baseURL string,
	clientApplicationKey string,
	gatewayID string,
	timeout time.Duration,
	logger *slog.Logger,
) PaymentService {
	return &httpPaymentService{
		client:               &http.Client{Timeout: timeout},
		baseURL:              strings.TrimSuffix(baseURL, "/"),
		clientApplicationKey: clientApplicationKey,
		gatewayID:            gatewayID,
		logger:               logger,
	}
}

type paymentOptionsRequest struct {
	Amount            domain.MonetaryAmount `json:"amount"`
	GatewayID         string                `json:"gateway_id,omitempty"`
	SavePaymentMethod bool                  `json:"save_payment_method"`
}

type paymentOptionsResponse struct {
	Items []domain.PaymentOption `json:"items"`
}

type tokensRequest struct {
	Amount            domain.MonetaryAmount `json:"amount"`
	PaymentMethodData paymentMethodData     `json:"payment_method_data"`
	Confirmation      *domain.Confirmation  `json:"confirmation,omitempty"`
	SavePaymentMethod bool                  `json:"save_payment_method"`
}

// paymentMethodData is the wire form of a payment instrument, discriminated
// by Type.
type paymentMethodData struct {
	Type            domain.PaymentMethodType `json:"type"`
	Card            *domain.BankCard         `json:"card,omitempty"`
	PaymentMethodID string                   `json:"payment_method_id,omitempty"`
	CardID          string                   `json:"card_id,omitempty"`
	CSC             string                   `json:"csc,omitempty"`
	PaymentData     string                   `json:"payment_data,omitempty"`
	PhoneNumber     string                   `json:"phone_number,omitempty"`
}

type apiErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *httpPaymentService) FetchPaymentOptions(
	ctx context.Context,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
	savePaymentMethod bool,
) ([]domain.PaymentOption, error) {
	request := paymentOptionsRequest{
		Amount:            amount,
		GatewayID:         s.gatewayID,
		SavePaymentMethod: savePaymentMethod,
	}
	var response paymentOptionsResponse
	err := s.post(ctx, "/api/v1/payment_options", request, walletToken, profilingSessionID, &response)
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

func (s *httpPaymentService) TokenizeBankCard(
	ctx context.Context,
	data domain.BankCardData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	card := data.BankCard
	return s.tokenize(ctx, tokensRequest{
		Amount: amount,
		PaymentMethodData: paymentMethodData{
			Type: domain.MethodBankCard,
			Card: &card,
		},
		Confirmation:      &data.Confirmation,
		SavePaymentMethod: data.SavePaymentMethod,
	}, "", "")
}

func (s *httpPaymentService) TokenizeRepeatBankCard(
	ctx context.Context,
	data domain.RepeatBankCardData,
	amount domain.MonetaryAmount,
	profilingSessionID string,
) (*domain.Tokens, error) {
	return s.tokenize(ctx, tokensRequest{
		Amount: amount,
		PaymentMethodData: paymentMethodData{
			Type:            domain.MethodBankCard,
			PaymentMethodID: data.PaymentMethodID,
			CSC:             data.CSC,
		},
		Confirmation:      &data.Confirmation,
		SavePaymentMethod: data.SavePaymentMethod,
	}, "", profilingSessionID)
}

func (s *httpPaymentService) TokenizeWallet(
	ctx context.Context,
	data domain.WalletData,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
) (*domain.Tokens, error) {
	return s.tokenize(ctx, tokensRequest{
		Amount:            amount,
		PaymentMethodData: paymentMethodData{Type: domain.MethodWallet},
		Confirmation:      &data.Confirmation,
		SavePaymentMethod: data.SavePaymentMethod,
	}, walletToken, profilingSessionID)
}

func (s *httpPaymentService) TokenizeLinkedBankCard(
	ctx context.Context,
	data domain.LinkedBankCardData,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
) (*domain.Tokens, error) {
	return s.tokenize(ctx, tokensRequest{
		Amount: amount,
		PaymentMethodData: paymentMethodData{
			Type:   domain.MethodWallet,
			CardID: data.CardID,
			CSC:    data.CSC,
		},
		Confirmation:      &data.Confirmation,
		SavePaymentMethod: data.SavePaymentMethod,
	}, walletToken, profilingSessionID)
}

func (s *httpPaymentService) TokenizeApplePay(
	ctx context.Context,
	data domain.ApplePayData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	return s.tokenize(ctx, tokensRequest{
		Amount: amount,
		PaymentMethodData: paymentMethodData{
			Type:        domain.MethodApplePay,
			PaymentData: data.PaymentData,
		},
		SavePaymentMethod: data.SavePaymentMethod,
	}, "", "")
}

func (s *httpPaymentService) TokenizeSberbank(
	ctx context.Context,
	data domain.SberbankData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	return s.tokenize(ctx, tokensRequest{
		Amount: amount,
		PaymentMethodData: paymentMethodData{
			Type:        domain.MethodSberbank,
			PhoneNumber: data.PhoneNumber,
		},
		Confirmation:      &data.Confirmation,
		SavePaymentMethod: data.SavePaymentMethod,
	}, "", "")
}

func (s *httpPaymentService) tokenize(
	ctx context.Context,
	request tokensRequest,
	walletToken string,
	profilingSessionID string,
) (*domain.Tokens, error) {
	var tokens domain.Tokens
	if err := s.post(ctx, "/api/v1/tokens", request, walletToken, profilingSessionID, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (s *httpPaymentService) post(
	ctx context.Context,
	path string,
	payload any,
	walletToken string,
	profilingSessionID string,
	result any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode request body")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(s.clientApplicationKey)))
	if walletToken != "" {
		request.Header.Set(HeaderWalletAuthorization, "Bearer "+walletToken)
	}
	if profilingSessionID != "" {
		request.Header.Set(HeaderProfilingSession, profilingSessionID)
	}

	response, err := s.client.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.logger.Warn("payments API unreachable",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperrors.Wrapf(apperrors.ErrNetworkUnavailable, "POST %s: %v", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return s.decodeError(path, response)
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return apperrors.Wrap(err, "failed to decode response body")
	}
	return nil
}

func (s *httpPaymentService) decodeError(path string, response *http.Response) error {
	var apiError apiErrorResponse
	raw, readErr := io.ReadAll(io.LimitReader(response.Body, 1<<16))
	if readErr == nil {
		_ = json.Unmarshal(raw, &apiError)
	}
	message := apiError.Message
	if message == "" {
		message = fmt.Sprintf("payments API returned status %d", response.StatusCode)
	}

	s.logger.Warn("payments API request failed",
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.String("code", apiError.Code),
	)

	switch response.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "%s", message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "%s", message)
	case http.StatusNotFound:
		return apperrors.Wrapf(apperrors.ErrNotFound, "%s", message)
	default:
		return apperrors.Wrapf(apperrors.ErrRemoteRejected, "%s", message)
	}
}

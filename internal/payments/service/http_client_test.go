package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAmount() domain.MonetaryAmount {
	return domain.MonetaryAmount{Value: "100.00", Currency: "RUB"}
}

func TestHTTPPaymentService_FetchPaymentOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("sends credentials and decodes options", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/payment_options", r.URL.Path)

			expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-key"))
			assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))
			assert.Equal(t, "Bearer wallet-token", r.Header.Get(HeaderWalletAuthorization))
			assert.Equal(t, "session-1", r.Header.Get(HeaderProfilingSession))

			var request paymentOptionsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "100.00", request.Amount.Value)
			assert.True(t, request.SavePaymentMethod)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(paymentOptionsResponse{
				Items: []domain.PaymentOption{
					{PaymentMethodType: domain.MethodBankCard, Charge: testAmount()},
					{PaymentMethodType: domain.MethodWallet, Charge: testAmount()},
				},
			})
		}))
		defer server.Close()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		options, err := service.FetchPaymentOptions(ctx, testAmount(), "wallet-token", "session-1", true)
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, domain.MethodBankCard, options[0].PaymentMethodType)
	})

	t.Run("anonymous fetch omits wallet headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get(HeaderWalletAuthorization))
			assert.Empty(t, r.Header.Get(HeaderProfilingSession))
			_ = json.NewEncoder(w).Encode(paymentOptionsResponse{})
		}))
		defer server.Close()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		_, err := service.FetchPaymentOptions(ctx, testAmount(), "", "", false)
		require.NoError(t, err)
	})
}

func TestHTTPPaymentService_Tokenize(t *testing.T) {
	ctx := context.Background()

	t.Run("bank card request carries the card payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/tokens", r.URL.Path)

			var request tokensRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, domain.MethodBankCard, request.PaymentMethodData.Type)
			require.NotNil(t, request.PaymentMethodData.Card)
			assert.Equal(t, "5189010000000446", request.PaymentMethodData.Card.Number)

			_ = json.NewEncoder(w).Encode(domain.Tokens{PaymentToken: "token-1"})
		}))
		defer server.Close()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		tokens, err := service.TokenizeBankCard(ctx, domain.BankCardData{
			BankCard:     domain.BankCard{Number: "5189010000000446", ExpiryYear: "2030", ExpiryMonth: "12", CSC: "123"},
			Confirmation: domain.Confirmation{Type: domain.ConfirmationRedirect, ReturnURL: "https://merchant.example/return"},
		}, testAmount())
		require.NoError(t, err)
		assert.Equal(t, "token-1", tokens.PaymentToken)
	})

	t.Run("linked card request carries wallet credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer wallet-token", r.Header.Get(HeaderWalletAuthorization))
			assert.Equal(t, "session-1", r.Header.Get(HeaderProfilingSession))

			var request tokensRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, domain.MethodWallet, request.PaymentMethodData.Type)
			assert.Equal(t, "card-1", request.PaymentMethodData.CardID)

			_ = json.NewEncoder(w).Encode(domain.Tokens{PaymentToken: "token-2"})
		}))
		defer server.Close()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		tokens, err := service.TokenizeLinkedBankCard(ctx, domain.LinkedBankCardData{
			CardID: "card-1",
			CSC:    "123",
		}, testAmount(), "wallet-token", "session-1")
		require.NoError(t, err)
		assert.Equal(t, "token-2", tokens.PaymentToken)
	})
}

func TestHTTPPaymentService_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		status   int
		expected error
	}{
		{"bad request maps to invalid input", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"unauthorized maps to unauthorized", http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{"not found maps to not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"server error maps to remote rejection", http.StatusInternalServerError, apperrors.ErrRemoteRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(apiErrorResponse{Code: "test", Message: "test failure"})
			}))
			defer server.Close()

			service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
			_, err := service.FetchPaymentOptions(ctx, testAmount(), "", "", false)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("unreachable backend maps to network unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		_, err := service.FetchPaymentOptions(ctx, testAmount(), "", "", false)
		assert.ErrorIs(t, err, apperrors.ErrNetworkUnavailable)
	})

	t.Run("canceled context is not remapped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		service := NewHTTPPaymentService(server.URL, "client-key", "", time.Second, testLogger())
		_, err := service.FetchPaymentOptions(canceled, testAmount(), "", "", false)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNetworkUnavailable)
	})
}

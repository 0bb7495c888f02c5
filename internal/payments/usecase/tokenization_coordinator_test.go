package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
	serviceMocks "github.com/yoomoney/checkout/internal/payments/service/mocks"
	"github.com/yoomoney/checkout/internal/profiling"
)

// mockWalletAuthorizer is a mock implementation of WalletAuthorizer.
type mockWalletAuthorizer struct {
	mock.Mock
}

func (m *mockWalletAuthorizer) WalletToken() (string, bool) {
	args := m.Called()
	return args.String(0), args.Bool(1)
}

func (m *mockWalletAuthorizer) LoginInWallet(
	ctx context.Context,
	reusableToken bool,
	amount domain.MonetaryAmount,
	profilingSessionID string,
) (*authDomain.WalletLoginResponse, error) {
	args := m.Called(ctx, reusableToken, amount, profilingSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.WalletLoginResponse), args.Error(1)
}

func (m *mockWalletAuthorizer) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	args := m.Called(ctx, authContextID, authType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthTypeState), args.Error(1)
}

func (m *mockWalletAuthorizer) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	args := m.Called(ctx, authContextID, authType, answer, processID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.WalletLoginResponse), args.Error(1)
}

// stubSessionProvider returns a fixed session id or error and counts calls.
type stubSessionProvider struct {
	mu        sync.Mutex
	sessionID string
	err       error
	calls     int
}

func (s *stubSessionProvider) SessionID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.sessionID, s.err
}

func testCoordinator(
	payments *serviceMocks.MockPaymentService,
	auth *mockWalletAuthorizer,
	sessions profiling.SessionProvider,
) TokenizationUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	amount := domain.MonetaryAmount{Value: "250.00", Currency: "RUB"}
	return NewTokenizationCoordinator(payments, auth, sessions, amount, logger)
}

func TestTokenizationCoordinator_Tokenize(t *testing.T) {
	ctx := context.Background()
	amount := domain.MonetaryAmount{Value: "250.00", Currency: "RUB"}

	t.Run("fresh bank card skips the profiling fetch", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.BankCardData{
			BankCard: domain.BankCard{Number: "5189010000000446", ExpiryYear: "2030", ExpiryMonth: "12", CSC: "123"},
		}
		payments.On("TokenizeBankCard", ctx, data, amount).
			Return(&domain.Tokens{PaymentToken: "token-1"}, nil).
			Once()

		tokens, err := coordinator.Tokenize(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "token-1", tokens.PaymentToken)
		assert.Equal(t, 0, sessions.calls)
		assert.Equal(t, StateSucceeded, coordinator.State())
		payments.AssertExpectations(t)
	})

	t.Run("saved card fetches the profiling session first", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.RepeatBankCardData{PaymentMethodID: "pm-1", CSC: "123"}
		payments.On("TokenizeRepeatBankCard", ctx, data, amount, "session-1").
			Return(&domain.Tokens{PaymentToken: "token-2"}, nil).
			Once()

		tokens, err := coordinator.Tokenize(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "token-2", tokens.PaymentToken)
		assert.Equal(t, 1, sessions.calls)
		payments.AssertExpectations(t)
	})

	t.Run("profiling failure surfaces as a connectivity error without submitting", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{err: profiling.ErrConnectionFailed}
		coordinator := testCoordinator(payments, auth, sessions)

		_, err := coordinator.Tokenize(ctx, domain.RepeatBankCardData{PaymentMethodID: "pm-1"})
		assert.ErrorIs(t, err, apperrors.ErrNetworkUnavailable)
		assert.Equal(t, StateFailed, coordinator.State())
		payments.AssertNotCalled(t, "TokenizeRepeatBankCard")
	})

	t.Run("wallet payment requires a stored wallet token", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		auth.On("WalletToken").Return("", false).Once()

		_, err := coordinator.Tokenize(ctx, domain.WalletData{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Equal(t, StateFailed, coordinator.State())
		payments.AssertNotCalled(t, "TokenizeWallet")
	})

	t.Run("wallet payment passes token and session through", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.WalletData{SavePaymentMethod: true}
		auth.On("WalletToken").Return("wallet-token", true).Once()
		payments.On("TokenizeWallet", ctx, data, amount, "wallet-token", "session-1").
			Return(&domain.Tokens{PaymentToken: "token-3"}, nil).
			Once()

		tokens, err := coordinator.Tokenize(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "token-3", tokens.PaymentToken)
		payments.AssertExpectations(t)
	})

	t.Run("linked card passes token and session through", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.LinkedBankCardData{CardID: "card-1", CSC: "123"}
		auth.On("WalletToken").Return("wallet-token", true).Once()
		payments.On("TokenizeLinkedBankCard", ctx, data, amount, "wallet-token", "session-1").
			Return(&domain.Tokens{PaymentToken: "token-4"}, nil).
			Once()

		tokens, err := coordinator.Tokenize(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "token-4", tokens.PaymentToken)
		payments.AssertExpectations(t)
	})

	t.Run("backend rejection fails the submission", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.SberbankData{PhoneNumber: "79991234567"}
		payments.On("TokenizeSberbank", ctx, data, amount).
			Return(nil, domain.ErrCardDeclined).
			Once()

		_, err := coordinator.Tokenize(ctx, data)
		assert.ErrorIs(t, err, apperrors.ErrRemoteRejected)
		assert.Equal(t, StateFailed, coordinator.State())
	})

	t.Run("concurrent submission is rejected", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		started := make(chan struct{})
		release := make(chan struct{})
		sessions := &blockingSessionProvider{started: started, release: release}
		coordinator := testCoordinator(payments, auth, sessions)

		data := domain.RepeatBankCardData{PaymentMethodID: "pm-1"}
		payments.On("TokenizeRepeatBankCard", ctx, data, amount, "session-1").
			Return(&domain.Tokens{PaymentToken: "token-5"}, nil).
			Once()

		done := make(chan error, 1)
		go func() {
			_, err := coordinator.Tokenize(ctx, data)
			done <- err
		}()

		<-started
		_, err := coordinator.Tokenize(ctx, domain.WalletData{})
		assert.ErrorIs(t, err, apperrors.ErrSubmissionInFlight)

		close(release)
		require.NoError(t, <-done)
	})
}

// blockingSessionProvider blocks the first fetch until released.
type blockingSessionProvider struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSessionProvider) SessionID(ctx context.Context) (string, error) {
	close(b.started)
	<-b.release
	return "session-1", nil
}

func TestTokenizationCoordinator_FetchPaymentOptions(t *testing.T) {
	ctx := context.Background()
	amount := domain.MonetaryAmount{Value: "250.00", Currency: "RUB"}

	t.Run("anonymous fetch skips wallet credentials", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		options := []domain.PaymentOption{{PaymentMethodType: domain.MethodBankCard, Charge: amount}}
		auth.On("WalletToken").Return("", false).Once()
		payments.On("FetchPaymentOptions", ctx, amount, "", "", false).
			Return(options, nil).
			Once()

		result, err := coordinator.FetchPaymentOptions(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, options, result)
		assert.Equal(t, 0, sessions.calls)
	})

	t.Run("authorized fetch carries token and session", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		auth.On("WalletToken").Return("wallet-token", true).Once()
		payments.On("FetchPaymentOptions", ctx, amount, "wallet-token", "session-1", true).
			Return([]domain.PaymentOption{}, nil).
			Once()

		_, err := coordinator.FetchPaymentOptions(ctx, true)
		require.NoError(t, err)
		payments.AssertExpectations(t)
	})
}

func TestTokenizationCoordinator_WalletLogin(t *testing.T) {
	ctx := context.Background()
	amount := domain.MonetaryAmount{Value: "250.00", Currency: "RUB"}

	t.Run("login fetches a profiling session", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		auth.On("LoginInWallet", ctx, false, amount, "session-1").
			Return(&authDomain.WalletLoginResponse{AccessToken: "token"}, nil).
			Once()

		response, err := coordinator.LoginInWallet(ctx, false)
		require.NoError(t, err)
		assert.True(t, response.Authorized())
	})

	t.Run("login fails on profiling connectivity", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{err: profiling.ErrConnectionFailed}
		coordinator := testCoordinator(payments, auth, sessions)

		_, err := coordinator.LoginInWallet(ctx, false)
		assert.ErrorIs(t, err, apperrors.ErrNetworkUnavailable)
		auth.AssertNotCalled(t, "LoginInWallet")
	})

	t.Run("challenge operations pass through", func(t *testing.T) {
		payments := &serviceMocks.MockPaymentService{}
		auth := &mockWalletAuthorizer{}
		sessions := &stubSessionProvider{sessionID: "session-1"}
		coordinator := testCoordinator(payments, auth, sessions)

		state := &authDomain.AuthTypeState{Type: authDomain.AuthTypeSMS, AuthContextID: "ctx-1"}
		auth.On("ResendCode", ctx, "ctx-1", authDomain.AuthTypeSMS).Return(state, nil).Once()
		auth.On("CheckUserAnswer", ctx, "ctx-1", authDomain.AuthTypeSMS, "123456", "proc-1").
			Return(&authDomain.WalletLoginResponse{AccessToken: "token"}, nil).
			Once()

		resent, err := coordinator.ResendCode(ctx, "ctx-1", authDomain.AuthTypeSMS)
		require.NoError(t, err)
		assert.Equal(t, state, resent)

		response, err := coordinator.CheckUserAnswer(ctx, "ctx-1", authDomain.AuthTypeSMS, "123456", "proc-1")
		require.NoError(t, err)
		assert.True(t, response.Authorized())
	})
}

func TestTokenizationCoordinator_State(t *testing.T) {
	payments := &serviceMocks.MockPaymentService{}
	auth := &mockWalletAuthorizer{}
	sessions := &stubSessionProvider{sessionID: "session-1"}
	coordinator := testCoordinator(payments, auth, sessions)

	assert.Equal(t, StateIdle, coordinator.State())
}

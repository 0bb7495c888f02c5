package usecase

import (
	"context"
	"log/slog"
	"sync"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
	"github.com/yoomoney/checkout/internal/payments/service"
	"github.com/yoomoney/checkout/internal/profiling"
)

// tokenizationCoordinator implements TokenizationUseCase for a single
// checkout session with a fixed charge.
type tokenizationCoordinator struct {
	payments  service.PaymentService
	auth      WalletAuthorizer
	profiling profiling.SessionProvider
	amount    domain.MonetaryAmount
	logger    *slog.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
}

// NewTokenizationCoordinator creates a coordinator for one checkout session
// charging the given amount.
func NewTokenizationCoordinator(
	payments service.PaymentService,
	auth WalletAuthorizer,
	sessions profiling.SessionProvider,
	amount domain.MonetaryAmount,
	logger *slog.Logger,
) TokenizationUseCase {
	return &tokenizationCoordinator{
		payments:  payments,
		auth:      auth,
		profiling: sessions,
		amount:    amount,
		logger:    logger,
		state:     StateIdle,
	}
}

func (c *tokenizationCoordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *tokenizationCoordinator) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *tokenizationCoordinator) FetchPaymentOptions(
	ctx context.Context,
	savePaymentMethod bool,
) ([]domain.PaymentOption, error) {
	walletToken, _ := c.auth.WalletToken()

	var sessionID string
	if walletToken != "" {
		// Wallet options are risk-scored, so they need a profiling session.
		var err error
		sessionID, err = c.fetchProfilingSession(ctx)
		if err != nil {
			return nil, err
		}
	}

	return c.payments.FetchPaymentOptions(ctx, c.amount, walletToken, sessionID, savePaymentMethod)
}

// Tokenize runs the submission state machine for one instrument. Instruments
// that replay a stored credential (saved card, wallet, linked card) fetch a
// profiling session first; fresh instruments go straight to submission.
func (c *tokenizationCoordinator) Tokenize(
	ctx context.Context,
	data domain.TokenizeData,
) (*domain.Tokens, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, apperrors.ErrSubmissionInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	tokens, err := c.submit(ctx, data)
	if err != nil {
		c.setState(StateFailed)
		c.logger.Warn("tokenization failed", slog.Any("error", err))
		return nil, err
	}

	c.setState(StateSucceeded)
	c.logger.Info("tokenization succeeded")
	return tokens, nil
}

func (c *tokenizationCoordinator) submit(
	ctx context.Context,
	data domain.TokenizeData,
) (*domain.Tokens, error) {
	switch instrument := data.(type) {
	case domain.BankCardData:
		c.setState(StateSubmitting)
		return c.payments.TokenizeBankCard(ctx, instrument, c.amount)

	case domain.RepeatBankCardData:
		sessionID, err := c.fetchProfilingSession(ctx)
		if err != nil {
			return nil, err
		}
		c.setState(StateSubmitting)
		return c.payments.TokenizeRepeatBankCard(ctx, instrument, c.amount, sessionID)

	case domain.WalletData:
		walletToken, ok := c.auth.WalletToken()
		if !ok {
			return nil, domain.ErrNoWalletToken
		}
		sessionID, err := c.fetchProfilingSession(ctx)
		if err != nil {
			return nil, err
		}
		c.setState(StateSubmitting)
		return c.payments.TokenizeWallet(ctx, instrument, c.amount, walletToken, sessionID)

	case domain.LinkedBankCardData:
		walletToken, ok := c.auth.WalletToken()
		if !ok {
			return nil, domain.ErrNoWalletToken
		}
		sessionID, err := c.fetchProfilingSession(ctx)
		if err != nil {
			return nil, err
		}
		c.setState(StateSubmitting)
		return c.payments.TokenizeLinkedBankCard(ctx, instrument, c.amount, walletToken, sessionID)

	case domain.ApplePayData:
		c.setState(StateSubmitting)
		return c.payments.TokenizeApplePay(ctx, instrument, c.amount)

	case domain.SberbankData:
		c.setState(StateSubmitting)
		return c.payments.TokenizeSberbank(ctx, instrument, c.amount)

	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown instrument %T", data)
	}
}

func (c *tokenizationCoordinator) LoginInWallet(
	ctx context.Context,
	reusableToken bool,
) (*authDomain.WalletLoginResponse, error) {
	sessionID, err := c.fetchProfilingSession(ctx)
	if err != nil {
		return nil, err
	}
	return c.auth.LoginInWallet(ctx, reusableToken, c.amount, sessionID)
}

func (c *tokenizationCoordinator) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	return c.auth.ResendCode(ctx, authContextID, authType)
}

func (c *tokenizationCoordinator) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	return c.auth.CheckUserAnswer(ctx, authContextID, authType, answer, processID)
}

// fetchProfilingSession obtains the device profiling session, reporting the
// fetch as a connectivity failure when the provider is unreachable.
func (c *tokenizationCoordinator) fetchProfilingSession(ctx context.Context) (string, error) {
	c.setState(StateFetchingContext)
	sessionID, err := c.profiling.SessionID(ctx)
	if err != nil {
		if apperrors.Is(err, profiling.ErrConnectionFailed) {
			return "", apperrors.Wrapf(apperrors.ErrNetworkUnavailable, "profiling session fetch: %v", err)
		}
		return "", apperrors.Wrap(err, "failed to fetch profiling session")
	}
	return sessionID, nil
}

package usecase

import (
	"context"
	"time"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	"github.com/yoomoney/checkout/internal/metrics"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

// tokenizationUseCaseWithMetrics decorates TokenizationUseCase with metrics
// instrumentation.
type tokenizationUseCaseWithMetrics struct {
	next    TokenizationUseCase
	metrics metrics.FlowMetrics
}

// NewTokenizationUseCaseWithMetrics wraps a TokenizationUseCase with metrics
// recording.
func NewTokenizationUseCaseWithMetrics(
	useCase TokenizationUseCase,
	m metrics.FlowMetrics,
) TokenizationUseCase {
	return &tokenizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenizationUseCaseWithMetrics) record(
	ctx context.Context,
	flow, operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, flow, operation, status)
	t.metrics.RecordDuration(ctx, flow, operation, time.Since(start), status)
}

func (t *tokenizationUseCaseWithMetrics) FetchPaymentOptions(
	ctx context.Context,
	savePaymentMethod bool,
) ([]domain.PaymentOption, error) {
	start := time.Now()
	options, err := t.next.FetchPaymentOptions(ctx, savePaymentMethod)
	t.record(ctx, "tokenization", "payment_options", start, err)
	return options, err
}

func (t *tokenizationUseCaseWithMetrics) Tokenize(
	ctx context.Context,
	data domain.TokenizeData,
) (*domain.Tokens, error) {
	start := time.Now()
	tokens, err := t.next.Tokenize(ctx, data)
	t.record(ctx, "tokenization", "tokenize", start, err)
	return tokens, err
}

func (t *tokenizationUseCaseWithMetrics) LoginInWallet(
	ctx context.Context,
	reusableToken bool,
) (*authDomain.WalletLoginResponse, error) {
	start := time.Now()
	response, err := t.next.LoginInWallet(ctx, reusableToken)
	t.record(ctx, "wallet", "login", start, err)
	return response, err
}

func (t *tokenizationUseCaseWithMetrics) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	start := time.Now()
	state, err := t.next.ResendCode(ctx, authContextID, authType)
	t.record(ctx, "wallet", "resend_code", start, err)
	return state, err
}

func (t *tokenizationUseCaseWithMetrics) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	start := time.Now()
	response, err := t.next.CheckUserAnswer(ctx, authContextID, authType, answer, processID)
	t.record(ctx, "wallet", "check_user_answer", start, err)
	return response, err
}

func (t *tokenizationUseCaseWithMetrics) State() State {
	return t.next.State()
}

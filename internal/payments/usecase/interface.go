// Package usecase implements the tokenization coordinator: the state machine
// that turns a payment instrument into a payment token, fetching the device
// profiling context and the wallet credentials the instrument requires.
package usecase

import (
	"context"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

// State is the phase the coordinator is in. Transitions are
// Idle -> FetchingContext -> Submitting -> Succeeded or Failed; instruments
// that need no profiling context skip FetchingContext.
type State string

// Coordinator states.
const (
	StateIdle            State = "idle"
	StateFetchingContext State = "fetching_context"
	StateSubmitting      State = "submitting"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// TokenizationUseCase coordinates a checkout session: payment option
// discovery, wallet authorization and the tokenization submission itself.
type TokenizationUseCase interface {
	// FetchPaymentOptions lists the funding sources available for the
	// session's charge, including wallet options when a token is stored.
	FetchPaymentOptions(ctx context.Context, savePaymentMethod bool) ([]domain.PaymentOption, error)

	// Tokenize runs the full submission for one payment instrument. Only one
	// submission may run at a time; a concurrent call fails with
	// ErrSubmissionInFlight.
	Tokenize(ctx context.Context, data domain.TokenizeData) (*domain.Tokens, error)

	// LoginInWallet authorizes the payer in the wallet for this session.
	LoginInWallet(ctx context.Context, reusableToken bool) (*authDomain.WalletLoginResponse, error)

	// ResendCode requests a fresh challenge code for a pending wallet login.
	ResendCode(ctx context.Context, authContextID string, authType authDomain.AuthType) (*authDomain.AuthTypeState, error)

	// CheckUserAnswer verifies the payer's challenge answer and finishes the
	// wallet login on success.
	CheckUserAnswer(
		ctx context.Context,
		authContextID string,
		authType authDomain.AuthType,
		answer string,
		processID string,
	) (*authDomain.WalletLoginResponse, error)

	// State reports the phase of the most recent submission.
	State() State
}

// WalletAuthorizer is the slice of the authorization service the coordinator
// uses. Satisfied by service.AuthorizationService.
type WalletAuthorizer interface {
	WalletToken() (string, bool)
	LoginInWallet(
		ctx context.Context,
		reusableToken bool,
		amount domain.MonetaryAmount,
		profilingSessionID string,
	) (*authDomain.WalletLoginResponse, error)
	ResendCode(ctx context.Context, authContextID string, authType authDomain.AuthType) (*authDomain.AuthTypeState, error)
	CheckUserAnswer(
		ctx context.Context,
		authContextID string,
		authType authDomain.AuthType,
		answer string,
		processID string,
	) (*authDomain.WalletLoginResponse, error)
}

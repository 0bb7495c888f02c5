package service

import (
	"context"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	paymentsDomain "github.com/yoomoney/checkout/internal/payments/domain"
)

// WalletLoginClient is the network client of the wallet login API.
type WalletLoginClient interface {
	// Login starts a wallet authorization. A nil amount requests a
	// reusable token not bound to a single charge.
	Login(
		ctx context.Context,
		instanceName string,
		amount *paymentsDomain.MonetaryAmount,
		reusableToken bool,
		profilingSessionID string,
	) (*authDomain.WalletLoginResponse, error)

	// ResendCode starts a new challenge session for a pending login.
	ResendCode(
		ctx context.Context,
		authContextID string,
		authType authDomain.AuthType,
	) (*authDomain.AuthTypeState, error)

	// CheckUserAnswer verifies the payer's challenge answer.
	CheckUserAnswer(
		ctx context.Context,
		authContextID string,
		authType authDomain.AuthType,
		answer string,
		processID string,
	) (*authDomain.WalletLoginResponse, error)
}

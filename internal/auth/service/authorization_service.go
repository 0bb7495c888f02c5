// Package service implements the wallet authorization lifecycle: login,
// secondary authentication challenges and token persistence. Tokens live in
// an injected key-value store and are read before every use, never cached.
package service

import (
	"context"
	"log/slog"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/keyvalue"
	paymentsDomain "github.com/yoomoney/checkout/internal/payments/domain"
)

// AuthorizationService mediates between the wallet login client and the
// secure token store.
type AuthorizationService struct {
	tokenStore   keyvalue.Store
	loginClient  WalletLoginClient
	instanceName string
	logger       *slog.Logger
}

// NewAuthorizationService creates an authorization service. instanceName
// identifies this device to the wallet backend.
func NewAuthorizationService(
	tokenStore keyvalue.Store,
	loginClient WalletLoginClient,
	instanceName string,
	logger *slog.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		tokenStore:   tokenStore,
		loginClient:  loginClient,
		instanceName: instanceName,
		logger:       logger,
	}
}

// WalletToken returns the stored wallet token, if any.
func (s *AuthorizationService) WalletToken() (string, bool) {
	return s.tokenStore.GetString(authDomain.KeyWalletToken)
}

// HasReusableWalletToken reports whether a stored wallet token may be
// reused for another charge.
func (s *AuthorizationService) HasReusableWalletToken() bool {
	if _, ok := s.WalletToken(); !ok {
		return false
	}
	reusable, ok := s.tokenStore.GetBool(authDomain.KeyIsReusableWalletToken)
	return ok && reusable
}

// WalletDisplayName returns the stored display name of the wallet owner.
func (s *AuthorizationService) WalletDisplayName() (string, bool) {
	return s.tokenStore.GetString(authDomain.KeyWalletDisplayName)
}

// SetWalletDisplayName stores the display name of the wallet owner.
func (s *AuthorizationService) SetWalletDisplayName(name string) {
	if err := s.tokenStore.SetString(authDomain.KeyWalletDisplayName, name); err != nil {
		s.logger.Warn("failed to store wallet display name", slog.Any("error", err))
	}
}

// Logout drops every stored wallet credential.
func (s *AuthorizationService) Logout() {
	for _, key := range []string{
		authDomain.KeyWalletToken,
		authDomain.KeyIsReusableWalletToken,
		authDomain.KeyWalletDisplayName,
	} {
		if err := s.tokenStore.Delete(key); err != nil {
			s.logger.Warn("failed to delete credential", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// LoginInWallet authorizes the wallet for a charge. With a stored reusable
// token the network is skipped entirely. Otherwise the previous token is
// dropped, the login request is sent, and the outcome is either an access
// token (persisted here) or a secondary authentication challenge to be
// answered via CheckUserAnswer.
func (s *AuthorizationService) LoginInWallet(
	ctx context.Context,
	reusableToken bool,
	amount paymentsDomain.MonetaryAmount,
	profilingSessionID string,
) (*authDomain.WalletLoginResponse, error) {
	if token, ok := s.WalletToken(); ok && s.HasReusableWalletToken() {
		return &authDomain.WalletLoginResponse{AccessToken: token}, nil
	}

	if err := s.tokenStore.Delete(authDomain.KeyWalletToken); err != nil {
		return nil, apperrors.Wrap(err, "failed to drop stale wallet token")
	}
	if err := s.tokenStore.SetBool(authDomain.KeyIsReusableWalletToken, reusableToken); err != nil {
		return nil, apperrors.Wrap(err, "failed to store token reusability")
	}

	// A reusable token is not bound to a single charge.
	var chargeAmount *paymentsDomain.MonetaryAmount
	if !reusableToken {
		chargeAmount = &amount
	}

	response, err := s.loginClient.Login(ctx, s.instanceName, chargeAmount, reusableToken, profilingSessionID)
	if err != nil {
		return nil, err
	}

	return s.acceptLoginResponse(response)
}

// ResendCode starts a new challenge session for a pending login.
func (s *AuthorizationService) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	return s.loginClient.ResendCode(ctx, authContextID, authType)
}

// CheckUserAnswer verifies the payer's challenge answer and persists the
// wallet token when the login completes.
func (s *AuthorizationService) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	response, err := s.loginClient.CheckUserAnswer(ctx, authContextID, authType, answer, processID)
	if err != nil {
		return nil, err
	}

	return s.acceptLoginResponse(response)
}

// acceptLoginResponse persists an access token or vets the offered
// challenge kind.
func (s *AuthorizationService) acceptLoginResponse(
	response *authDomain.WalletLoginResponse,
) (*authDomain.WalletLoginResponse, error) {
	if response.Authorized() {
		if err := s.tokenStore.SetString(authDomain.KeyWalletToken, response.AccessToken); err != nil {
			return nil, apperrors.Wrap(err, "failed to store wallet token")
		}
		return response, nil
	}

	if response.Challenge == nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "login returned neither token nor challenge")
	}
	if !response.Challenge.Type.Supported() {
		return nil, apperrors.Wrapf(
			apperrors.ErrAuthTypeUnsupported,
			"auth type %q", response.Challenge.Type,
		)
	}
	return response, nil
}

package dto

import (
	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	"github.com/yoomoney/checkout/internal/payments/domain"
	"github.com/yoomoney/checkout/internal/webview"
)

// PaymentOptionsResponse lists the payment options for the session's charge.
type PaymentOptionsResponse struct {
	Items []domain.PaymentOption `json:"items"`
}

// TokenizeResponse carries the payment token of a finished submission.
type TokenizeResponse struct {
	PaymentToken string `json:"payment_token"`
}

// ChallengeResponse describes a pending wallet login challenge.
type ChallengeResponse struct {
	Type               string `json:"type"`
	AuthContextID      string `json:"auth_context_id"`
	ProcessID          string `json:"process_id"`
	CodeLength         int    `json:"code_length,omitempty"`
	NextSessionSeconds int    `json:"next_session_seconds,omitempty"`
}

// WalletLoginResponse is the outcome of a wallet login step.
type WalletLoginResponse struct {
	Authorized bool               `json:"authorized"`
	Challenge  *ChallengeResponse `json:"challenge,omitempty"`
}

// NewWalletLoginResponse converts the domain login outcome. Access tokens
// never leave the process; only the authorization outcome is reported.
func NewWalletLoginResponse(response *authDomain.WalletLoginResponse) WalletLoginResponse {
	result := WalletLoginResponse{Authorized: response.Authorized()}
	if response.Challenge != nil {
		result.Challenge = &ChallengeResponse{
			Type:               string(response.Challenge.Type),
			AuthContextID:      response.Challenge.AuthContextID,
			ProcessID:          response.Challenge.ProcessID,
			CodeLength:         response.Challenge.CodeLength,
			NextSessionSeconds: response.Challenge.NextSessionSeconds,
		}
	}
	return result
}

// StateResponse reports the coordinator state.
type StateResponse struct {
	State string `json:"state"`
}

// Confirmation watcher states as reported over the wire.
const (
	ConfirmationAwaitingRedirect = "awaiting_redirect"
	ConfirmationCompleted        = "completed"
)

// NavigationResponse tells the embedded browser whether the reported
// navigation finished the bank authentication challenge.
type NavigationResponse struct {
	Completed bool   `json:"completed"`
	State     string `json:"state"`
}

// NewNavigationResponse converts the watcher outcome.
func NewNavigationResponse(completed bool, state webview.State) NavigationResponse {
	return NavigationResponse{
		Completed: completed,
		State:     confirmationStateString(state),
	}
}

// ConfirmationStateResponse reports the confirmation watcher state.
type ConfirmationStateResponse struct {
	State string `json:"state"`
}

// NewConfirmationStateResponse converts the watcher state.
func NewConfirmationStateResponse(state webview.State) ConfirmationStateResponse {
	return ConfirmationStateResponse{State: confirmationStateString(state)}
}

func confirmationStateString(state webview.State) string {
	if state == webview.StateCompleted {
		return ConfirmationCompleted
	}
	return ConfirmationAwaitingRedirect
}

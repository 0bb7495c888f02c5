// Package domain defines the wallet authorization types: login responses,
// secondary authentication challenges and the token storage keys.
package domain

// AuthType is the kind of secondary authentication challenge the wallet
// backend may require during login.
type AuthType string

// Challenge kinds. Only SMS and TOTP are implemented by this client; a
// login that offers neither fails with ErrAuthTypeUnsupported.
const (
	AuthTypeSMS       AuthType = "sms"
	AuthTypeTOTP      AuthType = "totp"
	AuthTypeEmergency AuthType = "emergency"
)

// Supported reports whether this client can complete the challenge kind.
func (a AuthType) Supported() bool {
	return a == AuthTypeSMS || a == AuthTypeTOTP
}

// AuthTypeState describes a pending secondary authentication challenge.
type AuthTypeState struct {
	Type AuthType `json:"type"`
	// AuthContextID identifies the challenge session on the backend.
	AuthContextID string `json:"auth_context_id"`
	// ProcessID identifies the login process the challenge belongs to.
	ProcessID string `json:"process_id"`
	// CodeLength is the expected answer length, when known.
	CodeLength int `json:"code_length,omitempty"`
	// NextSessionSeconds is how long until a new code may be requested.
	NextSessionSeconds int `json:"next_session_seconds,omitempty"`
}

// WalletLoginResponse is the outcome of a wallet login step: either an
// access token, or a challenge that must be answered first.
type WalletLoginResponse struct {
	// AccessToken is set when the login is authorized.
	AccessToken string `json:"access_token,omitempty"`
	// Challenge is set when secondary authentication is required.
	Challenge *AuthTypeState `json:"challenge,omitempty"`
}

// Authorized reports whether the login finished with an access token.
func (r *WalletLoginResponse) Authorized() bool {
	return r.AccessToken != ""
}

// Keys of the token store entries owned by the authorization service.
const (
	KeyWalletToken           = "wallet_token"
	KeyIsReusableWalletToken = "is_reusable_wallet_token"
	KeyWalletDisplayName     = "wallet_display_name"
)

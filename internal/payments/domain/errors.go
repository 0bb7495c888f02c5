package domain

import (
	"github.com/yoomoney/checkout/internal/errors"
)

var (
	// ErrPaymentOptionNotFound indicates no payment option matches the request.
	ErrPaymentOptionNotFound = errors.Wrap(errors.ErrNotFound, "payment option not found")

	// ErrCardDeclined indicates the gateway declined the card.
	ErrCardDeclined = errors.Wrap(errors.ErrRemoteRejected, "card declined")

	// ErrInvalidInstrument indicates the tokenize request carries malformed
	// instrument data (e.g. an unparseable PAN).
	ErrInvalidInstrument = errors.Wrap(errors.ErrInvalidInput, "invalid payment instrument")

	// ErrNoWalletToken indicates a wallet flow was started without a wallet
	// authorization.
	ErrNoWalletToken = errors.Wrap(errors.ErrUnauthorized, "wallet token missing")
)

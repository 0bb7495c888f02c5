// Package service talks to the payments API: it fetches the payment options
// available for a charge and exchanges payment instruments for one-time
// payment tokens.
package service

import (
	"context"

	"github.com/yoomoney/checkout/internal/payments/domain"
)

// PaymentService is the payments API surface the tokenization coordinator
// depends on. Implementations authenticate with the merchant's client
// application key.
type PaymentService interface {
	// FetchPaymentOptions lists the funding sources available for the given
	// charge. walletToken and profilingSessionID may be empty when the payer
	// is not authorized in the wallet.
	FetchPaymentOptions(
		ctx context.Context,
		amount domain.MonetaryAmount,
		walletToken string,
		profilingSessionID string,
		savePaymentMethod bool,
	) ([]domain.PaymentOption, error)

	// TokenizeBankCard exchanges fresh card credentials for a payment token.
	TokenizeBankCard(
		ctx context.Context,
		data domain.BankCardData,
		amount domain.MonetaryAmount,
	) (*domain.Tokens, error)

	// TokenizeRepeatBankCard charges a previously saved card again.
	TokenizeRepeatBankCard(
		ctx context.Context,
		data domain.RepeatBankCardData,
		amount domain.MonetaryAmount,
		profilingSessionID string,
	) (*domain.Tokens, error)

	// TokenizeWallet pays from the authorized wallet.
	TokenizeWallet(
		ctx context.Context,
		data domain.WalletData,
		amount domain.MonetaryAmount,
		walletToken string,
		profilingSessionID string,
	) (*domain.Tokens, error)

	// TokenizeLinkedBankCard pays with a card linked to the wallet.
	TokenizeLinkedBankCard(
		ctx context.Context,
		data domain.LinkedBankCardData,
		amount domain.MonetaryAmount,
		walletToken string,
		profilingSessionID string,
	) (*domain.Tokens, error)

	// TokenizeApplePay exchanges an Apple Pay payment blob for a payment token.
	TokenizeApplePay(
		ctx context.Context,
		data domain.ApplePayData,
		amount domain.MonetaryAmount,
	) (*domain.Tokens, error)

	// TokenizeSberbank starts a SberPay payment confirmed on the payer's phone.
	TokenizeSberbank(
		ctx context.Context,
		data domain.SberbankData,
		amount domain.MonetaryAmount,
	) (*domain.Tokens, error)
}

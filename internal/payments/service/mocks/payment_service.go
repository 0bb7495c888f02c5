// Package mocks provides mock implementations for testing the tokenization
// coordinator and the HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yoomoney/checkout/internal/payments/domain"
)

// MockPaymentService is a mock implementation of PaymentService for testing.
type MockPaymentService struct {
	mock.Mock
}

// FetchPaymentOptions mocks the FetchPaymentOptions method of PaymentService.
func (m *MockPaymentService) FetchPaymentOptions(
	ctx context.Context,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
	savePaymentMethod bool,
) ([]domain.PaymentOption, error) {
	args := m.Called(ctx, amount, walletToken, profilingSessionID, savePaymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentOption), args.Error(1)
}

// TokenizeBankCard mocks the TokenizeBankCard method of PaymentService.
func (m *MockPaymentService) TokenizeBankCard(
	ctx context.Context,
	data domain.BankCardData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// TokenizeRepeatBankCard mocks the TokenizeRepeatBankCard method of PaymentService.
func (m *MockPaymentService) TokenizeRepeatBankCard(
	ctx context.Context,
	data domain.RepeatBankCardData,
	amount domain.MonetaryAmount,
	profilingSessionID string,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount, profilingSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// TokenizeWallet mocks the TokenizeWallet method of PaymentService.
func (m *MockPaymentService) TokenizeWallet(
	ctx context.Context,
	data domain.WalletData,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount, walletToken, profilingSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// TokenizeLinkedBankCard mocks the TokenizeLinkedBankCard method of PaymentService.
func (m *MockPaymentService) TokenizeLinkedBankCard(
	ctx context.Context,
	data domain.LinkedBankCardData,
	amount domain.MonetaryAmount,
	walletToken string,
	profilingSessionID string,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount, walletToken, profilingSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// TokenizeApplePay mocks the TokenizeApplePay method of PaymentService.
func (m *MockPaymentService) TokenizeApplePay(
	ctx context.Context,
	data domain.ApplePayData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// TokenizeSberbank mocks the TokenizeSberbank method of PaymentService.
func (m *MockPaymentService) TokenizeSberbank(
	ctx context.Context,
	data domain.SberbankData,
	amount domain.MonetaryAmount,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

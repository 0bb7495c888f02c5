// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	"github.com/yoomoney/checkout/internal/payments/domain"
	"github.com/yoomoney/checkout/internal/payments/usecase"
)

// MockTokenizationUseCase is a mock implementation of TokenizationUseCase
// for testing.
type MockTokenizationUseCase struct {
	mock.Mock
}

// FetchPaymentOptions mocks the FetchPaymentOptions method of TokenizationUseCase.
func (m *MockTokenizationUseCase) FetchPaymentOptions(
	ctx context.Context,
	savePaymentMethod bool,
) ([]domain.PaymentOption, error) {
	args := m.Called(ctx, savePaymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentOption), args.Error(1)
}

// Tokenize mocks the Tokenize method of TokenizationUseCase.
func (m *MockTokenizationUseCase) Tokenize(
	ctx context.Context,
	data domain.TokenizeData,
) (*domain.Tokens, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

// LoginInWallet mocks the LoginInWallet method of TokenizationUseCase.
func (m *MockTokenizationUseCase) LoginInWallet(
	ctx context.Context,
	reusableToken bool,
) (*authDomain.WalletLoginResponse, error) {
	args := m.Called(ctx, reusableToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.WalletLoginResponse), args.Error(1)
}

// ResendCode mocks the ResendCode method of TokenizationUseCase.
func (m *MockTokenizationUseCase) ResendCode(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
) (*authDomain.AuthTypeState, error) {
	args := m.Called(ctx, authContextID, authType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthTypeState), args.Error(1)
}

// CheckUserAnswer mocks the CheckUserAnswer method of TokenizationUseCase.
func (m *MockTokenizationUseCase) CheckUserAnswer(
	ctx context.Context,
	authContextID string,
	authType authDomain.AuthType,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	args := m.Called(ctx, authContextID, authType, answer, processID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.WalletLoginResponse), args.Error(1)
}

// State mocks the State method of TokenizationUseCase.
func (m *MockTokenizationUseCase) State() usecase.State {
	args := m.Called()
	return args.Get(0).(usecase.State)
}

package sandbox

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

func testGateway() *Gateway {
	return NewGateway(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGateway_PaymentOptions(t *testing.T) {
	gateway := testGateway()
	amount := domain.MonetaryAmount{Value: "100.00", Currency: "RUB"}

	t.Run("anonymous request sees no wallet options", func(t *testing.T) {
		options := gateway.PaymentOptions(amount, false, false)
		for _, option := range options {
			assert.NotEqual(t, domain.MethodWallet, option.PaymentMethodType)
			assert.Empty(t, option.CardMask)
		}
	})

	t.Run("wallet-authorized request sees wallet and saved card", func(t *testing.T) {
		options := gateway.PaymentOptions(amount, true, false)

		var hasWallet, hasSavedCard bool
		for _, option := range options {
			if option.PaymentMethodType == domain.MethodWallet {
				hasWallet = true
			}
			if option.CardMask != "" {
				hasSavedCard = true
				assert.NotEmpty(t, option.ID)
			}
		}
		assert.True(t, hasWallet)
		assert.True(t, hasSavedCard)
	})
}

func TestGateway_IssueToken(t *testing.T) {
	gateway := testGateway()

	t.Run("issues unique tokens", func(t *testing.T) {
		first, err := gateway.IssueToken(domain.MethodBankCard, "5189010000000446")
		require.NoError(t, err)
		second, err := gateway.IssueToken(domain.MethodBankCard, "5189010000000446")
		require.NoError(t, err)
		assert.NotEqual(t, first.PaymentToken, second.PaymentToken)

		method, ok := gateway.IssuedMethod(first.PaymentToken)
		assert.True(t, ok)
		assert.Equal(t, domain.MethodBankCard, method)
	})

	t.Run("declines the scripted card", func(t *testing.T) {
		_, err := gateway.IssueToken(domain.MethodBankCard, "5189010000000002")
		assert.ErrorIs(t, err, apperrors.ErrRemoteRejected)
	})
}

func TestGateway_WalletLogin(t *testing.T) {
	t.Run("login requires an sms challenge", func(t *testing.T) {
		gateway := testGateway()

		response := gateway.WalletLogin()
		assert.False(t, response.Authorized())
		require.NotNil(t, response.Challenge)
		assert.True(t, response.Challenge.Type.Supported())
		assert.Equal(t, challengeCodeLength, response.Challenge.CodeLength)
	})

	t.Run("correct answer yields a token", func(t *testing.T) {
		gateway := testGateway()
		state := gateway.WalletLogin().Challenge

		response, err := gateway.CheckUserAnswer(state.AuthContextID, ChallengeAnswer, state.ProcessID)
		require.NoError(t, err)
		assert.True(t, response.Authorized())

		// Challenge is consumed.
		_, err = gateway.CheckUserAnswer(state.AuthContextID, ChallengeAnswer, state.ProcessID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("wrong answer is unauthorized", func(t *testing.T) {
		gateway := testGateway()
		state := gateway.WalletLogin().Challenge

		_, err := gateway.CheckUserAnswer(state.AuthContextID, "000000", state.ProcessID)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("challenge is consumed after three failed attempts", func(t *testing.T) {
		gateway := testGateway()
		state := gateway.WalletLogin().Challenge

		for i := 0; i < 3; i++ {
			_, err := gateway.CheckUserAnswer(state.AuthContextID, "000000", state.ProcessID)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		}

		_, err := gateway.CheckUserAnswer(state.AuthContextID, ChallengeAnswer, state.ProcessID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("resend replaces the pending challenge", func(t *testing.T) {
		gateway := testGateway()
		state := gateway.WalletLogin().Challenge

		fresh, err := gateway.ResendCode(state.AuthContextID)
		require.NoError(t, err)
		assert.NotEqual(t, state.AuthContextID, fresh.AuthContextID)

		_, err = gateway.CheckUserAnswer(state.AuthContextID, ChallengeAnswer, state.ProcessID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		response, err := gateway.CheckUserAnswer(fresh.AuthContextID, ChallengeAnswer, fresh.ProcessID)
		require.NoError(t, err)
		assert.True(t, response.Authorized())
	})

	t.Run("resend of an unknown context fails", func(t *testing.T) {
		gateway := testGateway()

		_, err := gateway.ResendCode("missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

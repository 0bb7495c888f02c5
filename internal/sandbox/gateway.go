// Package sandbox emulates the payments gateway for local development: it
// serves payment options, issues payment tokens and runs a scripted wallet
// login, all in memory.
package sandbox

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/payments/domain"
)

// Scripted sandbox behavior.
const (
	// DeclinedCardSuffix marks a card number the gateway always declines.
	DeclinedCardSuffix = "0002"
	// ChallengeAnswer is the code the wallet login accepts.
	ChallengeAnswer = "123456"
	// challengeCodeLength is advertised to the client.
	challengeCodeLength = 6
)

// challenge is a pending wallet login challenge.
type challenge struct {
	authContextID string
	processID     string
	attempts      int
}

// Gateway holds the in-memory sandbox state. Safe for concurrent use.
type Gateway struct {
	logger *slog.Logger

	mu         sync.Mutex
	challenges map[string]*challenge
	// issued maps payment tokens to the instrument kind that produced them.
	issued map[string]domain.PaymentMethodType
}

// NewGateway creates an empty sandbox gateway.
func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		logger:     logger,
		challenges: make(map[string]*challenge),
		issued:     make(map[string]domain.PaymentMethodType),
	}
}

// PaymentOptions lists the sandbox funding sources for the given charge.
// Wallet options appear only for wallet-authorized requests.
func (g *Gateway) PaymentOptions(
	amount domain.MonetaryAmount,
	walletAuthorized bool,
	savePaymentMethod bool,
) []domain.PaymentOption {
	options := []domain.PaymentOption{
		{
			PaymentMethodType:        domain.MethodBankCard,
			Charge:                   amount,
			SavePaymentMethodAllowed: savePaymentMethod,
		},
		{
			PaymentMethodType: domain.MethodSberbank,
			Charge:            amount,
		},
	}

	if walletAuthorized {
		options = append(options,
			domain.PaymentOption{
				PaymentMethodType: domain.MethodWallet,
				Charge:            amount,
			},
			domain.PaymentOption{
				ID:                uuid.Must(uuid.NewV7()).String(),
				PaymentMethodType: domain.MethodBankCard,
				Charge:            amount,
				CardMask:          "518901******0446",
			},
		)
	}

	return options
}

// IssueToken issues a payment token for the given instrument kind. Card
// numbers with the declined suffix are rejected.
func (g *Gateway) IssueToken(
	method domain.PaymentMethodType,
	cardNumber string,
) (*domain.Tokens, error) {
	if cardNumber != "" && strings.HasSuffix(cardNumber, DeclinedCardSuffix) {
		return nil, domain.ErrCardDeclined
	}

	token := uuid.Must(uuid.NewV7()).String()

	g.mu.Lock()
	g.issued[token] = method
	g.mu.Unlock()

	g.logger.Info("sandbox token issued", slog.String("method", string(method)))
	return &domain.Tokens{PaymentToken: token}, nil
}

// IssuedMethod reports the instrument kind a token was issued for.
func (g *Gateway) IssuedMethod(token string) (domain.PaymentMethodType, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	method, ok := g.issued[token]
	return method, ok
}

// WalletLogin starts a scripted wallet login. Every login requires an SMS
// challenge answered with ChallengeAnswer.
func (g *Gateway) WalletLogin() *authDomain.WalletLoginResponse {
	state := g.newChallenge()
	return &authDomain.WalletLoginResponse{Challenge: state}
}

// ResendCode replaces a pending challenge with a fresh one.
func (g *Gateway) ResendCode(authContextID string) (*authDomain.AuthTypeState, error) {
	g.mu.Lock()
	_, ok := g.challenges[authContextID]
	if ok {
		delete(g.challenges, authContextID)
	}
	g.mu.Unlock()

	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "unknown auth context")
	}

	return g.newChallenge(), nil
}

// CheckUserAnswer verifies the challenge answer and issues a wallet token on
// success. A challenge is consumed after three failed attempts.
func (g *Gateway) CheckUserAnswer(
	authContextID string,
	answer string,
	processID string,
) (*authDomain.WalletLoginResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pending, ok := g.challenges[authContextID]
	if !ok || pending.processID != processID {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "unknown auth context")
	}

	if answer != ChallengeAnswer {
		pending.attempts++
		if pending.attempts >= 3 {
			delete(g.challenges, authContextID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "wrong challenge answer")
	}

	delete(g.challenges, authContextID)
	return &authDomain.WalletLoginResponse{
		AccessToken: uuid.Must(uuid.NewV7()).String(),
	}, nil
}

func (g *Gateway) newChallenge() *authDomain.AuthTypeState {
	state := &authDomain.AuthTypeState{
		Type:          authDomain.AuthTypeSMS,
		AuthContextID: uuid.Must(uuid.NewV7()).String(),
		ProcessID:     uuid.Must(uuid.NewV7()).String(),
		CodeLength:    challengeCodeLength,
	}

	g.mu.Lock()
	g.challenges[state.AuthContextID] = &challenge{
		authContextID: state.AuthContextID,
		processID:     state.ProcessID,
	}
	g.mu.Unlock()

	return state
}

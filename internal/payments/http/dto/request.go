// Package dto provides data transfer objects for HTTP request and response
// handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/yoomoney/checkout/internal/auth/domain"
	apperrors "github.com/yoomoney/checkout/internal/errors"
	"github.com/yoomoney/checkout/internal/input"
	"github.com/yoomoney/checkout/internal/payments/domain"
	customValidation "github.com/yoomoney/checkout/internal/validation"
)

// Instrument kinds accepted by the tokenize endpoint.
const (
	MethodBankCard       = "bank_card"
	MethodRepeatBankCard = "repeat_bank_card"
	MethodWallet         = "wallet"
	MethodLinkedBankCard = "linked_bank_card"
	MethodApplePay       = "apple_pay"
	MethodSberbank       = "sberbank"
)

// CardPayload carries fresh card credentials.
type CardPayload struct {
	Number      string `json:"number"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CSC         string `json:"csc"`
	Cardholder  string `json:"cardholder,omitempty"`
}

// Validate checks if the card payload is valid. The expiry must not lie in
// the past.
func (p *CardPayload) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Number,
			validation.Required,
			customValidation.NotBlank,
			validation.Match(digitsPattern),
			validation.RuneLength(13, 19),
		),
		validation.Field(&p.ExpiryYear,
			validation.Required,
			validation.Match(digitsPattern),
			validation.RuneLength(4, 4),
		),
		validation.Field(&p.ExpiryMonth,
			validation.Required,
			validation.Match(monthPattern),
		),
		validation.Field(&p.CSC,
			validation.Required,
			validation.Match(digitsPattern),
			validation.RuneLength(3, 4),
		),
		validation.Field(&p.Cardholder,
			validation.RuneLength(0, 100),
		),
	)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return customValidation.ValidateField(p.ExpiryMonth+p.ExpiryYear, customValidation.FieldSpec{
		Kind:    customValidation.FieldMonth,
		MinDate: &currentMonth,
	})
}

// ConfirmationPayload describes the requested payment confirmation.
type ConfirmationPayload struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
}

// Validate checks if the confirmation payload is valid.
func (p *ConfirmationPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Type,
			validation.Required,
			validation.In(string(domain.ConfirmationRedirect), string(domain.ConfirmationExternal)),
		),
		validation.Field(&p.ReturnURL,
			validation.RuneLength(0, 2048),
		),
	)
}

func (p *ConfirmationPayload) toDomain() domain.Confirmation {
	return domain.Confirmation{
		Type:      domain.ConfirmationType(p.Type),
		ReturnURL: p.ReturnURL,
	}
}

// TokenizeRequest contains the parameters for a tokenization submission. The
// Method field selects the instrument; the matching payload fields must be
// set.
type TokenizeRequest struct {
	Method            string               `json:"method"`
	Card              *CardPayload         `json:"card,omitempty"`
	PaymentMethodID   string               `json:"payment_method_id,omitempty"`
	CardID            string               `json:"card_id,omitempty"`
	CSC               string               `json:"csc,omitempty"`
	PaymentData       string               `json:"payment_data,omitempty"`
	PhoneNumber       string               `json:"phone_number,omitempty"`
	Confirmation      *ConfirmationPayload `json:"confirmation,omitempty"`
	SavePaymentMethod bool                 `json:"save_payment_method"`
}

// Normalize strips display formatting from user-entered fields. Clients may
// submit values as they appear in the payment form ("5189 0100 0000 0446",
// "+7 (921) 123-45-67"); validation and tokenization run on the bare digits.
func (r *TokenizeRequest) Normalize() {
	if r.Card != nil {
		r.Card.Number = input.PANStyle{}.RemoveFormatting(r.Card.Number)
		r.Card.ExpiryMonth = input.MonthStyle{}.RemoveFormatting(r.Card.ExpiryMonth)
		r.Card.CSC = input.CSCStyle{}.RemoveFormatting(r.Card.CSC)
	}
	r.CSC = input.CSCStyle{}.RemoveFormatting(r.CSC)
	r.PhoneNumber = input.PhoneStyle{}.RemoveFormatting(r.PhoneNumber)
}

// Validate checks if the tokenize request is valid for its method.
func (r *TokenizeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Method,
			validation.Required,
			validation.In(
				MethodBankCard,
				MethodRepeatBankCard,
				MethodWallet,
				MethodLinkedBankCard,
				MethodApplePay,
				MethodSberbank,
			),
		),
		validation.Field(&r.Card,
			validation.Required.When(r.Method == MethodBankCard),
		),
		validation.Field(&r.PaymentMethodID,
			validation.Required.When(r.Method == MethodRepeatBankCard),
		),
		validation.Field(&r.CardID,
			validation.Required.When(r.Method == MethodLinkedBankCard),
		),
		validation.Field(&r.CSC,
			validation.Required.When(r.Method == MethodRepeatBankCard || r.Method == MethodLinkedBankCard),
			validation.Match(digitsPattern),
			validation.RuneLength(0, 4),
		),
		validation.Field(&r.PaymentData,
			validation.Required.When(r.Method == MethodApplePay),
		),
		validation.Field(&r.PhoneNumber,
			validation.Required.When(r.Method == MethodSberbank),
			validation.Match(digitsPattern),
			validation.RuneLength(0, 15),
		),
	)
	if err != nil {
		return err
	}

	if r.Card != nil {
		if err := r.Card.Validate(); err != nil {
			return err
		}
	}
	if r.Confirmation != nil {
		if err := r.Confirmation.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDomain converts the request into the coordinator's instrument type.
func (r *TokenizeRequest) ToDomain() (domain.TokenizeData, error) {
	confirmation := domain.Confirmation{}
	if r.Confirmation != nil {
		confirmation = r.Confirmation.toDomain()
	}

	switch r.Method {
	case MethodBankCard:
		return domain.BankCardData{
			BankCard: domain.BankCard{
				Number:      r.Card.Number,
				ExpiryYear:  r.Card.ExpiryYear,
				ExpiryMonth: r.Card.ExpiryMonth,
				CSC:         r.Card.CSC,
				Cardholder:  r.Card.Cardholder,
			},
			Confirmation:      confirmation,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	case MethodRepeatBankCard:
		return domain.RepeatBankCardData{
			PaymentMethodID:   r.PaymentMethodID,
			CSC:               r.CSC,
			Confirmation:      confirmation,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	case MethodWallet:
		return domain.WalletData{
			Confirmation:      confirmation,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	case MethodLinkedBankCard:
		return domain.LinkedBankCardData{
			CardID:            r.CardID,
			CSC:               r.CSC,
			Confirmation:      confirmation,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	case MethodApplePay:
		return domain.ApplePayData{
			PaymentData:       r.PaymentData,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	case MethodSberbank:
		return domain.SberbankData{
			PhoneNumber:       r.PhoneNumber,
			Confirmation:      confirmation,
			SavePaymentMethod: r.SavePaymentMethod,
		}, nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown method %q", r.Method)
	}
}

// WalletLoginRequest contains the parameters for starting a wallet login.
type WalletLoginRequest struct {
	ReusableToken bool `json:"reusable_token"`
}

// ResendCodeRequest contains the parameters for requesting a fresh challenge
// code.
type ResendCodeRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
}

// Validate checks if the resend code request is valid.
func (r *ResendCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthContextID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.AuthType,
			validation.Required,
			validation.In(string(authDomain.AuthTypeSMS), string(authDomain.AuthTypeTOTP)),
		),
	)
}

// CheckUserAnswerRequest contains the parameters for answering a challenge.
type CheckUserAnswerRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
	Answer        string `json:"answer"`
	ProcessID     string `json:"process_id"`
}

// Validate checks if the check user answer request is valid.
func (r *CheckUserAnswerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthContextID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.AuthType,
			validation.Required,
			validation.In(string(authDomain.AuthTypeSMS), string(authDomain.AuthTypeTOTP)),
		),
		validation.Field(&r.Answer,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 20),
		),
		validation.Field(&r.ProcessID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// NavigationRequest reports a navigation request of the embedded browser
// rendering the bank authentication page.
type NavigationRequest struct {
	URL string `json:"url"`
}

// Validate checks if the navigation request is valid.
func (r *NavigationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.URL,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

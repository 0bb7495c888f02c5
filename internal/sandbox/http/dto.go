package http

import (
	validation "github.com/jellydator/validation"

	"github.com/yoomoney/checkout/internal/payments/domain"
	customValidation "github.com/yoomoney/checkout/internal/validation"
)

// paymentOptionsRequest is the wire form of a payment options query.
type paymentOptionsRequest struct {
	Amount            domain.MonetaryAmount `json:"amount"`
	GatewayID         string                `json:"gateway_id,omitempty"`
	SavePaymentMethod bool                  `json:"save_payment_method"`
}

func (r *paymentOptionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount, validation.By(validateAmount)),
	)
}

// cardPayload is the wire form of fresh card credentials.
type cardPayload struct {
	Number      string `json:"number"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CSC         string `json:"csc"`
	Cardholder  string `json:"cardholder,omitempty"`
}

// paymentMethodData is the wire form of a payment instrument, discriminated
// by Type.
type paymentMethodData struct {
	Type            string       `json:"type"`
	Card            *cardPayload `json:"card,omitempty"`
	PaymentMethodID string       `json:"payment_method_id,omitempty"`
	CardID          string       `json:"card_id,omitempty"`
	CSC             string       `json:"csc,omitempty"`
	PaymentData     string       `json:"payment_data,omitempty"`
	PhoneNumber     string       `json:"phone_number,omitempty"`
}

// tokensRequest is the wire form of a tokenization request.
type tokensRequest struct {
	Amount            domain.MonetaryAmount `json:"amount"`
	PaymentMethodData paymentMethodData     `json:"payment_method_data"`
	Confirmation      *domain.Confirmation  `json:"confirmation,omitempty"`
	SavePaymentMethod bool                  `json:"save_payment_method"`
}

func (r *tokensRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount, validation.By(validateAmount)),
		validation.Field(&r.PaymentMethodData, validation.By(validatePaymentMethodData)),
	)
}

func validateAmount(value interface{}) error {
	amount, ok := value.(domain.MonetaryAmount)
	if !ok {
		return validation.NewError("validation_amount_type", "must be a monetary amount")
	}
	return validation.ValidateStruct(&amount,
		validation.Field(&amount.Value,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&amount.Currency,
			validation.Required,
			validation.RuneLength(3, 3),
		),
	)
}

func validatePaymentMethodData(value interface{}) error {
	data, ok := value.(paymentMethodData)
	if !ok {
		return validation.NewError("validation_method_type", "must be payment method data")
	}
	return validation.ValidateStruct(&data,
		validation.Field(&data.Type,
			validation.Required,
			validation.In(
				string(domain.MethodBankCard),
				string(domain.MethodWallet),
				string(domain.MethodApplePay),
				string(domain.MethodSberbank),
			),
		),
	)
}

// walletLoginRequest is the wire form of a wallet login.
type walletLoginRequest struct {
	InstanceName       string                 `json:"instance_name"`
	Amount             *domain.MonetaryAmount `json:"amount,omitempty"`
	ReusableToken      bool                   `json:"reusable_token"`
	ProfilingSessionID string                 `json:"profiling_session_id"`
}

func (r *walletLoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.InstanceName,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ProfilingSessionID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// resendCodeRequest is the wire form of a challenge resend.
type resendCodeRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
}

func (r *resendCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthContextID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// checkUserAnswerRequest is the wire form of a challenge answer.
type checkUserAnswerRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
	Answer        string `json:"answer"`
	ProcessID     string `json:"process_id"`
}

func (r *checkUserAnswerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthContextID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Answer,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ProcessID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// paymentOptionsResponse lists the sandbox payment options.
type paymentOptionsResponse struct {
	Items []domain.PaymentOption `json:"items"`
}

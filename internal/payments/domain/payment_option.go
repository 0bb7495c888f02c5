// Package domain defines the payment types shared by the tokenization
// coordinator, the payments service layer and the sandbox backend.
package domain

// PaymentMethodType identifies a funding source supported by the checkout.
type PaymentMethodType string

// Supported payment method types.
const (
	MethodBankCard PaymentMethodType = "bank_card"
	MethodWallet   PaymentMethodType = "yoo_money"
	MethodApplePay PaymentMethodType = "apple_pay"
	MethodSberbank PaymentMethodType = "sberbank"
)

// MonetaryAmount is a decimal amount in a given currency. Value keeps the
// API's string representation to avoid floating point rounding.
type MonetaryAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// PaymentOption is one way the payer can fund the payment, as advertised by
// the backend for the current amount and merchant.
type PaymentOption struct {
	// ID identifies a saved instrument (e.g. a linked card). Empty for
	// options without a stored instrument.
	ID                string            `json:"id,omitempty"`
	PaymentMethodType PaymentMethodType `json:"payment_method_type"`
	// Charge is the amount the payer will be charged, fees included.
	Charge MonetaryAmount `json:"charge"`
	// Fee is the fee charged on top, when the backend reports one.
	Fee *MonetaryAmount `json:"fee,omitempty"`
	// SavePaymentMethodAllowed reports whether the instrument can be saved
	// for recurring charges.
	SavePaymentMethodAllowed bool `json:"save_payment_method_allowed"`
	// CardMask is the masked PAN of a saved card option, e.g. "518901******0446".
	CardMask string `json:"card_mask,omitempty"`
}

// ConfirmationType is the kind of payment confirmation the merchant requests.
type ConfirmationType string

// Supported confirmation types.
const (
	// ConfirmationRedirect sends the payer through a web page (3-D Secure).
	ConfirmationRedirect ConfirmationType = "redirect"
	// ConfirmationExternal confirms the payment outside the client
	// (e.g. in the bank's own application).
	ConfirmationExternal ConfirmationType = "external"
)

// Confirmation describes how the payment is confirmed after tokenization.
type Confirmation struct {
	Type ConfirmationType `json:"type"`
	// ReturnURL is where the web confirmation redirects on completion.
	// Only meaningful for ConfirmationRedirect.
	ReturnURL string `json:"return_url,omitempty"`
}

// Tokens is the opaque result of a successful tokenization, handed to the
// merchant integration for the subsequent payment request.
type Tokens struct {
	PaymentToken string `json:"payment_token"`
}

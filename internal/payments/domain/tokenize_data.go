package domain

// BankCard carries fresh card credentials entered by the payer.
type BankCard struct {
	Number      string `json:"number"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CSC         string `json:"csc"`
	Cardholder  string `json:"cardholder,omitempty"`
}

// TokenizeData is the closed set of payment instruments a tokenization can
// carry. The coordinator switches over the concrete types exhaustively;
// adding a variant means extending that switch.
type TokenizeData interface {
	isTokenizeData()
}

// BankCardData tokenizes a fresh bank card.
type BankCardData struct {
	BankCard          BankCard
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// RepeatBankCardData charges a previously saved card again. Requires a
// device profiling session.
type RepeatBankCardData struct {
	PaymentMethodID   string
	CSC               string
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// WalletData pays from the authorized wallet. Requires a device profiling
// session and a wallet token.
type WalletData struct {
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// LinkedBankCardData pays with a card linked to the wallet. Requires a
// device profiling session and a wallet token.
type LinkedBankCardData struct {
	CardID            string
	CSC               string
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// ApplePayData tokenizes an Apple Pay payment blob.
type ApplePayData struct {
	// PaymentData is the base64-encoded PKPaymentToken payment data.
	PaymentData       string
	SavePaymentMethod bool
}

// SberbankData starts a SberPay payment confirmed on the payer's phone.
type SberbankData struct {
	PhoneNumber       string
	Confirmation      Confirmation
	SavePaymentMethod bool
}

func (BankCardData) isTokenizeData()       {}
func (RepeatBankCardData) isTokenizeData() {}
func (WalletData) isTokenizeData()         {}
func (LinkedBankCardData) isTokenizeData() {}
func (ApplePayData) isTokenizeData()       {}
func (SberbankData) isTokenizeData()       {}

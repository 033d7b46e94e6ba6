package adapter

import "context"

// Customization is display-only gateway branding; it has no semantic effect.
type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TransactionRequest carries everything the provider's initialize endpoint
// requires. Amount is a string per the gateway's documented format.
type TransactionRequest struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	PhoneNumber   string        `json:"phone_number"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization Customization `json:"customization"`
}

// PaymentGateway is the hex port for payment providers.
//
// InitializeTransaction is synchronous: it returns a checkout URL the payer is
// redirected to, or an error. An explicit non-success payload from the
// provider is a failure even when the transport call succeeded.
type PaymentGateway interface {
	Name() string
	InitializeTransaction(ctx context.Context, req TransactionRequest) (checkoutURL string, err error)
}

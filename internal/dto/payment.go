package dto

const PaymentStatusCompleted = "COMPLETED"

// PaymentDetails is the processor's view of a payment, normalised across
// processors.
type PaymentDetails struct {
	ID           string
	Status       string
	Amount       string
	CurrencyCode string
	UpdateTime   string
	EmailAddress string
}

type PayPalAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type PayPalOrder struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	UpdateTime    string               `json:"update_time"`
	PurchaseUnits []PayPalPurchaseUnit `json:"purchase_units"`
	Payer         PayPalPayer          `json:"payer"`
}

type PayPalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id"`
	Amount      PayPalAmount `json:"amount"`
}

type PayPalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PayPalPayer struct {
	EmailAddress string `json:"email_address"`
}

type PayPalConfigResponse struct {
	ClientID string `json:"clientId"`
}

package dto

import "github.com/alimikegami/refurbished-store/storefront-service/internal/domain"

type OrderItemRequest struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

type OrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PayOrderRequest carries the processor's order/transaction ID. paypalOrderID
// is accepted for clients built against the PayPal button callback.
type PayOrderRequest struct {
	OrderID       string `param:"id"`
	PaymentID     string `json:"paymentId"`
	PayPalOrderID string `json:"paypalOrderID"`
}

func (r PayOrderRequest) ProcessorID() string {
	if r.PaymentID != "" {
		return r.PaymentID
	}
	return r.PayPalOrderID
}

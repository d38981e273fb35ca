package dto

import "github.com/alimikegami/refurbished-store/storefront-service/internal/domain"

type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderResponse struct {
	domain.Order
	UserDetail *OrderUser `json:"userDetail,omitempty"`
}

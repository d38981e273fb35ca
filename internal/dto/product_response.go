package dto

import "github.com/alimikegami/refurbished-store/storefront-service/internal/domain"

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int64            `json:"total"`
}

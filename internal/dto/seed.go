package dto

import "github.com/alimikegami/refurbished-store/storefront-service/internal/domain"

type SeedResult struct {
	ProductsCreated int            `json:"productsCreated"`
	Batches         int            `json:"batches"`
	ByModel         map[string]int `json:"byModel"`
	AdminEmail      string         `json:"adminEmail"`
}

type ClearResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type SeedStatus struct {
	Products struct {
		Total       int64                     `json:"total"`
		ByModel     []domain.ModelSummary     `json:"byModel"`
		ByCondition []domain.ConditionSummary `json:"byCondition"`
	} `json:"products"`
	Admin struct {
		Exists bool   `json:"exists"`
		Email  string `json:"email,omitempty"`
	} `json:"admin"`
	HasSeedSecret bool `json:"hasSeedSecret"`
}

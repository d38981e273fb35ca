package dto

const AvailabilityInStock = "IN_STOCK"

type InventoryRecord struct {
	Model              string         `json:"model"`
	Condition          string         `json:"condition,omitempty"`
	Availability       string         `json:"availability"`
	Quantity           int            `json:"quantity"`
	ConditionBreakdown map[string]int `json:"conditionBreakdown,omitempty"`
}

type InventorySyncResult struct {
	RecordsReceived int   `json:"recordsReceived"`
	RecordsSkipped  int   `json:"recordsSkipped"`
	UpdatesApplied  int   `json:"updatesApplied"`
	UpdatesFailed   int   `json:"updatesFailed"`
	ProductsMatched int64 `json:"productsMatched"`
}

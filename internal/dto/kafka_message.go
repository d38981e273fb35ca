package dto

const (
	EventOrderCreated    = "order_created"
	EventOrderPaid       = "order_paid"
	EventOrderDelivered  = "order_delivered"
	EventInventorySynced = "inventory_synced"
	EventCatalogSeeded   = "catalog_seeded"
)

type KafkaMessage struct {
	EventType  string      `json:"event_type"`
	OccurredAt int64       `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type OrderEvent struct {
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
	ItemCount  int     `json:"item_count"`
}

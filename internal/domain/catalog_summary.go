package domain

type ModelSummary struct {
	ModelName string  `bson:"_id" json:"model"`
	Count     int64   `bson:"count" json:"count"`
	AvgPrice  float64 `bson:"avgPrice" json:"avgPrice"`
}

type ConditionSummary struct {
	Condition string `bson:"_id" json:"condition"`
	Count     int64  `bson:"count" json:"count"`
}

package dto

type ProductRequest struct {
	ID           string  `param:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	CountInStock int     `json:"countInStock"`
	ModelName    string  `json:"modelName"`
	Storage      string  `json:"storage"`
	Color        string  `json:"color"`
	Condition    string  `json:"condition"`
}

type ReviewRequest struct {
	ProductID string `param:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConditionExcellent = "A"
	ConditionGood      = "B"
	ConditionFair      = "C"

	DefaultBrand    = "Google Pixel"
	DefaultCategory = "Smartphone"
)

var Conditions = []string{ConditionExcellent, ConditionGood, ConditionFair}

var conditionDescriptions = map[string]string{
	ConditionExcellent: "Excellent - Like new with minimal signs of use. Perfect working condition.",
	ConditionGood:      "Good - Light scratches or wear. Fully functional with great battery life.",
	ConditionFair:      "Fair - Visible scratches and signs of use. 100% functional with good battery life.",
}

var ModelNames = []string{
	"Pixel 9a",
	"Pixel 9 Pro Fold",
	"Pixel 9 Pro XL",
	"Pixel 9 Pro",
	"Pixel 9",
	"Pixel 8a",
	"Pixel 8 Pro",
	"Pixel 8",
	"Pixel Fold",
	"Pixel Tablet",
	"Pixel 7a",
	"Pixel 7 Pro",
	"Pixel 7",
	"Pixel 6a",
	"Pixel 6 Pro",
	"Pixel 6",
}

var StorageTiers = []string{"64GB", "128GB", "256GB", "512GB", "1TB"}

type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
	Name                 string             `bson:"name" json:"name"`
	Image                string             `bson:"image" json:"image"`
	Brand                string             `bson:"brand" json:"brand"`
	Category             string             `bson:"category" json:"category"`
	Description          string             `bson:"description" json:"description"`
	Condition            string             `bson:"condition" json:"condition"`
	ConditionDescription string             `bson:"conditionDescription" json:"conditionDescription"`
	Price                float64            `bson:"price" json:"price"`
	CountInStock         int                `bson:"countInStock" json:"countInStock"`
	Rating               float64            `bson:"rating" json:"rating"`
	NumReviews           int                `bson:"numReviews" json:"numReviews"`
	Reviews              []Review           `bson:"reviews" json:"reviews"`
	ModelName            string             `bson:"modelName" json:"modelName"`
	Storage              string             `bson:"storage" json:"storage"`
	Color                string             `bson:"color" json:"color"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ConditionDescription returns the fixed text for a condition code, or "" for
// an unknown code.
func ConditionDescription(condition string) string {
	return conditionDescriptions[condition]
}

func ConditionLabel(condition string) string {
	desc := conditionDescriptions[condition]
	label, _, _ := strings.Cut(desc, " - ")
	return label
}

func IsValidCondition(condition string) bool {
	_, ok := conditionDescriptions[condition]
	return ok
}

func IsValidModelName(modelName string) bool {
	for _, m := range ModelNames {
		if m == modelName {
			return true
		}
	}
	return false
}

func IsValidStorage(storage string) bool {
	for _, s := range StorageTiers {
		if s == storage {
			return true
		}
	}
	return false
}

// Normalize applies defaults and recomputes the condition description. It is
// called before every write of a product document.
func (p *Product) Normalize() {
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Condition == "" {
		p.Condition = ConditionExcellent
	}
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
	p.ConditionDescription = ConditionDescription(p.Condition)
}

func (p Product) Validate() bool {
	return p.Name != "" &&
		p.Image != "" &&
		p.Description != "" &&
		p.Price >= 0 &&
		p.CountInStock >= 0 &&
		p.Color != "" &&
		IsValidCondition(p.Condition) &&
		IsValidModelName(p.ModelName) &&
		IsValidStorage(p.Storage)
}

func (p Product) HasReviewFrom(userID primitive.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.User == userID {
			return true
		}
	}
	return false
}

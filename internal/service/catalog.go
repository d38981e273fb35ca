package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type catalogEntry struct {
	Model     string
	Storage   string
	Colors    []string
	BasePrice int64
}

var catalogEntries = []catalogEntry{
	{Model: "Pixel 9 Pro XL", Storage: "128GB", Colors: []string{"Obsidian", "Porcelain", "Hazel", "Rose Quartz"}, BasePrice: 1099},
	{Model: "Pixel 9 Pro XL", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain", "Hazel", "Rose Quartz"}, BasePrice: 1199},
	{Model: "Pixel 9 Pro XL", Storage: "512GB", Colors: []string{"Obsidian", "Porcelain", "Hazel"}, BasePrice: 1319},
	{Model: "Pixel 9 Pro XL", Storage: "1TB", Colors: []string{"Obsidian"}, BasePrice: 1549},

	{Model: "Pixel 9 Pro", Storage: "128GB", Colors: []string{"Obsidian", "Porcelain", "Hazel", "Rose Quartz"}, BasePrice: 999},
	{Model: "Pixel 9 Pro", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain", "Hazel", "Rose Quartz"}, BasePrice: 1099},
	{Model: "Pixel 9 Pro", Storage: "512GB", Colors: []string{"Obsidian", "Porcelain", "Hazel"}, BasePrice: 1219},
	{Model: "Pixel 9 Pro", Storage: "1TB", Colors: []string{"Obsidian"}, BasePrice: 1449},

	{Model: "Pixel 9", Storage: "128GB", Colors: []string{"Obsidian", "Porcelain", "Wintergreen", "Peony"}, BasePrice: 799},
	{Model: "Pixel 9", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain", "Wintergreen", "Peony"}, BasePrice: 899},

	{Model: "Pixel 9 Pro Fold", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain"}, BasePrice: 1799},
	{Model: "Pixel 9 Pro Fold", Storage: "512GB", Colors: []string{"Obsidian", "Porcelain"}, BasePrice: 1919},

	{Model: "Pixel 8 Pro", Storage: "128GB", Colors: []string{"Obsidian", "Porcelain", "Bay"}, BasePrice: 999},
	{Model: "Pixel 8 Pro", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain", "Bay"}, BasePrice: 1059},
	{Model: "Pixel 8 Pro", Storage: "512GB", Colors: []string{"Obsidian", "Porcelain", "Bay"}, BasePrice: 1179},
	{Model: "Pixel 8 Pro", Storage: "1TB", Colors: []string{"Obsidian"}, BasePrice: 1399},

	{Model: "Pixel 8", Storage: "128GB", Colors: []string{"Obsidian", "Hazel", "Rose"}, BasePrice: 699},
	{Model: "Pixel 8", Storage: "256GB", Colors: []string{"Obsidian", "Hazel", "Rose"}, BasePrice: 759},

	{Model: "Pixel 8a", Storage: "128GB", Colors: []string{"Obsidian", "Porcelain", "Bay", "Aloe"}, BasePrice: 499},
	{Model: "Pixel 8a", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain", "Bay", "Aloe"}, BasePrice: 559},

	{Model: "Pixel 7 Pro", Storage: "128GB", Colors: []string{"Obsidian", "Snow", "Hazel"}, BasePrice: 899},
	{Model: "Pixel 7 Pro", Storage: "256GB", Colors: []string{"Obsidian", "Snow", "Hazel"}, BasePrice: 999},
	{Model: "Pixel 7 Pro", Storage: "512GB", Colors: []string{"Obsidian", "Snow"}, BasePrice: 1099},

	{Model: "Pixel 7", Storage: "128GB", Colors: []string{"Obsidian", "Snow", "Lemongrass"}, BasePrice: 599},
	{Model: "Pixel 7", Storage: "256GB", Colors: []string{"Obsidian", "Snow", "Lemongrass"}, BasePrice: 699},

	{Model: "Pixel 7a", Storage: "128GB", Colors: []string{"Charcoal", "Snow", "Sea", "Coral"}, BasePrice: 449},

	{Model: "Pixel 6 Pro", Storage: "128GB", Colors: []string{"Stormy Black", "Cloudy White", "Sorta Sunny"}, BasePrice: 899},
	{Model: "Pixel 6 Pro", Storage: "256GB", Colors: []string{"Stormy Black", "Cloudy White", "Sorta Sunny"}, BasePrice: 999},
	{Model: "Pixel 6 Pro", Storage: "512GB", Colors: []string{"Stormy Black", "Cloudy White"}, BasePrice: 1099},

	{Model: "Pixel 6", Storage: "128GB", Colors: []string{"Stormy Black", "Sorta Seafoam", "Kinda Coral"}, BasePrice: 599},
	{Model: "Pixel 6", Storage: "256GB", Colors: []string{"Stormy Black", "Sorta Seafoam", "Kinda Coral"}, BasePrice: 699},

	{Model: "Pixel 6a", Storage: "128GB", Colors: []string{"Chalk", "Charcoal", "Sage"}, BasePrice: 449},

	{Model: "Pixel Fold", Storage: "256GB", Colors: []string{"Obsidian", "Porcelain"}, BasePrice: 1799},
	{Model: "Pixel Fold", Storage: "512GB", Colors: []string{"Obsidian"}, BasePrice: 1919},

	{Model: "Pixel Tablet", Storage: "128GB", Colors: []string{"Porcelain", "Hazel"}, BasePrice: 499},
	{Model: "Pixel Tablet", Storage: "256GB", Colors: []string{"Porcelain", "Hazel"}, BasePrice: 599},
}

var conditionMultipliers = map[string]decimal.Decimal{
	domain.ConditionExcellent: decimal.NewFromInt(1),
	domain.ConditionGood:      decimal.RequireFromString("0.85"),
	domain.ConditionFair:      decimal.RequireFromString("0.70"),
}

// stock ranges are inclusive
var stockRanges = map[string][2]int{
	domain.ConditionExcellent: {3, 10},
	domain.ConditionGood:      {2, 7},
	domain.ConditionFair:      {1, 4},
}

var conditionGrades = map[string]string{
	domain.ConditionExcellent: "Excellent condition - Like new with minimal signs of use. Perfect working condition with exceptional battery health (95%+).",
	domain.ConditionGood:      "Good condition - Light scratches or minor wear. Fully functional with great battery life (85-94% battery health).",
	domain.ConditionFair:      "Fair condition - Visible scratches and signs of use. 100% functional with decent battery life (75-84% battery health).",
}

var physicalConditions = map[string]string{
	domain.ConditionExcellent: "Like-new",
	domain.ConditionGood:      "Excellent",
	domain.ConditionFair:      "Good",
}

var modelFeatures = map[string]string{
	"Pixel 9":          "Google Tensor G4 chip, 12GB RAM, 48MP main camera with 2x ultrawide",
	"Pixel 9 Pro":      "Google Tensor G4 chip, 16GB RAM, 50MP main + 48MP ultrawide + 48MP telephoto cameras",
	"Pixel 9 Pro XL":   "Google Tensor G4 chip, 16GB RAM, 50MP main + 48MP ultrawide + 48MP telephoto cameras, 6.8\" display",
	"Pixel 9 Pro Fold": "Google Tensor G4 chip, 16GB RAM, foldable 8\" inner display, triple camera system",
	"Pixel 8":          "Google Tensor G3 chip, 8GB RAM, 50MP main camera with Magic Eraser",
	"Pixel 8 Pro":      "Google Tensor G3 chip, 12GB RAM, 50MP main + 48MP ultrawide + 48MP telephoto cameras",
	"Pixel 8a":         "Google Tensor G3 chip, 8GB RAM, 64MP main camera, excellent value",
	"Pixel 7":          "Google Tensor G2 chip, 8GB RAM, 50MP main camera",
	"Pixel 7 Pro":      "Google Tensor G2 chip, 12GB RAM, 50MP main + 12MP ultrawide + 48MP telephoto cameras",
	"Pixel 7a":         "Google Tensor G2 chip, 8GB RAM, 64MP main camera, wireless charging",
	"Pixel 6":          "Google Tensor chip, 8GB RAM, 50MP main camera",
	"Pixel 6 Pro":      "Google Tensor chip, 12GB RAM, 50MP main + 12MP ultrawide + 48MP telephoto cameras",
	"Pixel 6a":         "Google Tensor chip, 6GB RAM, 12.2MP main camera, great value",
	"Pixel Fold":       "Google Tensor G2 chip, 12GB RAM, foldable design, multiple cameras",
	"Pixel Tablet":     "Google Tensor G2 chip, 8GB RAM, 11\" display, charging speaker dock included",
}

const descriptionTemplate = `GrapheneOS flashed %[1]s in %[3]s with %[2]s storage. %[4]s

This device comes with GrapheneOS pre-installed, offering unparalleled privacy and security. GrapheneOS is a privacy and security-focused mobile OS with Android app compatibility developed as an open source project.

Device Features:
- %[5]s
- %[2]s internal storage
- Beautiful %[3]s finish
- %[6]s physical condition

GrapheneOS Features:
- Enhanced privacy protection beyond standard Android
- Hardened security with regular updates
- No Google services pre-installed
- Full Android app compatibility through sandboxed Google Play
- Advanced permission controls
- Network permission toggle
- Enhanced verified boot
- Regular security updates

This phone has been thoroughly tested and comes with a 30-day warranty. All original accessories may not be included, but a compatible charger is provided.

Perfect for privacy-conscious users who want the latest Android features without compromising their personal data.`

// SkipsFairCondition reports whether a model is never sold in condition C.
func SkipsFairCondition(model string) bool {
	return strings.Contains(model, "Pro") || strings.Contains(model, "Fold")
}

// VariantPrice scales the base price by the condition multiplier and rounds
// to a whole unit.
func VariantPrice(basePrice int64, condition string) float64 {
	return decimal.NewFromInt(basePrice).Mul(conditionMultipliers[condition]).Round(0).InexactFloat64()
}

func kebab(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func productDescription(model, storage, color, condition string) string {
	features, ok := modelFeatures[model]
	if !ok {
		features = "Latest Google Pixel technology"
	}

	return fmt.Sprintf(descriptionTemplate, model, storage, color, conditionGrades[condition], features, physicalConditions[condition])
}

func randomBetween(rng *rand.Rand, bounds [2]int) int {
	return rng.IntN(bounds[1]-bounds[0]+1) + bounds[0]
}

// GenerateCatalog expands the catalog table into one product per
// model, storage, colour and condition. Stock, rating and review counts come
// from rng, so a fixed seed yields the same catalog.
func GenerateCatalog(adminID primitive.ObjectID, rng *rand.Rand) []domain.Product {
	products := make([]domain.Product, 0, 256)

	for _, entry := range catalogEntries {
		category := domain.DefaultCategory
		if strings.Contains(entry.Model, "Tablet") {
			category = "Tablet"
		}

		for _, color := range entry.Colors {
			for _, condition := range domain.Conditions {
				if condition == domain.ConditionFair && SkipsFairCondition(entry.Model) {
					continue
				}

				product := domain.Product{
					User:         adminID,
					Name:         fmt.Sprintf("GrapheneOS %s %s %s - %s", entry.Model, entry.Storage, color, domain.ConditionLabel(condition)),
					Image:        fmt.Sprintf("/images/%s-%s.jpg", kebab(entry.Model), kebab(color)),
					Brand:        domain.DefaultBrand,
					Category:     category,
					Description:  productDescription(entry.Model, entry.Storage, color, condition),
					Condition:    condition,
					Price:        VariantPrice(entry.BasePrice, condition),
					CountInStock: randomBetween(rng, stockRanges[condition]),
					Rating:       decimal.NewFromFloat(4.2 + rng.Float64()*0.7).Round(1).InexactFloat64(),
					NumReviews:   rng.IntN(25) + 5,
					ModelName:    entry.Model,
					Storage:      entry.Storage,
					Color:        color,
				}
				product.Normalize()

				products = append(products, product)
			}
		}
	}

	return products
}

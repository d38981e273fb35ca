package service

import (
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/utils"
	"github.com/shopspring/decimal"
)

var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShipping          = decimal.NewFromInt(10)
	taxRate               = decimal.RequireFromString("0.20")
)

type OrderPrices struct {
	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	TotalPrice    float64
}

// CalculatePrices applies free shipping above £100 and 20% tax on items.
func CalculatePrices(items []domain.OrderItem) OrderPrices {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	itemsPrice = itemsPrice.Round(2)

	shipping := flatShipping
	if itemsPrice.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(taxRate).Round(2)
	total := itemsPrice.Add(shipping).Add(tax)

	return OrderPrices{
		ItemsPrice:    utils.RoundMoney(itemsPrice),
		ShippingPrice: utils.RoundMoney(shipping),
		TaxPrice:      utils.RoundMoney(tax),
		TotalPrice:    utils.RoundMoney(total),
	}
}

// VerifyPayment holds only when status, amount and currency all match.
func VerifyPayment(order domain.Order, details dto.PaymentDetails) bool {
	return details.Status == dto.PaymentStatusCompleted &&
		utils.AmountEquals(details.Amount, order.TotalPrice) &&
		details.CurrencyCode == order.CurrencyCode
}

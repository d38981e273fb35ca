package utils

import "github.com/shopspring/decimal"

// RoundMoney rounds to pence.
func RoundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// AmountEquals compares a processor-reported decimal string against a stored
// total at two decimal places.
func AmountEquals(reported string, stored float64) bool {
	amount, err := decimal.NewFromString(reported)
	if err != nil {
		return false
	}

	return amount.Equal(decimal.NewFromFloat(stored).Round(2))
}

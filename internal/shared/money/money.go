// Package money keeps currency arithmetic out of binary floating point.
package money

import "github.com/shopspring/decimal"

// FromFloat converts a catalog price into a decimal amount.
func FromFloat(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// LineTotal multiplies a unit price by a quantity.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return FromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum adds up the provided amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// Round2 rounds half away from zero to cents.
func Round2(amount decimal.Decimal) float64 {
	return amount.Round(2).InexactFloat64()
}

// Float reports the amount as float64 for transport.
func Float(amount decimal.Decimal) float64 {
	return amount.InexactFloat64()
}

package common

import "github.com/shopspring/decimal"

// ToDecimal and FromDecimal are an opt-in conversion boundary for callers
// who need exact decimal arithmetic around the engine, reconciling fills
// against a ledger for instance, without moving the hot matching path off
// float64. The engine's own Price and Quantity fields stay float64;
// nothing internal to the book or matcher uses decimal.Decimal.
func ToDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromDecimal converts back to the float64 representation the engine
// actually stores and compares.
func FromDecimal(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

package domain

import (
	"fmt"
	"math"
)

// Money is an amount in euro cents. Prices are stored as numeric(7,2).
type Money int64

// MaxPrice is the largest price a numeric(7,2) column holds.
const MaxPrice Money = 9999999

// MoneyFromEuros rounds a euro amount to whole cents.
func MoneyFromEuros(euros float64) Money {
	return Money(math.Round(euros * 100))
}

func (m Money) Euros() float64 {
	return float64(m) / 100
}

// Whole returns the amount without cents, as shown on listing cards.
func (m Money) Whole() int64 {
	return int64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

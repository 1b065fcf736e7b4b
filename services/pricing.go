package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hoursPerDay = decimal.NewFromInt(24)

// ElapsedHours rounds the stay up to the next full hour. Any stay is billed
// for at least one hour.
func ElapsedHours(from, to time.Time) int64 {
	hours := int64(math.Ceil(to.Sub(from).Hours()))
	if hours < 1 {
		return 1
	}
	return hours
}

// ProratedPrice is the 24-hour rate spread over the given hours, rounded to
// two decimals.
func ProratedPrice(pricePerDay decimal.Decimal, hours int64) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(hours)).Div(hoursPerDay).Round(2)
}

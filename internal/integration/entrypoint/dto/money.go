package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Money rounds an amount to cents for responses.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// MoneyPtr is Money for optional amounts.
func MoneyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := Money(*d)
	return &v
}

// Ratio rounds a derived rate to four decimals.
func Ratio(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}

// FormatDate renders the calendar day of t in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDate reads a calendar day in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, loc)
}

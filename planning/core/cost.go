package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// The 08:00-17:00 preset is the standard full day. It spans nine hours
// on the clock but bills eight: the lunch hour is unpaid.
const (
	FullDayStart = "08:00:00"
	FullDayEnd   = "17:00:00"
)

var (
	fullDayHours   = decimal.NewFromInt(8)
	minutesPerHour = decimal.NewFromInt(60)
)

// SlotHours returns the billable duration of a slot in fractional
// hours. end is expected after start on the same date; an earlier end
// is treated as crossing midnight, which validation normally prevents.
func SlotHours(start, end time.Time) decimal.Decimal {
	if formatClock(start) == FullDayStart && formatClock(end) == FullDayEnd {
		return fullDayHours
	}

	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	minutes := int64(end.Sub(start) / time.Minute)
	return decimal.NewFromInt(minutes).Div(minutesPerHour)
}

// ComputeCost derives a slot's monetary cost from its billable hours
// and the employee's hourly rate. No rate means no cost. The result is
// rounded to 2 decimals only by the caller at persistence.
func ComputeCost(hours decimal.Decimal, hourlyRate *decimal.Decimal) decimal.Decimal {
	if hourlyRate == nil {
		return decimal.Zero
	}
	return hours.Mul(*hourlyRate)
}

func formatClock(t time.Time) string {
	return t.Format("15:04:05")
}

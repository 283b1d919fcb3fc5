package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

var halfDay = decimal.NewFromFloat(0.5)

// TotalDays counts the calendar days in [start, end] inclusive, taking off
// half a day for each half-day marker. The result is clamped at zero so a
// single day marked half at both ends cannot go negative.
//
// Public holidays inside the span are deliberately not excluded; they are
// calendar annotations, not working-time rules.
func TotalDays(start, end time.Time, halfStart, halfEnd bool) decimal.Decimal {
	start = truncateToDay(start)
	end = truncateToDay(end)

	span := int64(end.Sub(start).Hours()/24) + 1
	total := decimal.NewFromInt(span)
	if halfStart {
		total = total.Sub(halfDay)
	}
	if halfEnd {
		total = total.Sub(halfDay)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

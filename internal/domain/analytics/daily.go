package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySeries returns the DailyWindow calendar days ending with the day of
// now, ascending, all at midnight in now's location.
func DaySeries(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]time.Time, DailyWindow)
	for i := 0; i < DailyWindow; i++ {
		days[i] = today.AddDate(0, 0, i-(DailyWindow-1))
	}
	return days
}

// FillDaily zero-fills sparse points onto the day series
func FillDaily(days []time.Time, points []DailyPoint) []DailyPoint {
	byDay := make(map[string]DailyPoint, len(points))
	for _, p := range points {
		byDay[p.Date.Format(time.DateOnly)] = p
	}
	out := make([]DailyPoint, len(days))
	for i, d := range days {
		point := DailyPoint{Date: d, Revenue: decimal.Zero}
		if p, ok := byDay[d.Format(time.DateOnly)]; ok {
			point.Revenue = p.Revenue
			point.Orders = p.Orders
		}
		out[i] = point
	}
	return out
}

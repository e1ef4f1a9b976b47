package analytics

import "github.com/shopspring/decimal"

// PriceTier is a half-open price interval [Min, Max); a nil Max is unbounded
type PriceTier struct {
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// PriceTiers are the buckets reported in price_ranges
var PriceTiers = []PriceTier{
	{Label: "<1000", Min: decimal.Zero, Max: bound(1000)},
	{Label: "1000-5000", Min: decimal.NewFromInt(1000), Max: bound(5000)},
	{Label: "5000-20000", Min: decimal.NewFromInt(5000), Max: bound(20000)},
	{Label: "20000+", Min: decimal.NewFromInt(20000)},
}

// Contains reports whether price falls in the tier
func (t PriceTier) Contains(price decimal.Decimal) bool {
	if price.LessThan(t.Min) {
		return false
	}
	return t.Max == nil || price.LessThan(*t.Max)
}

// BucketPrices counts prices per tier; every tier label is present
func BucketPrices(prices []decimal.Decimal) map[string]int64 {
	counts := make(map[string]int64, len(PriceTiers))
	for _, t := range PriceTiers {
		counts[t.Label] = 0
	}
	for _, p := range prices {
		for _, t := range PriceTiers {
			if t.Contains(p) {
				counts[t.Label]++
				break
			}
		}
	}
	return counts
}

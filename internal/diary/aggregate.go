package diary

import "github.com/shopspring/decimal"

// Summary is the monthly rollup of a user's diary.
type Summary struct {
	Count         int
	TotalDistance decimal.Decimal
	Entries       []Entry
}

// Summarize rolls up a month's entries, preserving their incoming order.
// Every entry counts toward Count even when its distance is zero from a
// coerced malformed value.
func Summarize(entries []Entry) Summary {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.DistanceKM)
	}
	return Summary{
		Count:         len(entries),
		TotalDistance: total,
		Entries:       entries,
	}
}

package accounting

import "github.com/shopspring/decimal"

// RunningBalances returns the balance after each of sorted[start:end]. The
// balance is seeded with the sum of every delta before start, so a page shows
// the global running balance rather than one local to the page.
func RunningBalances[T any](sorted []T, start, end int, delta func(T) decimal.Decimal) []decimal.Decimal {
	if start < 0 {
		start = 0
	}
	if end > len(sorted) {
		end = len(sorted)
	}
	if start >= end {
		return []decimal.Decimal{}
	}

	balance := decimal.Zero
	for _, item := range sorted[:start] {
		balance = balance.Add(delta(item))
	}

	out := make([]decimal.Decimal, 0, end-start)
	for _, item := range sorted[start:end] {
		balance = balance.Add(delta(item))
		out = append(out, balance)
	}
	return out
}

package services

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/boutique/app/repositories"
)

// breakdown renders groups as {_id, count, <sumKey>} rows. It is never nil.
func breakdown(groups []repositories.Group, sumKey string) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, map[string]interface{}{
			"_id":   g.Key,
			"count": g.Count,
			sumKey:  g.Total,
		})
	}
	return rows
}

// totals sums counts and totals across groups. An empty slice gives zeros.
func totals(groups []repositories.Group) (int64, float64) {
	var count int64
	sum := decimal.Zero
	for _, g := range groups {
		count += g.Count
		sum = sum.Add(money(g.Total))
	}
	return count, sum.InexactFloat64()
}

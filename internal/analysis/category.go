package analysis

import (
	"math"
	"sort"
)

// AnalyzeCategoryByDay computes the average daily quantity per category:
// quantities are first collapsed to per-(category, day) totals, then those
// totals are averaged per category and rounded to one decimal. Rows without a
// valid date are excluded; categories with zero remaining rows do not appear.
// Output is sorted by category name.
func AnalyzeCategoryByDay(rows []Row) []CategoryAvg {
	type dayKey struct {
		category string
		day      string
	}
	dayTotals := make(map[dayKey]float64)
	for _, row := range rows {
		if !row.HasDate {
			continue
		}
		key := dayKey{category: row.Category, day: row.Day}
		if row.HasQuantity {
			dayTotals[key] += row.Quantity
		} else if _, seen := dayTotals[key]; !seen {
			dayTotals[key] = 0
		}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for key, total := range dayTotals {
		sums[key.category] += total
		counts[key.category]++
	}

	averages := make([]CategoryAvg, 0, len(sums))
	for category, sum := range sums {
		avg := sum / float64(counts[category])
		averages = append(averages, CategoryAvg{
			Category:       category,
			AvgUnitsPerDay: math.Round(avg*10) / 10,
		})
	}

	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Category < averages[j].Category
	})
	return averages
}

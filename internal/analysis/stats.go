package analysis

import (
	"math"
	"sort"
	"strconv"
)

// Describe computes the fixed descriptive statistic set over a numeric series.
// Null values must already be excluded by the caller, so the degenerate cases
// reduce to the length of the slice:
//
//	empty series        -> Count 0, Valid false (all statistics null)
//	single value v      -> Count 1, min=max=mean=median=v, std 0, percentiles v
//	two or more values  -> sample statistics, percentiles by linear
//	                       interpolation between order statistics
func Describe(values []float64) SeriesStats {
	if len(values) == 0 {
		return SeriesStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats := SeriesStats{
		Count:  len(sorted),
		Valid:  true,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean(sorted),
		Median: percentile(sorted, 0.50),
		P25:    percentile(sorted, 0.25),
		P75:    percentile(sorted, 0.75),
		P90:    percentile(sorted, 0.90),
		P95:    percentile(sorted, 0.95),
	}
	if len(sorted) > 1 {
		stats.Std = stdDev(sorted, stats.Mean)
	}
	return stats
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// percentile returns the value at percentile p (0..1) of a sorted series,
// linearly interpolating between the neighboring order statistics.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// DailyStatistics derives the planning statistics table from the day-level
// aggregation: the number of days analyzed plus mean/max/min/p75/p90 of the
// per-day line-count and quantity-total distributions. With no observed days
// only the day count is reported; the remaining metrics render empty.
func DailyStatistics(daily []PeriodSummary) []MetricValue {
	lines := make([]float64, len(daily))
	units := make([]float64, len(daily))
	for i, d := range daily {
		lines[i] = float64(d.LinesTotal)
		units[i] = d.TotalQuantity
	}

	lineStats := Describe(lines)
	unitStats := Describe(units)

	format := func(s SeriesStats, v float64, decimals int) string {
		if !s.Valid {
			return ""
		}
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	return []MetricValue{
		{Metric: "Days Analyzed", Value: strconv.Itoa(len(daily))},
		{Metric: "Avg Lines per Day", Value: format(lineStats, lineStats.Mean, 1)},
		{Metric: "Max Lines per Day", Value: format(lineStats, lineStats.Max, 0)},
		{Metric: "Min Lines per Day", Value: format(lineStats, lineStats.Min, 0)},
		{Metric: "Lines 75th Percentile", Value: format(lineStats, lineStats.P75, 0)},
		{Metric: "Lines 90th Percentile", Value: format(lineStats, lineStats.P90, 0)},
		{Metric: "Avg Units per Day", Value: format(unitStats, unitStats.Mean, 1)},
		{Metric: "Max Units per Day", Value: format(unitStats, unitStats.Max, 0)},
		{Metric: "Min Units per Day", Value: format(unitStats, unitStats.Min, 0)},
		{Metric: "Units 75th Percentile", Value: format(unitStats, unitStats.P75, 0)},
		{Metric: "Units 90th Percentile", Value: format(unitStats, unitStats.P90, 0)},
	}
}

// WeekdayStatistics computes, for each weekday, the mean and 90th percentile
// of per-day quantity totals. Totals are collapsed per (weekday, calendar day)
// first, so a weekday observed on four different dates contributes four
// values. Output follows the canonical Monday-through-Sunday order; weekdays
// with zero observed days are omitted.
func WeekdayStatistics(rows []Row) []WeekdayStats {
	type dayKey struct {
		weekday string
		day     string
	}
	dayTotals := make(map[dayKey]float64)
	for _, row := range rows {
		if !row.HasDate {
			continue
		}
		key := dayKey{weekday: row.Weekday, day: row.Day}
		if row.HasQuantity {
			dayTotals[key] += row.Quantity
		} else if _, seen := dayTotals[key]; !seen {
			dayTotals[key] = 0
		}
	}

	byWeekday := make(map[string][]float64)
	for key, total := range dayTotals {
		byWeekday[key.weekday] = append(byWeekday[key.weekday], total)
	}

	weekdays := []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
	stats := make([]WeekdayStats, 0, len(weekdays))
	for _, weekday := range weekdays {
		totals := byWeekday[weekday]
		if len(totals) == 0 {
			continue
		}
		s := Describe(totals)
		stats = append(stats, WeekdayStats{
			Weekday:   weekday,
			AvgUnits:  math.Round(s.Mean*10) / 10,
			P90Units:  math.Round(s.P90),
			DaysCount: s.Count,
		})
	}
	return stats
}

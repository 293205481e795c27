package analysis

import (
	"sort"
	"strconv"
)

// weekdayOrder is the canonical Monday-through-Sunday ordering used for every
// weekday-keyed output.
var weekdayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// periodValue returns the grouping key of a row for the given period field.
// Rows without a valid date have no defined key for any calendar field and
// return false.
func periodValue(row Row, field PeriodField) (string, bool) {
	if !row.HasDate {
		return "", false
	}
	switch field {
	case PeriodDay:
		return row.Day, true
	case PeriodYearWeek:
		return row.YearWeek, true
	case PeriodMonth:
		return strconv.Itoa(row.Month), true
	case PeriodWeekday:
		return row.Weekday, true
	case PeriodYearQuarter:
		return row.YearQuarter, true
	default:
		return "", false
	}
}

// AggregateByPeriod groups rows by one derived calendar field and computes the
// per-period totals: line count, summed quantity (nulls excluded, all-null
// groups sum to zero), distinct invoice count, and average lines per invoice.
// Only observed period values produce rows; there is no zero-filling. Rows
// with a null date are excluded because their grouping key is undefined.
// Blank invoice ids do not count as distinct invoices; a period whose rows all
// have blank invoices reports zero invoices and a zero average.
//
// Output is ordered by the key's natural order: chronological for day, week,
// month and quarter, Monday through Sunday for weekdays.
func AggregateByPeriod(rows []Row, field PeriodField) []PeriodSummary {
	type group struct {
		lines    int
		quantity float64
		invoices map[string]struct{}
	}
	groups := make(map[string]*group)

	for _, row := range rows {
		key, ok := periodValue(row, field)
		if !ok {
			continue
		}
		g := groups[key]
		if g == nil {
			g = &group{invoices: make(map[string]struct{})}
			groups[key] = g
		}
		g.lines++
		if row.HasQuantity {
			g.quantity += row.Quantity
		}
		if row.Invoice != "" {
			g.invoices[row.Invoice] = struct{}{}
		}
	}

	summaries := make([]PeriodSummary, 0, len(groups))
	for key, g := range groups {
		s := PeriodSummary{
			PeriodType:     string(field),
			Period:         key,
			LinesTotal:     g.lines,
			TotalQuantity:  g.quantity,
			InvoicesUnique: len(g.invoices),
		}
		if s.InvoicesUnique > 0 {
			s.AvgLinesPerInvoice = float64(s.LinesTotal) / float64(s.InvoicesUnique)
		}
		summaries = append(summaries, s)
	}

	sortSummaries(summaries, field)
	return summaries
}

func sortSummaries(summaries []PeriodSummary, field PeriodField) {
	switch field {
	case PeriodMonth:
		sort.Slice(summaries, func(i, j int) bool {
			a, _ := strconv.Atoi(summaries[i].Period)
			b, _ := strconv.Atoi(summaries[j].Period)
			return a < b
		})
	case PeriodWeekday:
		sort.Slice(summaries, func(i, j int) bool {
			return weekdayOrder[summaries[i].Period] < weekdayOrder[summaries[j].Period]
		})
	default:
		// Day, year-week and year-quarter labels are zero-padded, so
		// lexicographic order is chronological.
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].Period < summaries[j].Period
		})
	}
}

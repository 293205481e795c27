package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deriveTestRows builds typed rows through the real derivation path so period
// tests exercise the same calendar fields production does.
func deriveTestRows(t *testing.T, records ...[]string) []Row {
	t.Helper()
	table := testTable([]string{"Date", "Invoice", "SKU", "Qty"}, records...)
	rows, _, err := NewAnalyzer(nil).Derive(testRequest(table))
	require.NoError(t, err)
	return rows
}

func TestAggregateByPeriod_Daily(t *testing.T) {
	rows := deriveTestRows(t,
		[]string{"2024-03-01", "INV-1", "A", "5"},
		[]string{"2024-03-01", "INV-1", "B", "3"},
		[]string{"2024-03-01", "INV-2", "C", ""},
		[]string{"2024-03-02", "INV-3", "A", "10"},
	)

	daily := AggregateByPeriod(rows, PeriodDay)
	require.Len(t, daily, 2)

	first := daily[0]
	assert.Equal(t, "Day", first.PeriodType)
	assert.Equal(t, "2024-03-01", first.Period)
	assert.Equal(t, 3, first.LinesTotal)
	assert.Equal(t, 8.0, first.TotalQuantity, "null quantity contributes zero, not null")
	assert.Equal(t, 2, first.InvoicesUnique)
	assert.Equal(t, 1.5, first.AvgLinesPerInvoice)

	second := daily[1]
	assert.Equal(t, "2024-03-02", second.Period)
	assert.Equal(t, 1, second.LinesTotal)
	assert.Equal(t, 10.0, second.TotalQuantity)
}

func TestAggregateByPeriod_ExcludesNullDates(t *testing.T) {
	rows := deriveTestRows(t,
		[]string{"2024-03-01", "INV-1", "A", "5"},
		[]string{"not-a-date", "INV-2", "B", "100"},
		[]string{"", "INV-3", "C", "200"},
	)

	for _, field := range []PeriodField{
		PeriodDay, PeriodYearWeek, PeriodMonth, PeriodWeekday, PeriodYearQuarter,
	} {
		t.Run(string(field), func(t *testing.T) {
			summaries := AggregateByPeriod(rows, field)
			require.Len(t, summaries, 1)
			assert.Equal(t, 1, summaries[0].LinesTotal)
			assert.Equal(t, 5.0, summaries[0].TotalQuantity)
		})
	}
}

func TestAggregateByPeriod_WeekdayCanonicalOrder(t *testing.T) {
	// Sunday, Wednesday, Monday observed, deliberately out of order.
	rows := deriveTestRows(t,
		[]string{"2024-03-03", "INV-1", "A", "1"}, // Sunday
		[]string{"2024-03-06", "INV-2", "B", "2"}, // Wednesday
		[]string{"2024-03-04", "INV-3", "C", "3"}, // Monday
	)

	weekday := AggregateByPeriod(rows, PeriodWeekday)
	require.Len(t, weekday, 3)
	assert.Equal(t, "Monday", weekday[0].Period)
	assert.Equal(t, "Wednesday", weekday[1].Period)
	assert.Equal(t, "Sunday", weekday[2].Period)
}

func TestAggregateByPeriod_MonthNumericOrder(t *testing.T) {
	rows := deriveTestRows(t,
		[]string{"2024-10-01", "INV-1", "A", "1"},
		[]string{"2024-02-01", "INV-2", "B", "2"},
	)

	monthly := AggregateByPeriod(rows, PeriodMonth)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2", monthly[0].Period, "months sort numerically, not lexically")
	assert.Equal(t, "10", monthly[1].Period)
}

func TestAggregateByPeriod_BlankInvoiceNotDistinct(t *testing.T) {
	rows := deriveTestRows(t,
		[]string{"2024-03-01", "INV-1", "A", "5"},
		[]string{"2024-03-01", "", "B", "3"},
		[]string{"2024-03-02", "  ", "C", "2"},
	)

	daily := AggregateByPeriod(rows, PeriodDay)
	require.Len(t, daily, 2)

	first := daily[0]
	assert.Equal(t, 2, first.LinesTotal, "the blank-invoice line still counts")
	assert.Equal(t, 1, first.InvoicesUnique)
	assert.Equal(t, 2.0, first.AvgLinesPerInvoice)

	second := daily[1]
	assert.Zero(t, second.InvoicesUnique, "a whitespace-only id trims to blank")
	assert.Zero(t, second.AvgLinesPerInvoice)
}

func TestAggregateByPeriod_AvgLinesInvariant(t *testing.T) {
	rows := deriveTestRows(t,
		[]string{"2024-03-01", "INV-1", "A", "5"},
		[]string{"2024-03-01", "INV-1", "B", "3"},
		[]string{"2024-03-01", "INV-2", "C", "4"},
		[]string{"2024-03-04", "INV-2", "A", "1"},
		[]string{"2024-03-04", "INV-3", "B", "2"},
	)

	for _, field := range []PeriodField{
		PeriodDay, PeriodYearWeek, PeriodMonth, PeriodWeekday, PeriodYearQuarter,
	} {
		for _, s := range AggregateByPeriod(rows, field) {
			require.Positive(t, s.InvoicesUnique)
			assert.Equal(t,
				float64(s.LinesTotal)/float64(s.InvoicesUnique),
				s.AvgLinesPerInvoice,
				"field %s period %s", field, s.Period)
		}
	}
}

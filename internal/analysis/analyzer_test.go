package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ordersight/internal/errors"
)

// fixtureRecords is a ten-line dataset spread over three days and two
// invoices, with quantities summing to 45.
func fixtureRecords() [][]string {
	return [][]string{
		{"2024-03-01", "INV-1", "A", "5", "Acme"},
		{"2024-03-01", "INV-1", "B", "3", "Acme"},
		{"2024-03-01", "INV-2", "C", "8", "Bolt"},
		{"2024-03-01", "INV-2", "D", "2", "Bolt"},
		{"2024-03-02", "INV-1", "A", "7", "Acme"},
		{"2024-03-02", "INV-1", "E", "1", "Bolt"},
		{"2024-03-02", "INV-2", "B", "9", "Acme"},
		{"2024-03-03", "INV-2", "C", "4", "Bolt"},
		{"2024-03-03", "INV-1", "D", "6", "Acme"},
		{"2024-03-03", "INV-2", "E", "0", "Bolt"},
	}
}

func fixtureRequest(withCategory bool) Request {
	table := testTable(
		[]string{"Date", "Invoice", "SKU", "Qty", "Brand"},
		fixtureRecords()...,
	)
	req := testRequest(table)
	if withCategory {
		req.CategoryCol = "Brand"
	}
	return req
}

func TestRun_FullPipeline(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	res, err := analyzer.Run(context.Background(), fixtureRequest(true))
	require.NoError(t, err)

	assert.NotEmpty(t, res.ReportID)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Len(t, res.Rows, 10)

	require.Len(t, res.Daily, 3)
	linesSum, quantitySum := 0, 0.0
	for _, d := range res.Daily {
		linesSum += d.LinesTotal
		quantitySum += d.TotalQuantity
	}
	assert.Equal(t, 10, linesSum, "daily line counts account for every dated row")
	assert.Equal(t, 45.0, quantitySum)

	assert.Len(t, res.Weekly, 2, "the Sunday opens a new week")
	assert.Len(t, res.Monthly, 1)
	assert.Len(t, res.Quarterly, 1)
	assert.Len(t, res.Weekday, 3)

	assert.Len(t, res.DailyStatistics, 11)
	assert.Len(t, res.WeekdayStatistics, 3)
	assert.Len(t, res.CategoryAnalysis, 2)
	assert.Len(t, res.Products, 5)
	assert.Len(t, res.Invoices, 2)

	assert.Equal(t, []string{
		KeyDaily, KeyWeekly, KeyMonthly, KeyWeekday, KeyQuarterly,
		KeyDailyStatistics, KeyWeekdayStatistics, KeyCategoryAnalysis,
	}, res.TableKeys())
}

func TestRun_WithoutCategory(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	res, err := analyzer.Run(context.Background(), fixtureRequest(false))
	require.NoError(t, err)

	assert.False(t, res.HasCategory)
	assert.Nil(t, res.CategoryAnalysis)
	assert.NotContains(t, res.TableKeys(), KeyCategoryAnalysis)
}

func TestRun_MissingCategoryColumnIsNotFatal(t *testing.T) {
	req := fixtureRequest(false)
	req.CategoryCol = "Marca"

	analyzer := NewAnalyzer(nil)
	res, err := analyzer.Run(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.HasCategory)
	assert.Nil(t, res.CategoryAnalysis)
}

func TestRun_ConfigErrorSurfacesBeforeAggregation(t *testing.T) {
	req := fixtureRequest(false)
	req.DateCol = "Fecha"

	analyzer := NewAnalyzer(nil)
	res, err := analyzer.Run(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, apperrors.IsConfigError(err))
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	ctx := context.Background()

	first, err := analyzer.Run(ctx, fixtureRequest(true))
	require.NoError(t, err)
	second, err := analyzer.Run(ctx, fixtureRequest(true))
	require.NoError(t, err)

	// Everything but the run identity must match.
	assert.Equal(t, first.Daily, second.Daily)
	assert.Equal(t, first.Weekly, second.Weekly)
	assert.Equal(t, first.Monthly, second.Monthly)
	assert.Equal(t, first.Weekday, second.Weekday)
	assert.Equal(t, first.Quarterly, second.Quarterly)
	assert.Equal(t, first.DailyStatistics, second.DailyStatistics)
	assert.Equal(t, first.WeekdayStatistics, second.WeekdayStatistics)
	assert.Equal(t, first.CategoryAnalysis, second.CategoryAnalysis)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Invoices, second.Invoices)
	assert.NotEqual(t, first.ReportID, second.ReportID)
}

package report

import (
	"math"
	"strconv"
	"time"

	"ordersight/internal/analysis"
)

// Worksheet names, in their fixed workbook order. The category sheet appears
// only when category analysis ran.
const (
	SheetSummary      = "Summary"
	SheetDaily        = "Daily Analysis"
	SheetWeekly       = "Weekly Analysis"
	SheetMonthly      = "Monthly Analysis"
	SheetWeekday      = "Weekday Analysis"
	SheetQuarterly    = "Quarterly Analysis"
	SheetDailyStats   = "Daily Statistics Summary"
	SheetWeekdayStats = "Weekday Statistics Summary"
	SheetCategory     = "Category Analysis"
	SheetProduct      = "Product Analysis"
	SheetInvoice      = "Invoice Analysis"
	SheetRawSample    = "Raw Data Sample"
)

// buildSheets materializes every worksheet for a result set, in workbook
// order. sampleRows caps the raw-data sample sheet.
func buildSheets(res *analysis.Results, sampleRows int) []Sheet {
	sheets := []Sheet{
		summarySheet(res),
		periodSheet(SheetDaily, res.Daily, periodAsDate),
		periodSheet(SheetWeekly, res.Weekly, periodAsText),
		periodSheet(SheetMonthly, res.Monthly, periodAsNumber),
		periodSheet(SheetWeekday, res.Weekday, periodAsText),
		periodSheet(SheetQuarterly, res.Quarterly, periodAsText),
		dailyStatsSheet(res.DailyStatistics),
		weekdayStatsSheet(res.WeekdayStatistics),
	}
	if res.HasCategory {
		sheets = append(sheets, categorySheet(res.CategoryAnalysis))
	}
	sheets = append(sheets,
		productSheet(res.Products),
		invoiceSheet(res.Invoices),
		rawSampleSheet(res, sampleRows),
	)
	return sheets
}

func summarySheet(res *analysis.Results) Sheet {
	var (
		totalQuantity float64
		quantityN     int
		firstDate     time.Time
		lastDate      time.Time
		invoices      = make(map[string]struct{})
		products      = make(map[string]struct{})
	)
	for _, row := range res.Rows {
		// Blank ids are not distinct entities.
		if row.Invoice != "" {
			invoices[row.Invoice] = struct{}{}
		}
		if row.Product != "" {
			products[row.Product] = struct{}{}
		}
		if row.HasQuantity {
			totalQuantity += row.Quantity
			quantityN++
		}
		if row.HasDate {
			if firstDate.IsZero() || row.Date.Before(firstDate) {
				firstDate = row.Date
			}
			if lastDate.IsZero() || row.Date.After(lastDate) {
				lastDate = row.Date
			}
		}
	}

	var avgQuantity, avgLines any
	if quantityN > 0 {
		avgQuantity = round2(totalQuantity / float64(quantityN))
	}
	if len(invoices) > 0 {
		avgLines = round2(float64(len(res.Rows)) / float64(len(invoices)))
	}

	var spanDays any
	var rangeStart, rangeEnd any
	if !firstDate.IsZero() {
		rangeStart = firstDate
		rangeEnd = lastDate
		spanDays = int(lastDate.Sub(firstDate).Hours()/24) + 1
	}

	mostActive, leastActive := activityExtremes(res.Daily)

	rows := [][]any{
		{"Total Lines (Orders)", len(res.Rows)},
		{"Date Range Start", rangeStart},
		{"Date Range End", rangeEnd},
		{"Total Days Analyzed", spanDays},
		{"Unique Invoices", len(invoices)},
		{"Unique Products", len(products)},
		{"Total Quantity (Units)", totalQuantity},
		{"Average Quantity per Line", avgQuantity},
		{"Average Lines per Invoice", avgLines},
		{"Most Active Day", mostActive},
		{"Least Active Day", leastActive},
		{"Report ID", res.ReportID},
		{"Generated On", res.GeneratedAt.Format("2006-01-02 15:04:05")},
	}

	return Sheet{
		Name: SheetSummary,
		Columns: []Column{
			{Title: "Metric", Kind: KindText, Width: 25},
			{Title: "Value", Kind: KindText, Width: 20},
		},
		Rows: rows,
	}
}

// activityExtremes returns the day labels with the highest and lowest line
// counts, or nils when no day was observed. Ties resolve to the earliest day.
func activityExtremes(daily []analysis.PeriodSummary) (most, least any) {
	if len(daily) == 0 {
		return nil, nil
	}
	maxIdx, minIdx := 0, 0
	for i, d := range daily {
		if d.LinesTotal > daily[maxIdx].LinesTotal {
			maxIdx = i
		}
		if d.LinesTotal < daily[minIdx].LinesTotal {
			minIdx = i
		}
	}
	return daily[maxIdx].Period, daily[minIdx].Period
}

// periodCell converts a period label to its cell value for one period type.
type periodCell func(label string) any

func periodAsText(label string) any { return label }

func periodAsDate(label string) any {
	if d, err := time.Parse("2006-01-02", label); err == nil {
		return d
	}
	return label
}

func periodAsNumber(label string) any {
	if n, err := strconv.Atoi(label); err == nil {
		return n
	}
	return label
}

func periodSheet(name string, summaries []analysis.PeriodSummary, cell periodCell) Sheet {
	periodKind := KindText
	switch name {
	case SheetDaily:
		periodKind = KindDate
	case SheetMonthly:
		periodKind = KindCount
	}

	rows := make([][]any, len(summaries))
	for i, s := range summaries {
		rows[i] = []any{
			s.PeriodType,
			cell(s.Period),
			s.LinesTotal,
			s.TotalQuantity,
			s.InvoicesUnique,
			s.AvgLinesPerInvoice,
		}
	}

	return Sheet{
		Name: name,
		Columns: []Column{
			{Title: "Period_Type", Kind: KindText},
			{Title: "Period", Kind: periodKind},
			{Title: "Lines_Total", Kind: KindCount},
			{Title: "Total_Quantity", Kind: KindQuantity},
			{Title: "Invoices_Unique", Kind: KindCount},
			{Title: "Avg_Lines_per_Invoice", Kind: KindRatio},
		},
		Rows: rows,
	}
}

func dailyStatsSheet(stats []analysis.MetricValue) Sheet {
	rows := make([][]any, len(stats))
	for i, s := range stats {
		var value any
		if s.Value != "" {
			value = s.Value
		}
		rows[i] = []any{s.Metric, value}
	}
	return Sheet{
		Name: SheetDailyStats,
		Columns: []Column{
			{Title: "Metric", Kind: KindText, Width: 25},
			{Title: "Value", Kind: KindText},
		},
		Rows: rows,
	}
}

func weekdayStatsSheet(stats []analysis.WeekdayStats) Sheet {
	rows := make([][]any, len(stats))
	for i, s := range stats {
		rows[i] = []any{s.Weekday, s.AvgUnits, s.P90Units, s.DaysCount}
	}
	return Sheet{
		Name: SheetWeekdayStats,
		Columns: []Column{
			{Title: "Weekday", Kind: KindText},
			{Title: "Avg_Units", Kind: KindQuantity},
			{Title: "P90_Units", Kind: KindQuantity},
			{Title: "Days_Count", Kind: KindCount},
		},
		Rows: rows,
	}
}

func categorySheet(averages []analysis.CategoryAvg) Sheet {
	rows := make([][]any, len(averages))
	for i, c := range averages {
		rows[i] = []any{c.Category, c.AvgUnitsPerDay}
	}
	return Sheet{
		Name: SheetCategory,
		Columns: []Column{
			{Title: "Category", Kind: KindIdentifier, Width: 20},
			{Title: "Avg_Units_per_Day", Kind: KindQuantity},
		},
		Rows: rows,
	}
}

func productSheet(products []analysis.ProductSummary) Sheet {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{
			p.Product, p.TotalQuantity, p.TotalLines, p.AvgQuantityPerLine, p.UniqueInvoices,
		}
	}
	return Sheet{
		Name: SheetProduct,
		Columns: []Column{
			{Title: "Product", Kind: KindIdentifier, Width: 18},
			{Title: "Total_Quantity", Kind: KindQuantity},
			{Title: "Total_Lines", Kind: KindCount},
			{Title: "Avg_Quantity_per_Line", Kind: KindRatio},
			{Title: "Unique_Invoices", Kind: KindCount},
		},
		Rows: rows,
	}
}

func invoiceSheet(invoices []analysis.InvoiceSummary) Sheet {
	rows := make([][]any, len(invoices))
	for i, v := range invoices {
		rows[i] = []any{
			v.Invoice, v.TotalQuantity, v.TotalLines, v.AvgQuantityPerLine,
			v.UniqueProducts, dateOrNil(v.FirstDate), dateOrNil(v.LastDate),
		}
	}
	return Sheet{
		Name: SheetInvoice,
		Columns: []Column{
			{Title: "Invoice", Kind: KindIdentifier, Width: 18},
			{Title: "Total_Quantity", Kind: KindQuantity},
			{Title: "Total_Lines", Kind: KindCount},
			{Title: "Avg_Quantity_per_Line", Kind: KindRatio},
			{Title: "Unique_Products", Kind: KindCount},
			{Title: "First_Date", Kind: KindDate},
			{Title: "Last_Date", Kind: KindDate},
		},
		Rows: rows,
	}
}

func rawSampleSheet(res *analysis.Results, sampleRows int) Sheet {
	columns := []Column{
		{Title: "Date", Kind: KindDate},
		{Title: "Invoice", Kind: KindIdentifier},
		{Title: "Product", Kind: KindIdentifier},
		{Title: "Quantity", Kind: KindQuantity},
	}
	if res.HasCategory {
		columns = append(columns, Column{Title: "Category", Kind: KindIdentifier})
	}
	columns = append(columns,
		Column{Title: "Day", Kind: KindText},
		Column{Title: "Year_Week", Kind: KindText},
		Column{Title: "Month", Kind: KindCount},
		Column{Title: "Year_Quarter", Kind: KindText},
		Column{Title: "Weekday", Kind: KindText},
	)

	n := len(res.Rows)
	if n > sampleRows {
		n = sampleRows
	}
	rows := make([][]any, n)
	for i := 0; i < n; i++ {
		row := res.Rows[i]

		var quantity, month any
		if row.HasQuantity {
			quantity = row.Quantity
		}
		if row.HasDate {
			month = row.Month
		}

		cells := []any{dateOrNil(row.Date), row.Invoice, row.Product, quantity}
		if res.HasCategory {
			cells = append(cells, row.Category)
		}
		cells = append(cells,
			textOrNil(row.Day), textOrNil(row.YearWeek), month,
			textOrNil(row.YearQuarter), textOrNil(row.Weekday),
		)
		rows[i] = cells
	}

	return Sheet{Name: SheetRawSample, Columns: columns, Rows: rows}
}

func dateOrNil(d time.Time) any {
	if d.IsZero() {
		return nil
	}
	return d
}

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package analysis

import (
	"time"

	"ordersight/internal/dataset"
)

// Request carries everything one report generation needs: the input table and
// the five column names selected by the caller. CategoryCol is optional; the
// empty string disables category analysis.
type Request struct {
	Table       *dataset.Table `validate:"required"`
	DateCol     string         `validate:"required"`
	InvoiceCol  string         `validate:"required"`
	ProductCol  string         `validate:"required"`
	QuantityCol string         `validate:"required"`
	CategoryCol string
}

// Row is one derived order line. Date and Quantity carry validity flags
// because unparseable source values are coerced to null, not dropped. The
// calendar fields are set only when HasDate is true.
type Row struct {
	Date        time.Time
	HasDate     bool
	Day         string // calendar day, 2006-01-02
	YearWeek    string // zero-based Sunday-start week label, 2006-W02
	Month       int    // 1..12
	YearQuarter string // 2006-Q1
	Weekday     string // Monday..Sunday

	Invoice     string
	Product     string
	Quantity    float64
	HasQuantity bool
	Category    string
}

// PeriodField names a derived calendar column rows can be grouped by.
type PeriodField string

const (
	PeriodDay         PeriodField = "Day"
	PeriodYearWeek    PeriodField = "Year_Week"
	PeriodMonth       PeriodField = "Month"
	PeriodWeekday     PeriodField = "Weekday"
	PeriodYearQuarter PeriodField = "Year_Quarter"
)

// PeriodSummary is one row of a per-period aggregation.
type PeriodSummary struct {
	PeriodType         string
	Period             string
	LinesTotal         int
	TotalQuantity      float64
	InvoicesUnique     int
	AvgLinesPerInvoice float64
}

// SeriesStats is the fixed descriptive statistic set for one numeric series.
// Valid is false when the series had no usable values; Count stays 0 and the
// remaining fields are meaningless (rendered as null downstream). A
// single-value series yields std = 0 by convention, not null.
type SeriesStats struct {
	Count  int
	Valid  bool
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64
	P25    float64
	P75    float64
	P90    float64
	P95    float64
}

// MetricValue is one labeled line of the daily planning statistics table.
type MetricValue struct {
	Metric string
	Value  string
}

// WeekdayStats summarizes per-day quantity totals for one weekday.
type WeekdayStats struct {
	Weekday   string
	AvgUnits  float64
	P90Units  float64
	DaysCount int
}

// CategoryAvg is the average daily quantity for one category.
type CategoryAvg struct {
	Category       string
	AvgUnitsPerDay float64
}

// ProductSummary is one row of the product rollup.
type ProductSummary struct {
	Product            string
	TotalQuantity      float64
	TotalLines         int
	AvgQuantityPerLine float64
	UniqueInvoices     int
}

// InvoiceSummary is one row of the invoice rollup. FirstDate and LastDate are
// zero when none of the invoice's rows carried a parseable date.
type InvoiceSummary struct {
	Invoice            string
	TotalQuantity      float64
	TotalLines         int
	AvgQuantityPerLine float64
	UniqueProducts     int
	FirstDate          time.Time
	LastDate           time.Time
}

// Result table keys, as exposed to callers.
const (
	KeyDaily             = "Daily"
	KeyWeekly            = "Weekly"
	KeyMonthly           = "Monthly"
	KeyWeekday           = "Weekday"
	KeyQuarterly         = "Quarterly"
	KeyDailyStatistics   = "Daily_Statistics"
	KeyWeekdayStatistics = "Weekday_Statistics"
	KeyCategoryAnalysis  = "Category_Analysis"
)

// Results is the full output of one engine run. CategoryAnalysis is nil when
// no category column was supplied or the named column does not exist; in that
// case its key is absent from TableKeys.
type Results struct {
	ReportID    string
	GeneratedAt time.Time

	Rows        []Row
	HasCategory bool

	Daily     []PeriodSummary
	Weekly    []PeriodSummary
	Monthly   []PeriodSummary
	Weekday   []PeriodSummary
	Quarterly []PeriodSummary

	DailyStatistics   []MetricValue
	WeekdayStatistics []WeekdayStats
	CategoryAnalysis  []CategoryAvg

	Products []ProductSummary
	Invoices []InvoiceSummary
}

// TableKeys lists the named result tables present in this result set, in the
// fixed output order. Category_Analysis appears only when category analysis
// actually ran.
func (r *Results) TableKeys() []string {
	keys := []string{
		KeyDaily, KeyWeekly, KeyMonthly, KeyWeekday, KeyQuarterly,
		KeyDailyStatistics, KeyWeekdayStatistics,
	}
	if r.HasCategory {
		keys = append(keys, KeyCategoryAnalysis)
	}
	return keys
}

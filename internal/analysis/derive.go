package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ordersight/internal/errors"
)

// Date layouts accepted at the derivation boundary, tried in order. The list
// is fixed: day-first forms are deliberately absent so that slash dates parse
// the same way everywhere.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"2006.01.02",
}

// columnIndexes resolves the required column names of a request against the
// table header. A missing required column is a configuration error; the
// optional category column is reported through the second return value
// instead, since its absence only disables category analysis.
type columnIndexes struct {
	date, invoice, product, quantity int
	category                         int
	hasCategory                      bool
}

func resolveColumns(req Request) (columnIndexes, error) {
	var idx columnIndexes
	var ok bool

	if idx.date, ok = req.Table.ColumnIndex(req.DateCol); !ok {
		return idx, errors.MissingColumn("DateCol", req.DateCol)
	}
	if idx.invoice, ok = req.Table.ColumnIndex(req.InvoiceCol); !ok {
		return idx, errors.MissingColumn("InvoiceCol", req.InvoiceCol)
	}
	if idx.product, ok = req.Table.ColumnIndex(req.ProductCol); !ok {
		return idx, errors.MissingColumn("ProductCol", req.ProductCol)
	}
	if idx.quantity, ok = req.Table.ColumnIndex(req.QuantityCol); !ok {
		return idx, errors.MissingColumn("QuantityCol", req.QuantityCol)
	}
	if req.CategoryCol != "" {
		idx.category, idx.hasCategory = req.Table.ColumnIndex(req.CategoryCol)
	}
	return idx, nil
}

// deriveRows materializes the typed order rows for a request. The input table
// is read only; rows with unparseable dates or quantities are kept with the
// corresponding validity flag cleared. Because the output is computed from the
// source cells alone, repeated derivation of the same table is identical.
func deriveRows(req Request, idx columnIndexes) []Row {
	rows := make([]Row, 0, req.Table.NumRows())

	for i := 0; i < req.Table.NumRows(); i++ {
		row := Row{
			Invoice: strings.TrimSpace(req.Table.Cell(i, idx.invoice)),
			Product: strings.TrimSpace(req.Table.Cell(i, idx.product)),
		}
		if idx.hasCategory {
			row.Category = strings.TrimSpace(req.Table.Cell(i, idx.category))
		}

		if d, ok := parseDate(req.Table.Cell(i, idx.date)); ok {
			row.Date = d
			row.HasDate = true
			row.Day = d.Format("2006-01-02")
			row.Month = int(d.Month())
			row.Weekday = d.Weekday().String()
			row.YearWeek = yearWeekLabel(d)
			row.YearQuarter = fmt.Sprintf("%d-Q%d", d.Year(), (int(d.Month())+2)/3)
		}

		if q, ok := parseQuantity(req.Table.Cell(i, idx.quantity)); ok {
			row.Quantity = q
			row.HasQuantity = true
		}

		rows = append(rows, row)
	}

	return rows
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseQuantity(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// yearWeekLabel formats the zero-based Sunday-start week-of-year label
// (YYYY-Www). Days before the first Sunday of the year fall in week 00, the
// strftime %U rule. The convention is fixed so week groupings stay comparable
// across years.
func yearWeekLabel(d time.Time) string {
	yday := d.YearDay() - 1
	wday := int(d.Weekday()) // Sunday = 0
	week := (yday + 7 - wday) / 7
	return fmt.Sprintf("%d-W%02d", d.Year(), week)
}

package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"ordersight/internal/analysis"
)

const defaultColumnWidth = 12.0

// Config holds assembler options.
type Config struct {
	// SampleRows caps the raw-data sample sheet. Zero or negative falls
	// back to the default of 1000.
	SampleRows int
}

// DefaultConfig returns the assembler defaults.
func DefaultConfig() Config {
	return Config{SampleRows: 1000}
}

// Assembler builds the report workbook from a result set. Assembly is atomic:
// any failure while building a sheet aborts the whole workbook and no partial
// artifact is returned.
type Assembler struct {
	logger *slog.Logger
	cfg    Config
}

// NewAssembler creates an assembler. A nil logger falls back to slog.Default.
func NewAssembler(logger *slog.Logger, cfg Config) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleRows <= 0 {
		cfg.SampleRows = 1000
	}
	return &Assembler{logger: logger, cfg: cfg}
}

// styleSet holds the workbook-level style IDs shared by all sheets.
type styleSet struct {
	header  int
	integer int
	decimal int
	date    int
}

// forKind maps a column kind to its cell style, zero meaning no style.
func (s styleSet) forKind(kind Kind) int {
	switch kind {
	case KindCount:
		return s.integer
	case KindQuantity, KindRatio:
		return s.decimal
	case KindDate:
		return s.date
	default:
		return 0
	}
}

// Build assembles the full workbook and returns the serialized artifact.
func (a *Assembler) Build(ctx context.Context, res *analysis.Results) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("create workbook styles: %w", err)
	}

	sheets := buildSheets(res, a.cfg.SampleRows)
	for _, sheet := range sheets {
		if err := a.writeSheet(f, sheet, styles); err != nil {
			return nil, fmt.Errorf("build sheet %q: %w", sheet.Name, err)
		}
	}

	// The implicit default sheet is not part of the report.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return nil, fmt.Errorf("locate summary sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	a.logger.InfoContext(ctx, "report workbook assembled",
		slog.String("report_id", res.ReportID),
		slog.Int("sheet_count", len(sheets)),
		slog.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var styles styleSet
	var err error

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D7E4BC"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return styles, err
	}

	integerFmt := "#,##0"
	styles.integer, err = f.NewStyle(&excelize.Style{CustomNumFmt: &integerFmt, Border: thin})
	if err != nil {
		return styles, err
	}

	decimalFmt := "#,##0.00"
	styles.decimal, err = f.NewStyle(&excelize.Style{CustomNumFmt: &decimalFmt, Border: thin})
	if err != nil {
		return styles, err
	}

	dateFmt := "yyyy-mm-dd"
	styles.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt, Border: thin})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func (a *Assembler) writeSheet(f *excelize.File, sheet Sheet, styles styleSet) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return err
	}

	for c, col := range sheet.Columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}

		width := col.Width
		if width == 0 {
			width = defaultColumnWidth
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
		if styleID := styles.forKind(col.Kind); styleID != 0 {
			if err := f.SetColStyle(sheet.Name, name, styleID); err != nil {
				return err
			}
		}

		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, col.Title); err != nil {
			return err
		}
		// Cell styles override column styles, so headers keep their look
		// on formatted columns.
		if err := f.SetCellStyle(sheet.Name, cell, cell, styles.header); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

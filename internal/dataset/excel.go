package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadExcel reads one worksheet of an Excel file into a Table. The first row
// is taken as the header. An empty sheet name selects the first sheet in the
// workbook.
func LoadExcel(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

// SheetNames lists the worksheets of an Excel file, in workbook order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

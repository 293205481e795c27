// Package dataset holds the generic tabular input handed to the analysis
// engine, plus loaders that build it from CSV or Excel files. The engine never
// mutates a Table; derivation returns new typed rows instead.
package dataset

import "strings"

// Table is an untyped tabular dataset: a header row plus string cells, exactly
// as read from a CSV file or a worksheet. Column values are matched by header
// name, so ragged rows are tolerated (missing cells read as empty).
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, matching on the
// trimmed header text. The second return value reports whether it exists.
func (t *Table) ColumnIndex(name string) (int, bool) {
	want := strings.TrimSpace(name)
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == want {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at the given row and column index, or the empty
// string when the row is shorter than the header.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

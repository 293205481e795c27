// Package report assembles the analysis results into a single multi-sheet
// Excel workbook. Formatting is driven by a declared per-column semantic kind
// instead of column-name matching, so renaming a column cannot silently change
// its number format.
package report

// Kind is the semantic type of an output column. It decides the number format
// applied to the column's cells.
type Kind int

const (
	// KindText is unformatted text (period labels, metric names).
	KindText Kind = iota
	// KindIdentifier is an opaque id (invoice, product, category).
	KindIdentifier
	// KindDate renders as yyyy-mm-dd.
	KindDate
	// KindCount renders as a thousands-separated integer.
	KindCount
	// KindQuantity renders as a thousands-separated decimal.
	KindQuantity
	// KindRatio renders as a decimal (averages, per-invoice ratios).
	KindRatio
)

// Column declares one output column: its header title, semantic kind, and an
// optional width override (zero means the default width of 12).
type Column struct {
	Title string
	Kind  Kind
	Width float64
}

// Sheet is one fully materialized worksheet: name, declared columns, and data
// rows. A nil cell value leaves the cell empty (the null rendering for absent
// dates and statistics).
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

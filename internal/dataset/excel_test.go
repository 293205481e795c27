package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Orders")
	require.NoError(t, err)
	cells := [][]any{
		{"Date", "Invoice", "Qty"},
		{"2024-03-01", "INV-1", 5},
		{"2024-03-02", "INV-2", 3},
	}
	for r, row := range cells {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Orders", cell, value))
		}
	}
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "placeholder"))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcel_NamedSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	table, err := LoadExcel(path, "Orders")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Invoice", "Qty"}, table.Headers)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "INV-1", table.Cell(0, 1))
	assert.Equal(t, "5", table.Cell(0, 2), "cells arrive as strings")
}

func TestLoadExcel_DefaultsToFirstSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	table, err := LoadExcel(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"placeholder"}, table.Headers)
}

func TestLoadExcel_UnknownSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	_, err := LoadExcel(path, "Missing")
	require.Error(t, err)
}

func TestSheetNames(t *testing.T) {
	path := writeTestWorkbook(t)

	names, err := SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Orders"}, names)
}

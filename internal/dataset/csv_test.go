package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"Date,Invoice,Qty",
		"2024-03-01,INV-1,5",
		`2024-03-02,"INV-2, rush",3`,
		"2024-03-03,INV-3", // ragged row
	}, "\n")

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Invoice", "Qty"}, table.Headers)
	require.Equal(t, 3, table.NumRows())
	assert.Equal(t, "INV-2, rush", table.Cell(1, 1), "quoted commas survive")
	assert.Empty(t, table.Cell(2, 2), "ragged row tolerated")
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Date,Invoice,Qty\n"))
	require.NoError(t, err)
	assert.Zero(t, table.NumRows())
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV("/nonexistent/orders.csv")
	require.Error(t, err)
}

// Command ordersreport is the thin bootstrap around the analysis engine: it
// loads an order table from a CSV or Excel file, runs the full analysis, and
// writes the multi-sheet report workbook. All analysis semantics live in
// internal/analysis and internal/report; this layer only does I/O and flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"ordersight/internal/analysis"
	"ordersight/internal/dataset"
	"ordersight/internal/report"
)

// env carries the environment-variable defaults (prefix ORDERSIGHT_).
type env struct {
	OutputDir  string `envconfig:"OUTPUT_DIR" default:"."`
	SampleRows int    `envconfig:"SAMPLE_ROWS" default:"1000"`
}

func main() {
	var e env
	if err := envconfig.Process("ordersight", &e); err != nil {
		slog.Error("Failed to read environment configuration", "error", err)
		os.Exit(1)
	}

	input := flag.String("in", "", "input file (.csv, .xlsx or .xls)")
	sheet := flag.String("sheet", "", "worksheet name for Excel input (defaults to the first sheet)")
	output := flag.String("out", "", "output workbook path (defaults to a timestamped file in the output dir)")
	dateCol := flag.String("date-col", "", "name of the date column")
	invoiceCol := flag.String("invoice-col", "", "name of the invoice/order id column")
	productCol := flag.String("product-col", "", "name of the product/SKU column")
	quantityCol := flag.String("quantity-col", "", "name of the quantity column")
	categoryCol := flag.String("category-col", "", "name of the category column (optional)")
	flag.Parse()

	if *input == "" {
		slog.Error("Missing required -in flag")
		flag.Usage()
		os.Exit(1)
	}

	table, err := loadTable(*input, *sheet)
	if err != nil {
		slog.Error("Failed to load input table", "path", *input, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded input table", "path", *input, "rows", table.NumRows())

	req := analysis.Request{
		Table:       table,
		DateCol:     *dateCol,
		InvoiceCol:  *invoiceCol,
		ProductCol:  *productCol,
		QuantityCol: *quantityCol,
		CategoryCol: *categoryCol,
	}

	ctx := context.Background()
	analyzer := analysis.NewAnalyzer(slog.Default())

	results, err := analyzer.Run(ctx, req)
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	assembler := report.NewAssembler(slog.Default(), report.Config{SampleRows: e.SampleRows})
	artifact, err := assembler.Build(ctx, results)
	if err != nil {
		slog.Error("Report assembly failed", "error", err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join(e.OutputDir, fmt.Sprintf("orders_analysis_results_%s.xlsx", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		slog.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, artifact, 0644); err != nil {
		slog.Error("Failed to write report workbook", "path", outPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Report generated successfully",
		"report_id", results.ReportID,
		"path", outPath,
		"tables", results.TableKeys())
}

func loadTable(path, sheet string) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.LoadCSV(path)
	case ".xlsx", ".xls":
		return dataset.LoadExcel(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

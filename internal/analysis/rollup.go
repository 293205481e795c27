package analysis

import (
	"math"
	"sort"
	"time"
)

// ProductRollup groups all rows by product and reports total quantity, line
// count, mean quantity per line (over non-null quantities, rounded to two
// decimals) and distinct invoice count, sorted descending by total quantity.
// Null-dated rows still belong to their product, so no date filter applies.
// Rows with a blank product id have no group and are dropped; blank invoice
// ids do not count as distinct invoices.
func ProductRollup(rows []Row) []ProductSummary {
	type group struct {
		lines     int
		quantity  float64
		quantityN int
		invoices  map[string]struct{}
	}
	groups := make(map[string]*group)

	for _, row := range rows {
		if row.Product == "" {
			continue
		}
		g := groups[row.Product]
		if g == nil {
			g = &group{invoices: make(map[string]struct{})}
			groups[row.Product] = g
		}
		g.lines++
		if row.HasQuantity {
			g.quantity += row.Quantity
			g.quantityN++
		}
		if row.Invoice != "" {
			g.invoices[row.Invoice] = struct{}{}
		}
	}

	summaries := make([]ProductSummary, 0, len(groups))
	for product, g := range groups {
		s := ProductSummary{
			Product:        product,
			TotalQuantity:  round2(g.quantity),
			TotalLines:     g.lines,
			UniqueInvoices: len(g.invoices),
		}
		if g.quantityN > 0 {
			s.AvgQuantityPerLine = round2(g.quantity / float64(g.quantityN))
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalQuantity > summaries[j].TotalQuantity
	})
	return summaries
}

// InvoiceRollup groups all rows by invoice and reports the same metrics as the
// product rollup plus distinct product count and the first and last order
// dates, sorted descending by total quantity. First and last dates stay zero
// for invoices whose rows all have null dates. Rows with a blank invoice id
// have no group and are dropped; blank product ids do not count as distinct
// products.
func InvoiceRollup(rows []Row) []InvoiceSummary {
	type group struct {
		lines     int
		quantity  float64
		quantityN int
		products  map[string]struct{}
		first     time.Time
		last      time.Time
	}
	groups := make(map[string]*group)

	for _, row := range rows {
		if row.Invoice == "" {
			continue
		}
		g := groups[row.Invoice]
		if g == nil {
			g = &group{products: make(map[string]struct{})}
			groups[row.Invoice] = g
		}
		g.lines++
		if row.HasQuantity {
			g.quantity += row.Quantity
			g.quantityN++
		}
		if row.Product != "" {
			g.products[row.Product] = struct{}{}
		}
		if row.HasDate {
			if g.first.IsZero() || row.Date.Before(g.first) {
				g.first = row.Date
			}
			if g.last.IsZero() || row.Date.After(g.last) {
				g.last = row.Date
			}
		}
	}

	summaries := make([]InvoiceSummary, 0, len(groups))
	for invoice, g := range groups {
		s := InvoiceSummary{
			Invoice:        invoice,
			TotalQuantity:  round2(g.quantity),
			TotalLines:     g.lines,
			UniqueProducts: len(g.products),
			FirstDate:      g.first,
			LastDate:       g.last,
		}
		if g.quantityN > 0 {
			s.AvgQuantityPerLine = round2(g.quantity / float64(g.quantityN))
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalQuantity > summaries[j].TotalQuantity
	})
	return summaries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

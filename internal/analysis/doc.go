// Package analysis implements the orders analysis engine: a pure, synchronous
// transformation from a generic order table plus a column mapping to a set of
// named result tables.
//
// The pipeline runs strictly one direction:
//
//	input table -> Derive (typed rows with calendar fields)
//	            -> per-period aggregation x5, planning statistics, category
//	            -> product/invoice rollups
//
// Derivation coerces unparseable dates and quantities to null instead of
// rejecting rows. Null-dated rows keep contributing to rollups keyed by
// invoice or product, but are excluded from every date-keyed grouping, where
// the grouping key would be undefined.
//
// The engine holds no state between calls and never mutates its input, so a
// table may be shared by concurrent report requests.
package analysis

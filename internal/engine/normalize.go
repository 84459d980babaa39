// =============================================================================
// Excel to DTE Converter - Column Normalizer
// =============================================================================
//
// This file maps raw sheet headers to canonical field names. Two modes exist:
//
//   1. Explicit rename tables (per sheet, per tenant): every header with a
//      mapping is replaced, others pass through unchanged.
//   2. The pure-function header transform (config.CanonicalizeHeader) used
//      when the tenant has no rename table for a sheet: accents are stripped
//      to their ASCII equivalents, the remainder is lower-cased, and the
//      first character is capitalized. This tolerates the hand-typed header
//      variants ("DESCRIPCIÓN", "descripcion") that show up in tenant
//      spreadsheets.
//
// Neither mode mutates the source table.
//
// =============================================================================

package engine

import (
	"github.com/dtesv/excel-dte-converter/internal/config"
	"github.com/dtesv/excel-dte-converter/internal/xlsxreader"
)

// normalizeColumns returns a copy of the table with canonical headers. When
// renames has an entry for a header, that mapping wins; otherwise the header
// passes through the transform (if enabled for the tenant) or stays as-is.
func normalizeColumns(table xlsxreader.Table, renames map[string]string, useTransform bool) xlsxreader.Table {
	canonical := func(header string) string {
		if renamed, ok := renames[header]; ok {
			return renamed
		}
		if useTransform && len(renames) == 0 {
			return config.CanonicalizeHeader(header)
		}
		return header
	}

	out := xlsxreader.Table{Name: table.Name}

	changed := false
	out.Headers = make([]string, len(table.Headers))
	for i, h := range table.Headers {
		out.Headers[i] = canonical(h)
		if out.Headers[i] != h {
			changed = true
		}
	}

	if !changed {
		out.Rows = table.Rows
		return out
	}

	out.Rows = make([]map[string]any, len(table.Rows))
	for i, row := range table.Rows {
		renamed := make(map[string]any, len(row))
		for k, v := range row {
			renamed[canonical(k)] = v
		}
		out.Rows[i] = renamed
	}
	return out
}

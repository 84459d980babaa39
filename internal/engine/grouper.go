// =============================================================================
// Excel to DTE Converter - Row Grouper
// =============================================================================
//
// The row grouper scans every sheet in discovery order and folds rows into
// one nested record per document identifier:
//
//   - The first sheet is the header sheet: its non-identifier columns land
//     directly at the record root as scalars.
//   - Every later sheet contributes one list entry per matching row under a
//     section key named after the sheet, with the field transform rules
//     applied first.
//
// ERROR POLICY:
//   A row without an identifier, or a row whose transforms fail, is skipped
//   with a ledger entry; the sheet continues. An empty sheet is skipped with
//   a ledger entry; the remaining sheets continue.
//
// =============================================================================

package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dtesv/excel-dte-converter/internal/xlsxreader"
)

// Record is one document under construction: section names and root field
// names mapped to their content.
type Record = map[string]any

// RecordMap maps document identifier (as text) to its record.
type RecordMap = map[string]Record

// groupRows builds the record map from the workbook's sheets.
func (e *Engine) groupRows(wb *xlsxreader.Workbook, ledger *Ledger) RecordMap {
	records := RecordMap{}

	for i, sheet := range wb.Sheets {
		table := normalizeColumns(sheet, e.tenant.RenameColumns[sheet.Name], e.tenant.NormalizeHeaders)

		if table.Empty() {
			ledger.Error("", fmt.Sprintf("la hoja '%s' está vacía", table.Name))
			e.log.Warn("skipping empty sheet", "sheet", table.Name)
			continue
		}

		idColumn, ok := findIDColumn(table.Headers, e.tenant.IDColumn)
		if !ok {
			ledger.Error("", fmt.Sprintf("la hoja '%s' no tiene columna '%s'", table.Name, e.tenant.IDColumn))
			e.log.Warn("skipping sheet without identifier column", "sheet", table.Name, "column", e.tenant.IDColumn)
			continue
		}

		for rowIdx, row := range table.Rows {
			id, ok := formatIdentifier(row[idColumn])
			if !ok {
				// Sheet rows start below the header, so the spreadsheet row
				// number is the index plus two.
				ledger.Error("", fmt.Sprintf("la columna '%s' no puede estar vacía (hoja '%s', fila %d)", e.tenant.IDColumn, table.Name, rowIdx+2))
				continue
			}

			record, exists := records[id]
			if !exists {
				record = Record{}
				records[id] = record
			}

			if i == 0 {
				// Header sheet: scalars at the record root.
				for col, val := range row {
					if col != idColumn {
						record[col] = val
					}
				}
				continue
			}

			entry := make(map[string]any, len(row))
			for col, val := range row {
				if col != idColumn {
					entry[col] = val
				}
			}

			if err := applyFieldRules(e.tenant.RulesFor(table.Name), entry); err != nil {
				ledger.Error(id, fmt.Sprintf("error en la hoja '%s': %v", table.Name, err))
				continue
			}

			record[table.Name] = append(sectionList(record[table.Name]), entry)
		}
	}

	return records
}

// findIDColumn locates the identifier column among the headers, tolerating
// the casing variants the header transform can produce ("IDDTE" vs "Iddte").
func findIDColumn(headers []string, idColumn string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h, idColumn) {
			return h, true
		}
	}
	return "", false
}

// formatIdentifier normalizes a cell value into the textual identifier used
// as the record key. Numeric identifiers render without a decimal part so
// the key for 100 is "100", never "100.0". Missing or blank identifiers
// report false.
func formatIdentifier(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// sectionList coerces a section's current content into an entry slice,
// seeding an empty one when the section is absent.
func sectionList(current any) []any {
	if current == nil {
		return []any{}
	}
	if list, ok := current.([]any); ok {
		return list
	}
	return []any{current}
}

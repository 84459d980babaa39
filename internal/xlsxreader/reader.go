// =============================================================================
// Excel to DTE Converter - XLSX Workbook Reader
// =============================================================================
//
// This module reads an input XLSX workbook into a set of named tables, one
// per sheet, preserving the discovery order of the sheets. The first sheet of
// a workbook is the header sheet of the document batch; the remaining sheets
// each hold one document section.
//
// CELL TYPING:
//   Columns declared as text in the canonical type map are loaded in forced
//   text mode so identifying codes keep their leading zeros ("01" stays
//   "01"). Every other cell is parsed into the narrowest matching Go type:
//   int, float64, bool, then string. A blank cell is represented as an
//   explicit nil, never as a numeric sentinel.
//
// =============================================================================

package xlsxreader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Table holds one sheet's data as an ordered header list plus one map per
// row. A row map always carries every header as a key; absent cells map to
// nil.
type Table struct {
	// Name is the sheet name, which doubles as the section name during
	// grouping.
	Name string

	// Headers contains the column headers in sheet order.
	Headers []string

	// Rows contains the data rows, keyed by header.
	Rows []map[string]any
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Workbook is the full set of tables read from one XLSX file, in sheet
// discovery order.
type Workbook struct {
	// Path is the source file path.
	Path string

	// Sheets contains one table per sheet, in workbook order.
	Sheets []Table
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// Read opens an XLSX workbook and reads every sheet into a table.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - textColumn: Matcher reporting whether a sheet's raw header must stay a
//     string. The matcher sees headers exactly as they appear in the file,
//     before any renaming. May be nil when no forced-text columns apply.
//
// RETURNS:
//   - A pointer to the Workbook with sheets in discovery order.
//   - An error if the file cannot be opened or a sheet cannot be iterated.
//
// A sheet without data rows is returned as an empty table; deciding what an
// empty sheet means is the caller's concern.
func Read(path string, textColumn func(sheet, header string) bool) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}

	for _, sheetName := range f.GetSheetList() {
		forced := func(header string) bool {
			return textColumn != nil && textColumn(sheetName, header)
		}

		table, err := readSheet(f, sheetName, forced)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}

		wb.Sheets = append(wb.Sheets, *table)
	}

	return wb, nil
}

// readSheet reads a single sheet into a table.
func readSheet(f *excelize.File, sheetName string, forcedText func(header string) bool) (*Table, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table := &Table{Name: sheetName}
	if len(rows) == 0 {
		return table, nil
	}

	// First row is the header row.
	for _, cell := range rows[0] {
		table.Headers = append(table.Headers, strings.TrimSpace(cell))
	}

	for _, raw := range rows[1:] {
		if isRowEmpty(raw) {
			continue
		}

		row := make(map[string]any, len(table.Headers))
		for i, header := range table.Headers {
			if header == "" {
				continue
			}
			var cell string
			if i < len(raw) {
				cell = strings.TrimSpace(raw[i])
			}
			row[header] = parseCell(cell, forcedText(header))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// parseCell converts one formatted cell value into its Go representation.
// Blank cells become nil. Forced-text columns keep the string as-is so
// leading zeros survive; other cells are parsed int -> float -> bool ->
// string.
func parseCell(cell string, forceText bool) any {
	if cell == "" {
		return nil
	}
	if forceText {
		return cell
	}

	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	switch strings.ToUpper(cell) {
	case "TRUE", "VERDADERO":
		return true
	case "FALSE", "FALSO":
		return false
	}
	return cell
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

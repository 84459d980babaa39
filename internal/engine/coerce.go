// =============================================================================
// Excel to DTE Converter - Type Coercion Pass
// =============================================================================
//
// After the merge, any numeric value left in a text-typed field is reformatted
// as a zero-padded string of at least two digits: 1 -> "01", 12 -> "12",
// 123 -> "123". Two digits is the domain width of the Hacienda code
// catalogs; longer values keep every significant digit. Declared types other
// than text are documented contract only and are not enforced here.
//
// Most text fields never reach this pass as numbers because the reader
// already forces them to text; the pass catches values introduced by
// templates and by tenant sheets whose headers only become recognizable
// after renaming.
//
// =============================================================================

package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dtesv/excel-dte-converter/internal/config"
)

// coerceTypes walks every type-mapped section of every record and rewrites
// numeric values in text-typed fields.
func coerceTypes(records RecordMap, typeMap map[string]map[string]config.FieldType) {
	for _, record := range records {
		for section, fields := range typeMap {
			data, exists := record[section]
			if !exists {
				continue
			}

			switch content := data.(type) {
			case []any:
				for _, item := range content {
					if entry, ok := item.(map[string]any); ok {
						coerceEntry(entry, fields)
					}
				}
			case map[string]any:
				coerceEntry(content, fields)
			}
		}
	}
}

// coerceEntry rewrites the text-typed fields of one section entry.
func coerceEntry(entry map[string]any, fields map[string]config.FieldType) {
	for field, typ := range fields {
		if typ != config.TypeText {
			continue
		}
		value, exists := entry[field]
		if !exists {
			continue
		}
		if s, ok := zeroPad(value); ok {
			entry[field] = s
		}
	}
}

// zeroPad formats a numeric value as a minimum-two-digit string. Integral
// floats format like ints (5.0 -> "05"); non-integral floats keep their full
// precision, since padding a decimal would corrupt it. Non-numeric values
// report false and are left untouched by the caller.
func zeroPad(value any) (string, bool) {
	switch v := value.(type) {
	case int:
		return fmt.Sprintf("%02d", v), true
	case int64:
		return fmt.Sprintf("%02d", v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		if v == math.Trunc(v) {
			return fmt.Sprintf("%02d", int64(v)), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

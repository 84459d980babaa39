// =============================================================================
// Excel to DTE Converter - Null Normalizer
// =============================================================================
//
// Recursively replaces floating-point NaN with an explicit nil across nested
// objects, lists and scalars, so the serialized JSON never carries a NaN
// token. The reader already represents blank cells as nil, but values that
// arrive through tenant templates or arithmetic in custom rules can still be
// NaN; this pass is the last line of defense before serialization. The
// normalization is idempotent.
//
// =============================================================================

package engine

import "math"

// normalizeNulls returns the value with every NaN replaced by nil. Maps and
// slices are rewritten in place and returned.
func normalizeNulls(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return v
	case float32:
		if math.IsNaN(float64(v)) {
			return nil
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNulls(item)
		}
		return v
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeNulls(item)
		}
		return v
	default:
		return v
	}
}

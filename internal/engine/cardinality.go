// =============================================================================
// Excel to DTE Converter - Cardinality Normalizer
// =============================================================================
//
// Converts every single-entry section list into a bare object, except for the
// sections the receiving format defines as arrays: Detalles and
// DocumentosRelacionados stay lists whatever their length. Runs after the
// default overlay, since the overlay can turn an absent section into a
// one-element list.
//
// =============================================================================

package engine

import "github.com/dtesv/excel-dte-converter/internal/config"

// alwaysListSections never collapse to a bare object.
var alwaysListSections = map[string]bool{
	config.SectionDetalles:               true,
	config.SectionDocumentosRelacionados: true,
}

// collapseSingletons normalizes section cardinality across all records.
func collapseSingletons(records RecordMap) {
	for _, record := range records {
		for name, value := range record {
			list, isList := value.([]any)

			if alwaysListSections[name] {
				if !isList {
					record[name] = []any{value}
				}
				continue
			}

			if isList && len(list) == 1 {
				record[name] = list[0]
			}
		}
	}
}

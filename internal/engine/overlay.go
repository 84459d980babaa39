// =============================================================================
// Excel to DTE Converter - Default Overlay Engine
// =============================================================================
//
// Merges the document-type template into every grouped record:
//
//   - An object-kind section default is merged into every entry already in
//     the section, filling absent keys only (row data always wins), or
//     seeds the section as a one-element list when it is absent.
//   - A list-kind section default appends its elements independently, or
//     seeds the section as-is. An empty list default seeds an empty section.
//   - Root template keys fill absent record-root keys only.
//
// Template payloads are deep-copied into the records so a later mutation of
// one record can never bleed into another through shared template data.
//
// ERROR POLICY:
//   A copy failure for one identifier/section pair is logged to the ledger
//   and processing continues; the partially-merged record is still emitted.
//
// =============================================================================

package engine

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/dtesv/excel-dte-converter/internal/config"
)

// applyDefaults overlays the resolved template onto every record. A nil or
// empty template (document type "cancel") skips the overlay entirely.
func (e *Engine) applyDefaults(records RecordMap, ledger *Ledger) {
	if e.template.Empty() {
		e.log.Debug("document type carries no defaults, skipping overlay", "type", e.docType)
		return
	}

	for id, record := range records {
		for section, def := range e.template.Sections {
			if err := overlaySection(record, section, def); err != nil {
				ledger.Error(id, fmt.Sprintf("error al integrar los datos fijos de la sección '%s': %v", section, err))
			}
		}

		for key, value := range e.template.Root {
			if _, exists := record[key]; exists {
				continue
			}
			copied, err := copyValue(value)
			if err != nil {
				ledger.Error(id, fmt.Sprintf("error al integrar el campo fijo '%s': %v", key, err))
				continue
			}
			record[key] = copied
		}
	}
}

// overlaySection merges one section default into one record.
func overlaySection(record Record, section string, def config.SectionDefault) error {
	current, exists := record[section]

	switch def.Kind() {
	case config.SectionObject:
		if !exists {
			seeded, err := copyEntry(def.Object())
			if err != nil {
				return err
			}
			record[section] = []any{seeded}
			return nil
		}
		for _, item := range sectionList(current) {
			entry, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("section entry is %T, expected an object", item)
			}
			for key, value := range def.Object() {
				if _, present := entry[key]; present {
					continue
				}
				copied, err := copyValue(value)
				if err != nil {
					return err
				}
				entry[key] = copied
			}
		}

	case config.SectionList:
		list := []any{}
		if exists {
			list = sectionList(current)
		}
		for _, element := range def.List() {
			copied, err := copyEntry(element)
			if err != nil {
				return err
			}
			list = append(list, copied)
		}
		record[section] = list
	}

	return nil
}

// copyEntry deep-copies a template object payload.
func copyEntry(src map[string]any) (map[string]any, error) {
	dst := make(map[string]any, len(src))
	if err := deepcopy.Copy(&dst, src); err != nil {
		return nil, fmt.Errorf("failed to copy template payload: %w", err)
	}
	return dst, nil
}

// copyValue deep-copies a single template value. Scalars come back as-is;
// nested containers are copied.
func copyValue(src any) (any, error) {
	switch src.(type) {
	case nil, bool, int, int64, float64, string:
		return src, nil
	}
	var dst any
	if err := deepcopy.Copy(&dst, src); err != nil {
		return nil, fmt.Errorf("failed to copy template value: %w", err)
	}
	return dst, nil
}

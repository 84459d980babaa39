// =============================================================================
// Excel to DTE Converter - Field Transform Rules
// =============================================================================
//
// Row-scoped field mutations applied before a row is appended to its section
// list. The rules are table-driven (section -> field -> rule) so a tenant can
// add or drop rules in configuration without touching the grouping algorithm.
//
// RULE KINDS:
//   split-list         : "20, C3" -> ["20", "C3"]; "20" -> ["20"]; nil -> []
//   strip-hyphens      : "0614-290990-102-3" -> "06142909901023"
//   strip-hyphens-when : same, but only when a sibling field holds one of the
//                        configured values (DUI/passport document-type codes)
//
// =============================================================================

package engine

import (
	"fmt"
	"strings"

	"github.com/dtesv/excel-dte-converter/internal/config"
)

// applyFieldRules mutates one section row entry in place. A rule whose field
// is absent from the row is a no-op. The only failure mode is a rule kind
// the engine does not know, which indicates a broken tenant configuration.
func applyFieldRules(rules []config.FieldRule, entry map[string]any) error {
	for _, rule := range rules {
		value, ok := entry[rule.Field]
		if !ok {
			continue
		}

		switch rule.Action {
		case config.ActionSplitList:
			entry[rule.Field] = splitList(value, rule.Delimiter)

		case config.ActionStripHyphens:
			if s, ok := value.(string); ok {
				entry[rule.Field] = strings.ReplaceAll(s, "-", "")
			}

		case config.ActionStripHyphensWhen:
			if !siblingMatches(entry, rule.WhenField, rule.WhenValues) {
				continue
			}
			if s, ok := value.(string); ok {
				entry[rule.Field] = strings.ReplaceAll(s, "-", "")
			}

		default:
			return fmt.Errorf("unknown transform action %q for field %q", rule.Action, rule.Field)
		}
	}
	return nil
}

// splitList turns a delimited scalar into a list of trimmed strings.
// A nil or empty value yields an empty list; a value without the delimiter
// yields a one-element list.
func splitList(value any, delimiter string) []string {
	if value == nil {
		return []string{}
	}
	if delimiter == "" {
		delimiter = ","
	}

	s := fmt.Sprint(value)
	if s == "" {
		return []string{}
	}
	if !strings.Contains(s, delimiter) {
		return []string{s}
	}

	parts := strings.Split(s, delimiter)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// siblingMatches reports whether the named sibling field holds one of the
// listed values. Values are compared as strings so a numerically-typed cell
// ("13" read as 13) still matches its code.
func siblingMatches(entry map[string]any, field string, values []string) bool {
	sibling, ok := entry[field]
	if !ok || sibling == nil {
		return false
	}
	s := fmt.Sprint(sibling)
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}

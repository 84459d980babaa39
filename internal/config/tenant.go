// =============================================================================
// Excel to DTE Converter - Tenant Configuration
// =============================================================================
//
// This file defines the structures that describe one tenant's conversion
// rules: column rename tables, field transform rules, document-type templates
// and the canonical type map. A TenantConfig is resolved once at startup and
// handed to the merge engine as a plain value.
//
// =============================================================================

package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIDColumn is the conventional name of the document identifier column
// that correlates rows across sheets.
const DefaultIDColumn = "IDDTE"

// DefaultTenantCode identifies the compiled-in tenant used when no tenant is
// selected.
const DefaultTenantCode = "default"

// =============================================================================
// TENANT CONFIGURATION STRUCTURE
// =============================================================================

// TenantConfig bundles every tenant-specific input the merge engine needs.
type TenantConfig struct {
	// Code is the short tenant identifier used for selection (e.g. "ra").
	Code string `yaml:"code"`

	// Name is the human-readable tenant name, used in logs.
	Name string `yaml:"name"`

	// IDColumn is the document identifier column name for this tenant.
	// Default: "IDDTE"
	IDColumn string `yaml:"id_column"`

	// NormalizeHeaders enables the pure-function header transform (strip
	// accents, lower-case, capitalize the first character) for sheets that
	// have no explicit rename table. Tenants whose spreadsheets carry
	// hand-typed headers with accent typos turn this on.
	NormalizeHeaders bool `yaml:"normalize_headers"`

	// RenameColumns maps sheet name -> raw header -> canonical field name.
	// Headers without an entry are left unchanged.
	RenameColumns map[string]map[string]string `yaml:"rename_columns"`

	// TransformRules maps section name -> field rules applied to each row of
	// that section before grouping. The key "*" applies to every section.
	TransformRules map[string][]FieldRule `yaml:"transform_rules"`

	// Templates maps document-type code -> fixed-field template. Codes
	// missing here fall back to the canonical template set.
	Templates map[string]*Template `yaml:"templates"`

	// TypeMap maps section name -> field name -> declared type. Text-typed
	// fields are loaded in forced-text mode and zero-padded after the merge.
	TypeMap map[string]map[string]FieldType `yaml:"type_map"`
}

// TextColumn reports whether the given raw sheet header must be read as
// text, so leading zeros survive the spreadsheet load. The raw header is
// resolved to its canonical field name exactly the way the column normalizer
// will resolve it after the load: through the sheet's rename table when one
// exists, through the header transform when the tenant normalizes headers,
// as-is otherwise. A hand-typed "CODIGO" on a header-transform tenant
// therefore forces text just like the canonical "Codigo".
func (t *TenantConfig) TextColumn(sheet, header string) bool {
	fields, ok := t.TypeMap[sheet]
	if !ok {
		return false
	}

	canonical := header
	renames := t.RenameColumns[sheet]
	if renamed, ok := renames[header]; ok {
		canonical = renamed
	} else if t.NormalizeHeaders && len(renames) == 0 {
		canonical = CanonicalizeHeader(header)
	}

	return fields[canonical] == TypeText
}

// RulesFor returns the transform rules that apply to the given section:
// the wildcard rules followed by the section-specific ones.
func (t *TenantConfig) RulesFor(section string) []FieldRule {
	rules := append([]FieldRule{}, t.TransformRules["*"]...)
	return append(rules, t.TransformRules[section]...)
}

// ResolveTemplate returns the document-type template for the given code.
// Unknown codes fail fast; known codes missing from the tenant's template set
// fall back to the canonical template. A nil template (document type
// "cancel") means the overlay step is skipped entirely.
func (t *TenantConfig) ResolveTemplate(docType string) (*Template, error) {
	if _, ok := DocumentTypes[docType]; !ok {
		codes := make([]string, 0, len(DocumentTypes))
		for c := range DocumentTypes {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		return nil, fmt.Errorf("unknown document type %q (supported: %s)", docType, strings.Join(codes, ", "))
	}

	if tmpl, ok := t.Templates[docType]; ok {
		return tmpl, nil
	}
	return canonicalTemplates[docType], nil
}

// =============================================================================
// FIELD TYPES
// =============================================================================

// FieldType is the declared type of a field in the canonical type map.
// Only TypeText is actively enforced (forced-text load, zero-padded
// coercion); the other types document the contract for downstream consumers.
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeBoolean FieldType = "boolean"
)

// =============================================================================
// FIELD TRANSFORM RULES
// =============================================================================

// RuleAction identifies a field transform applied to a row before grouping.
type RuleAction string

const (
	// ActionSplitList splits a delimited string field into a list of trimmed
	// strings. An absent value becomes an empty list.
	ActionSplitList RuleAction = "split-list"

	// ActionStripHyphens removes every hyphen from a string field.
	ActionStripHyphens RuleAction = "strip-hyphens"

	// ActionStripHyphensWhen removes hyphens from a string field only when a
	// sibling field holds one of the listed values.
	ActionStripHyphensWhen RuleAction = "strip-hyphens-when"
)

// FieldRule describes one row-scoped field transform.
type FieldRule struct {
	// Field is the canonical name of the field to transform. The rule is a
	// no-op when the field is not present on the row.
	Field string `yaml:"field"`

	// Action selects the transform.
	Action RuleAction `yaml:"action"`

	// Delimiter is the separator used by split-list rules.
	// Default: ","
	Delimiter string `yaml:"delimiter,omitempty"`

	// WhenField names the sibling field inspected by conditional rules.
	WhenField string `yaml:"when_field,omitempty"`

	// WhenValues lists the sibling values that trigger conditional rules.
	WhenValues []string `yaml:"when_values,omitempty"`
}

// =============================================================================
// DOCUMENT-TYPE TEMPLATES
// =============================================================================

// Template is the fixed-field payload merged into every record of one
// document type. Root keys fill absent record-root keys; section defaults are
// merged into (or seed) the named section per the SectionDefault kind.
type Template struct {
	// Root holds the keys copied into the record root when absent
	// (the "dte" object of the source format).
	Root map[string]any `yaml:"root"`

	// Sections maps section name -> default payload.
	Sections map[string]SectionDefault `yaml:"sections"`
}

// Empty reports whether the template carries no defaults at all.
func (t *Template) Empty() bool {
	return t == nil || (len(t.Root) == 0 && len(t.Sections) == 0)
}

// SectionKind distinguishes the two merge behaviors a section default can
// have.
type SectionKind int

const (
	// SectionObject defaults are merged into every existing entry of the
	// section, or seed it as a one-element list.
	SectionObject SectionKind = iota

	// SectionList defaults are appended element-wise to the section, or seed
	// it as-is. An empty list seeds an empty section.
	SectionList
)

// SectionDefault is a tagged variant: either a single object merged into
// every entry, or a list of objects appended independently. The kind is
// explicit rather than inferred from a runtime type check at merge time.
type SectionDefault struct {
	kind   SectionKind
	object map[string]any
	list   []map[string]any
}

// ObjectDefault builds an object-kind section default.
func ObjectDefault(fields map[string]any) SectionDefault {
	return SectionDefault{kind: SectionObject, object: fields}
}

// ListDefault builds a list-kind section default.
func ListDefault(entries ...map[string]any) SectionDefault {
	if entries == nil {
		entries = []map[string]any{}
	}
	return SectionDefault{kind: SectionList, list: entries}
}

// Kind returns the merge behavior of this default.
func (d SectionDefault) Kind() SectionKind { return d.kind }

// Object returns the object payload. Only meaningful for SectionObject.
func (d SectionDefault) Object() map[string]any { return d.object }

// List returns the list payload. Only meaningful for SectionList.
func (d SectionDefault) List() []map[string]any { return d.list }

// UnmarshalYAML accepts either a mapping (object default) or a sequence of
// mappings (list default), so tenant files read naturally:
//
//	sections:
//	  Detalles:
//	    Descuento: 0
//	  Apendices: []
func (d *SectionDefault) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var obj map[string]any
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*d = ObjectDefault(obj)
		return nil
	case yaml.SequenceNode:
		var list []map[string]any
		if err := node.Decode(&list); err != nil {
			return err
		}
		*d = ListDefault(list...)
		return nil
	default:
		return fmt.Errorf("line %d: section default must be a mapping or a sequence", node.Line)
	}
}

// MarshalYAML emits the underlying payload, the inverse of UnmarshalYAML.
func (d SectionDefault) MarshalYAML() (any, error) {
	if d.kind == SectionList {
		return d.list, nil
	}
	return d.object, nil
}

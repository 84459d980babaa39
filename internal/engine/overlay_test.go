package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtesv/excel-dte-converter/internal/config"
)

func TestOverlaySection_ObjectFillsAbsentKeysOnly(t *testing.T) {
	record := Record{
		"Detalles": []any{
			map[string]any{"Codigo": "X1"},
			map[string]any{"Descuento": 5},
		},
	}
	def := config.ObjectDefault(map[string]any{
		"Codigo":    nil,
		"Descuento": 0,
	})

	require.NoError(t, overlaySection(record, "Detalles", def))

	entries := record["Detalles"].([]any)
	first := entries[0].(map[string]any)
	assert.Equal(t, "X1", first["Codigo"], "row value survives the overlay")
	assert.Equal(t, 0, first["Descuento"])

	second := entries[1].(map[string]any)
	assert.Nil(t, second["Codigo"])
	assert.Equal(t, 5, second["Descuento"], "row value survives the overlay")
}

func TestOverlaySection_ObjectSeedsAbsentSection(t *testing.T) {
	record := Record{}
	def := config.ObjectDefault(map[string]any{"TipoDte": "01"})

	require.NoError(t, overlaySection(record, "Identificacion", def))

	entries, ok := record["Identificacion"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "01", entries[0].(map[string]any)["TipoDte"])
}

func TestOverlaySection_ListAppendsAndSeeds(t *testing.T) {
	def := config.ListDefault(map[string]any{"Campo": "Sello", "Valor": nil})

	// Absent section: seeded with the default elements.
	record := Record{}
	require.NoError(t, overlaySection(record, "Apendices", def))
	seeded := record["Apendices"].([]any)
	require.Len(t, seeded, 1)
	assert.Equal(t, "Sello", seeded[0].(map[string]any)["Campo"])

	// Present section: elements appended after the row entries.
	record = Record{"Apendices": []any{map[string]any{"Campo": "Lote"}}}
	require.NoError(t, overlaySection(record, "Apendices", def))
	merged := record["Apendices"].([]any)
	require.Len(t, merged, 2)
	assert.Equal(t, "Lote", merged[0].(map[string]any)["Campo"])
	assert.Equal(t, "Sello", merged[1].(map[string]any)["Campo"])
}

func TestOverlaySection_EmptyListSeedsEmptySection(t *testing.T) {
	record := Record{}
	require.NoError(t, overlaySection(record, "DocumentosRelacionados", config.ListDefault()))

	list, ok := record["DocumentosRelacionados"].([]any)
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestApplyDefaults_ExplicitNullIsNotOverridden(t *testing.T) {
	eng := newEngine(t, "01")
	ledger := NewLedger()

	// A row that supplied an explicit null (a blank cell) already owns the
	// key; the template default must not replace it, at the root or inside
	// a section entry.
	records := RecordMap{
		"1": Record{
			"VentaTercero": nil,
			"Detalles": []any{
				map[string]any{"Codigo": "X1", "Descuento": nil},
			},
		},
	}
	eng.applyDefaults(records, ledger)
	require.Equal(t, 0, ledger.ErrorCount())

	record := records["1"]
	value, present := record["VentaTercero"]
	require.True(t, present)
	assert.Nil(t, value, "template default false must not replace the row's null")

	detalle := record["Detalles"].([]any)[0].(map[string]any)
	value, present = detalle["Descuento"]
	require.True(t, present)
	assert.Nil(t, value, "template default 0 must not replace the row's null")
}

func TestApplyDefaults_TemplateDataIsNotShared(t *testing.T) {
	eng := newEngine(t, "01")
	ledger := NewLedger()

	records := RecordMap{
		"1": Record{},
		"2": Record{},
	}
	eng.applyDefaults(records, ledger)
	require.Equal(t, 0, ledger.ErrorCount())

	// Mutating one record's seeded section must not bleed into the other.
	first := records["1"]["Identificacion"].([]any)[0].(map[string]any)
	first["TipoDte"] = "tampered"

	second := records["2"]["Identificacion"].([]any)[0].(map[string]any)
	assert.Equal(t, "01", second["TipoDte"])
}

func TestCollapseSingletons(t *testing.T) {
	records := RecordMap{
		"1": Record{
			"Identificacion":         []any{map[string]any{"TipoDte": "01"}},
			"Detalles":               []any{map[string]any{"Codigo": "A"}},
			"DocumentosRelacionados": []any{},
			"Apendices": []any{
				map[string]any{"Campo": "a"},
				map[string]any{"Campo": "b"},
			},
		},
	}

	collapseSingletons(records)
	record := records["1"]

	// Single-entry sections collapse to the bare object.
	_, isObject := record["Identificacion"].(map[string]any)
	assert.True(t, isObject)

	// The exempt sections stay lists whatever their length.
	detalles, isList := record["Detalles"].([]any)
	require.True(t, isList)
	assert.Len(t, detalles, 1)

	_, isList = record["DocumentosRelacionados"].([]any)
	assert.True(t, isList)

	// Multi-entry sections stay lists.
	apendices, isList := record["Apendices"].([]any)
	require.True(t, isList)
	assert.Len(t, apendices, 2)
}

func TestCollapseSingletons_WrapsBareExemptSections(t *testing.T) {
	records := RecordMap{
		"1": Record{
			"Detalles": map[string]any{"Codigo": "A"},
		},
	}

	collapseSingletons(records)

	detalles, ok := records["1"]["Detalles"].([]any)
	require.True(t, ok, "a bare Detalles object is wrapped back into a list")
	assert.Len(t, detalles, 1)
}

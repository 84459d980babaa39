package jsonwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtesv/excel-dte-converter/internal/engine"
)

func TestMarshalRecords(t *testing.T) {
	records := engine.RecordMap{
		"100": engine.Record{
			"Receptor": map[string]any{
				"Nombres": "José Pérez & Cía",
				"Nrc":     nil,
			},
			"Detalles": []any{
				map[string]any{"Codigo": "01", "Cantidad": 2},
			},
		},
	}

	data, err := MarshalRecords(records)
	require.NoError(t, err)

	// Accented characters and ampersands are written verbatim.
	assert.Contains(t, string(data), "José Pérez & Cía")
	assert.NotContains(t, string(data), `&`)

	// Absent values serialize as JSON null, never as NaN.
	assert.Contains(t, string(data), `"Nrc":null`)
	assert.NotContains(t, string(data), "NaN")

	// The output round-trips.
	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "100")
}

func TestWriteRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	records := engine.RecordMap{"1": engine.Record{"NumeroControl": "DTE-01-0001"}}

	require.NoError(t, WriteRecords(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTE-01-0001")
}

func TestMarshalLedger(t *testing.T) {
	clock := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	ledger := engine.NewLedgerWithClock(func() time.Time { return clock })
	ledger.Error("", "la hoja 'Detalles' está vacía")
	ledger.Success("100")

	data, err := MarshalLedger(ledger)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "IDDTE,ERROR,FECHA,STATUS", lines[0])
	assert.Equal(t, ",la hoja 'Detalles' está vacía,2024-01-15 14:30:22,Error", lines[1])
	assert.Equal(t, "100,,,SUCCESS", lines[2])
}

func TestMarshalLedger_QuotesFieldsWithCommas(t *testing.T) {
	ledger := engine.NewLedger()
	ledger.Error("5", "valor inválido: esperaba 1, 2 o 3")

	data, err := MarshalLedger(ledger)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"valor inválido: esperaba 1, 2 o 3"`)
}

func TestWriteLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	ledger := engine.NewLedger()
	ledger.Success("1")

	require.NoError(t, WriteLedger(path, ledger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "IDDTE,ERROR,FECHA,STATUS"))
}

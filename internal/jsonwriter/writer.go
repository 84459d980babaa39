// =============================================================================
// Excel to DTE Converter - Output Writers
// =============================================================================
//
// This module serializes the merge engine's outputs:
//
//   - The record map as a single UTF-8 JSON object (identifier -> record),
//     with HTML escaping disabled so accented names and the like are written
//     verbatim, not as \u escapes.
//   - The row ledger as CSV rows of exactly four fields
//     (IDDTE, ERROR, FECHA, STATUS), header row included, in the order the
//     entries were recorded.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dtesv/excel-dte-converter/internal/engine"
)

// ledgerHeader is the fixed first row of every ledger file.
var ledgerHeader = []string{"IDDTE", "ERROR", "FECHA", "STATUS"}

// MarshalRecords serializes the record map to JSON.
func MarshalRecords(records engine.RecordMap) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteRecords writes the record map as a JSON file.
func WriteRecords(path string, records engine.RecordMap) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	return nil
}

// MarshalLedger serializes the ledger as CSV.
func MarshalLedger(ledger *engine.Ledger) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ledgerHeader); err != nil {
		return nil, fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, entry := range ledger.Entries() {
		row := []string{entry.ID, entry.Message, entry.Timestamp, string(entry.Status)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write ledger entry: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush ledger: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteLedger writes the ledger as a CSV file.
func WriteLedger(path string, ledger *engine.Ledger) error {
	data, err := MarshalLedger(ledger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	return nil
}

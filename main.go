// =============================================================================
// Excel to DTE Converter - Main Entry Point
// =============================================================================
//
// Converts multi-sheet XLSX batches into the nested JSON documents the
// El Salvador DTE invoicing pipeline consumes. All behavior lives in the
// cmd package (Cobra commands) and the internal packages behind it; main
// only hands control to the CLI.
//
// =============================================================================

package main

import (
	"github.com/dtesv/excel-dte-converter/cmd"
)

func main() {
	cmd.Execute()
}

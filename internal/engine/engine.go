// =============================================================================
// Excel to DTE Converter - Merge Engine
// =============================================================================
//
// This module contains the core conversion logic: the sheet-to-record merge
// engine that turns a workbook of correlated sheets into one nested record
// per document identifier.
//
// PIPELINE:
//   1. Normalize column headers (rename tables / header transform)
//   2. Group rows by document identifier (field transform rules inline)
//   3. Overlay the document-type template defaults
//   4. Collapse single-entry sections to bare objects (with exemptions)
//   5. Coerce residual numbers in text-typed fields to zero-padded strings
//   6. Normalize NaN sentinels to explicit nulls
//   7. Record one SUCCESS ledger entry per emitted identifier
//
// One engine processes one workbook end to end; the record map and ledger it
// produces are owned by that single run. Nothing is shared across runs.
//
// =============================================================================

package engine

import (
	"fmt"
	"sort"

	"github.com/dtesv/excel-dte-converter/internal/config"
	"github.com/dtesv/excel-dte-converter/internal/logger"
	"github.com/dtesv/excel-dte-converter/internal/xlsxreader"
)

// =============================================================================
// ENGINE STRUCTURE
// =============================================================================

// Engine merges one workbook into a record map under a fixed tenant
// configuration and document type.
type Engine struct {
	tenant   *config.TenantConfig
	template *config.Template
	docType  string
	log      *logger.Logger
}

// New creates an engine for the given tenant and document-type code.
//
// RETURNS:
//   - The configured engine.
//   - An error if the document type is unknown; unknown codes fail here,
//     before any sheet is touched.
func New(tenant *config.TenantConfig, docType string, log *logger.Logger) (*Engine, error) {
	template, err := tenant.ResolveTemplate(docType)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.New("info")
	}

	return &Engine{
		tenant:   tenant,
		template: template,
		docType:  docType,
		log:      log,
	}, nil
}

// Tenant returns the tenant configuration the engine was built with.
func (e *Engine) Tenant() *config.TenantConfig {
	return e.tenant
}

// Stats summarizes one run for reporting.
type Stats struct {
	// Sheets is the number of sheets scanned.
	Sheets int

	// Records is the number of identifiers that produced a record.
	Records int

	// Errors is the number of error ledger entries recorded.
	Errors int
}

// =============================================================================
// RUN
// =============================================================================

// Run executes the merge pipeline over the workbook.
//
// RETURNS:
//   - The record map, keyed by document identifier as text.
//   - The row ledger, in chronological recording order.
//   - An error only for run-level failures; row-, sheet- and merge-level
//     problems are ledger entries, and the surviving records are returned.
func (e *Engine) Run(wb *xlsxreader.Workbook) (RecordMap, *Ledger, error) {
	return e.run(wb, NewLedger())
}

// RunWithLedger is Run with a caller-supplied ledger, used by tests that
// need a deterministic clock.
func (e *Engine) RunWithLedger(wb *xlsxreader.Workbook, ledger *Ledger) (RecordMap, error) {
	records, _, err := e.run(wb, ledger)
	return records, err
}

func (e *Engine) run(wb *xlsxreader.Workbook, ledger *Ledger) (RecordMap, *Ledger, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, ledger, fmt.Errorf("workbook has no sheets")
	}

	e.log.Info("processing workbook",
		"path", wb.Path,
		"sheets", len(wb.Sheets),
		"tenant", e.tenant.Code,
		"type", e.docType,
	)

	records := e.groupRows(wb, ledger)
	e.log.Debug("grouped rows", "records", len(records))

	e.applyDefaults(records, ledger)
	collapseSingletons(records)
	coerceTypes(records, e.tenant.TypeMap)

	// Emit in a stable identifier order so ledgers are reproducible across
	// runs of the same input.
	for _, id := range sortedIDs(records) {
		records[id] = normalizeNulls(records[id]).(Record)
		ledger.Success(id)
	}

	e.log.Info("workbook processed",
		"records", len(records),
		"errors", ledger.ErrorCount(),
	)

	return records, ledger, nil
}

// sortedIDs returns the record identifiers in lexicographic order.
func sortedIDs(records RecordMap) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CollectStats derives run statistics from the outputs.
func CollectStats(wb *xlsxreader.Workbook, records RecordMap, ledger *Ledger) Stats {
	stats := Stats{Records: len(records), Errors: ledger.ErrorCount()}
	if wb != nil {
		stats.Sheets = len(wb.Sheets)
	}
	return stats
}

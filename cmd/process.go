// =============================================================================
// Excel to DTE Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts XLSX batches to DTE
// JSON. It orchestrates the conversion pipeline for one workbook or for every
// workbook in the input directory.
//
// COMMAND USAGE:
//   dteconv process [flags]
//
// FLAGS:
//   --file     : Path to a specific workbook (omit to scan the input dir)
//   --type     : Document type code ("01", "03", "05", "11", "14", "cancel")
//   --tenant   : Tenant code selecting rename tables/rules/templates
//   --dry-run  : Run the merge without writing output files
//
// PROCESSING PIPELINE:
//   1. Load configuration (main + tenants)
//   2. Resolve the tenant and document-type template
//   3. For each workbook:
//      a. Read every sheet with type-map-driven forced-text columns
//      b. Run the merge engine (group, overlay, collapse, coerce, null-fix)
//      c. Write the record-map JSON and the row-ledger CSV
//      d. Archive the processed workbook
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtesv/excel-dte-converter/internal/config"
	"github.com/dtesv/excel-dte-converter/internal/engine"
	"github.com/dtesv/excel-dte-converter/internal/jsonwriter"
	"github.com/dtesv/excel-dte-converter/internal/logger"
	"github.com/dtesv/excel-dte-converter/internal/xlsxreader"
	"github.com/dtesv/excel-dte-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// filePath is the path to a specific workbook to process.
var filePath string

// docType is the document-type code for this batch.
var docType string

// tenantCode selects the tenant configuration.
var tenantCode string

// dryRun runs the merge without writing output files.
var dryRun bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert XLSX batches into DTE JSON documents",
	Long: `The process command reads one workbook (--file) or every workbook in the
input directory, merges the sheets into one nested record per document
identifier, and writes a JSON record map plus a CSV row ledger per workbook.

On successful processing:
  - The JSON and ledger land in the output directory
  - The workbook is moved to the input archive

On error:
  - A workbook that cannot be loaded produces a ledger with a single
    run-level entry and no JSON
  - Row- and sheet-level problems are recorded in the ledger and the run
    continues with the remaining rows`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific workbook to process (omit to scan the input directory)",
	)

	processCmd.Flags().StringVar(
		&docType,
		"type",
		"",
		"Document type code: 01, 03, 05, 11, 14 or cancel (required)",
	)
	processCmd.MarkFlagRequired("type")

	processCmd.Flags().StringVar(
		&tenantCode,
		"tenant",
		"",
		"Tenant code selecting rename tables, transform rules and templates",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the merge without writing output files",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the conversion pipeline.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Excel to DTE Converter ===")

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	log := logger.New(mainConfig.LogLevel)
	if verbose {
		log.SetVerbose()
	}

	tenants, err := config.LoadTenantConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load tenant configs: %w", err)
	}

	tenant, err := config.ResolveTenant(tenants, tenantCode)
	if err != nil {
		return err
	}
	log.Debug("resolved tenant", "code", tenant.Code, "name", tenant.Name)

	// Build the engine up front: an unknown document type must fail before
	// any workbook is touched.
	eng, err := engine.New(tenant, docType, log)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
		mainConfig.OutputArchiveDir,
	)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("input file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles(".xlsx")
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No XLSX files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES SEQUENTIALLY
	// =========================================================================
	// A single workbook is one self-contained pass; batches are processed one
	// workbook at a time so ledger files never interleave.

	var successCount, errorCount int

	for _, file := range inputFiles {
		if err := processWorkbook(file, mainConfig, eng, fm, log); err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			if !mainConfig.ShouldContinueOnError() {
				return fmt.Errorf("processing aborted: %w", err)
			}
			continue
		}
		successCount++
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if errorCount > 0 {
		return fmt.Errorf("%d workbook(s) failed", errorCount)
	}
	return nil
}

// processWorkbook runs the pipeline for one workbook.
func processWorkbook(file string, mainConfig *config.MainConfig, eng *engine.Engine, fm *utils.FileManager, log *logger.Logger) error {
	tenant := eng.Tenant()
	params := map[string]string{
		"name": utils.BaseName(file),
		"tipo": docType,
	}
	ledgerPath := filepath.Join(mainConfig.OutputDir, utils.GenerateOutputFileName(mainConfig.LedgerNameFormat, params))

	wb, err := xlsxreader.Read(file, tenant.TextColumn)
	if err != nil {
		// A workbook that cannot be loaded is fatal for this file: write a
		// ledger with the single run-level entry and no JSON.
		ledger := engine.NewLedger()
		ledger.Error("", fmt.Sprintf("error al cargar el archivo Excel: %v", err))
		if !dryRun {
			if werr := jsonwriter.WriteLedger(ledgerPath, ledger); werr != nil {
				log.Error("failed to write ledger", "path", ledgerPath, "error", werr)
			}
		}
		return fmt.Errorf("failed to load workbook: %w", err)
	}

	records, ledger, err := eng.Run(wb)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("  ✓ %s: %d record(s), %d error(s) [dry run]\n", filepath.Base(file), len(records), ledger.ErrorCount())
		return nil
	}

	recordsPath := filepath.Join(mainConfig.OutputDir, utils.GenerateOutputFileName(mainConfig.RecordNameFormat, params))
	if err := jsonwriter.WriteRecords(recordsPath, records); err != nil {
		return err
	}
	if err := jsonwriter.WriteLedger(ledgerPath, ledger); err != nil {
		return err
	}

	fmt.Printf("  ✓ %s -> %s (%d record(s), %d error(s))\n",
		filepath.Base(file), filepath.Base(recordsPath), len(records), ledger.ErrorCount())

	// =========================================================================
	// ARCHIVE
	// =========================================================================
	// Archival failures should not fail a conversion that already produced
	// its outputs; they are logged and the run continues.

	if mainConfig.ShouldArchive() {
		if _, err := fm.ArchiveInputFile(file); err != nil {
			log.Warn("failed to archive input file", "file", file, "error", err)
		}
		for _, out := range []string{recordsPath, ledgerPath} {
			if _, err := fm.ArchiveOutputFile(out); err != nil {
				log.Warn("failed to archive output file", "file", out, "error", err)
			}
		}
	}

	return nil
}

// =============================================================================
// Excel to DTE Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (dteconv)
//   ├── processCmd (dteconv process)
//   ├── validateCmd (dteconv validate)
//   └── versionCmd (dteconv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "dteconv",

	Short: "Excel to DTE Converter - Transform spreadsheet batches into DTE JSON documents",

	Long: `Excel to DTE Converter is a CLI tool that turns multi-sheet XLSX
batches into the nested JSON documents the electronic invoicing pipeline
(El Salvador DTE) consumes.

Each workbook carries one sheet per document section (header, recipient,
line items, summary, related documents, appendices); rows are correlated by
a shared IDDTE column and merged into one record per identifier, with
document-type defaults overlaid and per-tenant normalization rules applied.

Key Features:
  - One record per document identifier, sections merged across sheets
  - Document-type templates (01, 03, 05, 11, 14, cancel)
  - Tenant-specific rename tables, transform rules and templates via YAML
  - Row-level error ledger written next to the JSON output

Example Usage:
  dteconv process --file Lote_001.xlsx --type 01    # Convert one workbook
  dteconv process --type 03 --tenant ra             # Convert the input directory
  dteconv validate                                  # Check configuration`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

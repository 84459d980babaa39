// =============================================================================
// Excel to DTE Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the configuration
// without processing any workbook: the main config loads, every tenant file
// parses, and each tenant resolves a template for every document type.
//
// COMMAND USAGE:
//   dteconv validate
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dtesv/excel-dte-converter/internal/config"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without processing any workbook",
	Long: `The validate command loads the main configuration and every tenant
configuration, then reports per tenant which document types resolve a
template and which sections carry a type map. It is meant to be run after
editing the YAML files, before the next batch.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// =============================================================================
// VALIDATION LOGIC
// =============================================================================

// runValidate loads and reports on the full configuration.
func runValidate() error {
	fmt.Println("=== Configuration Validation ===")

	// =========================================================================
	// STEP 1: MAIN CONFIGURATION
	// =========================================================================

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("main config: %w", err)
	}
	fmt.Printf("✓ Main config loaded (%s)\n", cfgFile)
	fmt.Printf("  Input dir:   %s\n", mainConfig.InputDir)
	fmt.Printf("  Output dir:  %s\n", mainConfig.OutputDir)
	fmt.Printf("  Configs dir: %s\n", mainConfig.ConfigsDir)

	// =========================================================================
	// STEP 2: TENANT CONFIGURATIONS
	// =========================================================================

	tenants, err := config.LoadTenantConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("tenant configs: %w", err)
	}

	codes := make([]string, 0, len(tenants))
	for code := range tenants {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	docTypes := make([]string, 0, len(config.DocumentTypes))
	for code := range config.DocumentTypes {
		docTypes = append(docTypes, code)
	}
	sort.Strings(docTypes)

	fmt.Printf("✓ %d tenant(s) loaded\n", len(codes))

	// =========================================================================
	// STEP 3: PER-TENANT COVERAGE REPORT
	// =========================================================================

	for _, code := range codes {
		tenant := tenants[code]
		fmt.Printf("\nTenant %q (%s)\n", tenant.Code, tenant.Name)
		fmt.Printf("  ID column:         %s\n", tenant.IDColumn)
		fmt.Printf("  Normalize headers: %v\n", tenant.NormalizeHeaders)
		fmt.Printf("  Rename tables:     %d sheet(s)\n", len(tenant.RenameColumns))
		fmt.Printf("  Type map:          %d section(s)\n", len(tenant.TypeMap))

		for _, docType := range docTypes {
			tmpl, err := tenant.ResolveTemplate(docType)
			if err != nil {
				fmt.Printf("  ✗ type %-6s %v\n", docType, err)
				continue
			}
			source := "canonical"
			if _, ok := tenant.Templates[docType]; ok {
				source = "tenant"
			}
			if tmpl.Empty() {
				fmt.Printf("  ✓ type %-6s no overlay (%s)\n", docType, source)
				continue
			}
			fmt.Printf("  ✓ type %-6s %d root key(s), %d section(s) (%s)\n",
				docType, len(tmpl.Root), len(tmpl.Sections), source)
		}
	}

	fmt.Println("\n=== Validation Complete ===")
	return nil
}

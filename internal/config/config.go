// =============================================================================
// Excel to DTE Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and tenant-specific
// configurations.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Tenant Configs (configs/*.yaml): Tenant-specific conversion rules
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Modular: Each tenant has its own configuration file
//   - Extensible: New tenants can be added without code changes
//   - Explicit: Tenant rules are resolved once at startup and passed into the
//     engine as a value, never looked up through ambient state
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where input XLSX workbooks are placed.
	// The application will scan this directory for files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated JSON and ledger files are
	// placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed workbooks are moved.
	// Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir is the directory where generated output files are
	// archived for long-term storage.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// ConfigsDir is the directory containing tenant-specific configurations.
	// Each YAML file in this directory describes one tenant's rules.
	// Default: "./configs"
	ConfigsDir string `yaml:"configs_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// RecordNameFormat defines the file name for the record-map JSON output.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDDHHMMSS)
	//   {tipo}      - Document type code
	// Default: "{name}.json"
	RecordNameFormat string `yaml:"record_name_format"`

	// LedgerNameFormat defines the file name for the row-ledger CSV output.
	// Same placeholders as RecordNameFormat.
	// Default: "{name}{timestamp}.csv"
	LedgerNameFormat string `yaml:"ledger_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ContinueOnError determines whether batch processing continues with the
	// next workbook when one workbook fails to load.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveProcessed determines whether successfully processed workbooks are
	// moved to the input archive directory.
	// Default: true
	ArchiveProcessed *bool `yaml:"archive_processed"`
}

// ShouldContinueOnError reports the effective continue_on_error setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ShouldArchive reports the effective archive_processed setting.
func (c *MainConfig) ShouldArchive() bool {
	return c.ArchiveProcessed == nil || *c.ArchiveProcessed
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
//
// A missing file is not an error: the defaults describe a fully working
// local layout, so the tool runs without any configuration present.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.ConfigsDir == "" {
		config.ConfigsDir = "./configs"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.RecordNameFormat == "" {
		config.RecordNameFormat = "{name}.json"
	}
	if config.LedgerNameFormat == "" {
		config.LedgerNameFormat = "{name}{timestamp}.csv"
	}
}

// validateMainConfig validates the main configuration. Loading a config
// never touches the filesystem; directory bootstrap belongs to the file
// manager, so 'validate' stays read-only.
func validateMainConfig(config *MainConfig) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (expected debug, info, warn or error)", config.LogLevel)
	}

	return nil
}

// LoadTenantConfigs loads all tenant configurations from a directory and
// merges them over the compiled-in tenant set.
//
// PARAMETERS:
//   - configsDir: The path to the directory containing tenant YAML files.
//
// RETURNS:
//   - A map of tenant configurations, keyed by tenant code.
//   - An error if any file cannot be read or parsed.
//
// A file whose code matches a compiled-in tenant replaces that tenant; any
// other file adds a new tenant. A missing directory yields the compiled-in
// set unchanged.
func LoadTenantConfigs(configsDir string) (map[string]*TenantConfig, error) {
	tenants := BuiltinTenants()

	// Find all YAML files in the configs directory.
	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}

	// Also check for .yml extension.
	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	files = append(files, ymlFiles...)

	// Load each configuration file.
	for _, file := range files {
		tenant, err := loadTenantConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		// Use the tenant code as the key.
		// If no code is specified, use the file name.
		key := tenant.Code
		if key == "" {
			key = filepath.Base(file)
		}

		tenants[key] = tenant
	}

	return tenants, nil
}

// loadTenantConfig loads a single tenant configuration file.
func loadTenantConfig(filePath string) (*TenantConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var tenant TenantConfig
	if err := yaml.Unmarshal(data, &tenant); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	ApplyTenantDefaults(&tenant)

	return &tenant, nil
}

// ApplyTenantDefaults fills unset tenant configuration fields from the
// canonical rule set. A tenant file only has to state what differs from the
// defaults: the identifier column, templates, type map and transform rules
// all fall back to the canonical values.
func ApplyTenantDefaults(tenant *TenantConfig) {
	if tenant.IDColumn == "" {
		tenant.IDColumn = DefaultIDColumn
	}
	if tenant.Templates == nil {
		tenant.Templates = map[string]*Template{}
	}
	if tenant.TypeMap == nil {
		tenant.TypeMap = CanonicalTypeMap()
	}
	if tenant.TransformRules == nil {
		tenant.TransformRules = DefaultTransformRules()
	}
}

// ResolveTenant returns the tenant configuration for the given code.
// An empty code resolves to the default tenant. Unknown codes fail with a
// descriptive error listing the available tenants.
func ResolveTenant(tenants map[string]*TenantConfig, code string) (*TenantConfig, error) {
	if code == "" {
		code = DefaultTenantCode
	}
	tenant, ok := tenants[code]
	if !ok {
		codes := make([]string, 0, len(tenants))
		for c := range tenants {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		return nil, fmt.Errorf("unknown tenant %q (available: %v)", code, codes)
	}
	return tenant, nil
}

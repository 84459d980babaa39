package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMainConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	oldWd, err2 := os.Getwd()
	require.NoError(t, err2)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	cfg, err := LoadMainConfig(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./configs", cfg.ConfigsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "{name}.json", cfg.RecordNameFormat)
	assert.Equal(t, "{name}{timestamp}.csv", cfg.LedgerNameFormat)
	assert.True(t, cfg.ShouldContinueOnError())
	assert.True(t, cfg.ShouldArchive())

	// Loading configuration is read-only; the file manager owns directory
	// bootstrap.
	assert.NoDirExists(t, filepath.Join(dir, "input"))
	assert.NoDirExists(t, filepath.Join(dir, "output"))
}

func TestLoadMainConfig_InvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "log_level: chatty")

	_, err := LoadMainConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestLoadMainConfig_OverridesAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
input_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
log_level: debug
record_name_format: "{name}_{tipo}.json"
continue_on_error: false
archive_processed: false
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "in"), cfg.InputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "{name}_{tipo}.json", cfg.RecordNameFormat)
	assert.False(t, cfg.ShouldContinueOnError())
	assert.False(t, cfg.ShouldArchive())

	// Unset fields still default.
	assert.Equal(t, "{name}{timestamp}.csv", cfg.LedgerNameFormat)
}

func TestLoadMainConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "input_dir: [broken")

	_, err := LoadMainConfig(path)
	require.Error(t, err)
}

func TestResolveTenant(t *testing.T) {
	tenants := BuiltinTenants()

	// Empty code resolves to the default tenant.
	tenant, err := ResolveTenant(tenants, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTenantCode, tenant.Code)

	// Historical numeric aliases resolve to their named tenants.
	ra, err := ResolveTenant(tenants, "2")
	require.NoError(t, err)
	assert.Equal(t, "ra", ra.Code)

	px, err := ResolveTenant(tenants, "26")
	require.NoError(t, err)
	assert.Equal(t, "px", px.Code)
	assert.True(t, px.NormalizeHeaders)

	// Unknown codes list the available tenants.
	_, err = ResolveTenant(tenants, "nadie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nadie")
	assert.Contains(t, err.Error(), "default")
}

func TestResolveTemplate(t *testing.T) {
	tenant, err := ResolveTenant(BuiltinTenants(), "")
	require.NoError(t, err)

	// Every catalog type resolves; invalidation resolves to no template.
	for code := range DocumentTypes {
		tmpl, err := tenant.ResolveTemplate(code)
		require.NoError(t, err, "type %s", code)
		if code == DocTypeInvalidacion {
			assert.True(t, tmpl.Empty())
		} else {
			assert.False(t, tmpl.Empty())
		}
	}

	_, err = tenant.ResolveTemplate("99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")
}

func TestResolveTemplate_TenantOverrideAndFallback(t *testing.T) {
	tenant := &TenantConfig{
		Code: "acme",
		Templates: map[string]*Template{
			DocTypeFactura: {Root: map[string]any{"VentaTercero": true}},
		},
	}
	ApplyTenantDefaults(tenant)

	// The overridden type uses the tenant template.
	tmpl, err := tenant.ResolveTemplate(DocTypeFactura)
	require.NoError(t, err)
	assert.Equal(t, true, tmpl.Root["VentaTercero"])

	// Types the tenant does not override fall back to the canonical set.
	tmpl, err = tenant.ResolveTemplate(DocTypeCreditoFiscal)
	require.NoError(t, err)
	assert.Equal(t, false, tmpl.Root["VentaTercero"])
}

func TestApplyTenantDefaults(t *testing.T) {
	tenant := &TenantConfig{Code: "acme"}
	ApplyTenantDefaults(tenant)

	assert.Equal(t, DefaultIDColumn, tenant.IDColumn)
	assert.NotNil(t, tenant.Templates)
	assert.NotEmpty(t, tenant.TypeMap)
	assert.NotEmpty(t, tenant.TransformRules)
}

func TestLoadTenantConfigs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme.yaml", `
code: acme
name: Acme S.A. de C.V.
id_column: ID
normalize_headers: true
rename_columns:
  Detalles:
    "descripción producto": Descripcion
templates:
  "01":
    root:
      VentaTercero: false
    sections:
      Identificacion:
        TipoDte: "01"
      Apendices: []
transform_rules:
  "*":
    - field: Tributos
      action: split-list
      delimiter: ","
`)

	tenants, err := LoadTenantConfigs(dir)
	require.NoError(t, err)

	// The compiled-in tenants survive alongside the file-based one.
	assert.Contains(t, tenants, DefaultTenantCode)
	assert.Contains(t, tenants, "ra")

	acme, ok := tenants["acme"]
	require.True(t, ok)
	assert.Equal(t, "Acme S.A. de C.V.", acme.Name)
	assert.Equal(t, "ID", acme.IDColumn)
	assert.True(t, acme.NormalizeHeaders)
	assert.Equal(t, "Descripcion", acme.RenameColumns["Detalles"]["descripción producto"])

	tmpl, err := acme.ResolveTemplate(DocTypeFactura)
	require.NoError(t, err)
	assert.Equal(t, false, tmpl.Root["VentaTercero"])

	// A mapping default parses as object kind, a sequence as list kind.
	ident := tmpl.Sections["Identificacion"]
	assert.Equal(t, SectionObject, ident.Kind())
	assert.Equal(t, "01", ident.Object()["TipoDte"])

	apendices := tmpl.Sections["Apendices"]
	assert.Equal(t, SectionList, apendices.Kind())
	assert.Empty(t, apendices.List())

	// An explicit rule table replaces the defaults entirely.
	assert.Len(t, acme.RulesFor("Detalles"), 1)
}

func TestLoadTenantConfigs_MissingDirYieldsBuiltins(t *testing.T) {
	tenants, err := LoadTenantConfigs(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Contains(t, tenants, DefaultTenantCode)
}

func TestLoadTenantConfigs_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "code: [broken")

	_, err := LoadTenantConfigs(dir)
	require.Error(t, err)
}

func TestTextColumn(t *testing.T) {
	tenant, err := ResolveTenant(BuiltinTenants(), "")
	require.NoError(t, err)

	assert.True(t, tenant.TextColumn(SectionDetalles, "Codigo"))
	assert.True(t, tenant.TextColumn(SectionDetalles, "Tributos"))
	assert.False(t, tenant.TextColumn(SectionDetalles, "Cantidad"), "float columns are not forced to text")

	// Sheets without type declarations force nothing.
	assert.False(t, tenant.TextColumn("HojaDesconocida", "Codigo"))

	// Without the header transform, variant spellings do not match.
	assert.False(t, tenant.TextColumn(SectionDetalles, "CODIGO"))
}

func TestTextColumn_CoversRenamedHeaders(t *testing.T) {
	tenant := &TenantConfig{
		Code: "acme",
		RenameColumns: map[string]map[string]string{
			SectionDetalles: {"CÓDIGO": "Codigo"},
		},
	}
	ApplyTenantDefaults(tenant)

	assert.True(t, tenant.TextColumn(SectionDetalles, "Codigo"))
	assert.True(t, tenant.TextColumn(SectionDetalles, "CÓDIGO"), "raw headers renaming onto text fields are forced too")
	assert.False(t, tenant.TextColumn(SectionDetalles, "CODIGO"), "a rename table suppresses the header transform")
}

func TestTextColumn_HeaderTransformTenant(t *testing.T) {
	tenant, err := ResolveTenant(BuiltinTenants(), "26")
	require.NoError(t, err)
	require.True(t, tenant.NormalizeHeaders)

	// Hand-typed header variants resolve to their canonical field exactly
	// the way the column normalizer will resolve them after the load.
	assert.True(t, tenant.TextColumn(SectionDetalles, "CODIGO"))
	assert.True(t, tenant.TextColumn(SectionDetalles, "código"))
	assert.True(t, tenant.TextColumn(SectionDetalles, "Codigo"))
	assert.False(t, tenant.TextColumn(SectionDetalles, "cantidad"))
}

func TestRulesFor(t *testing.T) {
	tenant, err := ResolveTenant(BuiltinTenants(), "")
	require.NoError(t, err)

	// Wildcard rules come first, section rules after.
	rules := tenant.RulesFor(SectionResumen)
	require.NotEmpty(t, rules)
	assert.Equal(t, "Tributos", rules[0].Field)

	var fields []string
	for _, r := range rules {
		fields = append(fields, r.Field)
	}
	assert.Contains(t, fields, "NumDocIdentResponsable")
	assert.Contains(t, fields, "NumDocIdentSolicita")
}

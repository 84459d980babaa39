package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "input_archive"),
		filepath.Join(base, "output_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestManager(t)
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir, fm.OutputArchiveDir} {
		assert.DirExists(t, dir)
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)

	touch(t, filepath.Join(fm.InputDir, "b.xlsx"))
	touch(t, filepath.Join(fm.InputDir, "a.XLSX"))
	touch(t, filepath.Join(fm.InputDir, "~$b.xlsx"))
	touch(t, filepath.Join(fm.InputDir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "sub.xlsx"), 0755))

	files, err := fm.DiscoverInputFiles(".xlsx")
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Sorted, case-insensitive on extension, lock files and directories
	// excluded.
	assert.Equal(t, "a.XLSX", filepath.Base(files[0]))
	assert.Equal(t, "b.xlsx", filepath.Base(files[1]))
}

func TestArchiveInputFile(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.InputDir, "batch.xlsx")
	touch(t, src)

	archived, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "batch.xlsx"), archived)
	assert.True(t, FileExists(archived))
	assert.False(t, FileExists(src), "the input file is moved, not copied")
}

func TestArchiveOutputFile(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.OutputDir, "batch.json")
	touch(t, src)

	archived, err := fm.ArchiveOutputFile(src)
	require.NoError(t, err)

	assert.True(t, FileExists(archived))
	assert.True(t, FileExists(src), "the output file is copied, not moved")

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{name}_{tipo}.json", map[string]string{
		"name": "Lote_001",
		"tipo": "01",
	})
	assert.Equal(t, "Lote_001_01.json", name)
}

func TestGenerateOutputFileName_Timestamp(t *testing.T) {
	name := GenerateOutputFileName("{name}{timestamp}.csv", map[string]string{
		"name": "Lote_001",
	})
	assert.Regexp(t, regexp.MustCompile(`^Lote_001\d{14}\.csv$`), name)
}

func TestGenerateOutputFileName_UUID(t *testing.T) {
	name := GenerateOutputFileName("{uuid}.json", nil)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.json$`), name)

	other := GenerateOutputFileName("{uuid}.json", nil)
	assert.NotEqual(t, name, other)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Lote_001", BaseName("/tmp/in/Lote_001.xlsx"))
	assert.Equal(t, "Lote_001", BaseName("Lote_001.xlsx"))
	assert.Equal(t, "archivo", BaseName("archivo"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	assert.False(t, FileExists(path))

	touch(t, path)
	assert.True(t, FileExists(path))

	// Directories are not files.
	assert.False(t, FileExists(dir))
}

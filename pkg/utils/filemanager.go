// =============================================================================
// Excel to DTE Converter - File Manager
// =============================================================================
//
// This module handles the file system concerns around a conversion run:
// directory bootstrap, input discovery, output file naming, and archival of
// processed files.
//
// ARCHIVAL LOGIC:
//   - The input workbook is moved to the input archive after successful
//     processing.
//   - Generated output files are copied to the output archive.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER STRUCTURE
// =============================================================================

// FileManager bundles the directories one run works with.
type FileManager struct {
	// InputDir is where input workbooks are discovered.
	InputDir string

	// OutputDir is where generated files are written.
	OutputDir string

	// InputArchiveDir receives processed input workbooks.
	InputArchiveDir string

	// OutputArchiveDir receives copies of generated output files.
	OutputArchiveDir string
}

// NewFileManager creates a file manager for the given directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir, outputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		OutputArchiveDir: outputArchiveDir,
	}
}

// EnsureDirectories creates every configured directory that does not exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir, fm.OutputArchiveDir}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// INPUT DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the input files with the given extension, in
// stable name order.
//
// PARAMETERS:
//   - extension: File extension to match, including the dot (e.g. ".xlsx").
func (fm *FileManager) DiscoverInputFiles(extension string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Spreadsheet applications leave ~$ lock files next to open
		// workbooks; they are not inputs.
		if strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			files = append(files, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed input file to the input archive.
//
// RETURNS:
//   - The archive path the file was moved to.
//   - An error if the move fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.Rename(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}
	return archivePath, nil
}

// ArchiveOutputFile copies a generated output file to the output archive.
//
// RETURNS:
//   - The archive path the file was copied to.
//   - An error if the copy fails.
func (fm *FileManager) ArchiveOutputFile(filePath string) (string, error) {
	archivePath := filepath.Join(fm.OutputArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.OutputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}
	return archivePath, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDDHHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//   - params: Additional placeholder values, keyed without braces
//     (e.g. "name", "tipo").
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//
//	format: "{name}_{tipo}_{timestamp}.json"
//	params: {"name": "Lote_001", "tipo": "01"}
//	output: "Lote_001_01_20240115143022.json"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// =============================================================================
// HELPERS
// =============================================================================

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// BaseName returns the file name without directory or extension, the stem
// used in output name formats.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

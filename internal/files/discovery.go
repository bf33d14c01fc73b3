package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates yearly inspection workbooks in the sources directory.
type Discovery struct {
	sourcesDir string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(sourcesDir string) *Discovery {
	return &Discovery{sourcesDir: sourcesDir}
}

// WorkbookName returns the file name for a year's source workbook. The most
// recent (partial) year uses the to-date suffix instead of the plain year.
func WorkbookName(year int, toDate bool) string {
	if toDate {
		return fmt.Sprintf("VA_Food_Inspections_%d_to_date.xlsx", year)
	}
	return fmt.Sprintf("VA_Food_Inspections_%d.xlsx", year)
}

// WorkbookForYear resolves the source workbook for a year and verifies it
// exists. A missing workbook is fatal for the run; the returned error wraps
// fs.ErrNotExist so callers can classify it.
func (d *Discovery) WorkbookForYear(year int, toDate bool) (FileInfo, error) {
	name := WorkbookName(year, toDate)
	path := filepath.Join(d.sourcesDir, name)

	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("source workbook for year %d not found at %s: %w", year, path, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("source workbook path %s is a directory", path)
	}

	return FileInfo{
		Path:    path,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// FindWorkbooks finds all Excel files in the sources directory, sorted by
// name. Useful for diagnostics when a year's workbook is missing.
func (d *Discovery) FindWorkbooks() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.sourcesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.sourcesDir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(d.sourcesDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Exists reports whether a file exists at the given path. This is the whole
// of the cache staleness check: existence only, no content hash.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

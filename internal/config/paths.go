package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file path the pipeline touches.
//
// Directory structure relative to the base directory:
//
//	data/
//	  sources/    (yearly inspection workbooks)
//	  reports/    (cleaned dataset artifacts and the ZIP chart)
//	logs/
type Paths struct {
	BaseDir    string
	DataDir    string
	SourcesDir string
	ReportsDir string
	LogsDir    string

	// Well-known artifact files. CleanDataParquet doubles as the cache
	// artifact checked at startup.
	CleanDataParquet string
	CleanDataCSV     string
	ZipChartHTML     string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are always resolved against the executable directory, never the
// current working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// Well-known artifact file names inside the reports directory.
const (
	CleanDataParquetName = "cleaned_inspections.parquet"
	CleanDataCSVName     = "cleaned_inspections.csv"
	ZipChartHTMLName     = "top_zip_codes.html"
)

// NewPaths builds the path layout under the given base directory.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")

	p := &Paths{
		BaseDir:    baseDir,
		DataDir:    dataDir,
		SourcesDir: filepath.Join(dataDir, "sources"),
		LogsDir:    filepath.Join(baseDir, "logs"),
	}
	p.SetReportsDir(filepath.Join(dataDir, "reports"))
	return p
}

// SetSourcesDir overrides the sources directory (the -in flag).
func (p *Paths) SetSourcesDir(dir string) {
	p.SourcesDir = dir
}

// SetReportsDir overrides the reports directory (the -out flag) and
// recomputes the artifact paths beneath it.
func (p *Paths) SetReportsDir(dir string) {
	p.ReportsDir = dir
	p.CleanDataParquet = filepath.Join(dir, CleanDataParquetName)
	p.CleanDataCSV = filepath.Join(dir, CleanDataCSVName)
	p.ZipChartHTML = filepath.Join(dir, ZipChartHTMLName)
}

// EnsureDirectories creates all required directories if they do not exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.SourcesDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

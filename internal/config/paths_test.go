package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "data", "sources"), paths.SourcesDir)
	assert.Equal(t, filepath.Join(base, "data", "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)

	assert.Equal(t, filepath.Join(paths.ReportsDir, CleanDataParquetName), paths.CleanDataParquet)
	assert.Equal(t, filepath.Join(paths.ReportsDir, CleanDataCSVName), paths.CleanDataCSV)
	assert.Equal(t, filepath.Join(paths.ReportsDir, ZipChartHTMLName), paths.ZipChartHTML)
}

func TestSetReportsDir(t *testing.T) {
	paths := NewPaths(t.TempDir())
	override := filepath.Join(t.TempDir(), "custom")

	paths.SetReportsDir(override)

	assert.Equal(t, override, paths.ReportsDir)
	assert.Equal(t, filepath.Join(override, CleanDataParquetName), paths.CleanDataParquet)
	assert.Equal(t, filepath.Join(override, CleanDataCSVName), paths.CleanDataCSV)
	assert.Equal(t, filepath.Join(override, ZipChartHTMLName), paths.ZipChartHTML)
}

func TestSetSourcesDir(t *testing.T) {
	paths := NewPaths(t.TempDir())
	override := filepath.Join(t.TempDir(), "workbooks")

	paths.SetSourcesDir(override)
	assert.Equal(t, override, paths.SourcesDir)
}

func TestEnsureDirectories(t *testing.T) {
	paths := NewPaths(t.TempDir())

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.SourcesDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGetLogPath(t *testing.T) {
	paths := NewPaths(t.TempDir())
	assert.Equal(t, filepath.Join(paths.LogsDir, "pipeline.log"), paths.GetLogPath("pipeline.log"))
}

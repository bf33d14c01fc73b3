package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbookName(t *testing.T) {
	assert.Equal(t, "VA_Food_Inspections_2022.xlsx", WorkbookName(2022, false))
	assert.Equal(t, "VA_Food_Inspections_2025_to_date.xlsx", WorkbookName(2025, true))
}

func TestWorkbookForYear(t *testing.T) {
	dir := t.TempDir()
	d := NewDiscovery(dir)

	t.Run("resolves an existing workbook", func(t *testing.T) {
		path := filepath.Join(dir, "VA_Food_Inspections_2023.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))

		info, err := d.WorkbookForYear(2023, false)
		require.NoError(t, err)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, "VA_Food_Inspections_2023.xlsx", info.Name)
		assert.EqualValues(t, 4, info.Size)
	})

	t.Run("missing workbook wraps fs.ErrNotExist", func(t *testing.T) {
		_, err := d.WorkbookForYear(2021, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("to-date naming is used for the partial year", func(t *testing.T) {
		path := filepath.Join(dir, "VA_Food_Inspections_2025_to_date.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))

		info, err := d.WorkbookForYear(2025, true)
		require.NoError(t, err)
		assert.Equal(t, path, info.Path)

		// The plain-year name does not exist for the partial year.
		_, err = d.WorkbookForYear(2025, false)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VA_Food_Inspections_2022.xlsx"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("b"), 0644))

	files, err := NewDiscovery(dir).FindWorkbooks()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "VA_Food_Inspections_2022.xlsx", files[0].Name)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.parquet")

	assert.False(t, Exists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, Exists(path))
	assert.False(t, Exists(dir), "directories do not count")
}

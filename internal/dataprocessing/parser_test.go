package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vainspect/pkg/contracts/domain"
)

// writeWorkbook builds a minimal inspection workbook for tests.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func inspectionHeader() []interface{} {
	return []interface{}{
		"permitName", "permitType", "City", "Zip", "status", "class",
		"violationType", "InspectionDate", "facilityRiskRating",
	}
}

func TestParseWorkbook(t *testing.T) {
	t.Run("parses rows and tags the source year", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "VA_Food_Inspections_2023.xlsx")
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			inspectionHeader(),
			{"Joe's Diner", "Full Service Restaurant", "Richmond", "23220", "Permitted", "Priority", "COS,Violation", "2023-04-12", 3},
			{"Cafe Uno", "Fast Food", "Norfolk", "23510", "Closed", "core", "Violation", "2023-05-01", ""},
		})

		records, err := ParseWorkbook(path, 2023)
		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, "Joe's Diner", first.PermitName)
		assert.Equal(t, "Richmond", first.City)
		assert.Equal(t, "Permitted", first.Status)
		assert.Equal(t, "COS,Violation", first.ViolationType)
		assert.Equal(t, "2023-04-12", first.DateRaw)
		assert.Equal(t, "3", first.RiskRaw)
		assert.Equal(t, 2023, first.Year)

		assert.Equal(t, "Cafe Uno", records[1].PermitName)
		assert.Equal(t, 2023, records[1].Year)
	})

	t.Run("trims column name whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "padded.xlsx")
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			{"permitName ", " permitType", "City", " Zip ", "status", "class", " violationType", "InspectionDate ", "facilityRiskRating"},
			{"Joe's Diner", "Fast Food", "Richmond", "23220", "Permitted", "core", "Violation", "2023-04-12", 2},
		})

		records, err := ParseWorkbook(path, 2023)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "23220", records[0].Zip)
		assert.Equal(t, "Violation", records[0].ViolationType)
	})

	t.Run("finds the data sheet by header when named oddly", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "odd.xlsx")
		writeWorkbook(t, path, "Export 2024", [][]interface{}{
			inspectionHeader(),
			{"Cafe Uno", "Fast Food", "Norfolk", "23510", "Permitted", "core", "Violation", "2024-01-15", 1},
		})

		records, err := ParseWorkbook(path, 2024)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("skips blank rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blanks.xlsx")
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			inspectionHeader(),
			{"Joe's Diner", "Fast Food", "Richmond", "23220", "Permitted", "core", "Violation", "2023-04-12", 2},
			{"", "", "", "", "", "", "", "", ""},
			{"Cafe Uno", "Fast Food", "Norfolk", "23510", "Permitted", "core", "Violation", "2023-05-02", 1},
		})

		records, err := ParseWorkbook(path, 2023)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("missing required column is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nostatus.xlsx")
		// No status column anywhere, so no row qualifies as a header.
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			{"permitName", "permitType", "City", "Zip", "class", "violationType", "InspectionDate", "facilityRiskRating"},
			{"Joe's Diner", "Fast Food", "Richmond", "23220", "core", "Violation", "2023-04-12", 2},
		})

		_, err := ParseWorkbook(path, 2023)
		require.Error(t, err)
	})

	t.Run("missing class column reports ErrMissingColumn", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noclass.xlsx")
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			{"permitName", "permitType", "City", "Zip", "status", "violationType", "InspectionDate", "facilityRiskRating"},
			{"Joe's Diner", "Fast Food", "Richmond", "23220", "Permitted", "Violation", "2023-04-12", 2},
		})

		_, err := ParseWorkbook(path, 2023)
		require.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("missing optional columns yield empty fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "minimal.xlsx")
		writeWorkbook(t, path, "Inspections", [][]interface{}{
			{"permitType", "City", "Zip", "status", "class", "violationType", "InspectionDate"},
			{"Fast Food", "Richmond", "23220", "Permitted", "core", "Violation", "2023-04-12"},
		})

		records, err := ParseWorkbook(path, 2023)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].PermitName)
		assert.Empty(t, records[0].RiskRaw)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ParseWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), 2023)
		require.Error(t, err)
	})
}

func TestMapColumns(t *testing.T) {
	headerRow, columnMap := mapColumns([][]string{
		{"some", "preamble"},
		{"permitName", "permitType", "City", "Zip", "status", "class", "violationType", "InspectionDate", "facilityRiskRating"},
	})
	require.Equal(t, 1, headerRow)
	assert.Equal(t, 4, columnMap["status"])
	assert.Equal(t, 7, columnMap["inspectiondate"])
}

func TestParseWorkbookIntoDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VA_Food_Inspections_2022.xlsx")
	writeWorkbook(t, path, "Inspections", [][]interface{}{
		inspectionHeader(),
		{"Joe's Diner", "Fast Food", "Richmond", "23220", "Permitted", "core", "Violation", "2022-03-01", 2},
	})

	records, err := ParseWorkbook(path, 2022)
	require.NoError(t, err)

	ds := &domain.Dataset{Records: records}
	assert.Equal(t, 1, ds.Len())
}

package dataprocessing

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"vainspect/pkg/contracts/domain"
)

// ErrMissingColumn indicates a source workbook lacks an expected column.
// This is fatal for the run; there is no best-effort fallback.
var ErrMissingColumn = errors.New("required column missing")

// requiredColumns are the headers every yearly workbook must carry. Matching
// is done on trimmed, case-folded header text. The permitName and
// facilityRiskRating columns are optional passthroughs: absent columns yield
// empty fields instead of failing the run.
var requiredColumns = []string{
	"inspectiondate",
	"status",
	"violationtype",
	"class",
	"permittype",
	"city",
	"zip",
}

// ParseWorkbook reads one year's inspection workbook and returns its rows in
// file order, each tagged with the source year. Date and risk-rating cells are
// kept as raw text; Normalize coerces them afterwards.
func ParseWorkbook(path string, year int) ([]domain.Inspection, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	headerRow, columnMap := mapColumns(rows)
	if headerRow == -1 {
		return nil, fmt.Errorf("could not find header row in %s", path)
	}

	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, col, path)
		}
	}

	slog.Debug("parsing workbook",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("year", year),
		slog.Int("total_rows", len(rows)))

	records := make([]domain.Inspection, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		records = append(records, domain.Inspection{
			PermitName:    cellAt(row, columnMap, "permitname"),
			PermitType:    cellAt(row, columnMap, "permittype"),
			City:          cellAt(row, columnMap, "city"),
			Zip:           cellAt(row, columnMap, "zip"),
			Status:        cellAt(row, columnMap, "status"),
			Class:         cellAt(row, columnMap, "class"),
			ViolationType: cellAt(row, columnMap, "violationtype"),
			DateRaw:       cellAt(row, columnMap, "inspectiondate"),
			RiskRaw:       cellAt(row, columnMap, "facilityriskrating"),
			Year:          year,
		})
	}

	return records, nil
}

// findDataSheet locates the sheet holding inspection data. The export tool
// names it "Inspections" but older files use the default sheet name, so fall
// back to scanning every sheet for a recognizable header row.
func findDataSheet(f *excelize.File) ([][]string, string, error) {
	possibleNames := []string{"Inspections", "inspections", "Sheet1"}

	for _, name := range possibleNames {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 0 {
			if headerRow, _ := mapColumns(rows); headerRow != -1 {
				return rows, name, nil
			}
		}
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if headerRow, _ := mapColumns(rows); headerRow != -1 {
			return rows, name, nil
		}
	}

	return nil, "", errors.New("could not find inspection data sheet")
}

// mapColumns finds the header row and maps trimmed, case-folded header names
// to column positions. Returns -1 when no plausible header row exists.
func mapColumns(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		if len(row) < len(requiredColumns) {
			continue
		}

		columnMap := make(map[string]int, len(row))
		for j, header := range row {
			key := strings.ToLower(strings.TrimSpace(header))
			if key == "" {
				continue
			}
			if _, dup := columnMap[key]; !dup {
				columnMap[key] = j
			}
		}

		// A header row must carry the date, status and violation columns.
		_, hasDate := columnMap["inspectiondate"]
		_, hasStatus := columnMap["status"]
		_, hasViolation := columnMap["violationtype"]
		if hasDate && hasStatus && hasViolation {
			return i, columnMap
		}
	}
	return -1, nil
}

func cellAt(row []string, columnMap map[string]int, name string) string {
	idx, ok := columnMap[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

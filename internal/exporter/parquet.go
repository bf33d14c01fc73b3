package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"vainspect/pkg/contracts/domain"
)

// inspectionRow is the Parquet schema for one inspection record. Text columns
// are stored as strings; nullable fields use optional columns so missing
// dates, ratings and years round-trip without sentinel values.
type inspectionRow struct {
	PermitName         string     `parquet:"permitName"`
	PermitType         string     `parquet:"permitType"`
	City               string     `parquet:"City"`
	Zip                string     `parquet:"Zip"`
	Status             string     `parquet:"status"`
	Class              string     `parquet:"class"`
	ViolationType      string     `parquet:"violationType"`
	InspectionDate     *time.Time `parquet:"InspectionDate,optional,timestamp(millisecond)"`
	FacilityRiskRating *float64   `parquet:"facilityRiskRating,optional"`
	Year               *int32     `parquet:"Year,optional"`
	IsRepeat           bool       `parquet:"isRepeat"`
	IsCorrected        bool       `parquet:"isCorrected"`
	IsPriority         bool       `parquet:"isPriority"`
}

// ExportParquet writes the full dataset to a Parquet file at the given path,
// overwriting any existing file. The same file serves as the cache artifact
// on subsequent runs.
func ExportParquet(path string, ds *domain.Dataset) error {
	slog.Info("writing Parquet file",
		slog.String("path", path),
		slog.Int("record_count", len(ds.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	rows := make([]inspectionRow, 0, len(ds.Records))
	for i := range ds.Records {
		rows = append(rows, toParquetRow(&ds.Records[i]))
	}

	if err := parquet.WriteFile(path, rows, parquet.Compression(&parquet.Snappy)); err != nil {
		return fmt.Errorf("failed to write parquet file %s: %w", path, err)
	}
	return nil
}

// ReadParquet loads a previously written dataset artifact. Used by the cache
// gate to skip the load/merge stages entirely.
func ReadParquet(path string) (*domain.Dataset, error) {
	rows, err := parquet.ReadFile[inspectionRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}

	ds := &domain.Dataset{Records: make([]domain.Inspection, 0, len(rows))}
	for i := range rows {
		ds.Records = append(ds.Records, fromParquetRow(&rows[i]))
	}
	return ds, nil
}

func toParquetRow(r *domain.Inspection) inspectionRow {
	row := inspectionRow{
		PermitName:         r.PermitName,
		PermitType:         r.PermitType,
		City:               r.City,
		Zip:                r.Zip,
		Status:             r.Status,
		Class:              r.Class,
		ViolationType:      r.ViolationType,
		FacilityRiskRating: r.RiskRating,
		IsRepeat:           r.IsRepeat,
		IsCorrected:        r.IsCorrected,
		IsPriority:         r.IsPriority,
	}
	if r.HasDate() {
		t := r.InspectionDate
		row.InspectionDate = &t
	}
	if r.Year != 0 {
		y := int32(r.Year)
		row.Year = &y
	}
	return row
}

func fromParquetRow(row *inspectionRow) domain.Inspection {
	r := domain.Inspection{
		PermitName:    row.PermitName,
		PermitType:    row.PermitType,
		City:          row.City,
		Zip:           row.Zip,
		Status:        row.Status,
		Class:         row.Class,
		ViolationType: row.ViolationType,
		RiskRating:    row.FacilityRiskRating,
		IsRepeat:      row.IsRepeat,
		IsCorrected:   row.IsCorrected,
		IsPriority:    row.IsPriority,
	}
	if row.InspectionDate != nil {
		r.InspectionDate = row.InspectionDate.UTC()
	}
	if row.Year != nil {
		r.Year = int(*row.Year)
	}
	return r
}

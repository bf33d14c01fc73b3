package exporter

import (
	"vainspect/pkg/contracts/domain"
)

// Columns is the column order shared by the CSV and Parquet artifacts. Both
// outputs carry exactly this set, with no synthetic row index.
var Columns = []string{
	"permitName",
	"permitType",
	"City",
	"Zip",
	"status",
	"class",
	"violationType",
	"InspectionDate",
	"facilityRiskRating",
	"Year",
	"isRepeat",
	"isCorrected",
	"isPriority",
}

// ExportCSV writes the full dataset to a CSV file at the given path,
// overwriting any existing file. Every column is rendered as text so the
// CSV and Parquet artifacts describe the same rows and columns.
func ExportCSV(path string, ds *domain.Dataset) error {
	records := make([][]string, 0, len(ds.Records))
	for i := range ds.Records {
		r := &ds.Records[i]
		records = append(records, []string{
			r.PermitName,
			r.PermitType,
			r.City,
			r.Zip,
			r.Status,
			r.Class,
			r.ViolationType,
			formatDate(r.InspectionDate),
			formatRisk(r.RiskRating),
			formatYear(r.Year),
			formatBool(r.IsRepeat),
			formatBool(r.IsCorrected),
			formatBool(r.IsPriority),
		})
	}

	return NewCSVWriter().WriteCSV(path, WriteOptions{
		Headers:   Columns,
		Records:   records,
		BOMPrefix: true,
	})
}

package exporter

import (
	"strconv"
	"time"
)

// dateFormat is the on-disk representation of inspection dates in the CSV
// artifact. Parquet stores the native timestamp.
const dateFormat = "2006-01-02"

// formatDate formats an inspection date for CSV output; the zero time (a
// missing date) becomes the empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

// formatRisk formats a nullable risk rating without adding spurious decimals.
func formatRisk(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatYear formats the derived year; zero (missing date) becomes empty.
func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

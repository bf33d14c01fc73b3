package domain

import (
	"time"
)

// Inspection represents a single food-facility inspection/violation entry.
// This is the primary data structure for the combined multi-year dataset.
//
// DateRaw and RiskRaw hold the cell text exactly as read from the source
// workbook; Normalize coerces them into InspectionDate and RiskRating.
type Inspection struct {
	PermitName    string `json:"permit_name"`
	PermitType    string `json:"permit_type"`
	City          string `json:"city"`
	Zip           string `json:"zip"`
	Status        string `json:"status"`
	Class         string `json:"class"`
	ViolationType string `json:"violation_type"`

	DateRaw string `json:"-"`
	RiskRaw string `json:"-"`

	// InspectionDate is the zero time when DateRaw could not be parsed.
	InspectionDate time.Time `json:"inspection_date"`
	// RiskRating is nil when RiskRaw was empty or could not be parsed.
	RiskRating *float64 `json:"facility_risk_rating,omitempty"`

	// Year is seeded from the source-file year by the loader and recomputed
	// from InspectionDate during derivation. Zero when the date is missing.
	Year int `json:"year"`

	IsRepeat    bool `json:"is_repeat"`
	IsCorrected bool `json:"is_corrected"`
	IsPriority  bool `json:"is_priority"`
}

// HasDate reports whether the inspection date was parsed successfully.
func (i *Inspection) HasDate() bool {
	return !i.InspectionDate.IsZero()
}

// Dataset holds all inspection records for the combined multi-year table.
type Dataset struct {
	Records []Inspection `json:"records"`
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// DatasetSummary represents aggregated statistics for a processed dataset.
// It mirrors the headline metrics shown on the inspection dashboard.
type DatasetSummary struct {
	TotalRecords   int     `json:"total_records"`
	RepeatCount    int     `json:"repeat_count"`
	CorrectedCount int     `json:"corrected_count"`
	PriorityCount  int     `json:"priority_count"`
	MeanRiskRating float64 `json:"mean_risk_rating"`
	RatedRecords   int     `json:"rated_records"`
}

// Summarize computes the headline metrics for the dataset.
func (d *Dataset) Summarize() DatasetSummary {
	s := DatasetSummary{TotalRecords: len(d.Records)}
	var riskTotal float64
	for i := range d.Records {
		r := &d.Records[i]
		if r.IsRepeat {
			s.RepeatCount++
		}
		if r.IsCorrected {
			s.CorrectedCount++
		}
		if r.IsPriority {
			s.PriorityCount++
		}
		if r.RiskRating != nil {
			riskTotal += *r.RiskRating
			s.RatedRecords++
		}
	}
	if s.RatedRecords > 0 {
		s.MeanRiskRating = riskTotal / float64(s.RatedRecords)
	}
	return s
}

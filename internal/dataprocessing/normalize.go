package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"vainspect/pkg/contracts/domain"
)

// dateLayouts are the formats seen across the yearly exports. Parsing is
// attempted in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/06",
	"1/2/2006",
	"01-02-06",
	"Jan 2, 2006",
}

// NormalizeResult reports how many values failed coercion. Failures are not
// errors: the affected fields are left as missing and the run continues.
type NormalizeResult struct {
	DatesFailed int
	RisksFailed int
}

// Normalize coerces the raw date and risk-rating text into typed values.
// Unparsable dates become the zero time, unparsable ratings become nil.
func Normalize(ds *domain.Dataset) NormalizeResult {
	var res NormalizeResult
	for i := range ds.Records {
		r := &ds.Records[i]

		if t, ok := parseDate(r.DateRaw); ok {
			r.InspectionDate = t
		} else {
			r.InspectionDate = time.Time{}
			if strings.TrimSpace(r.DateRaw) != "" {
				res.DatesFailed++
			}
		}

		if v, ok := parseRisk(r.RiskRaw); ok {
			r.RiskRating = &v
		} else {
			r.RiskRating = nil
			if strings.TrimSpace(r.RiskRaw) != "" {
				res.RisksFailed++
			}
		}
	}
	return res
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseRisk(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

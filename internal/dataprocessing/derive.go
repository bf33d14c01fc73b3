package dataprocessing

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vainspect/pkg/contracts/domain"
)

// FilterPermitted drops every record whose status does not case-fold to
// "permitted". Returns the number of records dropped. This is the only
// row-elimination step in the pipeline.
func FilterPermitted(ds *domain.Dataset) int {
	kept := ds.Records[:0]
	dropped := 0
	for _, r := range ds.Records {
		if strings.EqualFold(r.Status, "permitted") {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	ds.Records = kept
	return dropped
}

// Derive computes the boolean flags, rewrites the text columns, truncates ZIP
// codes and recomputes the year from the parsed inspection date. The final
// step sorts the dataset ascending by inspection date (missing dates first).
//
// Flags are computed from the raw column values before any rewriting, so the
// priority check sees the class text exactly as it appeared in the source.
func Derive(ds *domain.Dataset) {
	titleCaser := cases.Title(language.English)

	for i := range ds.Records {
		r := &ds.Records[i]

		r.IsRepeat = strings.Contains(r.ViolationType, "R")
		r.IsCorrected = strings.Contains(r.ViolationType, "COS")
		r.IsPriority = strings.ToLower(strings.TrimSpace(r.Class)) == "priority"

		r.PermitType = titleCaser.String(strings.TrimSpace(r.PermitType))
		r.City = titleCaser.String(strings.TrimSpace(r.City))
		r.Class = normalizeClass(titleCaser, r.Class)

		if len(r.Zip) > 5 {
			r.Zip = r.Zip[:5]
		}

		// Overwrites the loader's source-file year tag; the two can
		// disagree when an inspection date falls outside its file's year.
		if r.HasDate() {
			r.Year = r.InspectionDate.Year()
		} else {
			r.Year = 0
		}
	}

	sort.SliceStable(ds.Records, func(a, b int) bool {
		ra, rb := &ds.Records[a], &ds.Records[b]
		if !ra.HasDate() {
			return rb.HasDate()
		}
		if !rb.HasDate() {
			return false
		}
		return ra.InspectionDate.Before(rb.InspectionDate)
	})
}

// normalizeClass title-cases the violation class and maps the string forms of
// missingness ("", "Nan", "None") to the empty string.
func normalizeClass(caser cases.Caser, class string) string {
	t := caser.String(strings.TrimSpace(class))
	switch t {
	case "", "Nan", "None":
		return ""
	}
	return t
}

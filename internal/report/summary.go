package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"vainspect/pkg/contracts/domain"
)

// Frequency is one value/count pair in a frequency table.
type Frequency struct {
	Value string
	Count int
}

// TopValues counts occurrences of each non-empty value and returns the n most
// frequent, ordered by count descending with ties broken by value so the
// output is deterministic.
func TopValues(values []string, n int) []Frequency {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	freqs := make([]Frequency, 0, len(counts))
	for v, c := range counts {
		freqs = append(freqs, Frequency{Value: v, Count: c})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Value < freqs[j].Value
	})

	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}

// Reporter prints frequency summaries of the processed dataset. Purely
// observational; nothing downstream consumes its output.
type Reporter struct {
	out  io.Writer
	topN int
}

// NewReporter creates a reporter writing to the given stream.
func NewReporter(out io.Writer, topN int) *Reporter {
	return &Reporter{out: out, topN: topN}
}

// PrintFrequencyTables prints the top-N frequency tables for violation type,
// ZIP code and permit type, in that order.
func (r *Reporter) PrintFrequencyTables(ds *domain.Dataset) error {
	tables := []struct {
		title  string
		values func(*domain.Inspection) string
	}{
		{"Top violation types", func(i *domain.Inspection) string { return i.ViolationType }},
		{"Top ZIP codes", func(i *domain.Inspection) string { return i.Zip }},
		{"Top permit types", func(i *domain.Inspection) string { return i.PermitType }},
	}

	for _, tbl := range tables {
		values := make([]string, 0, len(ds.Records))
		for i := range ds.Records {
			values = append(values, tbl.values(&ds.Records[i]))
		}
		if err := writeFrequencyTable(r.out, tbl.title, TopValues(values, r.topN)); err != nil {
			return err
		}
	}
	return nil
}

// ZipFrequencies returns the top-N ZIP codes for the chart, reordered
// ascending by count so the longest bar renders last.
func ZipFrequencies(ds *domain.Dataset, n int) []Frequency {
	values := make([]string, 0, len(ds.Records))
	for i := range ds.Records {
		values = append(values, ds.Records[i].Zip)
	}
	freqs := TopValues(values, n)
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count < freqs[j].Count
		}
		return freqs[i].Value > freqs[j].Value
	})
	return freqs
}

func writeFrequencyTable(out io.Writer, title string, freqs []Frequency) error {
	if _, err := fmt.Fprintf(out, "%s\n", title); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, f := range freqs {
		fmt.Fprintf(w, "  %s\t%d\n", f.Value, f.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out)
	return err
}

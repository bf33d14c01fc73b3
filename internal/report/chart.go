package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderZipChart renders a horizontal bar chart of the given ZIP frequencies
// to an HTML file. Frequencies are expected ascending by count (see
// ZipFrequencies) so the busiest ZIP ends up as the top bar with counts on
// the x-axis.
func RenderZipChart(path string, freqs []Frequency) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top %d ZIP Codes by Inspection Count", len(freqs)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "VA Food Facility Inspections",
		}),
	)

	zips := make([]string, 0, len(freqs))
	data := make([]opts.BarData, 0, len(freqs))
	for _, f := range freqs {
		zips = append(zips, f.Value)
		data = append(data, opts.BarData{Value: f.Count})
	}

	bar.SetXAxis(zips).AddSeries("Inspections", data)
	// Swap the axes: ZIP codes on y, counts on x.
	bar.XYReversal()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	slog.Info("rendered ZIP chart", slog.String("path", path), slog.Int("bars", len(freqs)))
	return nil
}

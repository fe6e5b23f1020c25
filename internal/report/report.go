// Package report renders the exploratory summary of the housing data: a
// price histogram, a living-area scatter plot and a plain-text column
// summary, written into an output directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/UZRashid/MLG382-Project2/internal/dataset"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

// Output file names.
const (
	HistogramFile = "price_histogram.png"
	ScatterFile   = "sqft_vs_price.png"
	SummaryFile   = "summary.txt"
)

const histogramBins = 30

// Generate writes the report for a raw frame and its prepared counterpart
// into outDir, creating the directory if needed.
func Generate(raw, prepared dataframe.DataFrame, outDir string) error {
	if prepared.Nrow() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "report: generate")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "report: create output directory")
	}

	start := time.Now()
	// gonum/plot panics on some degenerate inputs instead of returning an
	// error; keep a bad frame from taking down the CLI.
	if err := errors.SafeExecute("report: render plots", func() error {
		if err := priceHistogram(prepared, filepath.Join(outDir, HistogramFile)); err != nil {
			return err
		}
		return sqftScatter(prepared, filepath.Join(outDir, ScatterFile))
	}); err != nil {
		return err
	}
	if err := writeSummary(raw, prepared, filepath.Join(outDir, SummaryFile)); err != nil {
		return err
	}

	log.GetLoggerWithName("report").Info("report written",
		"dir", outDir,
		log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

func priceHistogram(prepared dataframe.DataFrame, path string) error {
	prices := prepared.Col(dataset.TargetColumn).Float()

	p := plot.New()
	p.Title.Text = "Price Distribution"
	p.X.Label.Text = "price"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(prices), histogramBins)
	if err != nil {
		return errors.Wrap(err, "report: price histogram")
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report: save histogram")
	}
	return nil
}

func sqftScatter(prepared dataframe.DataFrame, path string) error {
	sqft := prepared.Col("sqft_living").Float()
	prices := prepared.Col(dataset.TargetColumn).Float()

	points := make(plotter.XYs, len(sqft))
	for i := range points {
		points[i].X = sqft[i]
		points[i].Y = prices[i]
	}

	p := plot.New()
	p.Title.Text = "Living Area vs Price"
	p.X.Label.Text = "sqft_living"
	p.Y.Label.Text = "price"

	s, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "report: scatter")
	}
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report: save scatter")
	}
	return nil
}

func writeSummary(raw, prepared dataframe.DataFrame, path string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rows_raw: %d\n", raw.Nrow())
	fmt.Fprintf(&sb, "rows_prepared: %d\n", prepared.Nrow())
	fmt.Fprintf(&sb, "rows_dropped: %d\n\n", raw.Nrow()-prepared.Nrow())

	fmt.Fprintf(&sb, "%-32s %14s %14s %14s\n", "column", "min", "mean", "max")
	for _, name := range dataset.PreparedColumns() {
		col := prepared.Col(name).Float()
		if len(col) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%-32s %14.2f %14.2f %14.2f\n",
			name, floats.Min(col), stat.Mean(col, nil), floats.Max(col))
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.Wrap(err, "report: write summary")
	}
	return nil
}

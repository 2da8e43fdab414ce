// Command hystreport analyzes magnetoresistance sweep files and reports
// their hysteresis features.
//
// Usage:
//
//	hystreport [flags] file.csv ...
//	hystreport [flags] -dir DIR
//
// Each file is split at the field turning point into the down and up
// half-sweeps and the feature set is printed as one table row. Charts,
// chart grids and an HTML gallery can be written alongside the report.
//
// Examples:
//
//	hystreport sweep_ElmNo=1.csv
//	hystreport -dir ./run42 -missing
//	hystreport -dir ./run42 -smooth 10 -kernel hann -fraction 0.25
//	hystreport -dir ./run42 -uniform 200 -interp cubic
//	hystreport -dir ./run42 -describe
//	hystreport -dir ./run42 -charts ./charts -gallery gallery.html
//	hystreport -dir ./run42 -grid grid.png -rows 3 -cols 3
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-hyst/align"
	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/feature"
	"github.com/cwbudde/algo-hyst/ingest"
	"github.com/cwbudde/algo-hyst/render"
	"github.com/cwbudde/algo-hyst/smooth"
	"github.com/cwbudde/algo-hyst/stats"
	"github.com/cwbudde/algo-hyst/sweep"
)

type settings struct {
	field    string
	value    string
	deriv    string
	fraction float64
	smooth   int
	kernel   smooth.Shape
	uniform  int
	interp   align.Method
	charts   string
	describe bool
}

type report struct {
	path    string
	elm     int
	hasNo   bool
	meta    *ingest.Metadata
	feats   *feature.Set
	summary *stats.Summary
	chart   image.Image
}

func main() {
	dir := flag.String("dir", "", "analyze every .csv file in this directory")
	field := flag.String("field", curve.DefaultFieldColumn, "field column name")
	value := flag.String("value", curve.DefaultValueColumn, "value column name")
	deriv := flag.String("deriv", curve.DefaultDerivativeColumn, "derivative column for charts (empty disables the secondary axis)")
	fraction := flag.Float64("fraction", feature.DefaultFraction, "fractional index for gradient, y-deviation and y-ratio, in [0, 1]")
	smoothWin := flag.Int("smooth", 0, "centered moving-average window applied to the value column before analysis (0 = off)")
	kernelName := flag.String("kernel", smooth.ShapeUniform.String(), "smoothing kernel shape: uniform, triangle, hann, welch or gauss")
	uniform := flag.Int("uniform", 0, "resample each half-sweep onto this many evenly spaced fields before feature extraction (0 = off)")
	interpName := flag.String("interp", align.Linear.String(), "resampling interpolation: linear or cubic")
	chartsDir := flag.String("charts", "", "write one chart PNG per file into this directory")
	galleryPath := flag.String("gallery", "", "write an HTML gallery of the charts directory (requires -charts)")
	galleryCols := flag.Int("gallery-cols", render.DefaultGalleryColumns, "thumbnails per gallery row")
	gridPath := flag.String("grid", "", "compose the charts into one PNG grid")
	rows := flag.Int("rows", 3, "grid rows")
	cols := flag.Int("cols", 3, "grid columns")
	cellSize := flag.Int("cell", render.DefaultCellSize, "grid cell edge in pixels")
	describe := flag.Bool("describe", false, "print a distribution summary of the value column per file and over the run")
	missing := flag.Bool("missing", false, "list element numbers with no file (requires -dir)")
	maxElm := flag.Int("max-elm", 900, "highest element number expected on the die")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hystreport [flags] [file.csv ...]\n\n")
		fmt.Fprintf(os.Stderr, "Reports hysteresis features of magnetoresistance sweep files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hystreport sweep_ElmNo=1.csv\n")
		fmt.Fprintf(os.Stderr, "  hystreport -dir ./run42 -charts ./charts -gallery gallery.html\n")
		fmt.Fprintf(os.Stderr, "  hystreport -dir ./run42 -grid grid.png -rows 3 -cols 3\n")
	}
	flag.Parse()

	if *fraction < 0 || *fraction > 1 {
		fmt.Fprintf(os.Stderr, "error: -fraction %v outside [0, 1]\n", *fraction)
		os.Exit(1)
	}
	shape, err := smooth.ParseShape(*kernelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	interp, err := align.ParseMethod(*interpName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if shape != smooth.ShapeUniform && *smoothWin == 0 {
		fmt.Fprintf(os.Stderr, "error: -kernel needs -smooth\n")
		os.Exit(1)
	}
	if interp != align.Linear && *uniform == 0 {
		fmt.Fprintf(os.Stderr, "error: -interp needs -uniform\n")
		os.Exit(1)
	}
	if *galleryPath != "" && *chartsDir == "" {
		fmt.Fprintf(os.Stderr, "error: -gallery needs -charts\n")
		os.Exit(1)
	}
	if *missing && *dir == "" {
		fmt.Fprintf(os.Stderr, "error: -missing needs -dir\n")
		os.Exit(1)
	}

	files, err := collectFiles(*dir, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *chartsDir != "" {
		if err := os.MkdirAll(*chartsDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := settings{
		field:    *field,
		value:    *value,
		deriv:    *deriv,
		fraction: *fraction,
		smooth:   *smoothWin,
		kernel:   shape,
		uniform:  *uniform,
		interp:   interp,
		charts:   *chartsDir,
		describe: *describe,
	}

	var acc stats.Accumulator
	var reports []report
	for _, path := range files {
		rep, err := analyzeFile(path, cfg, &acc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
			continue
		}
		reports = append(reports, *rep)
	}
	if len(reports) == 0 {
		fmt.Fprintf(os.Stderr, "error: no files analyzed\n")
		os.Exit(1)
	}

	printReport(reports)

	if *describe {
		printSummaries(reports, acc.Result())
	}
	if *missing {
		printMissing(*dir, *maxElm)
	}
	if *gridPath != "" {
		if err := writeGrid(*gridPath, reports, *rows, *cols, *cellSize); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *galleryPath != "" {
		if err := render.GalleryDir(*chartsDir, *galleryPath, *galleryCols, render.DefaultThumbnailSize); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// collectFiles merges the positional arguments with the .csv entries of
// dir, in name order.
func collectFiles(dir string, args []string) ([]string, error) {
	files := append([]string(nil), args...)
	if dir == "" {
		return files, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func analyzeFile(path string, cfg settings, acc *stats.Accumulator) (*report, error) {
	file, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if file.Meta == nil {
		fmt.Fprintf(os.Stderr, "warning: %s: metadata line did not parse\n", path)
	}

	c := file.Data
	valueCol := cfg.value
	if cfg.smooth > 0 {
		c, valueCol, err = smoothed(c, cfg, valueCol)
		if err != nil {
			return nil, err
		}
	}

	before, after, err := sweep.Split(c, cfg.field)
	if err != nil {
		return nil, err
	}
	if cfg.uniform > 0 {
		if before, err = resampleBranch(before, cfg, valueCol); err != nil {
			return nil, err
		}
		if after, err = resampleBranch(after, cfg, valueCol); err != nil {
			return nil, err
		}
	}
	feats, err := feature.Extract(before, after,
		feature.WithColumns(cfg.field, valueCol),
		feature.WithFraction(cfg.fraction),
	)
	if err != nil {
		return nil, err
	}

	rep := &report{path: path, meta: file.Meta, feats: feats}
	rep.elm, rep.hasNo = ingest.ElementNumber(path)

	if cfg.describe {
		rep.summary, err = stats.Describe(c, cfg.field, valueCol)
		if err != nil {
			return nil, err
		}
		if err := acc.Add(c, cfg.field, valueCol); err != nil {
			return nil, err
		}
	}

	if img, err := renderChart(c, cfg, valueCol, chartTitle(rep)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: chart: %v\n", path, err)
	} else {
		rep.chart = img
		if cfg.charts != "" {
			if err := writeChart(cfg.charts, path, img); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: chart: %v\n", path, err)
			}
		}
	}
	return rep, nil
}

// smoothed adds the configured rolling-average column and returns the
// new curve plus the column name the rest of the pipeline reads.
func smoothed(c *curve.Curve, cfg settings, col string) (*curve.Curve, string, error) {
	if cfg.kernel == smooth.ShapeUniform {
		out, err := smooth.MovingAverage(c, col, cfg.smooth)
		if err != nil {
			return nil, "", err
		}
		return out, col + smooth.MASuffix, nil
	}

	kernel, err := smooth.Kernel(cfg.kernel, cfg.smooth)
	if err != nil {
		return nil, "", err
	}
	out, err := smooth.WeightedMovingAverage(c, col, kernel)
	if err != nil {
		return nil, "", err
	}
	return out, col + smooth.WMASuffix, nil
}

// resampleBranch interpolates one half-sweep onto an even grid spanning
// its own field range. An empty branch passes through, so a one-sided
// sweep fails later with the same error as the unresampled path.
func resampleBranch(c *curve.Curve, cfg settings, valueCol string) (*curve.Curve, error) {
	if c.Len() == 0 {
		return c, nil
	}
	fields, err := c.Column(cfg.field)
	if err != nil {
		return nil, err
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range fields {
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	grid, err := align.UniformGrid(lo, hi, cfg.uniform)
	if err != nil {
		return nil, err
	}
	return align.Resample(c, cfg.field, valueCol, grid, cfg.interp)
}

func chartTitle(rep *report) string {
	if rep.meta != nil {
		return rep.meta.Title()
	}
	return filepath.Base(rep.path)
}

func renderChart(c *curve.Curve, cfg settings, valueCol, title string) (image.Image, error) {
	opts := []render.Option{
		render.WithColumns(cfg.field, valueCol),
		render.WithTitle(title),
	}
	if cfg.deriv == "" {
		opts = append(opts, render.WithoutDerivative())
	} else {
		opts = append(opts, render.WithDerivative(cfg.deriv))
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, c, opts...); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func writeChart(dir, path string, img image.Image) error {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printReport(reports []report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Elm\tX\tY\tCAD\tArea\tRate Mean\tRate Var\tCrossings\tRange\tGrad Down\tGrad Up\tY-Dev\tY-Ratio\n")
	fmt.Fprintf(tw, "---\t-\t-\t---\t----\t---------\t--------\t---------\t-----\t---------\t-------\t-----\t-------\n")

	for _, rep := range reports {
		x, y, cad := "-", "-", "-"
		if rep.meta != nil {
			x = fmt.Sprintf("%d", rep.meta.X)
			y = fmt.Sprintf("%d", rep.meta.Y)
			cad = rep.meta.CAD
		}
		f := rep.feats
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.6g\t%.6g\t%.6g\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			elmLabel(rep), x, y, cad,
			f.PseudoArea,
			f.ChangeRateMean,
			f.ChangeRateVar,
			f.ZeroCrossings,
			f.ValueRange,
			f.GradientBefore,
			f.GradientAfter,
			f.YDeviation,
			f.YRatio,
		)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// printSummaries prints the distribution of the analyzed value column
// for each file, then one row accumulated over the whole run.
func printSummaries(reports []report, total stats.Summary) {
	fmt.Println()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Elm\tRows\tMissing\tMean\tVariance\tRange\tMin At\tMax At\tSign Flips\n")
	fmt.Fprintf(tw, "---\t----\t-------\t----\t--------\t-----\t------\t------\t----------\n")

	for _, rep := range reports {
		if rep.summary == nil {
			continue
		}
		printSummaryRow(tw, elmLabel(rep), rep.summary)
	}
	printSummaryRow(tw, "all", &total)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printSummaryRow(tw *tabwriter.Writer, label string, s *stats.Summary) {
	fmt.Fprintf(tw, "%s\t%d\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%d\n",
		label, s.Rows, s.Missing, s.Mean, s.Variance, s.Range, s.MinField, s.MaxField, s.ZeroCrossings)
}

func elmLabel(rep report) string {
	if rep.hasNo {
		return fmt.Sprintf("%d", rep.elm)
	}
	return "-"
}

func printMissing(dir string, maxElm int) {
	present, missing, err := ingest.ScanElements(dir, maxElm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	fmt.Printf("\n%d of %d elements measured\n", len(present), maxElm)
	if len(missing) > 0 {
		fmt.Printf("missing: %s\n", joinInts(missing))
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

// writeGrid composes the first rows*cols charts, element-numbered files
// first in numeric order, padding short sets with blank slots.
func writeGrid(path string, reports []report, rows, cols, cellSize int) error {
	ordered := append([]report(nil), reports...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].hasNo != ordered[j].hasNo {
			return ordered[i].hasNo
		}
		return ordered[i].elm < ordered[j].elm
	})

	n := rows * cols
	if len(ordered) > n {
		fmt.Fprintf(os.Stderr, "warning: grid keeps the first %d of %d charts\n", n, len(ordered))
		ordered = ordered[:n]
	}
	cells := make([]image.Image, n)
	for i, rep := range ordered {
		cells[i] = rep.chart
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Grid(out, cells, rows, cols, cellSize); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

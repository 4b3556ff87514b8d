package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pfmabe/contour2llz/internal/config"
	"github.com/pfmabe/contour2llz/internal/extract"
	"github.com/pfmabe/contour2llz/internal/fsutil"
	"github.com/pfmabe/contour2llz/internal/llz"
	"github.com/pfmabe/contour2llz/internal/monitoring"
	"github.com/pfmabe/contour2llz/internal/pfm"
	"github.com/pfmabe/contour2llz/internal/provenance"
	"github.com/pfmabe/contour2llz/internal/report"
	"github.com/pfmabe/contour2llz/internal/version"
)

var (
	// ErrUsage is returned for missing or extra command-line arguments.
	ErrUsage = errors.New("usage error")
	// ErrOverwritesGrid is returned when the output path names the grid
	// store being read.
	ErrOverwritesGrid = errors.New("output would overwrite grid store")
)

var logf = monitoring.Component("contour2llz")

type options struct {
	configPath  string
	showVersion bool
	overrides   *config.Config

	gridPath   string
	outputPath string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("contour2llz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: contour2llz [flags] GRID_PATH [OUTPUT_PATH]\n\n")
		fmt.Fprintf(stderr, "Where:\n\n")
		fmt.Fprintf(stderr, "\tGRID_PATH = PFM grid store containing hand-drawn contours\n")
		fmt.Fprintf(stderr, "\tOUTPUT_PATH = LLZ file to write (default GRID_PATH with a .llz extension)\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "path to JSON configuration file")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	quiet := fs.Bool("quiet", false, "do not print scan progress")
	plotPath := fs.String("plot", "", "write a PNG quick-look of the extracted points to this path")
	metricsPath := fs.String("metrics-textfile", "", "write run metrics in Prometheus text format to this path")
	summary := fs.Bool("summary", false, "log depth statistics of the extracted points")
	onCellError := fs.String("on-cell-error", "", "bin read failure policy: abort or skip")
	depthUnits := fs.String("depth-units", "", "output depth units: meters, feet or fathoms")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if opts.showVersion {
		return opts, nil
	}

	// Only flags given on the command line override the config file.
	over := config.Empty()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quiet":
			progress := !*quiet
			over.Progress = &progress
		case "plot":
			over.PlotPath = plotPath
		case "metrics-textfile":
			over.MetricsTextfile = metricsPath
		case "summary":
			over.Summary = summary
		case "on-cell-error":
			over.OnCellError = onCellError
		case "depth-units":
			over.DepthUnits = depthUnits
		}
	})
	if err := over.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	opts.overrides = over

	switch fs.NArg() {
	case 1:
		opts.gridPath = fs.Arg(0)
	case 2:
		opts.gridPath = fs.Arg(0)
		opts.outputPath = fs.Arg(1)
	default:
		fs.Usage()
		return opts, fmt.Errorf("%w: expected GRID_PATH [OUTPUT_PATH], got %d arguments", ErrUsage, fs.NArg())
	}
	return opts, nil
}

// Main runs the tool and returns the process exit status.
func Main(args []string, stdout, stderr io.Writer) int {
	fmt.Fprintf(stderr, "\n%s\n\n", version.Banner("contour2llz"))

	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if opts.showVersion {
		return 0
	}

	if err := run(opts, fsutil.OSFileSystem{}, stdout); err != nil {
		switch {
		case errors.Is(err, provenance.ErrNotFound):
			fmt.Fprintf(stderr, "\n\nNo hand-drawn contours in file %s\n\n", opts.gridPath)
		case errors.Is(err, pfm.ErrNotFound), errors.Is(err, pfm.ErrFormat), errors.Is(err, pfm.ErrCorrupt):
			fmt.Fprintf(stderr, "Unable to open grid store: %v\n", err)
		default:
			fmt.Fprintf(stderr, "%v\n", err)
		}
		return 1
	}
	return 0
}

// run does the whole extraction. The grid store and the output file are
// closed on every path.
func run(opts options, fsys fsutil.FileSystem, stdout io.Writer) (err error) {
	cfg := config.Empty()
	if opts.configPath != "" {
		if cfg, err = config.Load(fsys, opts.configPath); err != nil {
			return err
		}
	}
	cfg = cfg.Merge(opts.overrides)

	policy, err := extract.ParseCellErrorPolicy(cfg.GetOnCellError())
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetrics()
	start := metrics.Clock.Now()
	if path := cfg.GetMetricsTextfile(); path != "" {
		defer func() {
			metrics.ObserveRun(start, err == nil)
			if werr := metrics.WriteTextfile(path); werr != nil {
				logf("failed to write metrics to %s: %v", path, werr)
			}
		}()
	}

	store, err := pfm.Open(opts.gridPath)
	if err != nil {
		return err
	}
	defer store.Close()

	outPath := llz.OutputPath(opts.gridPath, opts.outputPath)
	if err := checkOutputPath(fsys, opts.gridPath, outPath); err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	w, err := llz.Create(fsys, outPath, llz.Header{
		Source:     llz.SourceDescription(opts.gridPath),
		DepthUnits: cfg.GetDepthUnits(),
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer w.Close()

	var collector *report.Collector
	if cfg.GetPlotPath() != "" || cfg.GetSummary() {
		collector = report.NewCollector()
	}

	eopts := extract.Options{
		OnCellError: policy,
		DepthUnits:  cfg.GetDepthUnits(),
		Metrics:     metrics,
	}
	if cfg.GetProgress() {
		eopts.Progress = func(percent int) {
			fmt.Fprintf(stdout, "%03d%% processed\r", percent)
		}
	}
	e, err := extract.New(eopts)
	if err != nil {
		return err
	}

	sink := extract.Tee(w, sinkOrNil(collector))
	res, err := e.Run(store, sink)
	if errors.Is(err, provenance.ErrNotFound) {
		logRegisteredFiles(store)
	}
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d records output to LLZ file %s\n\n", w.Count(), w.Path())
	if res.SkippedCells > 0 {
		logf("%d unreadable bins skipped", res.SkippedCells)
	}

	if collector != nil {
		if err := writeReports(collector, cfg, fsys, opts.gridPath); err != nil {
			return err
		}
	}
	return nil
}

// checkOutputPath refuses an output path that resolves to the grid file,
// directly or through a link. Creating the output would truncate the grid.
func checkOutputPath(fsys fsutil.FileSystem, gridPath, outPath string) error {
	if filepath.Clean(gridPath) == filepath.Clean(outPath) {
		return ErrOverwritesGrid
	}
	if !fsys.Exists(outPath) {
		return nil
	}
	gridInfo, err := fsys.Stat(gridPath)
	if err != nil {
		return err
	}
	outInfo, err := fsys.Stat(outPath)
	if err != nil {
		return err
	}
	if os.SameFile(gridInfo, outInfo) {
		return ErrOverwritesGrid
	}
	return nil
}

// logRegisteredFiles lists the input files a grid does carry, for grids
// without the contour label.
func logRegisteredFiles(store *pfm.Store) {
	files, err := store.ListFiles()
	if err != nil {
		logf("failed to list input files: %v", err)
		return
	}
	logf("%s registers %d input files:", store.Path(), len(files))
	for _, f := range files {
		logf("  %d: %s", f.FileNumber, f.Path)
	}
}

// sinkOrNil keeps a nil *Collector from becoming a non-nil Sink.
func sinkOrNil(c *report.Collector) extract.Sink {
	if c == nil {
		return nil
	}
	return c
}

func writeReports(c *report.Collector, cfg *config.Config, fsys fsutil.FileSystem, gridPath string) error {
	if c.Len() == 0 {
		logf("no points extracted; skipping summary and plot")
		return nil
	}
	if cfg.GetSummary() {
		s, err := c.Summary()
		if err != nil {
			return err
		}
		logf("depths in %s: %s", cfg.GetDepthUnits(), s)
	}
	if path := cfg.GetPlotPath(); path != "" {
		title := "Hand-drawn contours: " + filepath.Base(gridPath)
		if err := c.SavePlot(fsys, path, title); err != nil {
			return err
		}
		logf("wrote quick-look plot to %s", path)
	}
	return nil
}

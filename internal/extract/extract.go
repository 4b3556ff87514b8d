// Package extract scans a grid store and emits the soundings that one input
// file contributed, in row-major bin order.
package extract

import (
	"errors"
	"fmt"

	"github.com/pfmabe/contour2llz/internal/llz"
	"github.com/pfmabe/contour2llz/internal/monitoring"
	"github.com/pfmabe/contour2llz/internal/pfm"
	"github.com/pfmabe/contour2llz/internal/provenance"
	"github.com/pfmabe/contour2llz/internal/units"
)

var logf = monitoring.Component("extract")

// Source is the read side of a grid store.
type Source interface {
	provenance.Registry
	Dimensions() (width, height int)
	ReadBinRecord(col, row int) (pfm.BinRecord, error)
	ReadDepthArray(col, row int) ([]pfm.DepthRecord, error)
}

// Sink receives emitted records in scan order.
type Sink interface {
	Append(r llz.Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r llz.Record) error

// Append calls f(r).
func (f SinkFunc) Append(r llz.Record) error { return f(r) }

type teeSink []Sink

func (t teeSink) Append(r llz.Record) error {
	for _, s := range t {
		if err := s.Append(r); err != nil {
			return err
		}
	}
	return nil
}

// Tee returns a Sink that appends every record to each of sinks in order,
// stopping at the first error. Nil sinks are dropped.
func Tee(sinks ...Sink) Sink {
	out := make(teeSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// CellErrorPolicy decides what a bin read failure does to the scan.
type CellErrorPolicy int

const (
	// Abort stops the scan and returns the error.
	Abort CellErrorPolicy = iota
	// Skip logs the error, counts the bin as skipped and moves on.
	Skip
)

// ParseCellErrorPolicy maps "abort" or "skip" to a policy.
func ParseCellErrorPolicy(s string) (CellErrorPolicy, error) {
	switch s {
	case "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	}
	return Abort, fmt.Errorf("unknown cell error policy %q", s)
}

func (p CellErrorPolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Options configures an Extractor. The zero value extracts hand-drawn
// contours in metres and aborts on the first unreadable bin.
type Options struct {
	// Label is the list file to extract. Empty means
	// provenance.HandDrawnContourLabel.
	Label       string
	OnCellError CellErrorPolicy
	DepthUnits  units.DepthUnit
	// Progress, when set, is called with the scan percentage each time it
	// changes.
	Progress func(percent int)
	Metrics  *monitoring.Metrics
}

// Result summarises a completed (or aborted) scan.
type Result struct {
	Tag                int16
	Emitted            int
	CellsScanned       int
	CellsWithSoundings int
	Soundings          int
	RejectedFlags      int
	RejectedSource     int
	SkippedCells       int
}

// Extractor runs the scan.
type Extractor struct {
	opts Options
}

// New returns an Extractor for opts.
func New(opts Options) (*Extractor, error) {
	if opts.Label == "" {
		opts.Label = provenance.HandDrawnContourLabel
	}
	if opts.OnCellError != Abort && opts.OnCellError != Skip {
		return nil, fmt.Errorf("invalid cell error policy %d", int(opts.OnCellError))
	}
	if !opts.DepthUnits.Valid() {
		return nil, fmt.Errorf("invalid depth units %d", int(opts.DepthUnits))
	}
	return &Extractor{opts: opts}, nil
}

// Qualifies reports whether d passes the extraction filter for tag.
func Qualifies(d pfm.DepthRecord, tag int16) bool {
	return !d.Validity.Has(pfm.Excluded) && d.FileNumber == tag
}

// Run resolves the label to a file number, then scans every bin of src and
// appends qualifying soundings to sink. The returned Result is valid even
// when err is non-nil and reflects the work done before the failure.
// Run does not close src or sink.
func (e *Extractor) Run(src Source, sink Sink) (Result, error) {
	var res Result

	tag, err := provenance.FindTag(src, e.opts.Label)
	if err != nil {
		return res, err
	}
	res.Tag = tag

	width, height := src.Dimensions()
	total := width * height
	lastPercent := -1

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if err := e.scanCell(src, sink, tag, col, row, &res); err != nil {
				var cellErr *CellError
				if e.opts.OnCellError == Skip && errors.As(err, &cellErr) {
					logf("skipping bin %s: %v", cellErr.Coord, cellErr.Err)
					res.SkippedCells++
					if m := e.opts.Metrics; m != nil {
						m.CellsSkipped.Inc()
					}
				} else {
					return res, err
				}
			}

			res.CellsScanned++
			if m := e.opts.Metrics; m != nil {
				m.CellsScanned.Inc()
			}

			percent := (row*width + col) * 100 / total
			if percent != lastPercent {
				lastPercent = percent
				if e.opts.Progress != nil {
					e.opts.Progress(percent)
				}
			}
		}
	}

	return res, nil
}

// CellError is a read failure on one bin.
type CellError struct {
	Coord pfm.Coord
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("bin %s: %v", e.Coord, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// scanCell handles one bin. Read failures come back as *CellError; sink
// failures are returned as is.
func (e *Extractor) scanCell(src Source, sink Sink, tag int16, col, row int, res *Result) error {
	bin, err := src.ReadBinRecord(col, row)
	if err != nil {
		return &CellError{Coord: pfm.Coord{Col: col, Row: row}, Err: err}
	}
	if bin.NumSoundings == 0 {
		return nil
	}

	depths, err := src.ReadDepthArray(col, row)
	if err != nil {
		return &CellError{Coord: pfm.Coord{Col: col, Row: row}, Err: err}
	}
	res.CellsWithSoundings++

	m := e.opts.Metrics
	for _, d := range depths {
		res.Soundings++
		switch {
		case d.Validity.Has(pfm.Excluded):
			res.RejectedFlags++
			if m != nil {
				m.SoundingsRejected.WithLabelValues(monitoring.ReasonValidity).Inc()
			}
			continue
		case d.FileNumber != tag:
			res.RejectedSource++
			if m != nil {
				m.SoundingsRejected.WithLabelValues(monitoring.ReasonProvenance).Inc()
			}
			continue
		}

		rec := llz.Record{
			Lat:   d.Y,
			Lon:   d.X,
			Depth: units.ConvertDepth(d.Z, e.opts.DepthUnits),
		}
		if err := sink.Append(rec); err != nil {
			return fmt.Errorf("append record %d: %w", res.Emitted, err)
		}
		res.Emitted++
		if m != nil {
			m.RecordsEmitted.Inc()
		}
	}
	if m != nil {
		m.SoundingsExamined.Add(float64(len(depths)))
	}
	return nil
}

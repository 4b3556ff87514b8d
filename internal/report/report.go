// Package report summarises extracted contour soundings: depth statistics
// and a lon/lat quick-look plot.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pfmabe/contour2llz/internal/fsutil"
	"github.com/pfmabe/contour2llz/internal/llz"
)

// ErrNoPoints is returned when summarising or plotting an empty collection.
var ErrNoPoints = errors.New("report: no points collected")

// Collector keeps emitted records in memory. It satisfies the extraction
// sink interface.
type Collector struct {
	lats   []float64
	lons   []float64
	depths []float64
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append adds r.
func (c *Collector) Append(r llz.Record) error {
	c.lats = append(c.lats, r.Lat)
	c.lons = append(c.lons, r.Lon)
	c.depths = append(c.depths, r.Depth)
	return nil
}

// Len returns the number of collected points.
func (c *Collector) Len() int { return len(c.depths) }

// Summary describes a set of points.
type Summary struct {
	Count       int
	MinDepth    float64
	MaxDepth    float64
	MeanDepth   float64
	StdDevDepth float64
	MinLat      float64
	MaxLat      float64
	MinLon      float64
	MaxLon      float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d points, depth min %.3f max %.3f mean %.3f sd %.3f, lat [%.6f, %.6f], lon [%.6f, %.6f]",
		s.Count, s.MinDepth, s.MaxDepth, s.MeanDepth, s.StdDevDepth, s.MinLat, s.MaxLat, s.MinLon, s.MaxLon)
}

// Summary computes statistics over the collected points. The standard
// deviation of a single point is 0.
func (c *Collector) Summary() (Summary, error) {
	if c.Len() == 0 {
		return Summary{}, ErrNoPoints
	}
	s := Summary{
		Count:    c.Len(),
		MinDepth: floats.Min(c.depths),
		MaxDepth: floats.Max(c.depths),
		MinLat:   floats.Min(c.lats),
		MaxLat:   floats.Max(c.lats),
		MinLon:   floats.Min(c.lons),
		MaxLon:   floats.Max(c.lons),
	}
	if s.Count == 1 {
		s.MeanDepth = c.depths[0]
		return s, nil
	}
	s.MeanDepth, s.StdDevDepth = stat.MeanStdDev(c.depths, nil)
	return s, nil
}

// WritePlot renders the collected points as a lon/lat scatter PNG.
func (c *Collector) WritePlot(w io.Writer, title string) error {
	if c.Len() == 0 {
		return ErrNoPoints
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	pts := make(plotter.XYs, c.Len())
	for i := range pts {
		pts[i].X = c.lons[i]
		pts[i].Y = c.lats[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = color.RGBA{R: 20, G: 90, B: 200, A: 255}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePlot writes the quick-look PNG to path on fsys. Nothing is written
// if rendering fails.
func (c *Collector) SavePlot(fsys fsutil.FileSystem, path, title string) error {
	var buf bytes.Buffer
	if err := c.WritePlot(&buf, title); err != nil {
		return fmt.Errorf("render plot %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write plot %s: %w", path, err)
	}
	return nil
}

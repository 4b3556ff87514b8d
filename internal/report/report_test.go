package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfmabe/contour2llz/internal/fsutil"
	"github.com/pfmabe/contour2llz/internal/llz"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func collect(recs ...llz.Record) *Collector {
	c := NewCollector()
	for _, r := range recs {
		c.Append(r)
	}
	return c
}

func TestSummary(t *testing.T) {
	c := collect(
		llz.Record{Lat: 36.5, Lon: -76.2, Depth: 10},
		llz.Record{Lat: 36.7, Lon: -76.4, Depth: 12},
		llz.Record{Lat: 36.6, Lon: -76.3, Depth: 14},
	)
	s, err := c.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 10.0, s.MinDepth)
	assert.Equal(t, 14.0, s.MaxDepth)
	assert.InDelta(t, 12.0, s.MeanDepth, 1e-12)
	assert.InDelta(t, 2.0, s.StdDevDepth, 1e-12)
	assert.Equal(t, 36.5, s.MinLat)
	assert.Equal(t, 36.7, s.MaxLat)
	assert.Equal(t, -76.4, s.MinLon)
	assert.Equal(t, -76.2, s.MaxLon)
	assert.Contains(t, s.String(), "3 points")
}

func TestSummarySinglePoint(t *testing.T) {
	s, err := collect(llz.Record{Depth: 7.5}).Summary()
	require.NoError(t, err)
	assert.Equal(t, 7.5, s.MeanDepth)
	assert.Equal(t, 0.0, s.StdDevDepth)
	assert.False(t, math.IsNaN(s.StdDevDepth))
}

func TestEmptyCollector(t *testing.T) {
	c := NewCollector()
	_, err := c.Summary()
	assert.ErrorIs(t, err, ErrNoPoints)
	assert.ErrorIs(t, c.WritePlot(&bytes.Buffer{}, "empty"), ErrNoPoints)
}

func TestWritePlot(t *testing.T) {
	c := collect(
		llz.Record{Lat: 36.5, Lon: -76.2, Depth: 10},
		llz.Record{Lat: 36.7, Lon: -76.4, Depth: 12},
	)
	var buf bytes.Buffer
	require.NoError(t, c.WritePlot(&buf, "contours"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output is not a PNG")
}

func TestSavePlot(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	c := collect(llz.Record{Lat: 1, Lon: 2, Depth: 3})

	require.NoError(t, c.SavePlot(mfs, "/out/quicklook.png", "one point"))
	data, err := mfs.ReadFile("/out/quicklook.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSavePlotEmptyWritesNothing(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	err := NewCollector().SavePlot(mfs, "/out/empty.png", "empty")
	assert.ErrorIs(t, err, ErrNoPoints)
	assert.False(t, mfs.Exists("/out/empty.png"))
}

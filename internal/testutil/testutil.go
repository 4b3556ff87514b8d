// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/pfmabe/contour2llz/internal/pfm"
	"github.com/pfmabe/contour2llz/internal/provenance"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Grid is a writable grid store under a test's temp directory.
type Grid struct {
	*pfm.Store
	Path string

	t *testing.T
}

// NewGrid creates an empty width x height grid store. The store is closed
// when the test ends.
func NewGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.pfm")
	s, err := pfm.Create(path, pfm.Header{
		BinWidth:  width,
		BinHeight: height,
		BinSizeM:  2,
		MinX:      -76.5,
		MinY:      36.5,
		MaxX:      -76.5 + float64(width)*0.001,
		MaxY:      36.5 + float64(height)*0.001,
	})
	if err != nil {
		t.Fatalf("create grid: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return &Grid{Store: s, Path: path, t: t}
}

// AddFile registers label and returns its file number.
func (g *Grid) AddFile(label string) int16 {
	g.t.Helper()
	n, err := g.AddListFile(label, 0)
	if err != nil {
		g.t.Fatalf("add list file %q: %v", label, err)
	}
	return n
}

// AddContourFile registers the hand-drawn contour list file.
func (g *Grid) AddContourFile() int16 {
	g.t.Helper()
	return g.AddFile(provenance.HandDrawnContourLabel)
}

// Add appends soundings to bin (col, row).
func (g *Grid) Add(col, row int, depths ...pfm.DepthRecord) {
	g.t.Helper()
	if err := g.AddDepths(col, row, depths); err != nil {
		g.t.Fatalf("add depths to (%d,%d): %v", col, row, err)
	}
}

// Reopen closes the store and opens it again read-only, the way the
// extraction tool does.
func (g *Grid) Reopen() *pfm.Store {
	g.t.Helper()
	if err := g.Close(); err != nil {
		g.t.Fatalf("close grid: %v", err)
	}
	s, err := pfm.Open(g.Path)
	if err != nil {
		g.t.Fatalf("open grid: %v", err)
	}
	g.t.Cleanup(func() { s.Close() })
	return s
}

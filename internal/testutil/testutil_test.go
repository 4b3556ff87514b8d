package testutil

import (
	"errors"
	"testing"

	"github.com/pfmabe/contour2llz/internal/pfm"
)

func TestAssertNoError_NilErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertNoError(fakeT, nil)
	if fakeT.Failed() {
		t.Error("expected no failure for nil error")
	}
}

func TestAssertError_WithErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertError(fakeT, errors.New("something wrong"))
	if fakeT.Failed() {
		t.Error("expected no failure when error is present")
	}
}

func TestGridFixture(t *testing.T) {
	g := NewGrid(t, 3, 2)
	survey := g.AddFile("/survey/line_0001.gsf")
	contour := g.AddContourFile()
	if survey != 0 || contour != 1 {
		t.Fatalf("file numbers = %d, %d; want 0, 1", survey, contour)
	}

	g.Add(1, 1,
		pfm.DepthRecord{X: -76.4, Y: 36.6, Z: 8, FileNumber: contour},
		pfm.DepthRecord{X: -76.4, Y: 36.6, Z: 9, FileNumber: survey},
	)

	s := g.Reopen()
	w, h := s.Dimensions()
	if w != 3 || h != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", w, h)
	}
	bin, err := s.ReadBinRecord(1, 1)
	AssertNoError(t, err)
	if bin.NumSoundings != 2 {
		t.Errorf("NumSoundings = %d, want 2", bin.NumSoundings)
	}
}

package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pfmabe/contour2llz/internal/pfm"
	"github.com/pfmabe/contour2llz/internal/provenance"
)

// Params shapes the synthetic grid.
type Params struct {
	Width  int
	Height int
	PerBin int
	Seed   uint64
	// BinSizeM defaults to 5.
	BinSizeM float64
}

// Stats counts what Generate wrote.
type Stats struct {
	Bins            int
	Survey          int
	Contour         int
	ContourExcluded int
}

const (
	originLon = -76.30
	originLat = 36.90
	// degPerMetre is close enough for a synthetic survey at this latitude.
	degPerMetre = 1.0 / 111_000
)

// Generate writes a grid at path. Survey soundings fill every bin over a
// sloping sea floor; a sinusoidal hand-drawn contour crosses the grid from
// west to east, one contour sounding per bin it passes through, with every
// seventh point deleted and every eleventh marked reference.
func Generate(path string, p Params) (Stats, error) {
	var st Stats
	if p.Width <= 0 || p.Height <= 0 {
		return st, fmt.Errorf("invalid grid size %dx%d", p.Width, p.Height)
	}
	if p.PerBin < 0 {
		return st, fmt.Errorf("invalid soundings per bin %d", p.PerBin)
	}
	if p.BinSizeM == 0 {
		p.BinSizeM = 5
	}
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	binDeg := p.BinSizeM * degPerMetre

	s, err := pfm.Create(path, pfm.Header{
		BinWidth:  p.Width,
		BinHeight: p.Height,
		BinSizeM:  p.BinSizeM,
		MinX:      originLon,
		MinY:      originLat,
		MaxX:      originLon + float64(p.Width)*binDeg,
		MaxY:      originLat + float64(p.Height)*binDeg,
	})
	if err != nil {
		return st, err
	}
	defer s.Close()

	survey, err := s.AddListFile("/survey/synthetic_0001.gsf", 3)
	if err != nil {
		return st, err
	}
	contour, err := s.AddListFile(provenance.HandDrawnContourLabel, 0)
	if err != nil {
		return st, err
	}

	// Row the contour passes through for each column.
	contourRow := func(col int) int {
		phase := 2 * math.Pi * float64(col) / float64(p.Width)
		r := float64(p.Height-1) / 2 * (1 + 0.6*math.Sin(phase))
		return int(math.Round(r))
	}

	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			var depths []pfm.DepthRecord
			for i := 0; i < p.PerBin; i++ {
				x := originLon + (float64(col)+rng.Float64())*binDeg
				y := originLat + (float64(row)+rng.Float64())*binDeg
				d := pfm.DepthRecord{
					X:          x,
					Y:          y,
					Z:          seaFloor(col, row) + rng.NormFloat64()*0.1,
					FileNumber: survey,
					LineNumber: int16(row),
					PingNumber: int32(col),
					BeamNumber: int16(i),
				}
				if rng.IntN(50) == 0 {
					d.Validity = pfm.FilterInvalid
				}
				depths = append(depths, d)
			}
			st.Survey += len(depths)

			if contourRow(col) == row {
				d := pfm.DepthRecord{
					X:          originLon + (float64(col)+0.5)*binDeg,
					Y:          originLat + (float64(row)+0.5)*binDeg,
					Z:          10,
					FileNumber: contour,
				}
				switch {
				case col%7 == 6:
					d.Validity = pfm.Deleted
				case col%11 == 10:
					d.Validity = pfm.Reference
				}
				if d.Validity.Has(pfm.Excluded) {
					st.ContourExcluded++
				}
				st.Contour++
				depths = append(depths, d)
			}

			if len(depths) == 0 {
				continue
			}
			if err := s.AddDepths(col, row, depths); err != nil {
				return st, err
			}
			st.Bins++
		}
	}

	return st, s.Close()
}

// seaFloor is a plane deepening to the south-east.
func seaFloor(col, row int) float64 {
	return 5 + 0.2*float64(col) + 0.1*float64(row)
}

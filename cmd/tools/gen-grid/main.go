// Command gen-grid writes a synthetic PFM grid store with survey soundings
// and a hand-drawn contour, for exercising contour2llz by hand.
package main

import (
	"flag"
	"log"
)

func main() {
	output := flag.String("o", "sample.pfm", "output path")
	width := flag.Int("w", 64, "grid width in bins")
	height := flag.Int("h", 48, "grid height in bins")
	perBin := flag.Int("n", 4, "survey soundings per bin")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	stats, err := Generate(*output, Params{
		Width:  *width,
		Height: *height,
		PerBin: *perBin,
		Seed:   *seed,
	})
	if err != nil {
		log.Fatalf("generate failed: %v", err)
	}
	log.Printf("survey=%d contour=%d (%d excluded) bins=%d", stats.Survey, stats.Contour, stats.ContourExcluded, stats.Bins)
	log.Printf("✓ Created: %s", *output)
}

// Package provenance resolves input file labels to the file numbers that
// tag every sounding in a grid store.
package provenance

import (
	"errors"
	"fmt"

	"github.com/pfmabe/contour2llz/internal/pfm"
)

// HandDrawnContourLabel is the list file name under which the contour
// editor registers soundings it digitised by hand.
const HandDrawnContourLabel = "pfmView_hand_drawn_contour"

// ErrNotFound is returned when no registered input file carries the label.
var ErrNotFound = errors.New("provenance: label not registered")

// Registry is the input file list of a grid store. Entries are numbered
// 0..NextListFileNumber()-1 in insertion order.
type Registry interface {
	NextListFileNumber() (int16, error)
	ReadListFile(n int16) (pfm.ListFile, error)
}

// FindTag returns the file number of the first registry entry whose path is
// exactly label.
func FindTag(reg Registry, label string) (int16, error) {
	last, err := reg.NextListFileNumber()
	if err != nil {
		return 0, fmt.Errorf("read registry size: %w", err)
	}
	for n := int16(0); n < last; n++ {
		lf, err := reg.ReadListFile(n)
		if err != nil {
			return 0, fmt.Errorf("read list file %d: %w", n, err)
		}
		if lf.Path == label {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, label)
}

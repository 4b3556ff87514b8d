package pfm

import "fmt"

// Validity is the per-sounding status bitmask.
type Validity uint32

const (
	ManuallyInvalid Validity = 0x00000001
	FilterInvalid   Validity = 0x00000002
	Suspect         Validity = 0x00000004
	Selected        Validity = 0x00000008
	Feature         Validity = 0x00000010
	Reference       Validity = 0x00008000
	Deleted         Validity = 0x00010000

	// Invalid covers both ways a sounding can be invalidated.
	Invalid = ManuallyInvalid | FilterInvalid

	// Excluded is the set of bits that removes a sounding from any output.
	Excluded = Invalid | Deleted | Reference
)

// Has reports whether any bit of mask is set.
func (v Validity) Has(mask Validity) bool {
	return v&mask != 0
}

// Coord addresses a bin.
type Coord struct {
	Col int
	Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Header describes the grid. BinWidth and BinHeight are fixed for the life
// of the store.
type Header struct {
	GridID    string
	BinWidth  int
	BinHeight int
	BinSizeM  float64
	MinX      float64
	MinY      float64
	MaxX      float64
	MaxY      float64
}

// BinRecord summarises a single bin. MinZ, MaxZ and AvgZ are zero for empty
// bins.
type BinRecord struct {
	Coord        Coord
	NumSoundings int
	MinZ         float64
	MaxZ         float64
	AvgZ         float64
}

// DepthRecord is one sounding inside a bin. X is longitude, Y latitude and Z
// depth in metres.
type DepthRecord struct {
	X          float64
	Y          float64
	Z          float64
	Validity   Validity
	FileNumber int16
	LineNumber int16
	PingNumber int32
	BeamNumber int16
}

// ListFile is an entry of the input file registry.
type ListFile struct {
	FileNumber int16
	Path       string
	Type       int16
}

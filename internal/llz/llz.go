// Package llz reads and writes LLZ point files: a fixed-size text header
// followed by fixed-layout latitude/longitude/depth records.
//
// Layout:
//
//	offset 0      HeaderSize bytes of "[KEY] = value" lines, NUL padded
//	offset 16384  N records of RecordSize bytes, little-endian:
//	              float64 lat, float64 lon, float64 depth, uint8 status
//
// The header carries no timestamps, so writing the same records twice
// produces identical files.
package llz

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pfmabe/contour2llz/internal/units"
)

const (
	// Extension is the file name suffix of LLZ files.
	Extension = ".llz"
	// HeaderSize is the size of the header block in bytes.
	HeaderSize = 16384
	// RecordSize is the size of one encoded Record in bytes.
	RecordSize = 25
	// Version is written to the [VERSION] field.
	Version = "LLZ library V1.00"
)

var (
	// ErrHeaderTooLarge is returned when the header text does not fit in
	// HeaderSize bytes.
	ErrHeaderTooLarge = errors.New("llz: header too large")
	// ErrInvalidHeader is returned for unparseable or unencodable headers.
	ErrInvalidHeader = errors.New("llz: invalid header")
	// ErrTruncated is returned when a file ends inside a record.
	ErrTruncated = errors.New("llz: truncated record")
	// ErrClosed is returned by Append after Close.
	ErrClosed = errors.New("llz: writer is closed")
)

const (
	keyVersion     = "[VERSION]"
	keySource      = "[SOURCE]"
	keyTimeFlag    = "[TIME FLAG]"
	keyUncertainty = "[UNCERTAINTY FLAG]"
	keyDepthUnits  = "[DEPTH UNITS]"
	keyEnd         = "[END OF HEADER]"
)

// Header is the LLZ file header.
type Header struct {
	Version         string
	Source          string
	TimeFlag        bool
	UncertaintyFlag bool
	DepthUnits      units.DepthUnit
}

// Record is one output point. Status is a per-point status byte.
type Record struct {
	Lat    float64
	Lon    float64
	Depth  float64
	Status uint8
}

// MarshalBinary encodes h into a HeaderSize block. An empty Version is
// written as the package Version.
func (h Header) MarshalBinary() ([]byte, error) {
	version := h.Version
	if version == "" {
		version = Version
	}
	if strings.ContainsAny(h.Source, "\n\x00") || strings.ContainsAny(version, "\n\x00") {
		return nil, fmt.Errorf("%w: fields must be single-line text", ErrInvalidHeader)
	}
	if !h.DepthUnits.Valid() {
		return nil, fmt.Errorf("%w: depth units %d", ErrInvalidHeader, int(h.DepthUnits))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s\n", keyVersion, version)
	fmt.Fprintf(&b, "%s = %s\n", keySource, h.Source)
	fmt.Fprintf(&b, "%s = %d\n", keyTimeFlag, boolInt(h.TimeFlag))
	fmt.Fprintf(&b, "%s = %d\n", keyUncertainty, boolInt(h.UncertaintyFlag))
	fmt.Fprintf(&b, "%s = %d\n", keyDepthUnits, int(h.DepthUnits))
	b.WriteString(keyEnd + "\n")

	if b.Len() > HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, b.Len())
	}
	block := make([]byte, HeaderSize)
	copy(block, b.String())
	return block, nil
}

// UnmarshalBinary decodes a header block.
func (h *Header) UnmarshalBinary(block []byte) error {
	if len(block) != HeaderSize {
		return fmt.Errorf("%w: block is %d bytes", ErrInvalidHeader, len(block))
	}
	if i := strings.IndexByte(string(block), 0); i >= 0 {
		block = block[:i]
	}

	var out Header
	sawEnd := false
	sc := bufio.NewScanner(strings.NewReader(string(block)))
	for sc.Scan() {
		line := sc.Text()
		if line == keyEnd {
			sawEnd = true
			break
		}
		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			continue
		}
		switch key {
		case keyVersion:
			out.Version = value
		case keySource:
			out.Source = value
		case keyTimeFlag:
			out.TimeFlag = value == "1"
		case keyUncertainty:
			out.UncertaintyFlag = value == "1"
		case keyDepthUnits:
			code, err := strconv.Atoi(value)
			if err != nil || !units.DepthUnit(code).Valid() {
				return fmt.Errorf("%w: depth units %q", ErrInvalidHeader, value)
			}
			out.DepthUnits = units.DepthUnit(code)
		}
	}
	if !sawEnd {
		return fmt.Errorf("%w: missing %s", ErrInvalidHeader, keyEnd)
	}
	*h = out
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// putRecord encodes r into buf, which must be RecordSize bytes long.
func putRecord(buf []byte, r Record) {
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(r.Lat))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(r.Lon))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(r.Depth))
	buf[24] = r.Status
}

func getRecord(buf []byte) Record {
	return Record{
		Lat:    math.Float64frombits(binary.LittleEndian.Uint64(buf[0:8])),
		Lon:    math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16])),
		Depth:  math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24])),
		Status: buf[24],
	}
}

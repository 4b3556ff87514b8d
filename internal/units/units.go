// Package units provides shared constants and validation for depth units
package units

import (
	"fmt"
	"strings"
)

// DepthUnit is the depth unit code stored in an LLZ header.
type DepthUnit int

// Unit codes. The numeric values are part of the LLZ header format.
const (
	Meters  DepthUnit = 0
	Feet    DepthUnit = 1
	Fathoms DepthUnit = 2
)

// Unit names accepted in configuration.
const (
	MetersName  = "meters"
	FeetName    = "feet"
	FathomsName = "fathoms"
)

// ValidUnits contains all valid unit names
var ValidUnits = []string{MetersName, FeetName, FathomsName}

var byName = map[string]DepthUnit{
	MetersName:  Meters,
	FeetName:    Feet,
	FathomsName: Fathoms,
}

// IsValid checks if the given unit name is in the list of valid units
func IsValid(unit string) bool {
	_, ok := byName[unit]
	return ok
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// Parse maps a unit name to its code.
func Parse(name string) (DepthUnit, error) {
	u, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown depth unit %q (valid: %s)", name, GetValidUnitsString())
	}
	return u, nil
}

// Valid reports whether u is a known unit code.
func (u DepthUnit) Valid() bool {
	return u >= Meters && u <= Fathoms
}

func (u DepthUnit) String() string {
	switch u {
	case Meters:
		return MetersName
	case Feet:
		return FeetName
	case Fathoms:
		return FathomsName
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ConvertDepth converts a depth from metres to the target unit.
// Grid stores hold depths in metres; metres are returned unchanged.
func ConvertDepth(depthM float64, target DepthUnit) float64 {
	switch target {
	case Feet:
		return depthM / 0.3048
	case Fathoms:
		return depthM / 1.8288
	default:
		return depthM
	}
}

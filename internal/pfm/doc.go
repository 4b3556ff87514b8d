// Package pfm implements the bin/depth survey store that contour extraction
// reads from.
//
// A store is a single SQLite file. The survey area is divided into a grid of
// bins addressed by (column, row); each bin aggregates zero or more
// soundings, and every sounding carries the number of the registered input
// file that contributed it. The schema is owned by the versioned migrations
// embedded in this package and applied by Create. Open refuses files that
// were not produced by a matching schema version.
//
// Reads are the hot path: Open prepares the bin and depth queries once and
// pins the store to a single connection, so a full row-major scan issues
// exactly one query per bin (two for bins that hold soundings).
package pfm

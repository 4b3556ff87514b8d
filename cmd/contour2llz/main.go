// Command contour2llz extracts hand-drawn contour soundings from a PFM grid
// store and writes them to an LLZ point file.
//
// Usage:
//
//	contour2llz [flags] GRID_PATH [OUTPUT_PATH]
//
// OUTPUT_PATH defaults to GRID_PATH with its last four characters replaced
// by ".llz". An explicit OUTPUT_PATH without the ".llz" suffix gets it
// appended.
package main

import "os"

func main() {
	os.Exit(Main(os.Args[1:], os.Stdout, os.Stderr))
}

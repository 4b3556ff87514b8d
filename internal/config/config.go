package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pfmabe/contour2llz/internal/fsutil"
	"github.com/pfmabe/contour2llz/internal/units"
)

// Cell error policies.
const (
	OnCellErrorAbort = "abort"
	OnCellErrorSkip  = "skip"
)

// maxFileSize caps config files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// Config holds optional run settings. Every field is a pointer so an
// omitted key falls back to the getter's default and command-line flags can
// tell "unset" from "set to the zero value".
type Config struct {
	// OnCellError is "abort" (stop the run) or "skip" (log and continue)
	// when a bin cannot be read mid-scan.
	OnCellError *string `json:"on_cell_error,omitempty"`
	// DepthUnits selects the unit depths are written in.
	DepthUnits *string `json:"depth_units,omitempty"`
	Progress   *bool   `json:"progress,omitempty"`
	Summary    *bool   `json:"summary,omitempty"`

	PlotPath        *string `json:"plot_path,omitempty"`
	MetricsTextfile *string `json:"metrics_textfile,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file on fsys.
// The file must have a .json extension and be under the max file size.
func Load(fsys fsutil.FileSystem, path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.OnCellError != nil {
		switch *c.OnCellError {
		case OnCellErrorAbort, OnCellErrorSkip:
		default:
			return fmt.Errorf("on_cell_error must be %q or %q, got %q", OnCellErrorAbort, OnCellErrorSkip, *c.OnCellError)
		}
	}

	if c.DepthUnits != nil && !units.IsValid(*c.DepthUnits) {
		return fmt.Errorf("depth_units must be one of %s, got %q", units.GetValidUnitsString(), *c.DepthUnits)
	}

	return nil
}

// Merge returns a copy of c with every field set in o taking precedence.
func (c *Config) Merge(o *Config) *Config {
	out := *c
	if o == nil {
		return &out
	}
	if o.OnCellError != nil {
		out.OnCellError = o.OnCellError
	}
	if o.DepthUnits != nil {
		out.DepthUnits = o.DepthUnits
	}
	if o.Progress != nil {
		out.Progress = o.Progress
	}
	if o.Summary != nil {
		out.Summary = o.Summary
	}
	if o.PlotPath != nil {
		out.PlotPath = o.PlotPath
	}
	if o.MetricsTextfile != nil {
		out.MetricsTextfile = o.MetricsTextfile
	}
	return &out
}

// GetOnCellError returns the on_cell_error value or the default.
func (c *Config) GetOnCellError() string {
	if c.OnCellError == nil {
		return OnCellErrorAbort
	}
	return *c.OnCellError
}

// GetDepthUnits returns the configured depth unit, metres by default.
func (c *Config) GetDepthUnits() units.DepthUnit {
	if c.DepthUnits == nil {
		return units.Meters
	}
	u, err := units.Parse(*c.DepthUnits)
	if err != nil {
		return units.Meters // default on parse error
	}
	return u
}

// GetProgress returns the progress value or the default.
func (c *Config) GetProgress() bool {
	if c.Progress == nil {
		return true
	}
	return *c.Progress
}

// GetSummary returns the summary value or the default.
func (c *Config) GetSummary() bool {
	if c.Summary == nil {
		return false
	}
	return *c.Summary
}

// GetPlotPath returns the plot_path value, empty when no plot is wanted.
func (c *Config) GetPlotPath() string {
	if c.PlotPath == nil {
		return ""
	}
	return *c.PlotPath
}

// GetMetricsTextfile returns the metrics_textfile value or "".
func (c *Config) GetMetricsTextfile() string {
	if c.MetricsTextfile == nil {
		return ""
	}
	return *c.MetricsTextfile
}

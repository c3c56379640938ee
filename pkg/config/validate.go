package config

import (
	"slices"

	"github.com/matzehuels/signaltower/pkg/errors"
)

// Output formats.
const (
	FormatText  = "txt"   // terminal grid view
	FormatJSON  = "json"  // plan export
	FormatPNG   = "png"   // city map
	FormatSVG   = "svg"   // city map
	FormatDOT   = "dot"   // range graph source
	FormatGraph = "graph" // range graph SVG
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatPNG, FormatSVG, FormatDOT, FormatGraph}

// Validate checks every field.
// Returns INVALID_CONFIGURATION for out-of-range planning parameters and
// INVALID_INPUT for everything else.
func (s *Scenario) Validate() error {
	if err := errors.ValidateDimensions(s.Grid.Rows, s.Grid.Cols); err != nil {
		return err
	}
	if err := errors.ValidateFraction(s.Grid.BlockCoverage); err != nil {
		return err
	}
	if err := errors.ValidateRadius(s.Towers.Radius); err != nil {
		return err
	}
	if err := s.Path.validate(); err != nil {
		return err
	}
	for _, f := range s.Render.Formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %v)", f, Formats)
		}
	}
	switch s.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", s.Cache.Backend)
	}
	if s.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if s.Store.Path != "" {
		if err := errors.ValidatePath(s.Store.Path); err != nil {
			return err
		}
	}
	return nil
}

func (p PathConfig) validate() error {
	if !p.Enabled() {
		return nil
	}
	if (p.Start == nil) == (p.StartAt == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "path needs exactly one of start or start_at")
	}
	if (p.End == nil) == (p.EndAt == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "path needs exactly one of end or end_at")
	}
	for _, idx := range []*int{p.Start, p.End} {
		if idx != nil && *idx < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "tower index must be >= 0, got %d", *idx)
		}
	}
	return nil
}

// Extension returns the file extension used when an artifact of format is
// written to disk.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

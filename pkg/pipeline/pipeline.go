// Package pipeline runs the complete generate → optimize → path → render
// sequence for the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Generate: build a random city grid from the seed
//  2. Optimize: select tower locations and mark coverage
//  3. Path: find the hop-minimal relay path between two towers
//  4. Render: produce the requested output formats
//
// Stages 1 to 3 form the plan, which is cached as one JSON document keyed by
// the planning options. Rendered artifacts are cached per format, keyed by
// the plan's content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	opts.Formats = []string{"txt", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signaltower/pkg/cache"
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/config"
	"github.com/matzehuels/signaltower/pkg/coverage"
	"github.com/matzehuels/signaltower/pkg/errors"
	planio "github.com/matzehuels/signaltower/pkg/io"
)

// Output formats, re-exported from config.
const (
	FormatText  = config.FormatText
	FormatJSON  = config.FormatJSON
	FormatPNG   = config.FormatPNG
	FormatSVG   = config.FormatSVG
	FormatDOT   = config.FormatDOT
	FormatGraph = config.FormatGraph
)

// seedStream is mixed into the seed to form the second PCG word.
const seedStream = 0x9e3779b97f4a7c15

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// It is the request body of the HTTP API.
type Options struct {
	// Generate options
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	BlockCoverage float64 `json:"block_coverage"`
	Seed          uint64  `json:"seed,omitempty"` // 0 draws a fresh seed

	// Optimize options
	Radius int `json:"radius"`

	// Path options; both nil skips the path stage
	Start *Endpoint `json:"start,omitempty"`
	End   *Endpoint `json:"end,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Refresh bypasses cached plans and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return FromScenario(config.Default())
}

// FromScenario converts a scenario file into pipeline options.
func FromScenario(s *config.Scenario) Options {
	opts := Options{
		Rows:          s.Grid.Rows,
		Cols:          s.Grid.Cols,
		BlockCoverage: s.Grid.BlockCoverage,
		Seed:          s.Grid.Seed,
		Radius:        s.Towers.Radius,
		Formats:       slices.Clone(s.Render.Formats),
	}
	switch {
	case s.Path.Start != nil:
		opts.Start = TowerIndex(*s.Path.Start)
	case s.Path.StartAt != nil:
		opts.Start = TowerAt(city.C(s.Path.StartAt[0], s.Path.StartAt[1]))
	}
	switch {
	case s.Path.End != nil:
		opts.End = TowerIndex(*s.Path.End)
	case s.Path.EndAt != nil:
		opts.End = TowerAt(city.C(s.Path.EndAt[0], s.Path.EndAt[1]))
	}
	return opts
}

// ValidateAndSetDefaults checks every field and fills runtime defaults.
// A zero seed is replaced by a random one so the run stays reproducible
// from its result. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateDimensions(o.Rows, o.Cols); err != nil {
		return err
	}
	if err := errors.ValidateFraction(o.BlockCoverage); err != nil {
		return err
	}
	if err := errors.ValidateRadius(o.Radius); err != nil {
		return err
	}
	if (o.Start == nil) != (o.End == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "path needs both start and end")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64() | 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(config.Formats, f) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be one of %v)", f, config.Formats)
		}
	}
	return nil
}

// HasPath reports whether the path stage runs.
func (o *Options) HasPath() bool {
	return o.Start != nil && o.End != nil
}

// Rand returns the random source for grid generation.
func (o *Options) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, o.Seed^seedStream))
}

// PlanKeyOpts returns cache key options for the plan stage.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Rows:          o.Rows,
		Cols:          o.Cols,
		BlockCoverage: o.BlockCoverage,
		Seed:          o.Seed,
		Radius:        o.Radius,
		Start:         o.Start.String(),
		End:           o.End.String(),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Style: o.Title}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in the history store and the HTTP API.
	RunID string

	// Seed is the seed actually used, after defaulting.
	Seed uint64

	// Plan holds the grid, towers, path and coverage summary.
	Plan *planio.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Grid returns the planned grid.
func (r *Result) Grid() *city.Grid { return r.Plan.Grid }

// Towers returns the selected towers in selection order.
func (r *Result) Towers() []city.Coord { return r.Plan.Towers }

// Path returns the relay path, empty when none was requested or found.
func (r *Result) Path() []city.Coord { return r.Plan.Path }

// Coverage returns the coverage summary.
func (r *Result) Coverage() coverage.Summary { return r.Plan.Coverage }

// Stats contains pipeline execution statistics. Stage times are zero when
// the plan came from the cache.
type Stats struct {
	GenerateTime time.Duration `json:"generate_ns"`
	OptimizeTime time.Duration `json:"optimize_ns"`
	PathTime     time.Duration `json:"path_ns"`
	RenderTime   time.Duration `json:"render_ns"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether grid, towers and path came from cache
	RenderHit bool // Whether all artifacts came from cache
}

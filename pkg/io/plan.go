package io

import (
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/coverage"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// FormatVersion is written into every exported plan.
const FormatVersion = 1

// Plan is the serializable result of one planning run.
type Plan struct {
	Version       int              `json:"version"`
	Seed          uint64           `json:"seed"`
	BlockCoverage float64          `json:"block_coverage"`
	Radius        int              `json:"radius"`
	Grid          *city.Grid       `json:"grid"`
	Towers        []city.Coord     `json:"towers"`
	Path          []city.Coord     `json:"path"`
	Coverage      coverage.Summary `json:"coverage"`
}

// Validate checks the plan's internal consistency.
func (p *Plan) Validate() error {
	if p.Version != FormatVersion {
		return errors.New(errors.ErrCodeUnsupported, "plan format version %d (want %d)", p.Version, FormatVersion)
	}
	if p.Grid == nil {
		return errors.New(errors.ErrCodeInvalidInput, "plan has no grid")
	}
	if err := errors.ValidateRadius(p.Radius); err != nil {
		return err
	}

	towers := make(map[city.Coord]bool, len(p.Towers))
	for _, t := range p.Towers {
		if !p.Grid.InBounds(t) || p.Grid.At(t) != city.Tower {
			return errors.New(errors.ErrCodeInvalidInput, "tower %s is not a tower cell", t)
		}
		towers[t] = true
	}
	for _, hop := range p.Path {
		if !towers[hop] {
			return errors.New(errors.ErrCodeInvalidInput, "path hop %s is not a tower", hop)
		}
	}
	return nil
}

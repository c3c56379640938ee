// Package config loads planning scenarios from TOML files.
//
// A scenario file mirrors the CLI flags:
//
//	[grid]
//	rows = 22
//	cols = 30
//	block_coverage = 0.3
//	seed = 42
//
//	[towers]
//	radius = 5
//
//	[path]
//	start = 2          # index into the selected towers
//	end_at = [14, 21]  # or an explicit tower coordinate
//
//	[render]
//	formats = ["txt", "png"]
//	output = "city"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "24h"
//
//	[store]
//	enabled = true
//
// Missing sections keep their [Default] values. Unknown keys are rejected.
package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/signaltower/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Scenario is a complete planning configuration.
type Scenario struct {
	Grid   GridConfig   `toml:"grid"`
	Towers TowerConfig  `toml:"towers"`
	Path   PathConfig   `toml:"path"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// GridConfig describes the random city.
type GridConfig struct {
	Rows          int     `toml:"rows"`
	Cols          int     `toml:"cols"`
	BlockCoverage float64 `toml:"block_coverage"`

	// Seed drives block placement. Zero picks a fresh seed per run.
	Seed uint64 `toml:"seed"`
}

// TowerConfig holds the coverage radius shared by every tower.
type TowerConfig struct {
	Radius int `toml:"radius"`
}

// PathConfig selects the relay path endpoints. Each endpoint is given either
// as an index into the selected towers or as a coordinate; leaving both
// endpoints unset skips the path stage.
type PathConfig struct {
	Start   *int    `toml:"start"`
	End     *int    `toml:"end"`
	StartAt *[2]int `toml:"start_at"`
	EndAt   *[2]int `toml:"end_at"`
}

// Enabled reports whether any endpoint is configured.
func (p PathConfig) Enabled() bool {
	return p.Start != nil || p.End != nil || p.StartAt != nil || p.EndAt != nil
}

// RenderConfig selects output formats and the output file stem.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Output  string   `toml:"output"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// StoreConfig controls the run history database.
type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty means DataDir()/runs.db
}

// Duration decodes TOML strings such as "90m" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the reference scenario: a 22x30 city with 30% blocked
// cells, radius 5 towers and a path from the third to the eighth tower.
func Default() *Scenario {
	start, end := 2, 7
	return &Scenario{
		Grid: GridConfig{
			Rows:          22,
			Cols:          30,
			BlockCoverage: 0.3,
		},
		Towers: TowerConfig{Radius: 5},
		Path:   PathConfig{Start: &start, End: &end},
		Render: RenderConfig{
			Formats: []string{FormatText},
			Output:  "city",
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
		},
		Store: StoreConfig{Enabled: true},
	}
}

// Load reads and validates a scenario file on top of Default.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "scenario %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scenario %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML on top of Default and validates the result.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	md, err := toml.Decode(string(data), s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scenario")
	}
	// A [path] section replaces the default endpoints entirely.
	if md.IsDefined("path") {
		if !md.IsDefined("path", "start") {
			s.Path.Start = nil
		}
		if !md.IsDefined("path", "end") {
			s.Path.End = nil
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes s as TOML.
func (s *Scenario) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scenario")
	}
	return buf.Bytes(), nil
}

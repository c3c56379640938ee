package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/signaltower/pkg/city"
)

// WriteJSON encodes p as indented JSON. Nil tower and path slices are
// written as empty arrays.
func WriteJSON(p *Plan, w io.Writer) error {
	out := *p
	if out.Version == 0 {
		out.Version = FormatVersion
	}
	if out.Towers == nil {
		out.Towers = []city.Coord{}
	}
	if out.Path == nil {
		out.Path = []city.Coord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes p to a JSON file at path.
func ExportJSON(p *Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

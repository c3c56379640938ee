package city

import (
	"encoding/json"
	"fmt"
)

type gridJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells []string `json:"cells"`
}

// MarshalJSON encodes the grid as {"rows", "cols", "cells"} where cells holds
// one text-notation string per row.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		Rows:  g.rows,
		Cols:  g.cols,
		Cells: g.rowStrings(),
	})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) != raw.Rows {
		return fmt.Errorf("grid declares %d rows but has %d", raw.Rows, len(raw.Cells))
	}
	parsed, err := Parse(raw.Cells...)
	if err != nil {
		return err
	}
	if parsed.cols != raw.Cols {
		return fmt.Errorf("grid declares %d cols but rows have %d", raw.Cols, parsed.cols)
	}
	*g = *parsed
	return nil
}

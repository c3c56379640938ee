package city

import (
	"encoding/json"
	"fmt"
)

// Coord is a (row, col) cell coordinate. Towers are represented by the
// coordinate of the blocked cell they stand on.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String formats the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Chebyshev returns max(|Δrow|, |Δcol|) between c and o.
func (c Coord) Chebyshev(o Coord) int {
	return max(abs(c.Row-o.Row), abs(c.Col-o.Col))
}

// MarshalJSON encodes the coordinate as a two-element array [row, col].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a two-element array [row, col].
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have 2 elements, got %d", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// IndexOf returns the position of c in coords, or -1.
func IndexOf(coords []Coord, c Coord) int {
	for i, x := range coords {
		if x == c {
			return i
		}
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

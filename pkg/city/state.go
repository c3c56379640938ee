package city

import (
	"encoding/json"
	"fmt"
)

// CellState is the exhaustive classification of a grid cell.
type CellState uint8

const (
	// Empty is an open cell with no signal.
	Empty CellState = iota
	// Blocked is a building. Towers may only be placed on blocked cells and
	// coverage marking never overwrites one.
	Blocked
	// Signal is an open cell inside at least one tower's coverage window.
	Signal
	// Tower is a cell hosting a tower.
	Tower
)

var stateNames = [...]string{
	Empty:   "empty",
	Blocked: "blocked",
	Signal:  "signal",
	Tower:   "tower",
}

var stateRunes = [...]rune{
	Empty:   '.',
	Blocked: '#',
	Signal:  '+',
	Tower:   'T',
}

// States lists every cell state in declaration order.
var States = []CellState{Empty, Blocked, Signal, Tower}

// String returns the lowercase state name.
func (s CellState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", s)
}

// Rune returns the single-character notation used by [Parse] and [Grid.String].
func (s CellState) Rune() rune {
	if int(s) < len(stateRunes) {
		return stateRunes[s]
	}
	return '?'
}

// Valid reports whether s is one of the four defined states.
func (s CellState) Valid() bool {
	return int(s) < len(stateNames)
}

// stateFromRune is the inverse of CellState.Rune.
func stateFromRune(r rune) (CellState, bool) {
	for s, sr := range stateRunes {
		if sr == r {
			return CellState(s), true
		}
	}
	return 0, false
}

// MarshalJSON encodes the state by name.
func (s CellState) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid cell state %d", s)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a state name.
func (s *CellState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range stateNames {
		if n == name {
			*s = CellState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", name)
}

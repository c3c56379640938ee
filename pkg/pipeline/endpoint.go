package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// Endpoint selects a relay path endpoint, either by its position in the
// selected tower list or by coordinate.
type Endpoint struct {
	Index *int        `json:"index,omitempty"`
	At    *city.Coord `json:"at,omitempty"`
}

// TowerIndex selects the i-th selected tower.
func TowerIndex(i int) *Endpoint {
	return &Endpoint{Index: &i}
}

// TowerAt selects the tower standing on c.
func TowerAt(c city.Coord) *Endpoint {
	return &Endpoint{At: &c}
}

// ParseEndpoint reads "7" as a tower index and "3,4" as a coordinate.
func ParseEndpoint(s string) (*Endpoint, error) {
	s = strings.TrimSpace(s)
	if row, col, ok := strings.Cut(s, ","); ok {
		r, err1 := strconv.Atoi(strings.TrimSpace(row))
		c, err2 := strconv.Atoi(strings.TrimSpace(col))
		if err1 != nil || err2 != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "endpoint %q: want row,col", s)
		}
		return TowerAt(city.C(r, c)), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "endpoint %q: want a tower index or row,col", s)
	}
	return TowerIndex(i), nil
}

// Resolve returns the tower coordinate the endpoint refers to.
// Returns INVALID_ARGUMENT for an index outside towers. Coordinates are
// returned unchecked; path search rejects ones that are not towers.
func (e *Endpoint) Resolve(towers []city.Coord) (city.Coord, error) {
	switch {
	case e.At != nil:
		return *e.At, nil
	case e.Index != nil:
		if *e.Index < 0 || *e.Index >= len(towers) {
			return city.Coord{}, errors.New(errors.ErrCodeInvalidArgument,
				"tower index %d out of range, %d towers selected", *e.Index, len(towers))
		}
		return towers[*e.Index], nil
	}
	return city.Coord{}, errors.New(errors.ErrCodeInvalidInput, "empty endpoint")
}

// String formats the endpoint as accepted by ParseEndpoint.
func (e *Endpoint) String() string {
	switch {
	case e == nil:
		return ""
	case e.At != nil:
		return fmt.Sprintf("%d,%d", e.At.Row, e.At.Col)
	case e.Index != nil:
		return strconv.Itoa(*e.Index)
	}
	return ""
}

// UnmarshalJSON also accepts a bare index (7) or a bare coordinate ([3,4]).
func (e *Endpoint) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*e = *TowerIndex(i)
		return nil
	}
	var c city.Coord
	if err := json.Unmarshal(data, &c); err == nil {
		*e = *TowerAt(c)
		return nil
	}
	type plain Endpoint
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Endpoint(p)
	return nil
}

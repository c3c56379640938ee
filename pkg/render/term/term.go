// Package term renders a city grid for terminal output.
//
// Two layouts are supported. The glyph layout prints one character per cell
// using the city text notation ('.', '#', '+', 'T'), separated by spaces.
// The numeric layout prints the numeric cell codes inside a "|" frame:
//
//	_
//	| 3 2 0 0 |
//	| 2 2 0 1 |
//	_
//
// With Color set, cells are styled with lipgloss and towers on the relay path
// stand out from the other towers.
package term

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/signaltower/pkg/city"
)

// Options configures rendering.
type Options struct {
	// Numeric prints cell codes (0 empty, 1 blocked, 2 signal, 3 tower)
	// inside a frame instead of glyphs.
	Numeric bool

	// Color styles each cell by state.
	Color bool

	// Path marks the towers of a relay path.
	Path []city.Coord
}

var (
	styleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleSignal  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleTower   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	stylePath    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

// Render returns the grid as text, one line per row, each line ending in a
// newline.
func Render(g *city.Grid, opts Options) string {
	onPath := make(map[city.Coord]bool, len(opts.Path))
	for _, c := range opts.Path {
		onPath[c] = true
	}

	var b strings.Builder
	if opts.Numeric {
		b.WriteString("_\n")
	}
	cells := make([]string, g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := range cells {
			at := city.C(r, c)
			cells[c] = cell(g.At(at), onPath[at], opts)
		}
		line := strings.Join(cells, " ")
		if opts.Numeric {
			line = "| " + line + " |"
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if opts.Numeric {
		b.WriteString("_\n")
	}
	return b.String()
}

func cell(s city.CellState, onPath bool, opts Options) string {
	text := string(s.Rune())
	if opts.Numeric {
		text = strconv.Itoa(int(s))
	}
	if !opts.Color {
		return text
	}
	if onPath && s == city.Tower {
		return stylePath.Render(text)
	}
	return stateStyle(s).Render(text)
}

func stateStyle(s city.CellState) lipgloss.Style {
	switch s {
	case city.Blocked:
		return styleBlocked
	case city.Signal:
		return styleSignal
	case city.Tower:
		return styleTower
	default:
		return styleEmpty
	}
}

// Legend returns a one-line key for the glyph layout.
func Legend(color bool) string {
	parts := make([]string, 0, len(city.States)+1)
	for _, s := range city.States {
		item := string(s.Rune()) + " " + s.String()
		if color {
			item = stateStyle(s).Render(item)
		}
		parts = append(parts, item)
	}
	path := "T path tower"
	if color {
		path = stylePath.Render(path)
	}
	return strings.Join(append(parts, path), "  ")
}

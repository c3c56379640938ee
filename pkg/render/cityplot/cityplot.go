// Package cityplot draws a planned city as a PNG or SVG map.
//
// Blocked cells are red, covered cells green and towers blue. Consecutive
// towers of the relay path are joined by a line through the cell centers.
// Row 0 is drawn at the top, so the picture matches the text layout.
package cityplot

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// Supported image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// DefaultCellSize is the edge length of one cell.
const DefaultCellSize = 0.25 * vg.Inch

var (
	colorBlocked = color.RGBA{R: 214, G: 69, B: 69, A: 255}
	colorSignal  = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	colorTower   = color.RGBA{R: 74, G: 144, B: 217, A: 255}
	colorPath    = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

// Options configures the map.
type Options struct {
	// Format is FormatPNG or FormatSVG.
	Format string

	// Title defaults to "City grid".
	Title string

	// CellSize defaults to DefaultCellSize.
	CellSize vg.Length
}

// Render draws g and the relay path and returns the encoded image.
func Render(g *city.Grid, path []city.Coord, opts Options) ([]byte, error) {
	if opts.Format != FormatPNG && opts.Format != FormatSVG {
		return nil, errors.New(errors.ErrCodeUnsupported, "city map format %q", opts.Format)
	}
	if opts.Title == "" {
		opts.Title = "City grid"
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}

	p, err := build(g, path, opts.Title)
	if err != nil {
		return nil, err
	}

	w := vg.Length(g.Cols())*opts.CellSize + vg.Inch
	h := vg.Length(g.Rows())*opts.CellSize + vg.Inch
	wt, err := p.WriterTo(w, h, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", opts.Format, err)
	}
	return buf.Bytes(), nil
}

func build(g *city.Grid, path []city.Coord, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"
	p.X.Min, p.X.Max = 0, float64(g.Cols())
	p.Y.Min, p.Y.Max = 0, float64(g.Rows())

	legend := map[city.CellState]bool{}
	for _, layer := range []struct {
		state city.CellState
		fill  color.Color
	}{
		{city.Blocked, colorBlocked},
		{city.Signal, colorSignal},
		{city.Tower, colorTower},
	} {
		for _, c := range g.Coords(layer.state) {
			poly, err := plotter.NewPolygon(cellRing(g, c))
			if err != nil {
				return nil, err
			}
			poly.Color = layer.fill
			poly.LineStyle.Width = 0
			p.Add(poly)
			if !legend[layer.state] {
				p.Legend.Add(layer.state.String(), poly)
				legend[layer.state] = true
			}
		}
	}

	if len(path) > 1 {
		pts := make(plotter.XYs, len(path))
		for i, c := range path {
			pts[i] = center(g, c)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = colorPath
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("relay path", line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// cellRing returns the corners of c with row 0 at the top.
func cellRing(g *city.Grid, c city.Coord) plotter.XYs {
	x := float64(c.Col)
	y := float64(g.Rows() - c.Row - 1)
	return plotter.XYs{
		{X: x, Y: y},
		{X: x + 1, Y: y},
		{X: x + 1, Y: y + 1},
		{X: x, Y: y + 1},
	}
}

func center(g *city.Grid, c city.Coord) plotter.XY {
	return plotter.XY{
		X: float64(c.Col) + 0.5,
		Y: float64(g.Rows()-c.Row) - 0.5,
	}
}

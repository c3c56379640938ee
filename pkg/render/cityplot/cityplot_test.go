package cityplot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

func planned(t *testing.T) *city.Grid {
	t.Helper()
	g, err := city.Parse(
		"T+..",
		"++..",
		"..++",
		"..+T",
	)
	require.NoError(t, err)
	return g
}

func TestRenderPNG(t *testing.T) {
	out, err := Render(planned(t), []city.Coord{city.C(0, 0), city.C(3, 3)}, Options{Format: FormatPNG})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")), "missing PNG signature")
}

func TestRenderSVG(t *testing.T) {
	out, err := Render(planned(t), nil, Options{Format: FormatSVG, Title: "corners"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
	assert.Contains(t, string(out), "corners")
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(planned(t), nil, Options{Format: "gif"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestGeometry(t *testing.T) {
	g := planned(t)

	ring := cellRing(g, city.C(0, 0))
	assert.Equal(t, 0.0, ring[0].X)
	assert.Equal(t, 3.0, ring[0].Y, "row 0 is drawn at the top")
	assert.Equal(t, 4.0, ring[2].Y)

	c := center(g, city.C(3, 3))
	assert.Equal(t, 3.5, c.X)
	assert.Equal(t, 0.5, c.Y)
}

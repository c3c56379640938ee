package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/relay"
)

func chain(t *testing.T) *relay.RangeGraph {
	t.Helper()
	g, err := relay.NewRangeGraph(1, []city.Coord{city.C(0, 0), city.C(0, 3), city.C(0, 6), city.C(9, 9)})
	if err != nil {
		t.Fatalf("NewRangeGraph: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := chain(t)
	dot := ToDOT(g, Options{Path: []city.Coord{city.C(0, 0), city.C(0, 3)}, Order: true})

	for _, want := range []string{
		"graph G {",
		`"t0_0" [label="#0\n0,0", fillcolor="#d64545", penwidth=2];`,
		`"t9_9" [label="#3\n9,9"];`,
		`"t0_0" -- "t0_3" [color="#d64545", penwidth=3];`,
		`"t0_3" -- "t0_6";`,
		`label="radius 1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, " -- "); got != g.EdgeCount() {
		t.Errorf("DOT has %d edges, want %d", got, g.EdgeCount())
	}
}

func TestToDOTPlainLabels(t *testing.T) {
	dot := ToDOT(chain(t), Options{})
	if !strings.Contains(dot, `"t0_6" [label="0,6"];`) {
		t.Errorf("unexpected labels:\n%s", dot)
	}
	if strings.Contains(dot, "penwidth=3") {
		t.Error("no path should be highlighted")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox:\n got %s\nwant %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(chain(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

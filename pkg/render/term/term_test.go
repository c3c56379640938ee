package term

import (
	"testing"

	"github.com/matzehuels/signaltower/pkg/city"
)

func grid(t *testing.T) *city.Grid {
	t.Helper()
	g, err := city.Parse(
		"T+..",
		"++.#",
	)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return g
}

func TestRenderGlyphs(t *testing.T) {
	got := Render(grid(t), Options{})
	want := "" +
		"T + . .\n" +
		"+ + . #\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderNumeric(t *testing.T) {
	got := Render(grid(t), Options{Numeric: true})
	want := "" +
		"_\n" +
		"| 3 2 0 0 |\n" +
		"| 2 2 0 1 |\n" +
		"_\n"
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestLegendPlain(t *testing.T) {
	want := ". empty  # blocked  + signal  T tower  T path tower"
	if got := Legend(false); got != want {
		t.Errorf("Legend = %q, want %q", got, want)
	}
}

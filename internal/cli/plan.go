package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/config"
	"github.com/matzehuels/signaltower/pkg/pipeline"
	"github.com/matzehuels/signaltower/pkg/render/term"
)

// planFlags holds the command-line overrides for a scenario.
type planFlags struct {
	rows     int
	cols     int
	coverage float64
	seed     uint64
	radius   int
	from     string
	to       string
	noPath   bool
	formats  string
	output   string
	title    string
	noCache  bool
	refresh  bool
	numeric  bool
	noColor  bool
	quiet    bool
}

// planCommand creates the plan command, which runs the whole pipeline.
func (c *CLI) planCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a city, place towers and find a relay path",
		Long: `Generate a random city grid, place signal towers on blocked cells and
search the shortest relay path between two towers.

Settings come from the scenario file (--config) or the built-in defaults: a
22x30 city with 30% blocked cells, radius 5 towers and a path from tower 2 to
tower 7. Flags override both. Endpoints are tower indices in selection order
("7") or tower coordinates ("3,4").

The grid is printed to the terminal. Additional formats are written next to
--output: txt, json, png, svg, dot and graph (range graph as SVG).

Results are cached locally; the same seed always produces the same plan.`,
		Example: `  # Reference scenario with a fixed seed
  signaltower plan --seed 42

  # Small city, explicit endpoints, map and range graph
  signaltower plan --rows 12 --cols 16 --radius 2 --from 0 --to 3 -f png,graph -o out/city`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.scenario()
			if err != nil {
				return err
			}
			opts, output, err := planOptions(cmd, &flags, s)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			return c.runPlan(cmd.Context(), s, opts, output, &flags)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.rows, "rows", 0, "grid rows")
	f.IntVar(&flags.cols, "cols", 0, "grid columns")
	f.Float64Var(&flags.coverage, "coverage", 0, "fraction of cells to block, in [0, 1)")
	f.Uint64Var(&flags.seed, "seed", 0, "random seed (0 picks one)")
	f.IntVarP(&flags.radius, "radius", "r", 0, "tower coverage radius")
	f.StringVar(&flags.from, "from", "", "path start: tower index or row,col")
	f.StringVar(&flags.to, "to", "", "path end: tower index or row,col")
	f.BoolVar(&flags.noPath, "no-path", false, "skip the relay path search")
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): txt, json, png, svg, dot, graph (comma-separated)")
	f.StringVarP(&flags.output, "output", "o", "", "output path without extension")
	f.StringVar(&flags.title, "title", "", "title for image outputs")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&flags.refresh, "refresh", false, "recompute and overwrite cached results")
	f.BoolVar(&flags.numeric, "numeric", false, "print numeric cell codes instead of glyphs")
	f.BoolVar(&flags.noColor, "no-color", false, "print the grid without colors")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "do not print the grid")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// planOptions merges the scenario with the flags the user set.
func planOptions(cmd *cobra.Command, flags *planFlags, s *config.Scenario) (pipeline.Options, string, error) {
	var err error
	opts := pipeline.FromScenario(s)
	output := s.Render.Output

	changed := cmd.Flags().Changed
	if changed("rows") {
		opts.Rows = flags.rows
	}
	if changed("cols") {
		opts.Cols = flags.cols
	}
	if changed("coverage") {
		opts.BlockCoverage = flags.coverage
	}
	if changed("seed") {
		opts.Seed = flags.seed
	}
	if changed("radius") {
		opts.Radius = flags.radius
	}
	if changed("from") {
		if opts.Start, err = pipeline.ParseEndpoint(flags.from); err != nil {
			return opts, "", err
		}
	}
	if changed("to") {
		if opts.End, err = pipeline.ParseEndpoint(flags.to); err != nil {
			return opts, "", err
		}
	}
	if flags.noPath {
		opts.Start, opts.End = nil, nil
	}
	if changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if changed("output") {
		output = flags.output
	}
	opts.Title = flags.title
	opts.Refresh = flags.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, "", err
	}
	return opts, output, nil
}

// runPlan executes the pipeline, prints the grid and writes the artifacts.
func (c *CLI) runPlan(ctx context.Context, s *config.Scenario, opts pipeline.Options, output string, flags *planFlags) error {
	runner, err := c.newRunner(ctx, s, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Planning...")
	restore := spinner.Track()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Planning failed")
		return err
	}
	spinner.Stop()

	if !flags.quiet {
		fmt.Print(term.Render(result.Grid(), term.Options{
			Numeric: flags.numeric,
			Color:   !flags.noColor,
			Path:    result.Path(),
		}))
		if !flags.numeric {
			fmt.Println(term.Legend(!flags.noColor))
		}
		printNewline()
	}

	printSuccess("Planned %dx%d city with seed %s", opts.Rows, opts.Cols, StyleNumber.Render(fmt.Sprint(result.Seed)))
	printStats(result.Coverage(), hopCount(result.Path()), result.CacheInfo.PlanHit)
	if opts.HasPath() {
		printPath(result.Path())
	}

	written, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	for _, path := range written {
		printFile(path)
	}
	if err != nil {
		return err
	}

	if jsonPath := artifactPath(output, pipeline.FormatJSON); slices.Contains(written, jsonPath) {
		printNewline()
		printNextStep("Try other endpoints", appName+" pick "+jsonPath)
	}
	printDetail("Run %s", result.RunID)
	return nil
}

// hopCount returns the number of hops in path, or -1 for no path.
func hopCount(path []city.Coord) int {
	return len(path) - 1
}

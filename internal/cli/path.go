package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signaltower/pkg/city"
	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/pipeline"
	"github.com/matzehuels/signaltower/pkg/relay"
	"github.com/matzehuels/signaltower/pkg/render/term"
)

// pathCommand creates the path command for searching a saved plan.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		from, to string
		output   string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "path [plan.json]",
		Short: "Find a relay path between two towers of a saved plan",
		Long: `Find the shortest relay path between two towers of a plan written by
'plan -f json'. The plan's towers and radius are reused; the city is not
regenerated.

With --output the plan is written back with the new path.`,
		Example: `  signaltower path city.json --from 0 --to 5
  signaltower path city.json --from 3,4 --to 12,20 -o rerouted.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := pipeline.ParseEndpoint(from)
			if err != nil {
				return err
			}
			end, err := pipeline.ParseEndpoint(to)
			if err != nil {
				return err
			}
			plan, err := planio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load plan %s: %w", args[0], err)
			}
			if err := reroute(plan, start, end); err != nil {
				return err
			}
			return c.showPath(plan, output, !noColor)
		},
	}

	cmd.Flags().StringVar(&from, "from", "0", "path start: tower index or row,col")
	cmd.Flags().StringVar(&to, "to", "1", "path end: tower index or row,col")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated plan as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print the grid without colors")

	return cmd
}

// reroute replaces plan.Path with the path between two endpoints.
func reroute(plan *planio.Plan, start, end *pipeline.Endpoint) error {
	from, err := start.Resolve(plan.Towers)
	if err != nil {
		return err
	}
	to, err := end.Resolve(plan.Towers)
	if err != nil {
		return err
	}
	path, err := relay.FindPath(plan.Radius, plan.Towers, from, to)
	if err != nil {
		return err
	}
	plan.Path = path
	return nil
}

// showPath prints the grid with the path and optionally saves the plan.
func (c *CLI) showPath(plan *planio.Plan, output string, color bool) error {
	fmt.Print(term.Render(plan.Grid, term.Options{Color: color, Path: plan.Path}))
	printNewline()

	if len(plan.Path) > 0 {
		printSuccess("Relay path: %s hops", StyleNumber.Render(fmt.Sprint(hopCount(plan.Path))))
	}
	printPath(plan.Path)
	c.Logger.Debug("path", "towers", len(plan.Towers), "radius", plan.Radius, "hops", hopCount(plan.Path))

	if output == "" {
		return nil
	}
	if err := planio.ExportJSON(plan, output); err != nil {
		return fmt.Errorf("write plan %s: %w", output, err)
	}
	printFile(output)
	return nil
}

// towerLabel formats a tower with its selection index.
func towerLabel(i int, t city.Coord) string {
	return fmt.Sprintf("#%-3d %s", i, t)
}

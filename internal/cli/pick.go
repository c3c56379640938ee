package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/pipeline"
	"github.com/matzehuels/signaltower/pkg/relay"
)

// pickCommand creates the pick command for choosing endpoints interactively.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "pick [plan.json]",
		Short: "Pick relay path endpoints from a tower list",
		Long: `Open an interactive list of the towers in a saved plan, pick a start and
an end tower, and print the relay path between them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0], output, !noColor)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated plan as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print the grid without colors")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, input, output string, color bool) error {
	plan, err := planio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	if len(plan.Towers) == 0 {
		printWarning("Plan has no towers")
		return nil
	}
	g, err := relay.NewRangeGraph(plan.Radius, plan.Towers)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewTowerPickerModel(g), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("tower picker: %w", err)
	}
	m, ok := final.(TowerPickerModel)
	if !ok || !m.Done() {
		printInfo("No endpoints selected")
		return nil
	}

	start := pipeline.TowerAt(m.Towers[m.Picks[0]])
	end := pipeline.TowerAt(m.Towers[m.Picks[1]])
	printInfo("From %s to %s", towerLabel(m.Picks[0], *start.At), towerLabel(m.Picks[1], *end.At))
	if err := reroute(plan, start, end); err != nil {
		return err
	}
	return c.showPath(plan, output, color)
}

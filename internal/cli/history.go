package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/render/term"
	"github.com/matzehuels/signaltower/pkg/store"
)

// historyCommand creates the history command for recorded runs.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded planning runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st *store.Store) error {
				runs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No runs recorded yet")
					return nil
				}
				fmt.Println(historyTable(runs, time.Now()))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of runs to list")

	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())
	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var (
		output  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print a recorded run",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeRunIDs(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st *store.Store) error {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				plan, err := planio.ReadJSON(bytes.NewReader(run.Plan))
				if err != nil {
					return fmt.Errorf("decode run %s: %w", run.ID, err)
				}

				fmt.Print(term.Render(plan.Grid, term.Options{Color: !noColor, Path: plan.Path}))
				printNewline()
				printKeyValue("Run", run.ID)
				printKeyValue("Created", run.CreatedAt.Format(time.DateTime))
				printKeyValue("Grid", fmt.Sprintf("%dx%d @ %.2f", run.Rows, run.Cols, run.BlockCoverage))
				printKeyValue("Seed", fmt.Sprint(run.Seed))
				printKeyValue("Radius", fmt.Sprint(run.Radius))
				printStats(plan.Coverage, run.Hops, false)
				if len(plan.Path) > 0 {
					printPath(plan.Path)
				}

				if output != "" {
					if err := planio.ExportJSON(plan, output); err != nil {
						return err
					}
					printFile(output)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print the grid without colors")
	return cmd
}

// historyDeleteCommand creates the "history delete" subcommand.
func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete [run-id...]",
		Short:             "Delete recorded runs",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeRunIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st *store.Store) error {
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						return err
					}
				}
				printSuccess("Deleted %d run(s)", len(args))
				return nil
			})
		},
	}
}

// withStore opens the history database for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := c.scenario()
	if err != nil {
		return err
	}
	path, err := s.Store.StorePath()
	if err != nil {
		return fmt.Errorf("get history path: %w", err)
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()
	loggerFromContext(ctx).Debug("opened history", "path", path)
	return fn(st)
}

// historyTable renders runs as a bordered table.
func historyTable(runs []store.Run, now time.Time) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		hops := "-"
		if r.Hops != store.NoPath {
			hops = fmt.Sprint(r.Hops)
		}
		rows[i] = []string{
			r.ID[:min(8, len(r.ID))],
			formatRelativeTime(r.CreatedAt, now),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			fmt.Sprint(r.Seed),
			fmt.Sprint(r.Radius),
			fmt.Sprint(r.Towers),
			hops,
			fmt.Sprintf("%.0f%%", r.CoverageRatio*100),
		}
	}

	headers := []string{"Run", "When", "Grid", "Seed", "R", "Towers", "Hops", "Covered"}
	return newTable(headers, rows, func(_, col int) lipgloss.Style {
		if col == 0 {
			return StyleHighlight
		}
		return StyleValue
	}).Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

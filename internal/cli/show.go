package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// showCommand creates the show command for inspecting a dashboard.
func (c *CLI) showCommand() *cobra.Command {
	var env envFlags
	var resolve bool

	cmd := &cobra.Command{
		Use:   "show <dashboard>",
		Short: "Print a dashboard's layout",
		Long: `Show prints the stored reference layout. With --resolve, the layout is
first recovered to the breakpoint derived from --width and the panel
flags, the way a client at that viewport would see it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := c.newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var (
				snap    grid.Snapshot
				columns int
				cached  bool
			)
			if resolve {
				layout, err := runner.EnvironmentChanged(cmd.Context(), args[0], env.environment())
				if err != nil {
					printError("%v", err)
					return err
				}
				snap, columns, cached = layout.Snapshot, layout.Columns, layout.CacheHit
				printInfo("Resolved for breakpoint %s", StyleHighlight.Render(layout.Breakpoint.String()))
			} else {
				rec, err := runner.Snapshot(cmd.Context(), args[0])
				if err != nil {
					printError("%v", err)
					return err
				}
				snap, columns = rec.Snapshot, rec.Columns
			}

			fmt.Println(StyleTitle.Render(args[0]))
			printWidgetTable(snap)
			printLayoutStats(snap.Len(), columns, snap.MaxBottom(), cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "recover the layout for the given environment")
	env.register(cmd)
	return cmd
}

// listCommand creates the list command for enumerating dashboards.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored dashboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := c.newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := runner.List(cmd.Context())
			if err != nil {
				printError("%v", err)
				return err
			}
			if len(ids) == 0 {
				printInfo("No dashboards stored")
				return nil
			}
			for _, id := range ids {
				fmt.Println(StyleValue.Render(id))
			}
			return nil
		},
	}
}

// printWidgetTable renders the widgets as a bordered table, sorted by
// position.
func printWidgetTable(snap grid.Snapshot) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, w := range snap.Sorted() {
		rows = append(rows, []string{
			w.ID,
			string(w.Kind),
			strconv.Itoa(w.Rect.X),
			strconv.Itoa(w.Rect.Y),
			fmt.Sprintf("%dx%d", w.Rect.W, w.Rect.H),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Widget", "Kind", "Col", "Row", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

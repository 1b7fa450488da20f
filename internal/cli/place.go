package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// placeCommand creates the place command for adding widgets to a dashboard.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		kind  string
		class string
		env   envFlags
	)

	cmd := &cobra.Command{
		Use:   "place <dashboard>",
		Short: "Place a new widget on a dashboard",
		Long: `Place adds a widget to a dashboard's layout. The widget lands in the
top-left-most free slot at the breakpoint resolved from --width and the
panel flags. Without --class, the size class is chosen by the creation
policy for the kind.`,
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

			p := newProgress(c.Logger)
			rec, widget, err := runner.CreateWidget(cmd.Context(), args[0], grid.Kind(kind), grid.SizeClass(class), env.environment())
			if err != nil {
				printError("%v", err)
				return err
			}
			p.done("Placed widget")

			printSuccess("Placed %s widget %s", widget.Kind, StyleHighlight.Render(widget.ID))
			printDetail("Position: column %d, row %d (%dx%d cells)", widget.Rect.X, widget.Rect.Y, widget.Rect.W, widget.Rect.H)
			printLayoutStats(rec.Snapshot.Len(), rec.Columns, rec.Snapshot.MaxBottom(), false)
			printNextStep("Inspect the layout", fmt.Sprintf("%s show %s", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "chart", "widget kind: chart, table, kpi, text")
	cmd.Flags().StringVar(&class, "class", "", "size class (default: creation policy for the kind)")
	env.register(cmd)

	return cmd
}

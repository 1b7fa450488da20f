package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// resizeCommand creates the resize command for changing a widget's size class.
func (c *CLI) resizeCommand() *cobra.Command {
	var env envFlags

	cmd := &cobra.Command{
		Use:   "resize <dashboard> <widget> <class>",
		Short: "Assign a new size class to a widget",
		Long: `Resize looks up the catalog dimensions of the size class at the active
breakpoint and moves the widget to the nearest free slot that fits,
searching from its current row.`,
		Args: cobra.ExactArgs(3),
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

			rec, err := runner.ResizeWidget(cmd.Context(), args[0], args[1], grid.SizeClass(args[2]), env.environment())
			if err != nil {
				printError("%v", err)
				return err
			}

			widget, _ := rec.Snapshot.Find(args[1])
			printSuccess("Resized %s to %s", StyleHighlight.Render(args[1]), args[2])
			printDetail("Position: column %d, row %d (%dx%d cells)", widget.Rect.X, widget.Rect.Y, widget.Rect.W, widget.Rect.H)
			printLayoutStats(rec.Snapshot.Len(), rec.Columns, rec.Snapshot.MaxBottom(), false)
			return nil
		},
	}

	env.register(cmd)
	return cmd
}

// removeCommand creates the remove command for deleting widgets.
func (c *CLI) removeCommand() *cobra.Command {
	var deleteDashboard bool

	cmd := &cobra.Command{
		Use:   "remove <dashboard> [widget]",
		Short: "Remove a widget, or a whole dashboard with --all",
		Args:  cobra.RangeArgs(1, 2),
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

			if deleteDashboard {
				if err := runner.DeleteDashboard(cmd.Context(), args[0]); err != nil {
					printError("%v", err)
					return err
				}
				printSuccess("Deleted dashboard %s", StyleHighlight.Render(args[0]))
				return nil
			}

			if len(args) < 2 {
				printError("widget ID required (or use --all to delete the dashboard)")
				return cmd.Usage()
			}

			rec, err := runner.RemoveWidget(cmd.Context(), args[0], args[1])
			if err != nil {
				printError("%v", err)
				return err
			}
			printSuccess("Removed widget %s", StyleHighlight.Render(args[1]))
			printLayoutStats(rec.Snapshot.Len(), rec.Columns, rec.Snapshot.MaxBottom(), false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteDashboard, "all", false, "delete the whole dashboard")
	return cmd
}

package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/render"
)

// renderCommand creates the render command for generating SVG views.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output    string
		labels    bool
		gridlines bool
		env       envFlags
		resolve   bool
	)

	cmd := &cobra.Command{
		Use:   "render <dashboard>",
		Short: "Render a dashboard's layout to SVG",
		Long: `Render generates a schematic SVG of the dashboard grid, one colored
block per widget. With --resolve, the layout is first recovered to the
breakpoint derived from --width and the panel flags.`,
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
				svg    []byte
				cached bool
			)
			opts := []render.SVGOption{render.WithTitle(args[0])}
			if labels {
				opts = append(opts, render.WithLabels())
			}
			if gridlines {
				opts = append(opts, render.WithGridlines())
			}

			if resolve {
				layout, err := runner.EnvironmentChanged(cmd.Context(), args[0], env.environment())
				if err != nil {
					printError("%v", err)
					return err
				}
				svg = render.RenderSVG(layout.Snapshot, layout.Columns, opts...)
				cached = layout.CacheHit
			} else {
				rec, err := runner.Snapshot(cmd.Context(), args[0])
				if err != nil {
					printError("%v", err)
					return err
				}
				svg = render.RenderSVG(rec.Snapshot, rec.Columns, opts...)
			}

			if output == "" {
				output = args[0] + ".svg"
			}
			if !strings.HasSuffix(output, ".svg") {
				output += ".svg"
			}
			if err := os.WriteFile(output, svg, 0644); err != nil {
				printError("%v", err)
				return err
			}

			printSuccess("Rendered %s", StyleHighlight.Render(args[0]))
			printFile(output)
			if cached {
				printDetail("Layout served from cache")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dashboard>.svg)")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw widget IDs inside blocks")
	cmd.Flags().BoolVar(&gridlines, "gridlines", false, "draw empty grid cells")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "recover the layout for the given environment")
	env.register(cmd)

	return cmd
}

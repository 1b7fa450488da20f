package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// recoverCommand creates the recover command for transforming snapshot
// files between column counts. It works on files rather than stored
// dashboards, so frontends can batch-migrate exported layouts.
func (c *CLI) recoverCommand() *cobra.Command {
	var (
		output      string
		fromColumns int
		toColumns   int
		maxScanRows int
	)

	cmd := &cobra.Command{
		Use:   "recover <snapshot.json>",
		Short: "Recover a snapshot file for a different column count",
		Long: `Recover reads a snapshot JSON file laid out for --from columns and
re-packs it for --to columns: widgets are scaled proportionally,
clamped to the new bounds, and moved to free slots in reading order.
Malformed input is repaired best-effort; the output is always valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := grid.ReadSnapshotFile(args[0])
			if err != nil {
				printError("%v", err)
				return err
			}

			if err := snap.Validate(fromColumns); err != nil {
				printWarning("Input snapshot is malformed, repairing: %v", err)
			}

			engine := grid.New(grid.Config{
				Search: grid.SearchOptions{MaxScanRows: maxScanRows},
			}, c.Logger)

			p := newProgress(c.Logger)
			recovered := engine.Recover(snap, toColumns, fromColumns)
			p.done(fmt.Sprintf("Recovered %d widgets", recovered.Len()))

			if output == "" {
				output = args[0]
			}
			if err := grid.WriteSnapshotFile(recovered, output); err != nil {
				printError("%v", err)
				return err
			}

			printSuccess("Recovered layout: %d → %d columns", fromColumns, toColumns)
			printFile(output)
			printLayoutStats(recovered.Len(), toColumns, recovered.MaxBottom(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().IntVar(&fromColumns, "from", 12, "column count the input is laid out for")
	cmd.Flags().IntVar(&toColumns, "to", 4, "column count to recover to")
	cmd.Flags().IntVar(&maxScanRows, "max-scan-rows", 0, "row ceiling for the free-slot search (0 = default)")

	return cmd
}

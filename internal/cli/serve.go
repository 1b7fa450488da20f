package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/httpapi"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Serve runs the dashboard layout API. Backends (store, cache, realtime)
come from the config file; the zero-config default serves from memory
with caching disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, cleanup, err := c.newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			c.Logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"store", cfg.Store.Backend,
				"cache", cfg.Cache.Backend,
				"realtime", cfg.Realtime.Enabled)

			return httpapi.New(runner, cfg.Server.Addr, c.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// Package cli implements the dashgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/config"
	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/realtime"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "dashgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dashgrid places and recovers dashboard widget layouts",
		Long:         `Dashgrid is the layout engine for grid dashboards: it places widgets into breakpoint-sized grids, recovers layouts across viewport changes, and serves the layout API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a dashgrid.toml config file")

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.recoverCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the config file given via --config, or defaults.
// CLI usage defaults to the file store so dashboards survive between
// invocations, unlike the server default of memory.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.configPath == "" {
		cfg.Store.Backend = "file"
		cfg.Cache.Backend = "file"
	}
	return cfg, nil
}

// newRunner creates a dashboard runner from the loaded configuration.
// The returned cleanup function closes all backends.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*dashboard.Runner, func(), error) {
	engine := grid.New(grid.Config{
		Search: grid.SearchOptions{MaxScanRows: cfg.Grid.MaxScanRows},
		Panels: grid.PanelWidths{Main: cfg.Grid.MainPanelPx, Secondary: cfg.Grid.SecondaryPanelPx},
	}, c.Logger)

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	ch, err := newCache(ctx, cfg.Cache)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	pub, err := newPublisher(ctx, cfg.Realtime)
	if err != nil {
		st.Close()
		ch.Close()
		return nil, nil, err
	}

	cleanup := func() {
		st.Close()
		ch.Close()
		pub.Close()
	}
	return dashboard.NewRunner(engine, st, ch, nil, pub, c.Logger), cleanup, nil
}

func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

func newPublisher(ctx context.Context, cfg config.RealtimeConfig) (realtime.Publisher, error) {
	if !cfg.Enabled {
		return realtime.NewNoopPublisher(), nil
	}
	return realtime.NewRedisPublisher(ctx, realtime.RedisConfig{
		Addr:          cfg.RedisAddr,
		Password:      cfg.RedisPassword,
		DB:            cfg.RedisDB,
		ChannelPrefix: cfg.ChannelPrefix,
	})
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dashgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// envFlags holds the environment flags shared by layout commands.
type envFlags struct {
	width          int
	mainPanel      bool
	secondaryPanel bool
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 1280, "window width in pixels")
	cmd.Flags().BoolVar(&f.mainPanel, "main-panel", false, "main side panel open")
	cmd.Flags().BoolVar(&f.secondaryPanel, "secondary-panel", false, "secondary side panel open")
}

func (f *envFlags) environment() grid.Environment {
	return grid.Environment{
		WindowWidthPx:      f.width,
		MainPanelOpen:      f.mainPanel,
		SecondaryPanelOpen: f.secondaryPanel,
	}
}

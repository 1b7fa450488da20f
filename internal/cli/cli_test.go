package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want %v", got, log.DebugLevel)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{
		"place", "resize", "remove", "show", "list",
		"render", "recover", "view", "serve", "cache", "completion",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadConfigDefaultsToFileBackends(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	// Without --config the CLI persists between invocations.
	if cfg.Store.Backend != "file" {
		t.Errorf("store backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cache dir = %q, want basename %q", dir, appName)
	}
}

func TestEnvFlagsEnvironment(t *testing.T) {
	f := envFlags{width: 800, mainPanel: true}
	env := f.environment()

	if env.WindowWidthPx != 800 {
		t.Errorf("width = %d, want 800", env.WindowWidthPx)
	}
	if !env.MainPanelOpen {
		t.Error("main panel should be open")
	}
	if env.SecondaryPanelOpen {
		t.Error("secondary panel should be closed")
	}
}

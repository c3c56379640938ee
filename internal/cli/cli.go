// Package cli implements the signaltower command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Every
// planning command goes through a [pipeline.Runner] so that the terminal,
// the HTTP server and library callers share caching and run history.
//
// # Commands
//
//   - plan: generate a city, place towers and find a relay path
//   - path: find a relay path in a saved plan
//   - pick: choose path endpoints interactively
//   - serve: run the HTTP plan API
//   - history: list, show and delete recorded runs
//   - cache: manage the local result cache
//   - completion, version
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every pipeline stage and cache lookup through observability hooks.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/signaltower/pkg/buildinfo"
	"github.com/matzehuels/signaltower/pkg/cache"
	"github.com/matzehuels/signaltower/pkg/config"
	"github.com/matzehuels/signaltower/pkg/pipeline"
	"github.com/matzehuels/signaltower/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// defaultHistoryLimit is the number of runs listed by "history".
	defaultHistoryLimit = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag shared by all commands.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline and cache
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Signaltower places relay towers on a city grid",
		Long: `Signaltower generates a city grid with blocked cells, places signal towers
on blocked cells with a greedy coverage heuristic, and finds the shortest
relay path between two towers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "scenario file (TOML)")

	root.AddCommand(c.planCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Scenario
// =============================================================================

// scenario loads the --config file, or the defaults when none is given.
func (c *CLI) scenario() (*config.Scenario, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	s, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded scenario", "path", c.configPath)
	return s, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The run history store is
// attached when the scenario enables it; a store that fails to open is
// logged and skipped.
func (c *CLI) newRunner(ctx context.Context, s *config.Scenario, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, s.Cache, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(backend, nil, c.Logger)

	if s.Store.Enabled {
		st, err := openStore(ctx, s.Store)
		if err != nil {
			c.Logger.Warn("run history disabled", "error", err)
		} else {
			runner.Store = st
		}
	}
	return runner, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.RedisAddress(),
			Prefix: appName + ":",
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return cache.WithMaxTTL(rc, cfg.TTL.Duration), nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.WithMaxTTL(fc, cfg.TTL.Duration), nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (*store.Store, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, path)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/buildinfo"
	"github.com/vascnet/netinput/pkg/cache"
	"github.com/vascnet/netinput/pkg/observability"
	"github.com/vascnet/netinput/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "netinput"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "netinput reads, checks and converts 1-D blood flow network models",
		Long: `netinput is the input pipeline of a 1-D hemodynamics solver.

It reads a vascular network described in the legacy keyword format or in
JSON, validates the network, writes human-readable and JSON echoes, converts
between the two formats and produces the construction plan a solver consumes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+configFile+" if present)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.echoCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.config.Cache.Prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		store, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return store, nil
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("caching disabled", "reason", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/netinput/).
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

// inputFlags are the parse and cache flags of every command that reads a
// network. Parse and validation flags override the config file only when
// set explicitly.
type inputFlags struct {
	format             string
	strictNumbers      bool
	strictJointMapping bool
	refresh            bool
	noCache            bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "input-format", "", "input format: legacy, json (default: detect)")
	cmd.Flags().BoolVar(&f.strictNumbers, "strict-numbers", false, "reject numeric fields that are not entirely numeric")
	cmd.Flags().BoolVar(&f.strictJointMapping, "strict-joints", false, "fail when a joint's node disagrees with its position")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options merges the config file with the flags set on cmd.
func (c *CLI) options(cmd *cobra.Command, f *inputFlags) (pipeline.Options, error) {
	opts := c.config.pipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("input-format") {
		format, err := pipeline.ParseFormat(f.format)
		if err != nil {
			return opts, err
		}
		opts.Format = format
	}
	if flags.Changed("strict-numbers") {
		opts.StrictNumbers = f.strictNumbers
	}
	if flags.Changed("strict-joints") {
		opts.StrictJointMapping = f.strictJointMapping
	}
	opts.Refresh = f.refresh
	return opts, opts.Validate()
}

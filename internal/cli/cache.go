package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/cache"
)

// cacheCommand creates the cache management command. It manages the file
// cache only; a Redis cache expires its entries itself.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the file cache of parsed models and plans",
	}

	cmd.AddCommand(
		c.cacheSweepCommand("clear", "Remove all cached models and plans", (*cache.FileCache).Clear),
		c.cacheSweepCommand("prune", "Remove expired and unreadable cache entries", (*cache.FileCache).Prune),
		c.cachePathCommand(),
	)

	return cmd
}

// fileCacheDir returns the file cache directory from the config, or the
// XDG default.
func (c *CLI) fileCacheDir() (string, error) {
	if dir := c.config.Cache.Dir; dir != "" {
		return dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}

// cacheSweepCommand creates a subcommand that removes entries with sweep.
func (c *CLI) cacheSweepCommand(use, short string, sweep func(*cache.FileCache) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
				printInfo(out, "Cache is empty")
				return nil
			}

			store, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := sweep(store)
			if err != nil {
				return err
			}
			printSuccess(out, "Removed %d cached entries", n)
			printDetail(out, "Directory: %s", store.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fingerprint cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached fingerprint",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) runCacheClear(cmd *cobra.Command, _ []string) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		printInfo("Cache is empty")
		return nil
	}

	store, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

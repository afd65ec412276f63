package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/config"
	"github.com/matzehuels/cipherwen/pkg/errors"
)

var configFormats = []string{"toml", "yaml", "json"}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Config manages the file holding separators, minimum segment lengths and image
defaults. The format follows the extension: .toml (default), .yaml/.yml or .json.`,
	}
	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default ~/.config/cipherwen/config.toml)")

	cmd.AddCommand(c.configInitCommand(&path))
	cmd.AddCommand(c.configPathCommand(&path))
	cmd.AddCommand(c.configShowCommand(&path))

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand(path *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath(*path)
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(p); err == nil && !force {
				printWarning("Config already exists")
				printDetail("Use --force to overwrite %s", p)
				return nil
			}
			if err := config.Save(config.Default(), p); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath(*path)
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand. It shows the
// effective configuration without creating the file.
func (c *CLI) configShowCommand(path *string) *cobra.Command {
	format := "toml"

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(configFormats, format) {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q, want one of %v", format, configFormats)
			}
			p, err := configPath(*path)
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}

			cfg, err := config.Load(p)
			switch {
			case errors.Is(err, errors.ErrCodeFileNotFound):
				c.Logger.Debug("no config file, showing defaults", "path", p)
				cfg = config.Default()
			case err != nil:
				return err
			}

			data, err := config.Marshal(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: toml, yaml, json")
	return cmd
}

package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/buildinfo"
	"github.com/matzehuels/cipherwen/pkg/cache"
	"github.com/matzehuels/cipherwen/pkg/config"
	"github.com/matzehuels/cipherwen/pkg/observability"
	"github.com/matzehuels/cipherwen/pkg/pipeline"
)

// appName names the binary and its XDG directories.
const appName = "cipherwen"

// Levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state every command shares. Prompt answers interactive
// questions; tests swap it for a scripted one.
type CLI struct {
	Logger *log.Logger
	Prompt Prompter
}

// New returns a CLI that logs to w at level and prompts on the terminal.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Prompt: teaPrompter{}}
}

// SetLogLevel changes the logger level, e.g. for --verbose.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the cipherwen command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cipherwen turns article quizzes into compact ciphers",
		Long: `Cipherwen finds the shortest segments that tell a set of articles and their
answers apart, joins them into a cipher text, and can transcode that text to
ternary and paint it as a grid image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(logHooks{logger: c.Logger})
			observability.SetCacheHooks(logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.cipherCommand(),
		c.encodeCommand(),
		c.decodeCommand(),
		c.fingerprintCommand(),
		c.renderCommand(),
		c.configCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner wires a pipeline runner to the on-disk cache, or to no cache.
// Keys carry the build version so upgrades never read stale entries.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache falls back to no cache when there is no home directory.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir is $XDG_CACHE_HOME/cipherwen, or ~/.cache/cipherwen.
func cacheDir() (string, error) { return xdgDir("XDG_CACHE_HOME", ".cache") }

// configDir is $XDG_CONFIG_HOME/cipherwen, or ~/.config/cipherwen.
func configDir() (string, error) { return xdgDir("XDG_CONFIG_HOME", ".config") }

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// configPath returns path, or the default config file when path is empty.
func configPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.FileName), nil
}

// loadConfig reads the config at path, or at the default location when path
// is empty. A missing file is written with defaults first.
func (c *CLI) loadConfig(path string) (*config.Config, error) {
	path, err := configPath(path)
	if err != nil {
		return nil, err
	}
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, err
	}
	if created {
		c.Logger.Info("created default config", "path", path)
	} else {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

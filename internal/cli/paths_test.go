package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cipherwen/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"explicit", "my.yaml", "my.yaml"},
		{"default", "", filepath.Join("/tmp/custom-config", appName, config.FileName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := configPath(tt.in)
			if err != nil {
				t.Fatalf("configPath() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("configPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	cfg, err := c.loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Separator.Article != config.DefaultArticleSeparator {
		t.Errorf("Separator.Article = %q", cfg.Separator.Article)
	}

	path, _ := configPath("")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func restore(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFill(t *testing.T) {
	restore(t)
	Version, Commit, Date = "dev", "none", "unknown"

	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	})

	if Version != "v0.3.1" || Commit != "abc123" || Date != "2025-01-02T03:04:05Z" {
		t.Errorf("fill() = %q %q %q", Version, Commit, Date)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	restore(t)
	Version, Commit, Date = "v1.0.0", "deadbeef", "today"

	fill(&debug.BuildInfo{
		Main:     debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})

	if Version != "v1.0.0" || Commit != "deadbeef" || Date != "today" {
		t.Errorf("fill() overwrote ldflags values: %q %q %q", Version, Commit, Date)
	}
}

func TestFillDevel(t *testing.T) {
	restore(t)
	Version = "dev"

	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	restore(t)
	Version, Commit, Date = "v1.2.3", "abc", "now"

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: abc") {
		t.Errorf("String() = %q", String())
	}
}

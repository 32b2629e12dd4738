package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writePyproject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write pyproject: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvChangelog, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "pyproject.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FromFile {
		t.Error("FromFile should be false for a missing pyproject")
	}
	if diff := cmp.Diff(DefaultBuildCommand, cfg.BuildCommand); diff != "" {
		t.Errorf("BuildCommand mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultPublishCommand, cfg.PublishCommand); diff != "" {
		t.Errorf("PublishCommand mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ToolTable(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvChangelog, "")

	path := writePyproject(t, `
[tool.uv.workspace]
members = ["packages/*"]

[tool.workspyce]
state-dir = ".release-state"
changelog = "docs/CHANGES.md"
build-command = ["python", "-m", "build", "{path}"]
publish-command = ["twine", "upload", "-p", "{token}", "dist/*"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	root := filepath.Dir(path)

	if !cfg.FromFile {
		t.Error("FromFile should be true")
	}
	if cfg.Paths.StateDir != filepath.Join(root, ".release-state") {
		t.Errorf("StateDir = %q", cfg.Paths.StateDir)
	}
	if cfg.Paths.ReleaseManifest != filepath.Join(root, ".release-state", "release.txt") {
		t.Errorf("ReleaseManifest = %q", cfg.Paths.ReleaseManifest)
	}
	if cfg.Paths.Changelog != filepath.Join(root, "docs", "CHANGES.md") {
		t.Errorf("Changelog = %q", cfg.Paths.Changelog)
	}
	if diff := cmp.Diff([]string{"python", "-m", "build", "{path}"}, cfg.BuildCommand); diff != "" {
		t.Errorf("BuildCommand mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	t.Setenv(EnvStateDir, "/elsewhere")
	t.Setenv(EnvChangelog, "")

	cfg, err := Load(writePyproject(t, "[tool.workspyce]\nstate-dir = \"ignored\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paths.StateDir != "/elsewhere" {
		t.Errorf("StateDir = %q, want /elsewhere", cfg.Paths.StateDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvChangelog, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed toml", "[tool.workspyce\n", "load workspyce config"},
		{"empty build command", "[tool.workspyce]\nbuild-command = []\n", "build-command"},
		{"build command without path", "[tool.workspyce]\nbuild-command = [\"uv\", \"build\"]\n", "{path}"},
		{"empty publish command", "[tool.workspyce]\npublish-command = []\n", "publish-command"},
		{"state dir is root", "[tool.workspyce]\nstate-dir = \".\"\n", "state-dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePyproject(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	got := Expand([]string{"uv", "build", "{path}", "--out={path}/dist"}, PathPlaceholder, "packages/foo")
	want := []string{"uv", "build", "packages/foo", "--out=packages/foo/dist"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

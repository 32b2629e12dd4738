package workspace

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "root"
version = "0.0.0"

[tool.uv.workspace]
members = ["packages/*", "libs/core", "tools/*/cli"]
exclude = ["packages/legacy"]
`)
	ws, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"packages/.*", "libs/core", "tools/.*/cli"}
	if diff := cmp.Diff(want, ws.Patterns()); diff != "" {
		t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no workspace table", "[project]\nname = \"x\"\n", ErrNoMembers},
		{"empty members", "[tool.uv.workspace]\nmembers = []\n", ErrNoMembers},
		{"bad regex", "[tool.uv.workspace]\nmembers = [\"pkg/(\"]\n", ErrBadPattern},
		{"bad exclude glob", "[tool.uv.workspace]\nmembers = [\"pkg/*\"]\nexclude = [\"pkg/[\"]\n", ErrBadPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "pyproject.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("malformed members type", func(t *testing.T) {
		_, err := Load(writeManifest(t, "[tool.uv.workspace]\nmembers = \"packages/*\"\n"))
		if err == nil {
			t.Error("expected error for non-list members")
		}
	})
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		member string
		want   string
	}{
		{`"packages/*"`, "packages/.*"},
		{` packages/* `, "packages/.*"},
		{"a*b*", "a.*b.*"},
		{"libs/core", "libs/core"},
	}
	for _, tt := range tests {
		if got := Translate(tt.member); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.member, got, tt.want)
		}
	}
}

func TestCompile_OnePatternPerMember(t *testing.T) {
	for n := 1; n <= 5; n++ {
		members := make([]string, n)
		for i := range members {
			members[i] = `"packages/*"`
		}
		patterns, err := Compile(members)
		if err != nil {
			t.Fatalf("Compile(%d members) failed: %v", n, err)
		}
		if len(patterns) != n {
			t.Errorf("Compile(%d members) yielded %d patterns", n, len(patterns))
		}
		for _, re := range patterns {
			if re.String() != "packages/.*" {
				t.Errorf("pattern = %q, want packages/.*", re.String())
			}
		}
	}
}

func TestIsMember(t *testing.T) {
	ws, err := New([]string{"packages/*"}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"packages/coding_agent/hello.py", true},
		{"packages/foo/x.py", true},
		{"src/packages/foo/x.py", true}, // unanchored
		{"package/coding_agent/hello.py", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		if got := ws.IsMember(tt.path); got != tt.want {
			t.Errorf("IsMember(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsMember_OrderIndependent(t *testing.T) {
	members := []string{"packages/*", "libs/core", "tools/*/cli", "docs"}
	paths := []string{
		"packages/a/x.py", "libs/core/y.py", "tools/gen/cli/main.py",
		"tools/gen/lib.py", "docs/index.md", "other/file.txt",
	}

	base, err := Compile(members)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), members...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		patterns, err := Compile(shuffled)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range paths {
			if IsMember(base, p) != IsMember(patterns, p) {
				t.Errorf("membership of %q depends on pattern order %v", p, shuffled)
			}
		}
	}
}

func TestIsMember_MatchesRegexSearch(t *testing.T) {
	patterns := []*regexp.Regexp{regexp.MustCompile("foo.*bar")}
	if !IsMember(patterns, "x/foo/y/bar/z") {
		t.Error("expected unanchored match")
	}
	if IsMember(nil, "anything") {
		t.Error("no patterns should match nothing")
	}
}

func TestExcluded(t *testing.T) {
	ws, err := New([]string{"packages/*"}, []string{"packages/legacy", "packages/experimental-*", "**/vendored"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		root string
		want bool
	}{
		{"packages/legacy", true},
		{"packages/legacy/", true},
		{"packages/experimental-ui", true},
		{"packages/foo/vendored", true},
		{"packages/foo", false},
		{"packages/legacy-two", false},
	}
	for _, tt := range tests {
		if got := ws.Excluded(tt.root); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.root, got, tt.want)
		}
	}
}
